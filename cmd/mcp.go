package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/rtzll/tubescribe/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server for tubescribe",
	Long: `Run a Model Context Protocol (MCP) server that exposes tubescribe functionality as tools.

The MCP server provides three tools:
- get_youtube_transcript: Return the captions of a video as plain text
- search_youtube: List the top non-sponsored search results
- save_youtube_transcript: Save the captions to <id>_<ddmmyy>.txt in the output directory

This allows AI assistants to use tubescribe through the MCP protocol.

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)`,
	Example: `  # Run MCP server with stdio transport (e.g. for Claude Desktop)
  tubescribe mcp

  # Run MCP server with HTTP transport on port 8080
  tubescribe mcp --transport=http --port=8080

  # Set up Claude Desktop integration
  tubescribe mcp setup-claude`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// stdout belongs to the protocol
		config.Verbose = false
		config.Quiet = true
		internal.InitMCPLogging(config)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		app := internal.NewApp(config, internal.WithUI(internal.NopUI()))

		mcpServer := internal.NewMCPServer(app, version)

		if transport == "http" {
			fmt.Fprintf(os.Stderr, "Starting tubescribe MCP server on HTTP port %d...\n", port)
		}

		// Start the server (this will block until context is cancelled)
		return mcpServer.Start(cmd.Context(), transport, port)
	},
}

// setupClaudeCmd represents the setup-claude subcommand
var setupClaudeCmd = &cobra.Command{
	Use:   "setup-claude",
	Short: "Configure Claude Desktop to use the tubescribe MCP server",
	Long: `Automatically configure Claude Desktop to use tubescribe as an MCP server.

This command will:
- Detect Claude Desktop installation and config location
- Add tubescribe MCP server configuration to claude_desktop_config.json
- Preserve existing MCP server configurations
- Set appropriate XDG environment variables for the current platform`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setupClaudeDesktop()
	},
}

// MCPServerConfig represents an individual MCP server configuration
type MCPServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

// setupClaudeDesktop implements the setup-claude subcommand
func setupClaudeDesktop() error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("getting executable path: %w", err)
	}

	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("resolving executable path: %w", err)
	}

	configPath, err := getClaudeDesktopConfigPath()
	if err != nil {
		return fmt.Errorf("getting Claude Desktop config path: %w", err)
	}

	// XDG base paths so the server finds the same config and output settings
	server := MCPServerConfig{
		Command: execPath,
		Args:    []string{"mcp"},
		Env: map[string]string{
			"XDG_DATA_HOME":   xdg.DataHome,
			"XDG_CONFIG_HOME": xdg.ConfigHome,
			"XDG_CACHE_HOME":  xdg.CacheHome,
		},
	}

	if err := registerMCPServer(configPath, "tubescribe", server); err != nil {
		return err
	}

	fmt.Printf("Successfully configured Claude Desktop MCP server\n")
	fmt.Printf("Restart Claude Desktop to use the tubescribe MCP server\n")

	return nil
}

// registerMCPServer adds or replaces one entry under mcpServers in an existing
// claude_desktop_config.json. Other servers and top-level keys are kept as they are.
func registerMCPServer(configPath, name string, server MCPServerConfig) error {
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("config for Claude Desktop not found at %s", configPath)
	}
	if err != nil {
		return fmt.Errorf("reading existing config: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing existing config: %w", err)
	}
	if doc == nil {
		doc = make(map[string]json.RawMessage)
	}

	servers := make(map[string]json.RawMessage)
	if raw, ok := doc["mcpServers"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &servers); err != nil {
			return fmt.Errorf("parsing mcpServers: %w", err)
		}
	}

	entry, err := json.Marshal(server)
	if err != nil {
		return fmt.Errorf("marshaling server config: %w", err)
	}
	servers[name] = entry

	if doc["mcpServers"], err = json.Marshal(servers); err != nil {
		return fmt.Errorf("marshaling mcpServers: %w", err)
	}

	data, err = json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// getClaudeDesktopConfigPath returns the platform-specific config path for Claude Desktop
func getClaudeDesktopConfigPath() (string, error) {
	var configPath string

	switch runtime.GOOS {
	case "darwin":
		// macOS: ~/Library/Application Support/Claude/claude_desktop_config.json
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configPath = filepath.Join(homeDir, "Library", "Application Support", "Claude", "claude_desktop_config.json")

	case "windows":
		// Windows: %APPDATA%/Claude/claude_desktop_config.json
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		configPath = filepath.Join(appData, "Claude", "claude_desktop_config.json")

	case "linux":
		// Linux: ~/.config/Claude/claude_desktop_config.json
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configPath = filepath.Join(homeDir, ".config", "Claude", "claude_desktop_config.json")

	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return configPath, nil
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol (stdio or http)")
	mcpCmd.Flags().Int("port", 8080, "Port for HTTP transport (only used with --transport=http)")
	mcpCmd.AddCommand(setupClaudeCmd)
	rootCmd.AddCommand(mcpCmd)
}
