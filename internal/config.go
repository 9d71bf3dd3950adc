package internal

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const appName = "tubescribe"

// Config holds application settings
type Config struct {
	// User configurable settings
	OutputDir      string
	MaxResults     int
	SearchTimeout  time.Duration
	FetchTimeout   time.Duration
	FetchInterval  time.Duration
	Languages      []string
	Headless       bool
	BrowserBin     string
	SummaryModel   string
	SummaryTimeout time.Duration
	Prompt         string
	OpenAIAPIKey   string
	Verbose        bool
	Quiet          bool
	MCPLogEnabled  bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	DataDir   string
	CacheDir  string
}

//go:embed config.toml prompt.txt
var defaultFS embed.FS

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Fprintf(os.Stderr, "Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig checks if a config file exists in the XDG config directory
// and creates it from the embedded default if it doesn't exist
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultPrompt checks if a prompt.txt file exists in the XDG config directory
// and creates it from the embedded default if it doesn't exist
func EnsureDefaultPrompt(configDir string) error {
	return ensureDefaultFile(configDir, "prompt.txt", "prompt template")
}

// InitConfig initializes Viper and loads configuration.
// configFile overrides the XDG lookup when not empty.
func InitConfig(configFile string) *Config {
	// A local .env may carry OPENAI_API_KEY and TUBESCRIBE_* overrides
	_ = godotenv.Load()

	configDir := filepath.Join(xdg.ConfigHome, appName)
	dataDir := filepath.Join(xdg.DataHome, appName)
	cacheDir := filepath.Join(xdg.CacheHome, appName)

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TUBESCRIBE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Special case for OpenAI API Key - check both Viper and direct env var
	_ = v.BindEnv("openai_api_key", "TUBESCRIBE_OPENAI_API_KEY", "OPENAI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := configFromViper(v)
	config.ConfigDir = configDir
	config.DataDir = dataDir
	config.CacheDir = cacheDir

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", "transcripts")
	v.SetDefault("max_results", 5)
	v.SetDefault("search_timeout", 20*time.Second)
	v.SetDefault("fetch_timeout", 30*time.Second)
	v.SetDefault("fetch_interval", time.Second)
	v.SetDefault("languages", []string{"en"})
	v.SetDefault("headless", true)
	v.SetDefault("browser_bin", "")
	v.SetDefault("summary_model", "gpt-4o-mini")
	v.SetDefault("summary_timeout", 2*time.Minute)
	v.SetDefault("prompt", "") // if empty will use default prompt template
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("mcp_log", false)
}

func configFromViper(v *viper.Viper) *Config {
	return &Config{
		OutputDir:      v.GetString("output_dir"),
		MaxResults:     v.GetInt("max_results"),
		SearchTimeout:  v.GetDuration("search_timeout"),
		FetchTimeout:   v.GetDuration("fetch_timeout"),
		FetchInterval:  v.GetDuration("fetch_interval"),
		Languages:      v.GetStringSlice("languages"),
		Headless:       v.GetBool("headless"),
		BrowserBin:     v.GetString("browser_bin"),
		SummaryModel:   v.GetString("summary_model"),
		SummaryTimeout: v.GetDuration("summary_timeout"),
		Prompt:         v.GetString("prompt"),
		OpenAIAPIKey:   v.GetString("openai_api_key"),
		Verbose:        v.GetBool("verbose"),
		Quiet:          v.GetBool("quiet"),
		MCPLogEnabled:  v.GetBool("mcp_log"),
	}
}

// DefaultConfig returns the built-in defaults without reading files or the environment
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return configFromViper(v)
}
