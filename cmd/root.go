package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rtzll/tubescribe/internal"
)

var (
	config *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tubescribe [YouTube URL, video ID or search query]",
	Short: "Save YouTube captions as plain text files",
	Long: `tubescribe fetches the captions of YouTube videos and saves them as
<video id>_<ddmmyy>.txt files in the output directory.

Give it a video URL or ID to save one transcript, or any other text to search
YouTube and save the transcripts of the top results. Without arguments it
starts an interactive prompt; press Enter on an empty line to exit.`,
	Example: `  # Start the interactive prompt
  tubescribe

  # Save the transcript of one video
  tubescribe "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  tubescribe dQw4w9WgXcQ

  # Search and save the transcripts of the top results
  tubescribe golang concurrency patterns

  # Save into a different directory
  tubescribe -d ~/notes/transcripts dQw4w9WgXcQ`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config)
		session := app.Session()

		if len(args) == 0 {
			return session.Run(cmd.Context(), os.Stdin)
		}

		if _, err := session.Handle(cmd.Context(), strings.Join(args, " ")); err != nil {
			session.ReportError(err)
			cmd.SilenceErrors = true
			return err
		}
		return nil
	},
}

// loadConfig reads configuration, prepares XDG directories and applies global flags
func loadConfig(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	config = internal.InitConfig(configFile)

	if err := internal.EnsureDirs(config.ConfigDir, config.DataDir, config.CacheDir); err != nil {
		return fmt.Errorf("creating XDG directories: %w", err)
	}

	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	if err := internal.EnsureDefaultPrompt(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default prompt: %v\n", err)
	}

	return internal.HandleGlobalFlags(cmd, config)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh

		// Cancel the main context so running fetches and the prompt loop stop
		cancel()

		// Give the browser and pending writes a moment, then force exit
		select {
		case <-sigCh:
		case <-time.After(3 * time.Second):
			fmt.Fprintln(os.Stderr, "Warning: Shutdown timed out, forcing exit")
		}
		os.Exit(0)
	}()

	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

func init() {
	internal.AddGlobalFlags(rootCmd)
}
