package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/rtzll/tubescribe/internal"
)

// cpCmd copies the transcript to the system clipboard instead of writing a file.
var cpCmd = &cobra.Command{
	Use:   "cp [YouTube URL or ID]",
	Short: "Copy transcript from YouTube to the clipboard",
	Example: `  # Copy transcript from YouTube captions
  tubescribe cp "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  tubescribe cp dQw4w9WgXcQ`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config)

		tr, _, err := app.GetTranscriptWithStatus(cmd.Context(), args[0], !config.Quiet)
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(strings.TrimSpace(internal.FlattenTranscript(tr))); err != nil {
			return fmt.Errorf("copying transcript to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Println("Transcript copied to clipboard")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(cpCmd)
}
