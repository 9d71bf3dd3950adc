package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rtzll/tubescribe/internal"
)

// transcribeCmd represents the transcribe command
var transcribeCmd = &cobra.Command{
	Use:   "transcribe [YouTube URL or ID]",
	Short: "Fetch the transcript of one YouTube video",
	Example: `  # Save the transcript as <id>_<ddmmyy>.txt in the output directory
  tubescribe transcribe "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  tubescribe transcribe dQw4w9WgXcQ

  # Save transcript to a specific file
  tubescribe transcribe dQw4w9WgXcQ -o transcript.txt

  # Print transcript to stdout
  tubescribe transcribe dQw4w9WgXcQ -o -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile == "-" {
			// stdout carries the transcript only
			config.Quiet = true
		}

		app := internal.NewApp(config)

		if outputFile == "" {
			saved, err := app.SaveTranscript(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(saved.Path)
			return nil
		}

		tr, _, err := app.GetTranscriptWithStatus(cmd.Context(), args[0], !config.Quiet)
		if err != nil {
			return err
		}
		text := strings.TrimSpace(internal.FlattenTranscript(tr))

		if outputFile == "-" {
			fmt.Println(text)
			return nil
		}

		if err := os.WriteFile(outputFile, []byte(internal.FlattenTranscript(tr)), 0644); err != nil {
			return fmt.Errorf("writing transcript: %w", err)
		}
		if !config.Quiet {
			fmt.Println(outputFile)
		}
		return nil
	},
}

func init() {
	transcribeCmd.Flags().StringP("output", "o", "", "Output file path, or - for stdout (default: <output-dir>/<id>_<ddmmyy>.txt)")
	rootCmd.AddCommand(transcribeCmd)
}
