package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rtzll/tubescribe/internal"
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize [YouTube URL or ID]",
	Short: "Summarize a YouTube video from its captions",
	Example: `  # Summarize a YouTube video
  tubescribe summarize "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  tubescribe summarize dQw4w9WgXcQ

  # Use specific OpenAI model
  tubescribe summarize dQw4w9WgXcQ --model gpt-4o

  # Use custom prompt
  tubescribe summarize dQw4w9WgXcQ --prompt "tldr: {{.Transcript}}"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateOpenAIRequirements(cmd, config); err != nil {
			return err
		}

		app := internal.NewApp(config)

		if err := internal.HandlePromptFlag(cmd, app); err != nil {
			return err
		}

		return app.SummarizeYouTube(cmd.Context(), args[0])
	},
}

func init() {
	internal.AddOpenAIFlags(summarizeCmd)
	rootCmd.AddCommand(summarizeCmd)
}
