package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddGlobalFlags adds the persistent flags shared by every command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress and status output")
	cmd.PersistentFlags().StringP("output-dir", "d", "", "Directory for saved transcripts (default from config)")
	cmd.PersistentFlags().String("config", "", "Config file (default is $XDG_CONFIG_HOME/tubescribe/config.toml)")
}

// AddOpenAIFlags adds flags related to OpenAI API functionality
func AddOpenAIFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "OpenAI model to use for summaries")
	cmd.Flags().StringP("prompt", "p", "", "Custom prompt (string or file path)")
}

// HandlePromptFlag processes the --prompt flag to set custom prompt
func HandlePromptFlag(cmd *cobra.Command, app *App) error {
	promptFlag := cmd.Flags().Lookup("prompt")
	if promptFlag == nil || !promptFlag.Changed {
		return nil
	}

	prompt, err := cmd.Flags().GetString("prompt")
	if err != nil {
		return fmt.Errorf("failed to get prompt flag: %w", err)
	}

	if prompt == "" {
		return nil
	}

	app.SetPromptManager(NewPromptManager(app.config.ConfigDir, prompt))

	if app.config.Verbose {
		if IsLikelyFilePath(prompt) && FileExists(prompt) {
			fmt.Printf("Using custom prompt file: %s\n", prompt)
		} else {
			fmt.Printf("Using custom prompt string\n")
		}
	}

	return nil
}

// HandleGlobalFlags applies explicitly set persistent flags on top of config
func HandleGlobalFlags(cmd *cobra.Command, config *Config) error {
	flags := cmd.Flags()

	if flags.Changed("verbose") {
		verbose, err := flags.GetBool("verbose")
		if err != nil {
			return fmt.Errorf("failed to get verbose flag: %w", err)
		}
		config.Verbose = verbose
	}

	if flags.Changed("quiet") {
		quiet, err := flags.GetBool("quiet")
		if err != nil {
			return fmt.Errorf("failed to get quiet flag: %w", err)
		}
		config.Quiet = quiet
	}

	if flags.Changed("output-dir") {
		dir, err := flags.GetString("output-dir")
		if err != nil {
			return fmt.Errorf("failed to get output-dir flag: %w", err)
		}
		config.OutputDir = dir
	}

	if config.Verbose && config.Quiet {
		return fmt.Errorf("--verbose and --quiet cannot be used together")
	}

	return nil
}

// ValidateOpenAIRequirements validates OpenAI API key and model from command flags and config
func ValidateOpenAIRequirements(cmd *cobra.Command, config *Config) error {
	if err := ValidateOpenAIAPIKey(config.OpenAIAPIKey); err != nil {
		return err
	}

	modelFlag, _ := cmd.Flags().GetString("model")
	if modelFlag != "" {
		if err := ValidateModel(modelFlag); err != nil {
			return err
		}
		config.SummaryModel = modelFlag
	} else if err := ValidateModel(config.SummaryModel); err != nil {
		return fmt.Errorf("invalid model in config: %w", err)
	}

	return nil
}
