package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rtzll/tubescribe/internal"
)

// searchCmd lists search results without fetching transcripts
var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "List YouTube search results",
	Example: `  # Show the top results for a query
  tubescribe search golang generics

  # Show up to ten results
  tubescribe search -n 10 "rob pike concurrency"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxResults, _ := cmd.Flags().GetInt("max-results")
		query := strings.Join(args, " ")

		app := internal.NewApp(config)
		refs, err := app.Search(cmd.Context(), query, maxResults)
		if err != nil {
			return err
		}

		for i, ref := range refs {
			fmt.Printf("%d. %s\n   %s\n", i+1, ref.Title, ref.URL)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntP("max-results", "n", 0, "Number of results (default from config)")
	rootCmd.AddCommand(searchCmd)
}
