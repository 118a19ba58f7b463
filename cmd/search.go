package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/movq/moviefetch/moviesdb"
)

var (
	searchMode string
	exactMatch bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search titles by keyword, name or AKA",
	Long: `Search the title catalog. The --by flag picks the search family:
keyword matches indexed keywords, title matches the title text (add --exact
for exact matching), and aka matches alternative titles exactly and case
sensitively.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	addListFlags(searchCmd)
	searchCmd.Flags().StringVar(&searchMode, "by", "title", "search family: keyword, title or aka")
	searchCmd.Flags().BoolVar(&exactMatch, "exact", false, "exact title matching (title search only)")
	searchCmd.Flags().IntVar(&maxPages, "pages", 1, "number of pages to fetch")
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "client-side filter expression")
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := args[0]
	q := listQuery()

	var it *moviesdb.Iter[moviesdb.Title]
	switch searchMode {
	case "keyword":
		it = client.SearchByKeyword(term, q)
	case "title":
		if exactMatch {
			q["exact"] = "true"
		}
		it = client.SearchByTitle(term, q)
	case "aka":
		it = client.SearchByAKA(term, q)
	default:
		return fmt.Errorf("unknown search family %q (want keyword, title or aka)", searchMode)
	}

	return printTitlePages(it)
}
