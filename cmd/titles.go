package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/movq/moviefetch/filter"
	"github.com/movq/moviefetch/moviesdb"
)

var (
	listName   string
	titleType  string
	maxPages   int
	filterExpr string
)

// titlesCmd represents the titles command
var titlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "List titles",
	Long: `List titles from the main catalog. Filter by genre, year or title type,
pick a curated list with --list, and control paging with --limit and --page.`,
	RunE: runTitles,
}

// upcomingCmd represents the upcoming command
var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List upcoming titles",
	RunE:  runUpcoming,
}

func init() {
	rootCmd.AddCommand(titlesCmd)
	rootCmd.AddCommand(upcomingCmd)

	addListFlags(titlesCmd)
	titlesCmd.Flags().StringVar(&listName, "list", "", "curated list (e.g. top_rated_250)")
	titlesCmd.Flags().StringVar(&titleType, "type", "", "title type (e.g. movie, tvSeries)")
	titlesCmd.Flags().IntVar(&maxPages, "pages", 1, "number of pages to fetch")
	titlesCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "client-side filter expression")

	addListFlags(upcomingCmd)
	upcomingCmd.Flags().IntVar(&maxPages, "pages", 1, "number of pages to fetch")
	upcomingCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "client-side filter expression")
}

func runTitles(cmd *cobra.Command, args []string) error {
	q := listQuery()
	if listName != "" {
		q["list"] = listName
	}
	if titleType != "" {
		q["titleType"] = titleType
	}

	return printTitlePages(client.Titles(q))
}

func runUpcoming(cmd *cobra.Command, args []string) error {
	return printTitlePages(client.Upcoming(listQuery()))
}

// printTitlePages walks up to maxPages pages, applies the optional
// client-side filter and prints every remaining title.
func printTitlePages(it *moviesdb.Iter[moviesdb.Title]) error {
	ctx := context.Background()

	var f *filter.Filter
	if filterExpr != "" {
		var err error
		f, err = filter.Compile(filterExpr)
		if err != nil {
			return err
		}
	}

	pages := 0
	total := 0
	for pages < maxPages && it.Next(ctx) {
		items := it.Items()
		if f != nil {
			items = f.Apply(items)
		}
		for _, title := range items {
			printTitle(title)
			total++
		}
		pages++
	}
	if err := it.Err(); err != nil {
		return err
	}

	if total == 0 {
		fmt.Println("No titles found.")
		return nil
	}

	if entries, ok := it.Entries(); ok {
		fmt.Printf("\nShowing %d of %d titles.\n", total, entries)
	}
	return nil
}
