package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// actorsCmd represents the actors command
var actorsCmd = &cobra.Command{
	Use:   "actors",
	Short: "List actors",
	RunE:  runActors,
}

// actorCmd represents the actor command
var actorCmd = &cobra.Command{
	Use:   "actor <nm-id>",
	Short: "Show one actor by IMDb id",
	Args:  cobra.ExactArgs(1),
	RunE:  runActor,
}

func init() {
	rootCmd.AddCommand(actorsCmd)
	rootCmd.AddCommand(actorCmd)

	actorsCmd.Flags().IntVarP(&limit, "limit", "l", 0, "results per page (1-50)")
	actorsCmd.Flags().IntVarP(&page, "page", "p", 0, "page to start from")
	actorsCmd.Flags().IntVar(&maxPages, "pages", 1, "number of pages to fetch")
}

func runActors(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	q := listQuery()
	delete(q, "info")
	delete(q, "genre")
	delete(q, "sort")
	delete(q, "year")

	it := client.Actors(q)
	pages := 0
	total := 0
	for pages < maxPages && it.Next(ctx) {
		for _, actor := range it.Items() {
			fmt.Printf("• %s [%s]\n", actor.PrimaryName, actor.ID)
			total++
		}
		pages++
	}
	if err := it.Err(); err != nil {
		return err
	}

	if total == 0 {
		fmt.Println("No actors found.")
	}
	return nil
}

func runActor(cmd *cobra.Command, args []string) error {
	actor, err := client.ActorByID(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("• %s [%s]\n", actor.PrimaryName, actor.ID)
	if actor.BirthYear != nil {
		fmt.Printf("  Born: %d", *actor.BirthYear)
		if actor.DeathYear != nil {
			fmt.Printf(", died: %d", *actor.DeathYear)
		}
		fmt.Println()
	}
	if actor.PrimaryProfession != "" {
		fmt.Printf("  Professions: %s\n", actor.PrimaryProfession)
	}
	if actor.KnownForTitles != "" {
		fmt.Printf("  Known for: %s\n", actor.KnownForTitles)
	}
	return nil
}
