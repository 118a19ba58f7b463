package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	withRatings bool
	withSeasons bool
)

// titleCmd represents the title command
var titleCmd = &cobra.Command{
	Use:   "title <tt-id>",
	Short: "Show one title by IMDb id",
	Args:  cobra.ExactArgs(1),
	RunE:  runTitle,
}

// episodeCmd represents the episode command
var episodeCmd = &cobra.Command{
	Use:   "episode <tt-id>",
	Short: "Show one episode by IMDb id",
	Args:  cobra.ExactArgs(1),
	RunE:  runEpisode,
}

// episodesCmd represents the episodes command
var episodesCmd = &cobra.Command{
	Use:   "episodes <tt-id> [season]",
	Short: "List the episodes of a series, optionally for one season",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runEpisodes,
}

func init() {
	rootCmd.AddCommand(titleCmd)
	rootCmd.AddCommand(episodeCmd)
	rootCmd.AddCommand(episodesCmd)

	titleCmd.Flags().StringVar(&infoLevel, "info", "", "info level (mini_info, base_info, ...)")
	titleCmd.Flags().BoolVar(&withRatings, "ratings", false, "also fetch the rating aggregate")
	titleCmd.Flags().BoolVar(&withSeasons, "seasons", false, "also fetch the season count")

	episodeCmd.Flags().StringVar(&infoLevel, "info", "", "info level (mini_info, base_info, ...)")
}

func runTitle(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	id := args[0]

	q := listQuery()
	delete(q, "limit")
	delete(q, "page")

	title, err := client.TitleByID(ctx, id, q)
	if err != nil {
		return err
	}
	printTitle(*title)

	if withRatings {
		rating, err := client.Ratings(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("  Rating: %.1f (%d votes)\n", rating.AverageRating, rating.NumVotes)
	}

	if withSeasons {
		seasons, err := client.Seasons(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("  Seasons: %d\n", seasons)
	}

	return nil
}

func runEpisode(cmd *cobra.Command, args []string) error {
	q := listQuery()
	delete(q, "limit")
	delete(q, "page")

	episode, err := client.EpisodeByID(context.Background(), args[0], q)
	if err != nil {
		return err
	}
	printTitle(*episode)
	return nil
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	id := args[0]

	if len(args) == 2 {
		var season int
		if _, err := fmt.Sscanf(args[1], "%d", &season); err != nil {
			return fmt.Errorf("invalid season number: %q", args[1])
		}

		episodes, err := client.SeasonEpisodes(id, season, nil).Collect(ctx)
		if err != nil {
			return err
		}
		for _, ep := range episodes {
			fmt.Printf("• S%02dE%02d [%s]\n", ep.SeasonNumber, ep.EpisodeNumber, ep.ID)
		}
		return nil
	}

	episodes, err := client.SeriesEpisodes(id, nil).Collect(ctx)
	if err != nil {
		return err
	}
	for _, ep := range episodes {
		fmt.Printf("• S%02dE%02d [%s]\n", ep.SeasonNumber, ep.EpisodeNumber, ep.ID)
	}
	return nil
}
