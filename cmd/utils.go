package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// utilsCmd represents the utils command
var utilsCmd = &cobra.Command{
	Use:   "utils <genres|types|lists>",
	Short: "Show the documented genre, title-type and list values",
	Args:  cobra.ExactArgs(1),
	RunE:  runUtils,
}

func init() {
	rootCmd.AddCommand(utilsCmd)
}

func runUtils(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var values []string
	var err error
	switch args[0] {
	case "genres":
		values, err = client.GenreList(ctx)
	case "types":
		values, err = client.TitleTypes(ctx)
	case "lists":
		values, err = client.ListNames(ctx)
	default:
		return fmt.Errorf("unknown utility %q (want genres, types or lists)", args[0])
	}
	if err != nil {
		return err
	}

	for _, v := range values {
		fmt.Println(v)
	}
	return nil
}
