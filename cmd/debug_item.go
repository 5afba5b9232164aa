package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

// debugItemCmd fetches one Hacker News item and dumps the decoded struct.
var debugItemCmd = &cobra.Command{
	Use:   "debug-item <id>",
	Short: "Fetch a Hacker News item and dump it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q: %w", args[0], err)
		}
		a, err := newApp(GetConfig(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		story, err := a.hn.Item(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%# v\n", pretty.Formatter(story))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(debugItemCmd)
}
