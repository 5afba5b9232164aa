package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"catchup/controller"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	showFormat    string
	showOpen      int
	showComments  int
	showSummarize int
)

// showCmd loads one feed and prints its rows, optionally interacting with a row.
var showCmd = &cobra.Command{
	Use:   "show <feed>",
	Short: "Fetch a feed and print its rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(GetConfig(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := a.feeds.Get(args[0])
		if err != nil {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(a.feeds.Names(), ", "))
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()
		slots, err := f.Load(ctx)
		if err != nil {
			return err
		}
		defer controller.CloseAll(slots)

		rows := make([]controller.Row, len(slots))
		for i, s := range slots {
			rows[i] = s.Row()
		}
		if err := writeRows(cmd.OutOrStdout(), showFormat, rows); err != nil {
			return err
		}
		return interactRow(ctx, slots, a.handled)
	},
}

func interactRow(ctx context.Context, slots []*controller.RowSlot, handled <-chan struct{}) error {
	type action struct {
		index int
		name  string
		emit  func(*controller.RowSlot, time.Duration) bool
	}
	actions := []action{
		{showOpen, "open", (*controller.RowSlot).Click},
		{showComments, "comments", (*controller.RowSlot).CommentClick},
		{showSummarize, "summarize", (*controller.RowSlot).LongClick},
	}
	pending := 0
	for _, act := range actions {
		if act.index <= 0 {
			continue
		}
		if act.index > len(slots) {
			return fmt.Errorf("--%s %d: feed has %d rows", act.name, act.index, len(slots))
		}
		if !act.emit(slots[act.index-1], time.Second) {
			return fmt.Errorf("row %d does not support %s", act.index, act.name)
		}
		pending++
	}
	// handlers run on the slot goroutines; wait for them before closing
	for ; pending > 0; pending-- {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-handled:
		}
	}
	return nil
}

func writeRows(w io.Writer, format string, rows []controller.Row) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(rows)
	case "", "text":
		for i, r := range rows {
			score := ""
			if r.Score != nil {
				score = fmt.Sprintf("%s%d ", r.Score.Glyph, r.Score.Value)
			}
			meta := []string{}
			if r.Source != "" {
				meta = append(meta, r.Source)
			}
			if r.Tag != "" {
				meta = append(meta, r.Tag)
			}
			fmt.Fprintf(w, "%2d. %s%s\n", i+1, score, r.Title)
			fmt.Fprintf(w, "    by %s, %s, %d comments", r.Author, r.Timestamp.Format(time.DateTime), r.Comments)
			if len(meta) > 0 {
				fmt.Fprintf(w, " [%s]", strings.Join(meta, " / "))
			}
			fmt.Fprintln(w)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "text", "output format: text, json or yaml")
	showCmd.Flags().IntVar(&showOpen, "open", 0, "open the link of row N (1-based)")
	showCmd.Flags().IntVar(&showComments, "comments", 0, "open the comments of row N (1-based)")
	showCmd.Flags().IntVar(&showSummarize, "summarize", 0, "summarize the page of row N (1-based)")
	rootCmd.AddCommand(showCmd)
}
