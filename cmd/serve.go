package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catchup/internal/server"
	"catchup/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve feeds over HTTP and keep the response cache warm",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		a, err := newApp(cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()

		interval, err := parseDuration("server.warm_interval", cfg.Server.WarmInterval)
		if err != nil {
			return err
		}

		ws := []worker.Worker{server.New(a.feeds, cfg.Server.Addr)}
		if interval > 0 {
			slog.Info("starting cache warmer", "feeds", a.feeds.Names(), "interval", interval)
			ws = append(ws, &worker.Warmer{Feeds: a.feeds.All(), Interval: interval, Timeout: time.Minute})
		}
		mgr := worker.NewManager(ws...)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("received signal, shutting down", "signal", s.String())
			cancel()
		}()

		return mgr.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
