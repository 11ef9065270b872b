package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/httpapi"
)

var flagHTTPAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the JSON HTTP API",
	Long: `Serve 2048 games over HTTP. Each game lives in memory until it is
deleted or sits idle longer than http.session_ttl. Finished games are recorded
in the classic scoreboard.

Endpoints:
  GET    /health
  POST   /games               {"seed": 42}   (body optional)
  GET    /games/{id}
  POST   /games/{id}/moves    {"direction": "left|right|up|down"}
  DELETE /games/{id}
  GET    /scores?limit=10

Examples:
  t2048 api
  t2048 api --http :9000
  curl -s -XPOST localhost:8048/games`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address (empty = from config)")
}

func runAPI(_ *cobra.Command, _ []string) error {
	a, err := loadApp("t2048-api")
	if err != nil {
		return err
	}

	httpCfg := a.cfg.HTTP
	if flagHTTPAddr != "" {
		httpCfg.Address = flagHTTPAddr
	}

	store := a.openStore()
	defer closeStore(store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpapi.New(httpCfg, a.cfg.Game.FourProbability, store, a.logger)
	return srv.ListenAndServe(ctx)
}
