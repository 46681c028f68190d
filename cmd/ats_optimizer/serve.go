package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-optimizer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Starts an HTTP server exposing stored jobs, application history, and resume scoring.",
	RunE:  runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	addr := cfg.Server.Addr
	if cmd.Flags().Changed("addr") {
		addr = serveAddr
	}

	db := connectStore(ctx, cfg, log)
	if db != nil {
		defer db.Close()
	}

	return server.New(server.Config{Addr: addr}, db, log).Start()
}
