// Package main provides the entry point for the ATS optimizer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-optimizer/internal/config"
	"github.com/jonathan/ats-optimizer/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "ats_optimizer",
	Short: "Automated job application pipeline",
	Long:  "ATS Optimizer searches job portals, scores postings against a candidate profile, generates tailored resumes, and optionally submits applications.",
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (env vars with prefix ATS_ override)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the config and builds the logger shared by all commands
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.App.JSONLogs, cfg.App.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, log, nil
}
