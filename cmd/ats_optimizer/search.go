package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-optimizer/internal/automation"
	"github.com/jonathan/ats-optimizer/internal/config"
	"github.com/jonathan/ats-optimizer/internal/drivers"
	"github.com/jonathan/ats-optimizer/internal/generator"
	"github.com/jonathan/ats-optimizer/internal/llm"
	"github.com/jonathan/ats-optimizer/internal/notify"
	"github.com/jonathan/ats-optimizer/internal/observability"
	"github.com/jonathan/ats-optimizer/internal/profile"
	"github.com/jonathan/ats-optimizer/internal/store"
	"github.com/jonathan/ats-optimizer/internal/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search portals and generate tailored resumes",
	Long:  "Searches the configured job portals, deduplicates and scores the results against the candidate profile, and generates a tailored resume for each match. With --auto-apply, applications are also submitted.",
	RunE:  runSearch,
}

var (
	searchKeywords   []string
	searchLocation   string
	searchRemote     bool
	searchMinScore   float64
	searchAutoApply  bool
	searchPortals    []string
	searchMaxResults int
)

func init() {
	searchCmd.Flags().StringSliceVarP(&searchKeywords, "keywords", "k", nil, "Search keywords (required)")
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "Job location filter")
	searchCmd.Flags().BoolVar(&searchRemote, "remote", false, "Remote jobs only")
	searchCmd.Flags().Float64Var(&searchMinScore, "min-score", 0, "Minimum match score 0-100 (default from config)")
	searchCmd.Flags().BoolVar(&searchAutoApply, "auto-apply", false, "Auto-submit applications")
	searchCmd.Flags().StringSliceVar(&searchPortals, "portals", nil, "Job portals to search (default from config)")
	searchCmd.Flags().IntVar(&searchMaxResults, "max-results", 0, "Max results per portal (default from config)")
	_ = searchCmd.MarkFlagRequired("keywords")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	candidate, err := profile.Load(cfg.App.ProfilePath)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	log.Info("profile loaded", zap.String("name", candidate.PersonalInfo.FullName))

	provider, err := llm.New(ctx, llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
	})
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}
	defer func() { _ = provider.Close() }()

	db := connectStore(ctx, cfg, log)
	if db != nil {
		defer db.Close()
	}

	notifier := notify.NewManager(log)
	if cfg.Notifications.Email != "" {
		notifier.AddChannel(notify.NewEmailChannel(log, "", 0, cfg.Notifications.Email))
	}

	portals := cfg.Search.Portals
	if cmd.Flags().Changed("portals") {
		portals = searchPortals
	}
	minScore := cfg.Scoring.MinJobScore
	if cmd.Flags().Changed("min-score") {
		minScore = searchMinScore
	}
	maxResults := cfg.Search.MaxResults
	if cmd.Flags().Changed("max-results") {
		maxResults = searchMaxResults
	}

	orch := automation.New(
		drivers.ForPortals(portals, drivers.FetchConfig{
			UseBrowser: cfg.Browser.Enabled,
			Headless:   cfg.Browser.Headless,
			Timeout:    cfg.Browser.Timeout,
		}),
		candidate,
		provider,
		db,
		notifier,
		log,
		automation.Options{
			OutputDir: cfg.App.OutputDir,
			MinScore:  minScore,
			AutoApply: searchAutoApply,
			Resume: generator.Options{
				MaxSkills:         cfg.Scoring.MaxSkills,
				MaxBulletsPerRole: cfg.Scoring.MaxBulletsPerRole,
				MaxProjects:       cfg.Scoring.MaxProjects,
				Template:          cfg.App.Template,
			},
		},
	)

	log.Info("starting search",
		zap.Strings("keywords", searchKeywords),
		zap.Strings("portals", portals),
		zap.Float64("min_score", minScore),
	)

	result, err := orch.Run(ctx, types.SearchConfig{
		Keywords:   searchKeywords,
		Location:   searchLocation,
		RemoteOnly: searchRemote,
		MaxResults: maxResults,
	})
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintPipelineSummary(result)
	return nil
}

// connectStore connects to the database when one is configured. Failure
// is non-fatal; the pipeline runs without persistence.
func connectStore(ctx context.Context, cfg *config.Config, log *zap.Logger) *store.DB {
	if cfg.Database.URL == "" {
		return nil
	}
	db, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Warn("continuing without database persistence", zap.Error(err))
		return nil
	}
	if err := db.Migrate(ctx); err != nil {
		log.Warn("schema migration failed", zap.Error(err))
		db.Close()
		return nil
	}
	return db
}
