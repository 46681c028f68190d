// Package automation coordinates the full search-and-apply pipeline:
// portal search, deduplication, scoring, resume generation, and
// application submission.
package automation

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-optimizer/internal/analyzer"
	"github.com/jonathan/ats-optimizer/internal/answers"
	"github.com/jonathan/ats-optimizer/internal/discovery"
	"github.com/jonathan/ats-optimizer/internal/drivers"
	"github.com/jonathan/ats-optimizer/internal/generator"
	"github.com/jonathan/ats-optimizer/internal/llm"
	"github.com/jonathan/ats-optimizer/internal/logger"
	"github.com/jonathan/ats-optimizer/internal/notify"
	"github.com/jonathan/ats-optimizer/internal/store"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// descriptionPreviewLen caps job description text in debug logs.
const descriptionPreviewLen = 160

// screeningQuestions are answered up front and handed to the portal
// driver with the application.
var screeningQuestions = []string{
	"Are you authorized to work in this country?",
	"What are your salary expectations?",
	"Why do you want to work here?",
	"What is your notice period?",
	"How many years of experience do you have?",
}

// Options configure a pipeline run
type Options struct {
	OutputDir string
	MinScore  float64
	AutoApply bool
	Resume    generator.Options
}

func (o *Options) applyDefaults() {
	if o.OutputDir == "" {
		o.OutputDir = "data/output"
	}
	if o.MinScore == 0 {
		o.MinScore = 50.0
	}
}

// Orchestrator runs the pipeline end to end. The store and notifier are
// optional; a nil store skips persistence.
type Orchestrator struct {
	drivers  []drivers.PortalDriver
	profile  *types.CandidateProfile
	answerer *answers.Answerer
	db       *store.DB
	notifier *notify.Manager
	log      *zap.Logger
	opts     Options
}

// New creates an orchestrator
func New(portalDrivers []drivers.PortalDriver, profile *types.CandidateProfile, provider llm.Provider, db *store.DB, notifier *notify.Manager, log *zap.Logger, opts Options) *Orchestrator {
	opts.applyDefaults()
	return &Orchestrator{
		drivers:  portalDrivers,
		profile:  profile,
		answerer: answers.New(profile, provider),
		db:       db,
		notifier: notifier,
		log:      log,
		opts:     opts,
	}
}

// Run executes the full pipeline for one search configuration
func (o *Orchestrator) Run(ctx context.Context, cfg types.SearchConfig) (*types.PipelineResult, error) {
	result := &types.PipelineResult{}

	knownURLs := o.knownURLs(ctx)

	allJobs := o.searchAll(ctx, cfg, result)
	result.JobsDiscovered = len(allJobs)

	unique, duplicates := discovery.Deduplicate(allJobs, knownURLs)
	result.JobsNew = len(unique)
	result.JobsDuplicates = len(duplicates)

	scored := discovery.ScoreAndRank(unique, o.profile, o.opts.MinScore)
	result.JobsScored = len(scored)

	o.log.Info("scoring complete",
		zap.Int("discovered", result.JobsDiscovered),
		zap.Int("new", result.JobsNew),
		zap.Int("duplicates", result.JobsDuplicates),
		zap.Int("above_threshold", result.JobsScored),
	)

	for _, sj := range scored {
		if err := o.processJob(ctx, sj, result); err != nil {
			msg := fmt.Sprintf("Error processing %s @ %s: %v", sj.Job.Title, sj.Job.Company, err)
			o.log.Error("job processing failed", zap.String("url", sj.Job.URL), zap.Error(err))
			result.Errors = append(result.Errors, msg)
		}
	}

	if o.notifier != nil {
		o.notifier.PipelineComplete(result)
	}
	return result, nil
}

// knownURLs loads previously stored job URLs for duplicate detection
func (o *Orchestrator) knownURLs(ctx context.Context) []string {
	if o.db == nil {
		return nil
	}
	urls, err := o.db.JobURLs(ctx)
	if err != nil {
		o.log.Warn("failed to load known job urls", zap.Error(err))
		return nil
	}
	return urls
}

// searchAll queries every available driver concurrently and collects the
// results. Driver failures are recorded as pipeline errors, not fatal.
func (o *Orchestrator) searchAll(ctx context.Context, cfg types.SearchConfig, result *types.PipelineResult) []types.DiscoveredJob {
	var mu sync.Mutex
	var allJobs []types.DiscoveredJob

	g, gCtx := errgroup.WithContext(ctx)
	for _, d := range o.drivers {
		d := d
		if !d.Available() {
			o.log.Warn("driver not available, skipping", zap.String("portal", d.Name()))
			continue
		}

		g.Go(func() error {
			runID := o.startSearchRun(gCtx, d.Name(), cfg)

			jobs, err := d.Search(gCtx, cfg)

			mu.Lock()
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s search error: %v", d.Name(), err))
			} else {
				allJobs = append(allJobs, jobs...)
			}
			mu.Unlock()

			if err != nil {
				o.log.Error("portal search failed", zap.String("portal", d.Name()), zap.Error(err))
			} else {
				o.log.Info("portal search complete", zap.String("portal", d.Name()), zap.Int("jobs", len(jobs)))
			}
			o.completeSearchRun(gCtx, runID, len(jobs))
			return nil
		})
	}
	_ = g.Wait()

	return allJobs
}

func (o *Orchestrator) startSearchRun(ctx context.Context, portal string, cfg types.SearchConfig) uuid.UUID {
	if o.db == nil {
		return uuid.Nil
	}
	runID, err := o.db.StartSearchRun(ctx, portal, strings.Join(cfg.Keywords, " "))
	if err != nil {
		o.log.Warn("failed to record search run", zap.String("portal", portal), zap.Error(err))
		return uuid.Nil
	}
	return runID
}

func (o *Orchestrator) completeSearchRun(ctx context.Context, runID uuid.UUID, found int) {
	if o.db == nil || runID == uuid.Nil {
		return
	}
	if err := o.db.CompleteSearchRun(ctx, runID, found, found); err != nil {
		o.log.Warn("failed to complete search run", zap.Error(err))
	}
}

// processJob generates a tailored resume for one scored job, persists it,
// and optionally submits an application.
func (o *Orchestrator) processJob(ctx context.Context, sj types.ScoredJob, result *types.PipelineResult) error {
	job := sj.Job

	o.log.Debug("processing job",
		zap.String("title", job.Title),
		zap.String("company", job.Company),
		zap.String("description", logger.TruncateForLog(job.DescriptionText, descriptionPreviewLen)),
	)

	html, content, err := generator.GenerateResume(o.profile, &job, o.opts.Resume)
	if err != nil {
		return fmt.Errorf("resume generation failed: %w", err)
	}

	resumePath := filepath.Join(o.opts.OutputDir, "resumes", resumeFileName(job))
	if err := os.MkdirAll(filepath.Dir(resumePath), 0o755); err != nil {
		return fmt.Errorf("failed to create resume directory: %w", err)
	}
	if err := os.WriteFile(resumePath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write resume: %w", err)
	}
	result.ResumesGenerated++

	atsScore := analyzer.Score(contentText(content), job.DescriptionText)

	jobID := uuid.Nil
	if o.db != nil {
		jobID, err = o.db.InsertJob(ctx, job, sj.Score)
		if err != nil {
			o.log.Warn("failed to persist job", zap.String("url", job.URL), zap.Error(err))
		} else {
			if err := o.db.SetJobResume(ctx, jobID, resumePath); err != nil {
				o.log.Warn("failed to record resume path", zap.Error(err))
			}
			name := fmt.Sprintf("%s @ %s", job.Title, job.Company)
			if _, err := o.db.SaveResume(ctx, jobID, name, resumePath, content, float64(atsScore.OverallScore)); err != nil {
				o.log.Warn("failed to persist resume", zap.Error(err))
			}
		}
	}

	o.log.Info("resume generated",
		zap.String("title", job.Title),
		zap.String("company", job.Company),
		zap.Float64("match_score", sj.Score),
		zap.Int("ats_score", atsScore.OverallScore),
		zap.String("path", resumePath),
	)

	if o.opts.AutoApply {
		o.applyToJob(ctx, job, jobID, resumePath, result)
	}
	return nil
}

// applyToJob submits an application through the driver matching the
// job's source portal.
func (o *Orchestrator) applyToJob(ctx context.Context, job types.DiscoveredJob, jobID uuid.UUID, resumePath string, result *types.PipelineResult) {
	driver := o.driverForSource(job.Source)
	if driver == nil {
		result.Errors = append(result.Errors, fmt.Sprintf("No driver for source: %s", job.Source))
		return
	}

	answerMap := o.answerScreeningQuestions(ctx)

	start := time.Now()
	applyResult, err := driver.Apply(ctx, &job, resumePath, answerMap)
	duration := time.Since(start)

	status := store.ApplicationStatusFailed
	errMsg := ""
	switch {
	case err != nil:
		result.ApplicationsFailed++
		result.Errors = append(result.Errors, fmt.Sprintf("Apply error for %s: %v", job.URL, err))
		errMsg = err.Error()
	case applyResult.CaptchaBlocked:
		result.ApplicationsFailed++
		status = store.ApplicationStatusManualNeeded
		if o.notifier != nil {
			o.notifier.CaptchaDetected(job.URL)
		}
	case applyResult.Submitted:
		result.ApplicationsSubmitted++
		status = store.ApplicationStatusSuccess
	default:
		result.ApplicationsFailed++
		errMsg = applyResult.Message
	}

	if o.db != nil && jobID != uuid.Nil {
		_, logErr := o.db.LogApplication(ctx, store.ApplicationLogInput{
			JobID:             jobID,
			Portal:            driver.Name(),
			Status:            status,
			ErrorMessage:      errMsg,
			QuestionsAnswered: answerMap,
			Duration:          duration,
		})
		if logErr != nil {
			o.log.Warn("failed to log application", zap.Error(logErr))
		}

		jobStatus := store.JobStatusFailed
		switch status {
		case store.ApplicationStatusSuccess:
			jobStatus = store.JobStatusApplied
		case store.ApplicationStatusManualNeeded:
			jobStatus = store.JobStatusReviewNeeded
		}
		if err := o.db.UpdateJobStatus(ctx, jobID, jobStatus); err != nil {
			o.log.Warn("failed to update job status", zap.Error(err))
		}
	}
}

// answerScreeningQuestions pre-answers the standard screening questions
func (o *Orchestrator) answerScreeningQuestions(ctx context.Context) map[string]string {
	answered := o.answerer.AnswerBatch(ctx, screeningQuestions)
	out := make(map[string]string, len(screeningQuestions))
	for i, q := range screeningQuestions {
		if answered[i].Text != "" {
			out[q] = answered[i].Text
		}
	}
	return out
}

func (o *Orchestrator) driverForSource(source string) drivers.PortalDriver {
	for _, d := range o.drivers {
		if d.Name() == source {
			return d
		}
	}
	return nil
}

// resumeFileName builds a stable file name from the job's identity
func resumeFileName(job types.DiscoveredJob) string {
	id := job.ExternalID
	if id == "" {
		h := fnv.New32a()
		h.Write([]byte(job.URL))
		id = fmt.Sprintf("%08x", h.Sum32())
	}
	return fmt.Sprintf("%s_%s.html", slugify(job.Company), id)
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "job"
	}
	return b.String()
}

// contentText flattens selected content into plain text for scoring
func contentText(content *types.SelectedContent) string {
	var b strings.Builder
	b.WriteString(content.Summary)
	b.WriteString("\n\nSkills: ")
	b.WriteString(strings.Join(content.Skills, ", "))
	for _, exp := range content.Experience {
		fmt.Fprintf(&b, "\n\n%s, %s (%s - %s)", exp.Title, exp.Company, exp.StartDate, exp.EndDate)
		for _, bullet := range exp.Bullets {
			b.WriteString("\n- ")
			b.WriteString(bullet)
		}
	}
	for _, edu := range content.Education {
		fmt.Fprintf(&b, "\n\nEducation: %s in %s, %s", edu.Degree, edu.Field, edu.Institution)
	}
	return b.String()
}
