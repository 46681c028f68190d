package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/ats-optimizer/internal/drivers"
	"github.com/jonathan/ats-optimizer/internal/llm"
	"github.com/jonathan/ats-optimizer/internal/notify"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// fakeDriver is a scripted portal driver for pipeline tests
type fakeDriver struct {
	name        string
	available   bool
	jobs        []types.DiscoveredJob
	searchErr   error
	applyResult *drivers.ApplyResult
	applyErr    error

	applyCalls []map[string]string
}

func (f *fakeDriver) Name() string    { return f.name }
func (f *fakeDriver) Available() bool { return f.available }

func (f *fakeDriver) Search(_ context.Context, _ types.SearchConfig) ([]types.DiscoveredJob, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.jobs, nil
}

func (f *fakeDriver) JobDetails(_ context.Context, jobURL string) (*types.DiscoveredJob, error) {
	return &types.DiscoveredJob{URL: jobURL}, nil
}

func (f *fakeDriver) Apply(_ context.Context, _ *types.DiscoveredJob, _ string, answers map[string]string) (*drivers.ApplyResult, error) {
	f.applyCalls = append(f.applyCalls, answers)
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	if f.applyResult != nil {
		return f.applyResult, nil
	}
	return &drivers.ApplyResult{Submitted: true, Message: "submitted"}, nil
}

func pipelineProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		PersonalInfo: types.PersonalInfo{
			FullName: "Jane Doe",
			Email:    "jane.doe@example.com",
			Phone:    "+1 (555) 123-4567",
			Location: "Portland, OR",
		},
		Summaries: []types.Summary{
			{TargetRole: "Backend Engineer", Text: "Backend engineer with Python and Docker experience."},
		},
		Skills: []types.SkillCategory{
			{Category: "Languages", Items: []types.SkillItem{
				{Name: "Python", Proficiency: types.ProficiencyExpert},
				{Name: "Go", Proficiency: types.ProficiencyAdvanced},
			}},
			{Category: "Tools", Items: []types.SkillItem{
				{Name: "Docker", Proficiency: types.ProficiencyAdvanced},
			}},
		},
		Experience: []types.ExperienceEntry{
			{
				Company:   "Acme",
				Title:     "Backend Engineer",
				StartDate: "2020-01",
				Bullets: []types.ExperienceBullet{
					{Text: "Built Python services in Docker.", Tags: []string{"python", "docker"}},
				},
			},
		},
		QABank: []types.QAEntry{
			{QuestionPattern: "authorized to work", Answer: "Yes, fully authorized."},
		},
	}
}

func matchingJob(url string) types.DiscoveredJob {
	return types.DiscoveredJob{
		Title:           "Backend Engineer",
		Company:         "TechCorp",
		URL:             url,
		Source:          "fakeportal",
		DescriptionText: "Looking for Python and Docker expertise building backend services.",
	}
}

func newTestOrchestrator(t *testing.T, driver *fakeDriver, autoApply bool) (*Orchestrator, *notify.Manager) {
	t.Helper()
	notifier := notify.NewManager(zap.NewNop())
	o := New(
		[]drivers.PortalDriver{driver},
		pipelineProfile(),
		llm.NewStubProvider(),
		nil,
		notifier,
		zap.NewNop(),
		Options{OutputDir: t.TempDir(), MinScore: 10, AutoApply: autoApply},
	)
	return o, notifier
}

func TestOrchestrator_RunGeneratesResumes(t *testing.T) {
	driver := &fakeDriver{
		name:      "fakeportal",
		available: true,
		jobs:      []types.DiscoveredJob{matchingJob("https://example.com/jobs/1")},
	}
	o, _ := newTestOrchestrator(t, driver, false)

	result, err := o.Run(context.Background(), types.SearchConfig{Keywords: []string{"python"}})
	require.NoError(t, err)

	assert.Equal(t, 1, result.JobsDiscovered)
	assert.Equal(t, 1, result.JobsNew)
	assert.Equal(t, 0, result.JobsDuplicates)
	assert.Equal(t, 1, result.JobsScored)
	assert.Equal(t, 1, result.ResumesGenerated)
	assert.Equal(t, 0, result.ApplicationsSubmitted)
	assert.Empty(t, result.Errors)

	files, err := os.ReadDir(filepath.Join(o.opts.OutputDir, "resumes"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0].Name(), "techcorp")
}

func TestOrchestrator_RunAutoApply(t *testing.T) {
	driver := &fakeDriver{
		name:      "fakeportal",
		available: true,
		jobs:      []types.DiscoveredJob{matchingJob("https://example.com/jobs/1")},
	}
	o, _ := newTestOrchestrator(t, driver, true)

	result, err := o.Run(context.Background(), types.SearchConfig{Keywords: []string{"python"}})
	require.NoError(t, err)

	assert.Equal(t, 1, result.ApplicationsSubmitted)
	assert.Equal(t, 0, result.ApplicationsFailed)

	require.Len(t, driver.applyCalls, 1)
	answers := driver.applyCalls[0]
	assert.Equal(t, "Yes, fully authorized.", answers["Are you authorized to work in this country?"])
}

func TestOrchestrator_SkipsUnavailableDriver(t *testing.T) {
	driver := &fakeDriver{
		name: "fakeportal",
		jobs: []types.DiscoveredJob{matchingJob("https://example.com/jobs/1")},
	}
	o, _ := newTestOrchestrator(t, driver, false)

	result, err := o.Run(context.Background(), types.SearchConfig{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.JobsDiscovered)
	assert.Equal(t, 0, result.ResumesGenerated)
}

func TestOrchestrator_RecordsSearchErrors(t *testing.T) {
	driver := &fakeDriver{
		name:      "fakeportal",
		available: true,
		searchErr: errors.New("rate limited"),
	}
	o, _ := newTestOrchestrator(t, driver, false)

	result, err := o.Run(context.Background(), types.SearchConfig{})
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "fakeportal search error")
	assert.Contains(t, result.Errors[0], "rate limited")
}

func TestOrchestrator_DeduplicatesWithinRun(t *testing.T) {
	driver := &fakeDriver{
		name:      "fakeportal",
		available: true,
		jobs: []types.DiscoveredJob{
			matchingJob("https://example.com/jobs/1"),
			matchingJob("https://example.com/jobs/1"),
		},
	}
	o, _ := newTestOrchestrator(t, driver, false)

	result, err := o.Run(context.Background(), types.SearchConfig{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.JobsDiscovered)
	assert.Equal(t, 1, result.JobsNew)
	assert.Equal(t, 1, result.JobsDuplicates)
	assert.Equal(t, 1, result.ResumesGenerated)
}

func TestOrchestrator_CaptchaBlockedApplication(t *testing.T) {
	driver := &fakeDriver{
		name:        "fakeportal",
		available:   true,
		jobs:        []types.DiscoveredJob{matchingJob("https://example.com/jobs/1")},
		applyResult: &drivers.ApplyResult{CaptchaBlocked: true, Message: "CAPTCHA detected"},
	}
	o, notifier := newTestOrchestrator(t, driver, true)

	result, err := o.Run(context.Background(), types.SearchConfig{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.ApplicationsSubmitted)
	assert.Equal(t, 1, result.ApplicationsFailed)

	var captchaSeen bool
	for _, n := range notifier.History() {
		if n.Title == "CAPTCHA Detected" {
			captchaSeen = true
		}
	}
	assert.True(t, captchaSeen)
}

func TestOrchestrator_ApplyErrorIsRecorded(t *testing.T) {
	driver := &fakeDriver{
		name:      "fakeportal",
		available: true,
		jobs:      []types.DiscoveredJob{matchingJob("https://example.com/jobs/1")},
		applyErr:  errors.New("session expired"),
	}
	o, _ := newTestOrchestrator(t, driver, true)

	result, err := o.Run(context.Background(), types.SearchConfig{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.ApplicationsFailed)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "session expired")
}

func TestResumeFileName(t *testing.T) {
	t.Run("uses external id when present", func(t *testing.T) {
		job := types.DiscoveredJob{Company: "TechCorp", ExternalID: "abc-123", URL: "https://x.com/1"}
		assert.Equal(t, "techcorp_abc-123.html", resumeFileName(job))
	})

	t.Run("falls back to url hash", func(t *testing.T) {
		job := types.DiscoveredJob{Company: "Tech Corp", URL: "https://x.com/1"}
		name := resumeFileName(job)
		assert.Contains(t, name, "tech_corp_")
		assert.Contains(t, name, ".html")
	})
}

func TestOrchestrator_DebugLogTruncatesDescription(t *testing.T) {
	job := matchingJob("https://example.com/jobs/long")
	job.DescriptionText += strings.Repeat(" More Python and Docker backend work.", 30)
	driver := &fakeDriver{name: "fakeportal", available: true, jobs: []types.DiscoveredJob{job}}

	core, logs := observer.New(zapcore.DebugLevel)
	o := New(
		[]drivers.PortalDriver{driver},
		pipelineProfile(),
		llm.NewStubProvider(),
		nil,
		notify.NewManager(zap.NewNop()),
		zap.New(core),
		Options{OutputDir: t.TempDir(), MinScore: 10},
	)

	_, err := o.Run(context.Background(), types.SearchConfig{Keywords: []string{"python"}})
	require.NoError(t, err)

	entries := logs.FilterMessage("processing job").All()
	require.Len(t, entries, 1)
	preview, ok := entries[0].ContextMap()["description"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(preview, "..."))
	assert.LessOrEqual(t, len([]rune(preview)), descriptionPreviewLen+3)
}
