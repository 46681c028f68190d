package drivers

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// IndeedDriver searches Indeed jobs and applies via Indeed Apply.
//
// Search and Apply are stubbed with deterministic data; JobDetails
// fetches real pages through the fetch layer.
type IndeedDriver struct {
	fetchCfg FetchConfig
}

// NewIndeedDriver builds the driver. Indeed needs no credentials for
// searching.
func NewIndeedDriver(fetchCfg FetchConfig) *IndeedDriver {
	return &IndeedDriver{fetchCfg: fetchCfg}
}

func (d *IndeedDriver) Name() string { return types.SourceIndeed }

// Available always reports true; search requires no login.
func (d *IndeedDriver) Available() bool { return true }

// Search returns deterministic stub postings keyed to the search
// keywords until browser automation replaces it.
func (d *IndeedDriver) Search(_ context.Context, cfg types.SearchConfig) ([]types.DiscoveredJob, error) {
	keywordStr := "developer"
	if len(cfg.Keywords) > 0 {
		keywordStr = strings.Join(cfg.Keywords, " ")
	}
	titled := cases.Title(language.English).String(keywordStr)

	location := cfg.Location
	if location == "" {
		location = "New York, NY"
	}
	remoteLocation := cfg.Location
	if remoteLocation == "" {
		remoteLocation = "Remote"
	}

	jobs := []types.DiscoveredJob{
		{
			Title:           titled + " Developer",
			Company:         "DevShop Inc.",
			URL:             "https://indeed.com/viewjob?jk=mock-i001",
			Source:          types.SourceIndeed,
			Location:        location,
			DescriptionText: "Hiring a " + keywordStr + " developer for our team...",
			ExternalID:      "mock-i001",
		},
		{
			Title:           "Senior " + titled + " Engineer",
			Company:         "BuildCo",
			URL:             "https://indeed.com/viewjob?jk=mock-i002",
			Source:          types.SourceIndeed,
			Location:        remoteLocation,
			DescriptionText: "Senior " + keywordStr + " engineer needed...",
			ExternalID:      "mock-i002",
		},
	}
	if cfg.MaxResults > 0 && len(jobs) > cfg.MaxResults {
		jobs = jobs[:cfg.MaxResults]
	}
	return jobs, nil
}

// JobDetails fetches an Indeed posting and extracts its description.
func (d *IndeedDriver) JobDetails(ctx context.Context, jobURL string) (*types.DiscoveredJob, error) {
	return fetchJobDetails(ctx, d.Name(), jobURL, d.fetchCfg)
}

// Apply is a stub; it reports the application as not submitted.
func (d *IndeedDriver) Apply(_ context.Context, job *types.DiscoveredJob, _ string, _ map[string]string) (*ApplyResult, error) {
	if job == nil {
		return nil, &Error{Portal: d.Name(), Message: "nil job"}
	}
	return &ApplyResult{
		Submitted: false,
		Message:   "Indeed Apply stub, not actually submitted",
	}, nil
}
