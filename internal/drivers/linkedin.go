package drivers

import (
	"context"
	"os"

	"github.com/jonathan/ats-optimizer/internal/fetch"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// LinkedInDriver searches LinkedIn jobs and applies via Easy Apply.
//
// Search and Apply are stubbed with deterministic data until the full
// browser automation lands; JobDetails fetches real pages through the
// fetch layer.
type LinkedInDriver struct {
	email    string
	password string
	fetchCfg FetchConfig
}

// NewLinkedInDriver builds the driver with credentials from
// ATS_LINKEDIN_EMAIL and ATS_LINKEDIN_PASSWORD.
func NewLinkedInDriver(fetchCfg FetchConfig) *LinkedInDriver {
	return &LinkedInDriver{
		email:    os.Getenv("ATS_LINKEDIN_EMAIL"),
		password: os.Getenv("ATS_LINKEDIN_PASSWORD"),
		fetchCfg: fetchCfg,
	}
}

func (d *LinkedInDriver) Name() string { return types.SourceLinkedIn }

// Available reports whether LinkedIn credentials are configured.
func (d *LinkedInDriver) Available() bool {
	return d.email != "" && d.password != ""
}

// Search returns deterministic stub postings until browser automation
// replaces it.
func (d *LinkedInDriver) Search(_ context.Context, cfg types.SearchConfig) ([]types.DiscoveredJob, error) {
	location := cfg.Location
	if location == "" {
		location = "San Francisco, CA"
	}
	remoteLocation := cfg.Location
	if remoteLocation == "" {
		remoteLocation = "Remote"
	}

	jobs := []types.DiscoveredJob{
		{
			Title:           "Senior Backend Engineer",
			Company:         "TechCorp",
			URL:             "https://linkedin.com/jobs/view/mock-001",
			Source:          types.SourceLinkedIn,
			Location:        location,
			DescriptionText: "We are looking for a Senior Backend Engineer...",
			ExternalID:      "mock-001",
		},
		{
			Title:           "Staff Software Engineer",
			Company:         "InnovateLabs",
			URL:             "https://linkedin.com/jobs/view/mock-002",
			Source:          types.SourceLinkedIn,
			Location:        remoteLocation,
			DescriptionText: "InnovateLabs is hiring a Staff Software Engineer...",
			ExternalID:      "mock-002",
		},
	}
	if cfg.MaxResults > 0 && len(jobs) > cfg.MaxResults {
		jobs = jobs[:cfg.MaxResults]
	}
	return jobs, nil
}

// JobDetails fetches a LinkedIn posting and extracts its description.
func (d *LinkedInDriver) JobDetails(ctx context.Context, jobURL string) (*types.DiscoveredJob, error) {
	return fetchJobDetails(ctx, d.Name(), jobURL, d.fetchCfg)
}

// Apply is a stub; it reports the application as not submitted.
func (d *LinkedInDriver) Apply(_ context.Context, job *types.DiscoveredJob, _ string, _ map[string]string) (*ApplyResult, error) {
	if job == nil {
		return nil, &Error{Portal: d.Name(), Message: "nil job"}
	}
	return &ApplyResult{
		Submitted: false,
		Message:   "LinkedIn Easy Apply stub, not actually submitted",
	}, nil
}

// renderWithBrowser is a hook point so tests can exercise the fallback
// without launching a browser.
var renderWithBrowser = fetch.WithBrowser

// fetchJobDetails pulls a job page through the fetch layer and extracts
// the description with portal-specific selectors. Shared by the portal
// drivers.
func fetchJobDetails(ctx context.Context, portalName, jobURL string, fetchCfg FetchConfig) (*types.DiscoveredJob, error) {
	result, err := fetch.URL(ctx, jobURL, nil)
	if err != nil {
		return nil, &Error{Portal: portalName, Message: "failed to fetch job page", Cause: err}
	}

	if captcha := DetectCaptcha(result.HTML); captcha.Detected {
		return nil, &Error{Portal: portalName, Message: captcha.Message}
	}

	portal := fetch.DetectPortal(jobURL)
	contentSelectors := fetch.PortalContentSelectors(portal)
	noiseSelectors := fetch.PortalNoiseSelectors(portal)
	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, &Error{Portal: portalName, Message: "failed to extract description", Cause: err}
	}

	// A short extraction usually means the page renders its description
	// client-side; retry through the headless browser and keep whichever
	// text came out fuller. The HTTP content survives a browser failure.
	if fetchCfg.UseBrowser && fetch.ShouldUseBrowser(text) {
		timeout := fetchCfg.Timeout
		if timeout <= 0 {
			timeout = fetch.DefaultTimeout
		}
		if rendered, browserErr := renderWithBrowser(ctx, jobURL, fetchCfg.Headless, timeout); browserErr == nil {
			if renderedText, extractErr := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...); extractErr == nil && len(renderedText) > len(text) {
				text = renderedText
			}
		}
	}

	return &types.DiscoveredJob{
		URL:             jobURL,
		Source:          portalName,
		DescriptionText: text,
	}, nil
}
