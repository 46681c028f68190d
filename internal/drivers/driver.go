// Package drivers implements job portal integrations behind a common
// interface. Each driver knows how to search its portal, pull job
// details, and submit an application.
package drivers

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// FetchConfig controls how drivers pull job pages. When UseBrowser is
// set, pages whose extracted description comes back too short are
// re-fetched through a headless browser. A zero Timeout falls back to
// the fetch default.
type FetchConfig struct {
	UseBrowser bool
	Headless   bool
	Timeout    time.Duration
}

// PortalDriver is the contract every job portal integration satisfies.
type PortalDriver interface {
	// Name returns the portal identifier (matches types.Source values).
	Name() string

	// Available reports whether the driver can currently be used, e.g.
	// whether required credentials are configured.
	Available() bool

	// Search returns job postings matching the search configuration.
	Search(ctx context.Context, cfg types.SearchConfig) ([]types.DiscoveredJob, error)

	// JobDetails fetches the full posting behind a job URL, including
	// its description text.
	JobDetails(ctx context.Context, jobURL string) (*types.DiscoveredJob, error)

	// Apply submits an application for the job with the rendered resume
	// and answered questions.
	Apply(ctx context.Context, job *types.DiscoveredJob, resumePath string, answers map[string]string) (*ApplyResult, error)
}

// ApplyResult reports the outcome of an application attempt.
type ApplyResult struct {
	Submitted      bool
	CaptchaBlocked bool
	Message        string
}

// Error represents a driver failure on a specific portal.
type Error struct {
	Portal  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("driver error (%s): %s: %v", e.Portal, e.Message, e.Cause)
	}
	return fmt.Sprintf("driver error (%s): %s", e.Portal, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ForPortals returns the drivers for the named portals, skipping unknown
// names. A nil or empty list selects every known portal.
func ForPortals(names []string, fetchCfg FetchConfig) []PortalDriver {
	all := []PortalDriver{
		NewLinkedInDriver(fetchCfg),
		NewIndeedDriver(fetchCfg),
	}
	if len(names) == 0 {
		return all
	}

	byName := make(map[string]PortalDriver, len(all))
	for _, d := range all {
		byName[d.Name()] = d
	}

	var selected []PortalDriver
	for _, name := range names {
		if d, ok := byName[name]; ok {
			selected = append(selected, d)
		}
	}
	return selected
}
