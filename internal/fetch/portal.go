// Package fetch - portal.go provides job portal detection and
// portal-specific content selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Portal represents a known job portal.
type Portal string

const (
	// PortalLinkedIn is the LinkedIn jobs portal
	PortalLinkedIn Portal = "linkedin"
	// PortalIndeed is the Indeed jobs portal
	PortalIndeed Portal = "indeed"
	// PortalGlassdoor is the Glassdoor jobs portal
	PortalGlassdoor Portal = "glassdoor"
	// PortalUnknown is an unrecognized portal
	PortalUnknown Portal = "unknown"
)

// DetectPortal identifies the job portal from a URL.
func DetectPortal(urlStr string) Portal {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PortalUnknown
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "linkedin.com") {
		return PortalLinkedIn
	}
	if strings.Contains(host, "indeed.com") {
		return PortalIndeed
	}
	if strings.Contains(host, "glassdoor.com") {
		return PortalGlassdoor
	}

	return PortalUnknown
}

// PortalContentSelectors returns content selectors for a specific portal's
// job detail pages.
func PortalContentSelectors(portal Portal) []string {
	switch portal {
	case PortalLinkedIn:
		return []string{
			".show-more-less-html__markup",
			".description__text",
			".jobs-description-content__text",
			"#job-details",
		}
	case PortalIndeed:
		return []string{
			"#jobDescriptionText",
			".jobsearch-JobComponent-description",
			".jobsearch-jobDescriptionText",
		}
	case PortalGlassdoor:
		return []string{
			".jobDescriptionContent",
			"[data-test='jobDescriptionText']",
			".desc",
		}
	default:
		return JobPostingSelectors()
	}
}

// PortalNoiseSelectors returns noise exclusion selectors for a specific
// portal's job detail pages.
func PortalNoiseSelectors(portal Portal) []string {
	common := []string{
		// Application widgets
		"form",
		".apply-button-container",
		".jobs-apply-button",
		"[data-testid='application-form']",

		// Similar-jobs rails and promos
		".similar-jobs",
		".recommended-jobs",
		".jobs-premium-upsell",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",
	}

	switch portal {
	case PortalLinkedIn:
		return append(common,
			".top-card-layout__cta-container",
			".sign-up-modal",
			".contextual-sign-in-modal",
		)
	case PortalIndeed:
		return append(common,
			"#applyButtonLinkContainer",
			".jobsearch-CompanyReview",
			"#mosaic-belowFullJobDescription",
		)
	case PortalGlassdoor:
		return append(common,
			".applyButtonContainer",
			".reviews-module",
			".salary-module",
		)
	default:
		return common
	}
}
