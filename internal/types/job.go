package types

// Job sources recognized by the pipeline
const (
	SourceLinkedIn  = "linkedin"
	SourceIndeed    = "indeed"
	SourceGlassdoor = "glassdoor"
)

// DiscoveredJob is a job listing found by a portal driver
type DiscoveredJob struct {
	Title           string            `json:"title"`
	Company         string            `json:"company"`
	URL             string            `json:"url"`
	Source          string            `json:"source"`
	Location        string            `json:"location,omitempty"`
	SalaryRange     string            `json:"salary_range,omitempty"`
	DescriptionText string            `json:"description_text,omitempty"`
	ExternalID      string            `json:"external_id,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// SearchConfig holds the parameters for a portal job search
type SearchConfig struct {
	Keywords         []string `json:"keywords"`
	Location         string   `json:"location,omitempty"`
	RemoteOnly       bool     `json:"remote_only,omitempty"`
	ExperienceLevel  string   `json:"experience_level,omitempty"` // entry, mid, senior
	PostedWithinDays int      `json:"posted_within_days,omitempty"`
	MaxResults       int      `json:"max_results,omitempty"`
	SalaryMin        int      `json:"salary_min,omitempty"`
}

// ScoredJob pairs a discovered job with its profile match score
type ScoredJob struct {
	Job   DiscoveredJob `json:"job"`
	Score float64       `json:"score"`
}
