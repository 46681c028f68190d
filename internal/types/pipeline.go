package types

// PipelineResult summarizes a single search-and-apply pipeline run
type PipelineResult struct {
	JobsDiscovered        int      `json:"jobs_discovered"`
	JobsNew               int      `json:"jobs_new"`
	JobsDuplicates        int      `json:"jobs_duplicates"`
	JobsScored            int      `json:"jobs_scored"`
	ResumesGenerated      int      `json:"resumes_generated"`
	ApplicationsSubmitted int      `json:"applications_submitted"`
	ApplicationsFailed    int      `json:"applications_failed"`
	Errors                []string `json:"errors,omitempty"`
}
