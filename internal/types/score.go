package types

// ScoreBreakdown holds the five ATS sub-scores, each in [0,100]
type ScoreBreakdown struct {
	KeywordMatch        int `json:"keyword_match"`
	SectionCompleteness int `json:"section_completeness"`
	KeywordDensity      int `json:"keyword_density"`
	ExperienceRelevance int `json:"experience_relevance"`
	Formatting          int `json:"formatting"`
}

// ScoreResult is the complete outcome of scoring a resume against a job
// description. Constructed once per scoring call and not mutated afterwards.
type ScoreResult struct {
	OverallScore     int               `json:"overall_score"`
	Breakdown        ScoreBreakdown    `json:"breakdown"`
	MatchedKeywords  []string          `json:"matched_keywords"`
	MissingKeywords  []WeightedKeyword `json:"missing_keywords"`
	FormattingIssues []string          `json:"formatting_issues"`
}
