// Package types provides type definitions for structured data used throughout the ats-optimizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Keyword categories assigned during extraction
const (
	CategorySkill     = "skill"
	CategoryTool      = "tool"
	CategorySoftSkill = "soft_skill"
	CategoryGeneral   = "general"
)

// Importance tiers for keywords extracted from a job description
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// Keyword represents a single extracted keyword
type Keyword struct {
	Text      string `json:"text"`
	Canonical string `json:"canonical"`
	Frequency int    `json:"frequency"`
	Category  string `json:"category"`
}

// ExtractionResult holds the ranked keywords extracted from a text,
// along with the original input retained for later position lookups
type ExtractionResult struct {
	Keywords []Keyword `json:"keywords"`
	RawText  string    `json:"-"`
}

// KeywordNames returns the canonical form of every extracted keyword, in rank order
func (r *ExtractionResult) KeywordNames() []string {
	names := make([]string, 0, len(r.Keywords))
	for _, k := range r.Keywords {
		names = append(names, k.Canonical)
	}
	return names
}

// ByCategory returns the extracted keywords matching the given category
func (r *ExtractionResult) ByCategory(category string) []Keyword {
	var out []Keyword
	for _, k := range r.Keywords {
		if k.Category == category {
			out = append(out, k)
		}
	}
	return out
}

// WeightedKeyword is a keyword annotated with an importance tier derived
// from its position and frequency in the job description
type WeightedKeyword struct {
	Keyword    string `json:"keyword"`
	Category   string `json:"category"`
	Importance string `json:"importance"`
	Frequency  int    `json:"frequency"`
}
