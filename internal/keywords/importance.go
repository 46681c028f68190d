package keywords

import (
	"strings"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// ExtractWithImportance extracts keywords from a job description and
// assigns each an importance tier. Job descriptions front-load their
// requirements, so a keyword whose first occurrence falls in the first
// half of the text is always high importance; position is checked before
// frequency and short-circuits.
func ExtractWithImportance(jdText string, maxKeywords int) []types.WeightedKeyword {
	result := Extract(jdText, maxKeywords)
	midpoint := len(jdText) / 2
	jdLower := strings.ToLower(jdText)

	weighted := make([]types.WeightedKeyword, 0, len(result.Keywords))
	for _, kw := range result.Keywords {
		firstPos := strings.Index(jdLower, strings.ToLower(kw.Canonical))
		if firstPos == -1 {
			firstPos = strings.Index(jdLower, strings.ToLower(kw.Text))
		}

		// A term never found verbatim (-1) still counts as front-loaded.
		var importance string
		switch {
		case firstPos < midpoint:
			importance = types.ImportanceHigh
		case kw.Frequency >= 3:
			importance = types.ImportanceHigh
		case kw.Frequency >= 2:
			importance = types.ImportanceMedium
		default:
			importance = types.ImportanceLow
		}

		weighted = append(weighted, types.WeightedKeyword{
			Keyword:    kw.Canonical,
			Category:   kw.Category,
			Importance: importance,
			Frequency:  kw.Frequency,
		})
	}

	return weighted
}
