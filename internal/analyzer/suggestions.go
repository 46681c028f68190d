package analyzer

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-optimizer/internal/types"
)

const suggestionKeywordLimit = 5

// GenerateSuggestions turns a score result into an ordered list of
// actionable improvement suggestions. The final entry is always an
// overall assessment keyed off the overall score tier.
func GenerateSuggestions(result *types.ScoreResult) []string {
	var suggestions []string
	breakdown := result.Breakdown

	suggestions = append(suggestions, keywordSuggestions(result)...)

	if breakdown.SectionCompleteness < 70 {
		suggestions = append(suggestions,
			"Your resume is missing key sections. Ensure you have: Professional Summary, Experience, Education, and Skills sections.")
	} else if breakdown.SectionCompleteness < 100 {
		suggestions = append(suggestions,
			"Consider adding Certifications or Projects sections if applicable.")
	}

	switch {
	case breakdown.KeywordDensity < 50:
		suggestions = append(suggestions,
			"Keywords appear too infrequently. Naturally weave them into your experience bullet points and summary.")
	case breakdown.KeywordDensity > 90 && breakdown.KeywordMatch > 80:
		// Density is already optimal; advising an increase here would
		// contradict the keyword suggestions above.
	case breakdown.KeywordDensity < 70:
		suggestions = append(suggestions,
			"Increase keyword usage by incorporating relevant terms into your experience descriptions and achievements.")
	}

	if breakdown.ExperienceRelevance < 50 {
		suggestions = append(suggestions,
			"Your experience bullets don't align well with the job description. Rephrase bullets to highlight relevant achievements and technologies.")
	} else if breakdown.ExperienceRelevance < 70 {
		suggestions = append(suggestions,
			"Improve experience relevance by adding metrics and using action verbs that match the JD responsibilities.")
	}

	for _, issue := range result.FormattingIssues {
		suggestions = append(suggestions, "Formatting: "+issue)
	}

	switch {
	case result.OverallScore >= 80:
		suggestions = append(suggestions,
			"✅ Good ATS score! Minor tweaks can push it even higher.")
	case result.OverallScore >= 60:
		suggestions = append(suggestions,
			"⚠️ Moderate ATS score. Focus on adding missing keywords and rephrasing experience bullets.")
	default:
		suggestions = append(suggestions,
			"🔴 Low ATS score. This resume needs significant keyword additions and structural improvements before submitting.")
	}

	return suggestions
}

// keywordSuggestions produces the missing-keyword advice tiers.
func keywordSuggestions(result *types.ScoreResult) []string {
	var suggestions []string

	switch {
	case result.Breakdown.KeywordMatch < 60:
		if names := missingByImportance(result.MissingKeywords, types.ImportanceHigh); len(names) > 0 {
			suggestions = append(suggestions,
				fmt.Sprintf("CRITICAL: Add these missing high-priority keywords: %s", strings.Join(names, ", ")))
		}
		if names := missingByImportance(result.MissingKeywords, types.ImportanceMedium); len(names) > 0 {
			suggestions = append(suggestions,
				fmt.Sprintf("Add these missing keywords if applicable: %s", strings.Join(names, ", ")))
		}
	case result.Breakdown.KeywordMatch < 80:
		var names []string
		for _, kw := range result.MissingKeywords {
			names = append(names, kw.Keyword)
			if len(names) == suggestionKeywordLimit {
				break
			}
		}
		if len(names) > 0 {
			suggestions = append(suggestions,
				fmt.Sprintf("Consider adding: %s to improve keyword match.", strings.Join(names, ", ")))
		}
	}

	return suggestions
}

// missingByImportance returns up to suggestionKeywordLimit missing keyword
// names at the given importance tier.
func missingByImportance(missing []types.WeightedKeyword, importance string) []string {
	var names []string
	for _, kw := range missing {
		if kw.Importance != importance {
			continue
		}
		names = append(names, kw.Keyword)
		if len(names) == suggestionKeywordLimit {
			break
		}
	}
	return names
}
