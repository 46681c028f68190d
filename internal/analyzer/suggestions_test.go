package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-optimizer/internal/types"
)

func resultWith(breakdown types.ScoreBreakdown, overall int) *types.ScoreResult {
	return &types.ScoreResult{
		OverallScore: overall,
		Breakdown:    breakdown,
	}
}

func TestGenerateSuggestions_AlwaysEndsWithOverallTier(t *testing.T) {
	tests := []struct {
		name    string
		overall int
		marker  string
	}{
		{"good", 85, "✅"},
		{"moderate", 65, "⚠️"},
		{"low", 30, "🔴"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resultWith(types.ScoreBreakdown{
				KeywordMatch:        90,
				SectionCompleteness: 100,
				KeywordDensity:      80,
				ExperienceRelevance: 90,
				Formatting:          100,
			}, tt.overall)

			suggestions := GenerateSuggestions(result)
			require.NotEmpty(t, suggestions)
			assert.Contains(t, suggestions[len(suggestions)-1], tt.marker)
		})
	}
}

func TestGenerateSuggestions_CriticalKeywordTiers(t *testing.T) {
	result := resultWith(types.ScoreBreakdown{
		KeywordMatch:        40,
		SectionCompleteness: 100,
		KeywordDensity:      80,
		ExperienceRelevance: 90,
		Formatting:          100,
	}, 55)
	result.MissingKeywords = []types.WeightedKeyword{
		{Keyword: "Kubernetes", Importance: types.ImportanceHigh},
		{Keyword: "Terraform", Importance: types.ImportanceHigh},
		{Keyword: "Jenkins", Importance: types.ImportanceMedium},
		{Keyword: "Bash", Importance: types.ImportanceLow},
	}

	suggestions := GenerateSuggestions(result)

	var critical, medium string
	for _, s := range suggestions {
		if strings.HasPrefix(s, "CRITICAL:") {
			critical = s
		}
		if strings.HasPrefix(s, "Add these missing keywords") {
			medium = s
		}
	}
	require.NotEmpty(t, critical)
	assert.Contains(t, critical, "Kubernetes")
	assert.Contains(t, critical, "Terraform")
	assert.NotContains(t, critical, "Jenkins")

	require.NotEmpty(t, medium)
	assert.Contains(t, medium, "Jenkins")
	assert.NotContains(t, medium, "Bash")
}

func TestGenerateSuggestions_ModerateKeywordTier(t *testing.T) {
	result := resultWith(types.ScoreBreakdown{
		KeywordMatch:        70,
		SectionCompleteness: 100,
		KeywordDensity:      80,
		ExperienceRelevance: 90,
		Formatting:          100,
	}, 75)
	result.MissingKeywords = []types.WeightedKeyword{
		{Keyword: "Go", Importance: types.ImportanceHigh},
		{Keyword: "gRPC", Importance: types.ImportanceMedium},
		{Keyword: "Redis", Importance: types.ImportanceLow},
		{Keyword: "Kafka", Importance: types.ImportanceLow},
		{Keyword: "Helm", Importance: types.ImportanceLow},
		{Keyword: "Istio", Importance: types.ImportanceLow},
	}

	suggestions := GenerateSuggestions(result)

	var advice string
	for _, s := range suggestions {
		if strings.HasPrefix(s, "Consider adding:") {
			advice = s
		}
	}
	require.NotEmpty(t, advice)
	// Capped at five names.
	assert.Contains(t, advice, "Helm")
	assert.NotContains(t, advice, "Istio")
}

func TestGenerateSuggestions_HighMatchNoKeywordAdvice(t *testing.T) {
	result := resultWith(types.ScoreBreakdown{
		KeywordMatch:        85,
		SectionCompleteness: 100,
		KeywordDensity:      80,
		ExperienceRelevance: 90,
		Formatting:          100,
	}, 85)
	result.MissingKeywords = []types.WeightedKeyword{
		{Keyword: "Scala", Importance: types.ImportanceHigh},
	}

	for _, s := range GenerateSuggestions(result) {
		assert.NotContains(t, s, "Scala")
	}
}

func TestGenerateSuggestions_SectionTiers(t *testing.T) {
	missing := resultWith(types.ScoreBreakdown{
		KeywordMatch: 90, SectionCompleteness: 50, KeywordDensity: 80,
		ExperienceRelevance: 90, Formatting: 100,
	}, 80)
	partial := resultWith(types.ScoreBreakdown{
		KeywordMatch: 90, SectionCompleteness: 83, KeywordDensity: 80,
		ExperienceRelevance: 90, Formatting: 100,
	}, 85)
	complete := resultWith(types.ScoreBreakdown{
		KeywordMatch: 90, SectionCompleteness: 100, KeywordDensity: 80,
		ExperienceRelevance: 90, Formatting: 100,
	}, 88)

	assert.True(t, containsSubstring(GenerateSuggestions(missing), "missing key sections"))
	assert.True(t, containsSubstring(GenerateSuggestions(partial), "Certifications or Projects"))
	assert.False(t, containsSubstring(GenerateSuggestions(complete), "sections"))
}

func TestGenerateSuggestions_DensitySkipWhenOptimal(t *testing.T) {
	// High density with a strong keyword match should produce no
	// density advice at all.
	optimal := resultWith(types.ScoreBreakdown{
		KeywordMatch: 95, SectionCompleteness: 100, KeywordDensity: 100,
		ExperienceRelevance: 90, Formatting: 100,
	}, 95)
	assert.False(t, containsSubstring(GenerateSuggestions(optimal), "keyword usage"))
	assert.False(t, containsSubstring(GenerateSuggestions(optimal), "infrequently"))

	sparse := resultWith(types.ScoreBreakdown{
		KeywordMatch: 95, SectionCompleteness: 100, KeywordDensity: 40,
		ExperienceRelevance: 90, Formatting: 100,
	}, 85)
	assert.True(t, containsSubstring(GenerateSuggestions(sparse), "too infrequently"))

	moderate := resultWith(types.ScoreBreakdown{
		KeywordMatch: 95, SectionCompleteness: 100, KeywordDensity: 60,
		ExperienceRelevance: 90, Formatting: 100,
	}, 88)
	assert.True(t, containsSubstring(GenerateSuggestions(moderate), "Increase keyword usage"))
}

func TestGenerateSuggestions_FormattingIssuesEchoed(t *testing.T) {
	result := resultWith(types.ScoreBreakdown{
		KeywordMatch: 90, SectionCompleteness: 100, KeywordDensity: 80,
		ExperienceRelevance: 90, Formatting: 70,
	}, 82)
	result.FormattingIssues = []string{
		"No email address found in resume.",
		"No bullet points found. Use bullet points for experience items.",
	}

	suggestions := GenerateSuggestions(result)
	assert.Contains(t, suggestions, "Formatting: No email address found in resume.")
	assert.Contains(t, suggestions, "Formatting: No bullet points found. Use bullet points for experience items.")
}

func containsSubstring(suggestions []string, substr string) bool {
	for _, s := range suggestions {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
