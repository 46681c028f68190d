package keywords

import (
	"strings"
	"testing"

	"github.com/jonathan/ats-optimizer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_KnownAliases(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"js", "JavaScript"},
		{"JS", "JavaScript"},
		{"k8s", "Kubernetes"},
		{"postgres", "PostgreSQL"},
		{"  docker  ", "Docker"},
		{"machine learning", "Machine Learning"},
		{"unknown-term", "unknown-term"},
		{"  spaced out  ", "spaced out"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"js", "Kubernetes", "k8s", "random", "ci/cd", "REST", ""}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", in)
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		result := Extract(text, 10)
		assert.Empty(t, result.Keywords)
	}
}

func TestExtract_RespectsMaxKeywords(t *testing.T) {
	text := "Python Docker Kubernetes Terraform Ansible Jenkins GraphQL Redis Kafka MongoDB"
	for _, max := range []int{0, 1, 3, 5, 100} {
		result := Extract(text, max)
		assert.LessOrEqual(t, len(result.Keywords), max)
	}
}

func TestExtract_FrequencyRanking(t *testing.T) {
	text := "Python and Docker. Python powers our services. Python everywhere."

	result := Extract(text, 10)

	assert.NotEmpty(t, result.Keywords)
	assert.Equal(t, "Python", result.Keywords[0].Canonical)
	for i := 1; i < len(result.Keywords); i++ {
		assert.GreaterOrEqual(t, result.Keywords[i-1].Frequency, result.Keywords[i].Frequency,
			"keywords must be sorted by frequency descending")
	}
}

func TestExtract_AliasMerging(t *testing.T) {
	// "k8s" and "Kubernetes" must merge into a single record with summed
	// frequency, never duplicated.
	text := "We deploy on k8s. Kubernetes expertise expected. More k8s daily."

	result := Extract(text, 10)

	var kubernetes []types.Keyword
	for _, kw := range result.Keywords {
		if kw.Canonical == "Kubernetes" {
			kubernetes = append(kubernetes, kw)
		}
	}
	assert.Len(t, kubernetes, 1)
	assert.GreaterOrEqual(t, kubernetes[0].Frequency, 3)
}

func TestExtract_Categories(t *testing.T) {
	text := "Python and Docker with microservices on our Gateway platform"

	result := Extract(text, 20)

	byCanonical := make(map[string]string)
	for _, kw := range result.Keywords {
		byCanonical[kw.Canonical] = kw.Category
	}

	assert.Equal(t, types.CategorySkill, byCanonical["Python"])
	assert.Equal(t, types.CategorySkill, byCanonical["Docker"])
	assert.Equal(t, types.CategoryTool, byCanonical["Gateway"])
	assert.Equal(t, types.CategoryGeneral, byCanonical["microservices"])
}

func TestExtract_AcronymsAndDottedTerms(t *testing.T) {
	text := "Experience with AWS and Node.js deployments"

	result := Extract(text, 20)
	names := result.KeywordNames()

	assert.Contains(t, names, "AWS")
	assert.Contains(t, names, "Node.js")
}

func TestExtract_StopWordsFiltered(t *testing.T) {
	text := "the and for with required preferred experience team"

	result := Extract(text, 20)
	assert.Empty(t, result.Keywords)
}

func TestExtract_RetainsRawText(t *testing.T) {
	text := "Python developer wanted"
	result := Extract(text, 5)
	assert.Equal(t, text, result.RawText)
}

func TestBigramCounts_NotMergedIntoResults(t *testing.T) {
	// Bigrams are computed as an intermediate signal but stay out of the
	// ranked list.
	text := "distributed systems distributed systems distributed systems"

	counts := bigramCounts(text)
	assert.Greater(t, counts["distributed systems"], 0)

	result := Extract(text, 10)
	for _, kw := range result.Keywords {
		assert.NotContains(t, kw.Canonical, " ")
	}
}

func TestExtract_DeterministicTieBreak(t *testing.T) {
	text := "alpha bravo charlie delta"

	first := Extract(text, 10)
	for i := 0; i < 5; i++ {
		again := Extract(text, 10)
		assert.Equal(t, first.KeywordNames(), again.KeywordNames())
	}
}

func TestExtractWithImportance_PositionBeatsFrequency(t *testing.T) {
	// "Python" appears once, early; it must still be high importance.
	filler := strings.Repeat("generic filler sentence padding content. ", 10)
	text := "Python required. " + filler

	weighted := ExtractWithImportance(text, 25)

	var python *types.WeightedKeyword
	for i := range weighted {
		if weighted[i].Keyword == "Python" {
			python = &weighted[i]
		}
	}
	assert.NotNil(t, python)
	assert.Equal(t, types.ImportanceHigh, python.Importance)
}

func TestExtractWithImportance_FrequencyTiers(t *testing.T) {
	// Push target terms into the second half so tiers come from frequency.
	// Plain lowercase words are used so each occurrence counts exactly once.
	filler := strings.Repeat("generic filler sentence padding content. ", 20)
	text := filler + "observability. telemetry telemetry. resilience resilience resilience."

	weighted := ExtractWithImportance(text, 25)

	tiers := make(map[string]string)
	for _, w := range weighted {
		tiers[w.Keyword] = w.Importance
	}

	assert.Equal(t, types.ImportanceLow, tiers["observability"])
	assert.Equal(t, types.ImportanceMedium, tiers["telemetry"])
	assert.Equal(t, types.ImportanceHigh, tiers["resilience"])
}

func TestExtractWithImportance_EmptyInput(t *testing.T) {
	assert.Empty(t, ExtractWithImportance("", 25))
}
