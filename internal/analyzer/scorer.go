// Package analyzer scores resumes against job descriptions for ATS
// compatibility and turns score breakdowns into actionable suggestions.
package analyzer

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/ats-optimizer/internal/keywords"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// Weights for the five scoring dimensions. They sum to 1.0.
const (
	keywordMatchWeight        = 0.40
	sectionCompletenessWeight = 0.15
	keywordDensityWeight      = 0.15
	experienceRelevanceWeight = 0.15
	formattingWeight          = 0.15
)

const (
	jdKeywordLimit        = 25
	relevanceKeywordLimit = 20
	minResumeWords        = 150
	maxResumeWords        = 1200
)

// sectionSynonyms maps each expected resume section to the header
// variations that count as its presence. The first four are required
// sections, certifications and projects are optional; all six count
// toward the completeness total.
var sectionSynonyms = map[string][]string{
	"summary":        {"summary", "professional summary", "objective", "about"},
	"experience":     {"experience", "work experience", "professional experience", "employment"},
	"education":      {"education", "academic", "degree"},
	"skills":         {"skills", "technical skills", "core competencies", "technologies"},
	"certifications": {"certifications", "certificates", "certification"},
	"projects":       {"projects", "personal projects", "side projects"},
}

// sectionOrder fixes iteration order over sectionSynonyms.
var sectionOrder = []string{"summary", "experience", "education", "skills", "certifications", "projects"}

var (
	emailPattern  = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	phonePattern  = regexp.MustCompile(`[+]?[\d\s\-()]{7,15}`)
	bulletPattern = regexp.MustCompile(`[•\-*] `)
	yearPattern   = regexp.MustCompile(`\b20\d{2}\b`)
)

// importanceWeight returns the match weight for an importance tier.
func importanceWeight(importance string) int {
	switch importance {
	case types.ImportanceHigh:
		return 3
	case types.ImportanceMedium:
		return 2
	default:
		return 1
	}
}

// Score calculates the ATS compatibility score (0-100) for a resume
// against a job description. It is a pure function of its inputs and safe
// for concurrent use.
func Score(resumeText, jdText string) *types.ScoreResult {
	result := &types.ScoreResult{}

	var breakdown types.ScoreBreakdown
	breakdown.KeywordMatch, result.MatchedKeywords, result.MissingKeywords = scoreKeywordMatch(resumeText, jdText)
	breakdown.SectionCompleteness = scoreSections(resumeText)
	breakdown.KeywordDensity = scoreKeywordDensity(resumeText, result.MatchedKeywords)
	breakdown.ExperienceRelevance = scoreExperienceRelevance(resumeText, jdText)
	breakdown.Formatting, result.FormattingIssues = scoreFormatting(resumeText)

	result.Breakdown = breakdown
	result.OverallScore = int(math.Round(
		float64(breakdown.KeywordMatch)*keywordMatchWeight +
			float64(breakdown.SectionCompleteness)*sectionCompletenessWeight +
			float64(breakdown.KeywordDensity)*keywordDensityWeight +
			float64(breakdown.ExperienceRelevance)*experienceRelevanceWeight +
			float64(breakdown.Formatting)*formattingWeight))

	return result
}

// scoreKeywordMatch scores the weighted share of JD keywords present in
// the resume. An empty JD keyword set means there is nothing to miss, so
// the score is 100.
func scoreKeywordMatch(resumeText, jdText string) (int, []string, []types.WeightedKeyword) {
	jdKeywords := keywords.ExtractWithImportance(jdText, jdKeywordLimit)
	if len(jdKeywords) == 0 {
		return 100, nil, nil
	}

	resumeLower := strings.ToLower(resumeText)
	var matched []string
	var missing []types.WeightedKeyword

	totalWeight := 0
	matchedWeight := 0
	for _, kw := range jdKeywords {
		w := importanceWeight(kw.Importance)
		totalWeight += w
		if strings.Contains(resumeLower, strings.ToLower(kw.Keyword)) {
			matched = append(matched, kw.Keyword)
			matchedWeight += w
		} else {
			missing = append(missing, kw)
		}
	}

	score := int(math.Round(float64(matchedWeight) / float64(totalWeight) * 100))
	if score > 100 {
		score = 100
	}
	return score, matched, missing
}

// scoreSections scores the presence of expected resume sections.
func scoreSections(resumeText string) int {
	resumeLower := strings.ToLower(resumeText)

	found := 0
	for _, section := range sectionOrder {
		for _, variant := range sectionSynonyms[section] {
			if strings.Contains(resumeLower, variant) {
				found++
				break
			}
		}
	}

	return int(math.Round(float64(found) / float64(len(sectionOrder)) * 100))
}

// scoreKeywordDensity maps keyword usage density onto an inverted-U curve:
// both sparse usage and keyword stuffing are penalized, with the optimum
// between 3% and 6% of total words.
func scoreKeywordDensity(resumeText string, matchedKeywords []string) int {
	if len(matchedKeywords) == 0 {
		return 50 // Neutral when there is nothing to measure
	}

	totalWords := len(strings.Fields(resumeText))
	if totalWords == 0 {
		return 0
	}

	resumeLower := strings.ToLower(resumeText)
	totalOccurrences := 0
	for _, kw := range matchedKeywords {
		totalOccurrences += strings.Count(resumeLower, strings.ToLower(kw))
	}

	density := float64(totalOccurrences) / float64(totalWords)
	switch {
	case density < 0.01:
		return 40 // Too sparse
	case density <= 0.03:
		return 80
	case density <= 0.06:
		return 100 // Optimal
	case density <= 0.10:
		return 80
	default:
		return 50 // Keyword stuffing
	}
}

// scoreExperienceRelevance scores the canonical keyword overlap between
// resume and JD, normalized by the JD's keyword count.
func scoreExperienceRelevance(resumeText, jdText string) int {
	resumeKws := keywords.Extract(resumeText, relevanceKeywordLimit)
	jdKws := keywords.Extract(jdText, relevanceKeywordLimit)

	jdSet := make(map[string]struct{}, len(jdKws.Keywords))
	for _, kw := range jdKws.Keywords {
		jdSet[strings.ToLower(kw.Canonical)] = struct{}{}
	}
	if len(jdSet) == 0 {
		return 100
	}

	overlap := 0
	seen := make(map[string]struct{}, len(resumeKws.Keywords))
	for _, kw := range resumeKws.Keywords {
		lower := strings.ToLower(kw.Canonical)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		if _, ok := jdSet[lower]; ok {
			overlap++
		}
	}

	score := int(math.Round(float64(overlap) / float64(len(jdSet)) * 100))
	if score > 100 {
		score = 100
	}
	return score
}

// scoreFormatting applies fixed penalties for ATS-hostile formatting and
// collects a human-readable issue per triggered penalty.
func scoreFormatting(resumeText string) (int, []string) {
	var issues []string
	score := 100

	wordCount := len(strings.Fields(resumeText))
	if wordCount < minResumeWords {
		issues = append(issues, fmt.Sprintf("Resume too short (%d words). Aim for 300+ words.", wordCount))
		score -= 20
	} else if wordCount > maxResumeWords {
		issues = append(issues, fmt.Sprintf("Resume too long (%d words). Keep under 800 words for 1-2 pages.", wordCount))
		score -= 10
	}

	if !emailPattern.MatchString(resumeText) {
		issues = append(issues, "No email address found in resume.")
		score -= 10
	}
	if !phonePattern.MatchString(resumeText) {
		issues = append(issues, "No phone number found in resume.")
		score -= 5
	}
	if !bulletPattern.MatchString(resumeText) {
		issues = append(issues, "No bullet points found. Use bullet points for experience items.")
		score -= 10
	}
	if !yearPattern.MatchString(resumeText) {
		issues = append(issues, "No dates found. Include dates for experience and education.")
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	return score, issues
}
