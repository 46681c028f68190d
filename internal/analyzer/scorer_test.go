package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJD = `We are seeking a Backend Engineer.
Requirements: Python, FastAPI, PostgreSQL, Docker.
You will build REST APIs and microservices, deploy with CI/CD pipelines,
and collaborate on scalable backend services.`

// goodResume echoes the JD vocabulary and satisfies every formatting
// check: 150+ words, email, phone, bullet markers, and 4-digit years.
const goodResume = `Jane Doe
jane.doe@example.com | +1 (555) 123-4567 | San Francisco, CA

Professional Summary
Seeking a backend engineer position matching these requirements: deep expertise
in Python, FastAPI, PostgreSQL, and Docker. I build REST APIs and microservices,
deploy with CI/CD pipelines, and collaborate on scalable backend services.

Experience
Senior Backend Engineer, TechCorp (2019 - 2023)
- Designed and shipped Python microservices with FastAPI serving millions of requests
- Modeled relational data in PostgreSQL and tuned slow queries for large datasets
- Containerized every service with Docker and wired automated CI/CD pipelines
- Led a collaborative redesign of the REST APIs powering partner integrations
Backend Engineer, StartupInc (2016 - 2019)
- Built scalable backend services in Python and automated deploy workflows
- Introduced Docker-based local environments adopted by the whole engineering group

Education
B.S. Computer Science, State University, 2016

Skills
Python, FastAPI, PostgreSQL, Docker, REST, CI/CD, Linux, Git

Certifications
AWS Certified Developer, 2021

Projects
Open-source contributor to a popular Python web framework`

func TestScore_IdenticalTexts(t *testing.T) {
	result := Score(sampleJD, sampleJD)

	// A resume identical to the JD cannot miss any JD keyword.
	assert.GreaterOrEqual(t, result.Breakdown.KeywordMatch, 80)
	assert.Empty(t, result.MissingKeywords)
}

func TestScore_EmptyJD(t *testing.T) {
	result := Score(goodResume, "")

	// Empty JD means there is nothing to miss.
	assert.Equal(t, 100, result.Breakdown.KeywordMatch)
	assert.Empty(t, result.MatchedKeywords)
	assert.Empty(t, result.MissingKeywords)
}

func TestScore_Bounds(t *testing.T) {
	cases := []struct {
		name   string
		resume string
		jd     string
	}{
		{"both empty", "", ""},
		{"empty resume", "", sampleJD},
		{"empty jd", goodResume, ""},
		{"identical", sampleJD, sampleJD},
		{"realistic", goodResume, sampleJD},
		{"gibberish", "xyzzy plugh qwerty", "asdf ghjkl zxcvb"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Score(tc.resume, tc.jd)

			assert.GreaterOrEqual(t, result.OverallScore, 0)
			assert.LessOrEqual(t, result.OverallScore, 100)
			for _, sub := range []int{
				result.Breakdown.KeywordMatch,
				result.Breakdown.SectionCompleteness,
				result.Breakdown.KeywordDensity,
				result.Breakdown.ExperienceRelevance,
				result.Breakdown.Formatting,
			} {
				assert.GreaterOrEqual(t, sub, 0)
				assert.LessOrEqual(t, sub, 100)
			}
		})
	}
}

func TestScore_KeywordMatchMonotonicity(t *testing.T) {
	base := "I worked with Python and Docker on production systems for several seasons."
	result := Score(base, sampleJD)
	require.NotEmpty(t, result.MissingKeywords)

	// Adding a previously missing JD keyword must never lower the match.
	superset := base + " Also shipped services built on " + result.MissingKeywords[0].Keyword + "."
	improved := Score(superset, sampleJD)

	assert.GreaterOrEqual(t, improved.Breakdown.KeywordMatch, result.Breakdown.KeywordMatch)
}

func TestScore_GoodResumeEndToEnd(t *testing.T) {
	result := Score(goodResume, sampleJD)

	assert.Equal(t, 100, result.Breakdown.Formatting, "issues: %v", result.FormattingIssues)
	assert.Empty(t, result.FormattingIssues)
	assert.GreaterOrEqual(t, result.Breakdown.KeywordMatch, 75)
	assert.Contains(t, result.MatchedKeywords, "Python")
	assert.Contains(t, result.MatchedKeywords, "Docker")
}

func TestScore_WeakResumeEndToEnd(t *testing.T) {
	result := Score("I am a hard worker. References available.", sampleJD)

	assert.Less(t, result.OverallScore, 30)
	assert.GreaterOrEqual(t, len(result.FormattingIssues), 3)
}

func TestScoreSections(t *testing.T) {
	tests := []struct {
		name     string
		resume   string
		expected int
	}{
		{"all six sections", "Summary Experience Education Skills Certifications Projects", 100},
		{"required only", "Objective Employment Degree Technologies", 67},
		{"none", "nothing relevant here", 0},
		{"synonyms", "About me. Work experience. Academic record. Core competencies.", 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreSections(tt.resume))
		})
	}
}

func TestScoreKeywordDensity(t *testing.T) {
	// 100 words total; "python" occurrences control the density.
	filler := strings.Repeat("word ", 95)

	tests := []struct {
		name     string
		resume   string
		matched  []string
		expected int
	}{
		{"no matched keywords", filler, nil, 50},
		{"empty resume", "", []string{"python"}, 0},
		{"optimal density", filler + "python python python python python", []string{"python"}, 100},
		{"stuffed", strings.Repeat("python ", 30) + "word word", []string{"python"}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreKeywordDensity(tt.resume, tt.matched))
		})
	}
}

func TestScoreKeywordDensity_TooSparse(t *testing.T) {
	// 1 occurrence in 200 words = 0.5% density.
	resume := strings.Repeat("word ", 199) + "python"
	assert.Equal(t, 40, scoreKeywordDensity(resume, []string{"python"}))
}

func TestScoreFormatting_AllIssues(t *testing.T) {
	score, issues := scoreFormatting("short text only")

	// short, no email, no phone, no bullets, no dates
	assert.Len(t, issues, 5)
	assert.Equal(t, 45, score)
}

func TestScoreFormatting_TooLong(t *testing.T) {
	resume := strings.Repeat("word ", 1300) +
		"jane@example.com +1 555-123-4567 - bullet 2021"
	score, issues := scoreFormatting(resume)

	assert.Equal(t, 90, score)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "too long")
}

func TestScoreFormatting_FloorsAtZero(t *testing.T) {
	score, _ := scoreFormatting("")
	assert.GreaterOrEqual(t, score, 0)
}

func TestScoreExperienceRelevance_EmptyJD(t *testing.T) {
	assert.Equal(t, 100, scoreExperienceRelevance(goodResume, ""))
}

func TestScoreExperienceRelevance_FullOverlap(t *testing.T) {
	text := "Python Docker Kubernetes PostgreSQL"
	assert.Equal(t, 100, scoreExperienceRelevance(text, text))
}
