// Package answers matches application form questions to the candidate's
// Q&A bank, falling back to LLM generation and finally to manual review.
package answers

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/ats-optimizer/internal/llm"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// Answer sources, in order of preference.
const (
	SourceQABank = "qa_bank"
	SourceLLM    = "llm"
	SourceManual = "manual"
)

// Confidence per source.
const (
	confidenceQABank = 0.95
	confidenceLLM    = 0.6
)

// Answer is the result of answering one application question.
type Answer struct {
	Text       string
	Source     string
	Confidence float64
}

// Answerer answers application form questions for one candidate.
type Answerer struct {
	profile  *types.CandidateProfile
	provider llm.Provider
}

// New creates an answerer. A nil provider disables the LLM fallback so
// unmatched questions go straight to manual review.
func New(profile *types.CandidateProfile, provider llm.Provider) *Answerer {
	return &Answerer{profile: profile, provider: provider}
}

// Answer attempts to answer a question: Q&A bank first, then the LLM,
// then an empty manual-review answer.
func (a *Answerer) Answer(ctx context.Context, question string) Answer {
	if text, ok := a.matchQABank(question); ok {
		return Answer{Text: text, Source: SourceQABank, Confidence: confidenceQABank}
	}

	if a.provider != nil {
		prompt := a.buildPrompt(question)
		if text, err := a.provider.GenerateText(ctx, prompt); err == nil {
			return Answer{Text: text, Source: SourceLLM, Confidence: confidenceLLM}
		}
	}

	return Answer{Source: SourceManual, Confidence: 0.0}
}

// AnswerBatch answers multiple questions in input order.
func (a *Answerer) AnswerBatch(ctx context.Context, questions []string) []Answer {
	results := make([]Answer, len(questions))
	for i, q := range questions {
		results[i] = a.Answer(ctx, q)
	}
	return results
}

// matchQABank matches the question against Q&A bank patterns. Patterns
// are treated as case-insensitive regexes; a pattern that fails to
// compile degrades to a substring match.
func (a *Answerer) matchQABank(question string) (string, bool) {
	questionLower := strings.ToLower(strings.TrimSpace(question))

	for _, qa := range a.profile.QABank {
		if qa.QuestionPattern == "" {
			continue
		}

		re, err := regexp.Compile("(?i)" + qa.QuestionPattern)
		if err != nil {
			if strings.Contains(questionLower, strings.ToLower(qa.QuestionPattern)) {
				return qa.Answer, true
			}
			continue
		}
		if re.MatchString(questionLower) {
			return qa.Answer, true
		}
	}
	return "", false
}

func (a *Answerer) buildPrompt(question string) string {
	return fmt.Sprintf(
		"You are helping fill out a job application. "+
			"Answer the following question concisely and professionally.\n\n"+
			"Question: %s\n\n"+
			"Candidate info: %s, %s, %d years experience.\n\n"+
			"Answer:",
		question,
		a.profile.PersonalInfo.FullName,
		a.profile.PersonalInfo.Location,
		a.profile.TotalYearsExperience(),
	)
}
