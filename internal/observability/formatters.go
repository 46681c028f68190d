// Package observability provides formatted output utilities for CLI reports.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-optimizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted report output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScoreReport outputs the ATS score breakdown with suggestions.
func (p *Printer) PrintScoreReport(result *types.ScoreResult, suggestions []string) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall Score:        %d/100\n\n", result.OverallScore))
	sb.WriteString(fmt.Sprintf("Keyword Match:        %d\n", result.Breakdown.KeywordMatch))
	sb.WriteString(fmt.Sprintf("Sections:             %d\n", result.Breakdown.SectionCompleteness))
	sb.WriteString(fmt.Sprintf("Keyword Density:      %d\n", result.Breakdown.KeywordDensity))
	sb.WriteString(fmt.Sprintf("Experience Relevance: %d\n", result.Breakdown.ExperienceRelevance))
	sb.WriteString(fmt.Sprintf("Formatting:           %d\n", result.Breakdown.Formatting))

	if len(result.MissingKeywords) > 0 {
		sb.WriteString("\nMissing Keywords:\n")
		count := min(len(result.MissingKeywords), maxItemsToShow)
		for i := 0; i < count; i++ {
			kw := result.MissingKeywords[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", kw.Keyword, kw.Importance))
		}
		if len(result.MissingKeywords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MissingKeywords)-maxItemsToShow))
		}
	}

	p.printBox("ATS SCORE REPORT", strings.TrimSuffix(sb.String(), "\n"))

	if len(suggestions) > 0 {
		var sg strings.Builder
		for _, s := range suggestions {
			sg.WriteString(fmt.Sprintf("• %s\n", s))
		}
		p.printBox("SUGGESTIONS", strings.TrimSuffix(sg.String(), "\n"))
	}
}

// PrintScoredJobs outputs the top ranked jobs from a discovery run.
func (p *Printer) PrintScoredJobs(jobs []types.ScoredJob) {
	if len(jobs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs above threshold: %d\n\n", len(jobs)))

	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		sj := jobs[i]
		sb.WriteString(fmt.Sprintf("#%d  %s @ %s\n", i+1, sj.Job.Title, sj.Job.Company))
		sb.WriteString(fmt.Sprintf("    Score: %.1f  Source: %s\n", sj.Score, sj.Job.Source))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(jobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more\n", len(jobs)-maxItemsToShow))
	}

	p.printBox("RANKED JOBS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPipelineSummary outputs the result counts of a pipeline run.
func (p *Printer) PrintPipelineSummary(result *types.PipelineResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs discovered:        %d\n", result.JobsDiscovered))
	sb.WriteString(fmt.Sprintf("New (after dedupe):     %d\n", result.JobsNew))
	sb.WriteString(fmt.Sprintf("Duplicates:             %d\n", result.JobsDuplicates))
	sb.WriteString(fmt.Sprintf("Above score threshold:  %d\n", result.JobsScored))
	sb.WriteString(fmt.Sprintf("Resumes generated:      %d\n", result.ResumesGenerated))
	sb.WriteString(fmt.Sprintf("Applications submitted: %d\n", result.ApplicationsSubmitted))
	sb.WriteString(fmt.Sprintf("Applications failed:    %d\n", result.ApplicationsFailed))

	if len(result.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		count := min(len(result.Errors), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.Errors[i]))
		}
		if len(result.Errors) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Errors)-3))
		}
	}

	p.printBox("PIPELINE SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs a summary of the loaded candidate profile.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.PersonalInfo.FullName))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.PersonalInfo.Email))
	if profile.PersonalInfo.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", profile.PersonalInfo.Location))
	}

	skills := profile.AllSkillNames()
	sb.WriteString(fmt.Sprintf("\nSkills: %d  Roles: %d  Projects: %d\n",
		len(skills), len(profile.Experience), len(profile.Projects)))

	if len(skills) > 0 {
		line := strings.Join(skills, ", ")
		if len(line) > 45 {
			line = line[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", line))
	}

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}
