package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-optimizer/internal/analyzer"
	"github.com/jonathan/ats-optimizer/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	RunE:  runAnalyze,
}

var (
	analyzeResumePath string
	analyzeJDPath     string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumePath, "resume", "r", "", "Path to resume text file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJDPath, "jd", "j", "", "Path to job description text file (required)")
	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	resumeText, err := os.ReadFile(analyzeResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	jdText, err := os.ReadFile(analyzeJDPath)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	result := analyzer.Score(string(resumeText), string(jdText))
	suggestions := analyzer.GenerateSuggestions(result)

	observability.NewPrinter(os.Stdout).PrintScoreReport(result, suggestions)
	return nil
}
