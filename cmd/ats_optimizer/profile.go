package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-optimizer/internal/observability"
	"github.com/jonathan/ats-optimizer/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the candidate profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current profile",
	RunE:  runProfileShow,
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the profile against its schema",
	RunE:  runProfileValidate,
}

var profilePath string

func init() {
	profileCmd.PersistentFlags().StringVar(&profilePath, "path", "", "Profile YAML path (default from config)")
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileValidateCmd)
	rootCmd.AddCommand(profileCmd)
}

func resolveProfilePath() (string, error) {
	if profilePath != "" {
		return profilePath, nil
	}
	cfg, _, err := setup()
	if err != nil {
		return "", err
	}
	return cfg.App.ProfilePath, nil
}

func runProfileShow(_ *cobra.Command, _ []string) error {
	path, err := resolveProfilePath()
	if err != nil {
		return err
	}

	candidate, err := profile.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintProfile(candidate)
	fmt.Printf("Experience:     %d years across %d roles\n", candidate.TotalYearsExperience(), len(candidate.Experience))
	fmt.Printf("Summaries:      %d\n", len(candidate.Summaries))
	fmt.Printf("Education:      %d\n", len(candidate.Education))
	fmt.Printf("Certifications: %d\n", len(candidate.Certifications))
	fmt.Printf("Q&A bank:       %d entries\n", len(candidate.QABank))
	return nil
}

func runProfileValidate(_ *cobra.Command, _ []string) error {
	path, err := resolveProfilePath()
	if err != nil {
		return err
	}

	if _, err := profile.Load(path); err != nil {
		return err
	}
	fmt.Printf("Profile %s is valid.\n", path)
	return nil
}
