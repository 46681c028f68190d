package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-optimizer/internal/types"
)

func validProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		PersonalInfo: types.PersonalInfo{
			FullName: "Jane Doe",
			Email:    "jane.doe@example.com",
			Phone:    "+1 555-123-4567",
		},
		Summaries: []types.Summary{
			{TargetRole: "Backend Engineer", Text: "Backend engineer with six years of Python."},
		},
		Skills: []types.SkillCategory{
			{
				Category: "Languages",
				Items: []types.SkillItem{
					{Name: "Python", Proficiency: types.ProficiencyExpert, Years: 6},
				},
			},
		},
		Experience: []types.ExperienceEntry{
			{
				Company:   "TechCorp",
				Title:     "Software Engineer",
				StartDate: "2020-03",
				EndDate:   "2023-03",
				Bullets: []types.ExperienceBullet{
					{Text: "Shipped the billing service", Tags: []string{"Python"}},
				},
			},
		},
		Education: []types.Education{
			{Institution: "State University", Degree: "B.S."},
		},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles", "jane.yaml")
	original := validProfile()

	require.NoError(t, Save(original, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("personal_info: [not: a: map"), 0o644))

	_, err := Load(path)

	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "invalid YAML", loadErr.Message)
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(validProfile()))
}

func TestValidate_MissingEmail(t *testing.T) {
	p := validProfile()
	p.PersonalInfo.Email = ""

	err := Validate(p)

	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidate_BadProficiency(t *testing.T) {
	p := validProfile()
	p.Skills[0].Items[0].Proficiency = "Wizard"

	err := Validate(p)

	require.Error(t, err)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidate_BadStartDate(t *testing.T) {
	p := validProfile()
	p.Experience[0].StartDate = "March 2020"

	err := Validate(p)

	require.Error(t, err)
}

func TestLoad_RejectsInvalidProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")

	// Save does not validate; Load must reject the bad email.
	p := validProfile()
	p.PersonalInfo.Email = "not-an-email"
	require.NoError(t, Save(p, path))

	_, err := Load(path)
	require.Error(t, err)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
