package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProfile() *CandidateProfile {
	return &CandidateProfile{
		PersonalInfo: PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com"},
		Summaries: []Summary{
			{TargetRole: "Backend Engineer", Text: "Backend-focused engineer."},
			{TargetRole: "Platform Engineer", Text: "Platform-focused engineer."},
		},
		Skills: []SkillCategory{
			{Category: "Languages", Items: []SkillItem{
				{Name: "Python", Proficiency: ProficiencyExpert, Years: 8},
				{Name: "Go", Proficiency: ProficiencyAdvanced, Years: 4},
			}},
			{Category: "Infrastructure", Items: []SkillItem{
				{Name: "Docker", Proficiency: ProficiencyAdvanced},
			}},
		},
		Experience: []ExperienceEntry{
			{
				Company:   "TechCorp",
				Title:     "Senior Engineer",
				StartDate: "2020-03",
				EndDate:   "2023-03",
				Bullets: []ExperienceBullet{
					{Text: "Built APIs", Tags: []string{"python", "fastapi"}},
					{Text: "Ran deployments", Tags: []string{"docker"}},
				},
			},
		},
	}
}

func TestAllSkillNames(t *testing.T) {
	p := testProfile()
	assert.Equal(t, []string{"Python", "Go", "Docker"}, p.AllSkillNames())
}

func TestAllSkillNames_EmptyProfile(t *testing.T) {
	p := &CandidateProfile{}
	assert.Empty(t, p.AllSkillNames())
}

func TestSkillsByCategory(t *testing.T) {
	p := testProfile()

	items := p.SkillsByCategory("languages")
	assert.Len(t, items, 2)
	assert.Equal(t, "Python", items[0].Name)

	assert.Nil(t, p.SkillsByCategory("nonexistent"))
}

func TestSummaryForRole(t *testing.T) {
	p := testProfile()

	assert.Equal(t, "Platform-focused engineer.", p.SummaryForRole("platform"))
	assert.Equal(t, "", p.SummaryForRole("data scientist"))
}

func TestAllBullets(t *testing.T) {
	p := testProfile()

	bullets := p.AllBullets()
	assert.Len(t, bullets, 2)
	assert.Equal(t, "TechCorp", bullets[0].Company)
	assert.Equal(t, "Senior Engineer", bullets[0].Title)
	assert.Equal(t, []string{"python", "fastapi"}, bullets[0].Tags)
}

func TestTotalYearsExperience(t *testing.T) {
	p := testProfile()
	// 2020-03 to 2023-03 is exactly 36 months
	assert.Equal(t, 3, p.TotalYearsExperience())
}

func TestTotalYearsExperience_BadDates(t *testing.T) {
	p := &CandidateProfile{
		Experience: []ExperienceEntry{
			{StartDate: "not-a-date", EndDate: "2023-01"},
			{StartDate: "", EndDate: "2023-01"},
		},
	}
	assert.Equal(t, 0, p.TotalYearsExperience())
}

func TestExtractionResult_KeywordNames(t *testing.T) {
	r := &ExtractionResult{Keywords: []Keyword{
		{Canonical: "Python", Category: CategorySkill},
		{Canonical: "Docker", Category: CategorySkill},
	}}
	assert.Equal(t, []string{"Python", "Docker"}, r.KeywordNames())
}

func TestExtractionResult_ByCategory(t *testing.T) {
	r := &ExtractionResult{Keywords: []Keyword{
		{Canonical: "Python", Category: CategorySkill},
		{Canonical: "pipeline", Category: CategoryGeneral},
	}}
	assert.Len(t, r.ByCategory(CategorySkill), 1)
	assert.Empty(t, r.ByCategory(CategoryTool))
}
