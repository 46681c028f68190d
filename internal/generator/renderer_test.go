package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-optimizer/internal/types"
)

func sampleContent() *types.SelectedContent {
	return &types.SelectedContent{
		Summary: "Backend engineer with six years of Python.",
		Skills:  []string{"Python", "Docker"},
		Experience: []types.SelectedExperience{
			{
				Company:   "TechCorp",
				Title:     "Software Engineer",
				StartDate: "2020-03",
				EndDate:   "2023-03",
				Bullets:   []string{"Shipped the billing service"},
			},
		},
		Education: []types.Education{
			{Institution: "State University", Degree: "B.S.", Field: "Computer Science", EndDate: "2016"},
		},
		Certifications: []types.Certification{
			{Name: "AWS Certified Developer", Issuer: "Amazon", Year: 2021},
		},
		PersonalInfo: types.PersonalInfo{
			FullName: "Jane Doe",
			Email:    "jane.doe@example.com",
			Phone:    "+1 555-123-4567",
		},
		TargetKeywords: []string{"Python", "Docker"},
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(sampleContent(), nil, "")

	require.NoError(t, err)
	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "Backend engineer with six years of Python.")
	assert.Contains(t, html, "Shipped the billing service")
	assert.Contains(t, html, "Python · Docker")
	assert.Contains(t, html, "State University")
	assert.Contains(t, html, "AWS Certified Developer")
}

func TestRenderHTML_JobFeedsTitle(t *testing.T) {
	job := &types.DiscoveredJob{Title: "Backend Engineer", Company: "Acme"}
	html, err := RenderHTML(sampleContent(), job, "classic")

	require.NoError(t, err)
	assert.Contains(t, html, "<title>Jane Doe | Backend Engineer at Acme</title>")
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	content := sampleContent()
	content.Summary = `Engineer who loves <script>alert("x")</script>`

	html, err := RenderHTML(content, nil, "")

	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")
}

func TestRenderHTML_UnknownTemplate(t *testing.T) {
	_, err := RenderHTML(sampleContent(), nil, "nonexistent")

	require.Error(t, err)
	var tmplErr *TemplateError
	assert.ErrorAs(t, err, &tmplErr)
}

func TestSaveHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "resume.html")

	err := SaveHTML(sampleContent(), nil, "", path)

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Jane Doe")
}

func TestGenerateResume(t *testing.T) {
	job := &types.DiscoveredJob{
		Title:           "Backend Engineer",
		Company:         "Acme",
		DescriptionText: backendJD,
	}

	html, content, err := GenerateResume(selectorProfile(), job, Options{})

	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Contains(t, html, "Jane Doe")
	assert.Equal(t, "Backend summary.", content.Summary)
	assert.NotEmpty(t, content.TargetKeywords)
}

func TestOptions_Defaults(t *testing.T) {
	var opts Options
	opts.applyDefaults()

	assert.Equal(t, 12, opts.MaxSkills)
	assert.Equal(t, 4, opts.MaxBulletsPerRole)
	assert.Equal(t, 3, opts.MaxProjects)
	assert.Equal(t, "classic", opts.Template)
}
