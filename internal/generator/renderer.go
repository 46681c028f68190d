package generator

import (
	"embed"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/ats-optimizer/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

const defaultTemplate = "classic"

// templateData wraps the selected content with the fields the HTML
// template renders directly.
type templateData struct {
	Content   *types.SelectedContent
	JobTitle  string
	Company   string
	SkillLine string
}

// RenderHTML renders the selected content into a standalone HTML resume
// using the named embedded template ("classic" if empty). The job, when
// provided, only feeds the document title; it never alters content.
func RenderHTML(content *types.SelectedContent, job *types.DiscoveredJob, templateName string) (string, error) {
	if templateName == "" {
		templateName = defaultTemplate
	}

	tmpl, err := template.ParseFS(templateFS, "templates/"+templateName+".html")
	if err != nil {
		return "", &TemplateError{Message: "template not found: " + templateName, Cause: err}
	}

	data := templateData{
		Content:   content,
		SkillLine: strings.Join(content.Skills, " · "),
	}
	if job != nil {
		data.JobTitle = job.Title
		data.Company = job.Company
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return out.String(), nil
}

// SaveHTML renders the resume and writes it to path, creating parent
// directories as needed.
func SaveHTML(content *types.SelectedContent, job *types.DiscoveredJob, templateName, path string) error {
	html, err := RenderHTML(content, job, templateName)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &RenderError{Message: "failed to create output directory", Cause: err}
		}
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return &RenderError{Message: "failed to write resume file", Cause: err}
	}
	return nil
}

// GenerateResume runs content selection and rendering in one step and
// returns both the rendered HTML and the selection it was built from.
func GenerateResume(profile *types.CandidateProfile, job *types.DiscoveredJob, opts Options) (string, *types.SelectedContent, error) {
	opts.applyDefaults()

	content := Select(profile, job.DescriptionText, opts.MaxSkills, opts.MaxBulletsPerRole, opts.MaxProjects)
	html, err := RenderHTML(content, job, opts.Template)
	if err != nil {
		return "", nil, err
	}
	return html, content, nil
}

// Options control content selection limits and template choice.
type Options struct {
	MaxSkills         int
	MaxBulletsPerRole int
	MaxProjects       int
	Template          string
}

func (o *Options) applyDefaults() {
	if o.MaxSkills == 0 {
		o.MaxSkills = 12
	}
	if o.MaxBulletsPerRole == 0 {
		o.MaxBulletsPerRole = 4
	}
	if o.MaxProjects == 0 {
		o.MaxProjects = 3
	}
	if o.Template == "" {
		o.Template = defaultTemplate
	}
}
