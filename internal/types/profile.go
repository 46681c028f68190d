package types

import (
	"strings"
	"time"
)

// Skill proficiency levels recognized by the content selector
const (
	ProficiencyExpert       = "Expert"
	ProficiencyAdvanced     = "Advanced"
	ProficiencyIntermediate = "Intermediate"
)

// CandidateProfile is the in-memory representation of the candidate profile.
// All scoring and selection code reads it without mutation.
type CandidateProfile struct {
	PersonalInfo   PersonalInfo      `json:"personal_info" yaml:"personal_info"`
	Summaries      []Summary         `json:"summaries" yaml:"summaries"`
	Skills         []SkillCategory   `json:"skills" yaml:"skills"`
	Experience     []ExperienceEntry `json:"experience" yaml:"experience"`
	Education      []Education       `json:"education" yaml:"education"`
	Certifications []Certification   `json:"certifications" yaml:"certifications"`
	Projects       []Project         `json:"projects" yaml:"projects"`
	QABank         []QAEntry         `json:"qa_bank" yaml:"qa_bank"`
}

// PersonalInfo holds the candidate's contact details
type PersonalInfo struct {
	FullName string `json:"full_name" yaml:"full_name"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Location string `json:"location" yaml:"location"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty" yaml:"github,omitempty"`
}

// Summary is a pre-written professional summary tagged with a target role
type Summary struct {
	TargetRole string `json:"target_role" yaml:"target_role"`
	Text       string `json:"text" yaml:"text"`
}

// SkillCategory groups related skills under a category name
type SkillCategory struct {
	Category string      `json:"category" yaml:"category"`
	Items    []SkillItem `json:"items" yaml:"items"`
}

// SkillItem is a single skill with proficiency and years of use
type SkillItem struct {
	Name        string `json:"name" yaml:"name"`
	Proficiency string `json:"proficiency,omitempty" yaml:"proficiency,omitempty"`
	Years       int    `json:"years,omitempty" yaml:"years,omitempty"`
}

// ExperienceEntry is a single role in the candidate's work history
type ExperienceEntry struct {
	Company   string             `json:"company" yaml:"company"`
	Title     string             `json:"title" yaml:"title"`
	Location  string             `json:"location,omitempty" yaml:"location,omitempty"`
	StartDate string             `json:"start_date" yaml:"start_date"` // "YYYY-MM"
	EndDate   string             `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Bullets   []ExperienceBullet `json:"bullets" yaml:"bullets"`
}

// ExperienceBullet is one achievement bullet with free-text relevance tags
type ExperienceBullet struct {
	Text string   `json:"text" yaml:"text"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Education is a degree or study record, passed through selection unmodified
type Education struct {
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Field       string `json:"field,omitempty" yaml:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

// Certification is a professional certification, passed through selection unmodified
type Certification struct {
	Name   string `json:"name" yaml:"name"`
	Issuer string `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	Year   int    `json:"year,omitempty" yaml:"year,omitempty"`
}

// Project is a personal or professional project with its tech stack
type Project struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	TechStack   []string `json:"tech_stack,omitempty" yaml:"tech_stack,omitempty"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
}

// QAEntry maps an application-form question pattern to a canned answer
type QAEntry struct {
	QuestionPattern string `json:"question_pattern" yaml:"question_pattern"`
	Answer          string `json:"answer" yaml:"answer"`
}

// TaggedBullet is an experience bullet with its company/title context,
// as returned by AllBullets
type TaggedBullet struct {
	Text    string
	Tags    []string
	Company string
	Title   string
}

// AllSkillNames flattens all skill categories into a list of skill names
func (p *CandidateProfile) AllSkillNames() []string {
	var names []string
	for _, cat := range p.Skills {
		for _, item := range cat.Items {
			names = append(names, item.Name)
		}
	}
	return names
}

// SkillsByCategory returns the skill items for a category (case-insensitive)
func (p *CandidateProfile) SkillsByCategory(category string) []SkillItem {
	for _, cat := range p.Skills {
		if strings.EqualFold(cat.Category, category) {
			return cat.Items
		}
	}
	return nil
}

// SummaryForRole finds a pre-written summary whose target role contains
// the given role (case-insensitive). Returns "" if none matches.
func (p *CandidateProfile) SummaryForRole(role string) string {
	roleLower := strings.ToLower(role)
	for _, s := range p.Summaries {
		if strings.Contains(strings.ToLower(s.TargetRole), roleLower) {
			return s.Text
		}
	}
	return ""
}

// AllBullets returns every experience bullet with its company/title context
func (p *CandidateProfile) AllBullets() []TaggedBullet {
	var out []TaggedBullet
	for _, exp := range p.Experience {
		for _, b := range exp.Bullets {
			out = append(out, TaggedBullet{
				Text:    b.Text,
				Tags:    b.Tags,
				Company: exp.Company,
				Title:   exp.Title,
			})
		}
	}
	return out
}

// TotalYearsExperience estimates total years of experience from date ranges.
// Entries with unparseable dates are skipped rather than failing.
func (p *CandidateProfile) TotalYearsExperience() int {
	totalMonths := 0
	for _, exp := range p.Experience {
		if exp.StartDate == "" {
			continue
		}
		start, err := time.Parse("2006-01", exp.StartDate)
		if err != nil {
			continue
		}

		end := time.Now()
		if exp.EndDate != "" {
			parsed, err := time.Parse("2006-01", exp.EndDate)
			if err != nil {
				continue
			}
			end = parsed
		}

		months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
		if months > 0 {
			totalMonths += months
		}
	}
	return totalMonths / 12
}
