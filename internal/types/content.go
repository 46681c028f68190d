package types

// SelectedExperience is an experience entry with its bullet list trimmed
// to the most relevant bullets for a specific job description
type SelectedExperience struct {
	Company   string   `json:"company"`
	Title     string   `json:"title"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date,omitempty"`
	Bullets   []string `json:"bullets"`
}

// SelectedContent is the tailored resume content produced by the content
// selector for one job description. It is handed to the renderer and never
// mutated; the source profile is left untouched.
type SelectedContent struct {
	Summary        string               `json:"summary"`
	Skills         []string             `json:"skills"`
	Experience     []SelectedExperience `json:"experience"`
	Education      []Education          `json:"education"`
	Certifications []Certification      `json:"certifications"`
	Projects       []Project            `json:"projects"`
	PersonalInfo   PersonalInfo         `json:"personal_info"`
	TargetKeywords []string             `json:"target_keywords"`
}
