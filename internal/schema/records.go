// Package schema defines the structured records exchanged with the LLM and
// validates raw model output against them before it reaches any caller.
package schema

// Education is a single education entry on a candidate profile.
type Education struct {
	Institution    string  `json:"institution"`
	Degree         string  `json:"degree"`
	FieldOfStudy   string  `json:"field_of_study,omitempty"`
	GraduationYear int     `json:"graduation_year,omitempty"`
	GPA            float64 `json:"gpa,omitempty"`
}

// Role is a single work-experience entry on a candidate profile.
type Role struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Location     string   `json:"location,omitempty"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements,omitempty"`
}

// Project is a single project entry on a candidate profile.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
	Role         string   `json:"role,omitempty"`
}

// CandidateProfile is the structured record extracted from resume text.
// It is immutable once produced by the extraction stage.
type CandidateProfile struct {
	Name            string      `json:"name,omitempty"`
	Email           string      `json:"email,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	Location        string      `json:"location,omitempty"`
	YearsExperience float64     `json:"years_experience,omitempty"`
	Summary         string      `json:"summary"`
	SkillsPrimary   []string    `json:"skills_primary"`
	SkillsSecondary []string    `json:"skills_secondary"`
	Certifications  []string    `json:"certifications,omitempty"`
	Education       []Education `json:"education"`
	WorkExperience  []Role      `json:"work_experience"`
	Projects        []Project   `json:"projects"`
	Keywords        []string    `json:"keywords"`
}

// JobDescription is the structured record extracted from job-posting text.
type JobDescription struct {
	Title            string   `json:"title"`
	Company          string   `json:"company,omitempty"`
	Location         string   `json:"location,omitempty"`
	Summary          string   `json:"summary"`
	Responsibilities []string `json:"responsibilities"`
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	Qualifications   []string `json:"qualifications"`
	Seniority        string   `json:"seniority,omitempty"`
	Keywords         []string `json:"keywords"`
}

// FitEvaluation is the terminal verdict for a (profile, job) pair. FitScore is
// always an integer in [0,100] and IsFit is derived from it by the pipeline's
// threshold rule, never taken from the model.
type FitEvaluation struct {
	FitScore        int      `json:"fit_score"`
	IsFit           bool     `json:"is_fit"`
	FitSummary      string   `json:"fit_summary"`
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
	MissingKeywords []string `json:"missing_keywords"`
	RiskFlags       []string `json:"risk_flags"`
}
