package dtos

type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

type JobDescriptionRequest struct {
	Title   string `json:"title" binding:"required"`
	Company string `json:"company" binding:"required"`
}

// JobPostRequest is used both to post a new listing and to edit one.
type JobPostRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Description string `json:"description" binding:"required"`
	ApplyLink   string `json:"apply_link" binding:"required"`
	MinSalary   string `json:"min_salary" binding:"required"`
	MaxSalary   string `json:"max_salary" binding:"required"`

	// Optional Fields
	Location         string   `json:"location"` // Defaults to "Remote"
	Type             string   `json:"type" binding:"omitempty,jobtype"` // Defaults to "Full-time"
	Currency         string   `json:"currency"` // Defaults to "PHP"
	EssentialSkills  []string `json:"essential_skills"`
	AdditionalLevels []string `json:"additional_levels" binding:"omitempty,dive,jobtype"`
}

// ListingQuery is bound from the browse query string.
type ListingQuery struct {
	Search string `form:"q"`
	Type   string `form:"type"`
	Date   string `form:"date"`
}

// JobResponse is a listing plus the fields derived for display.
type JobResponse struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Type             string   `json:"type"`
	AdditionalLevels []string `json:"additional_levels"`
	EssentialSkills  []string `json:"essential_skills"`
	Salary           string   `json:"salary"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	PostedDate       string   `json:"posted_date"`
	CreatedAt        int64    `json:"created_at"` // unix milliseconds
	Logo             string   `json:"logo"`
	ApplyLink        string   `json:"apply_link"`
	AccentColor      string   `json:"accent_color"`
	Source           string   `json:"source"`
	Mine             bool     `json:"mine"`
}

// JobEditForm pre-fills the edit screen, including the salary split back into parts.
type JobEditForm struct {
	JobPostRequest
	SalaryParsed bool `json:"salary_parsed"`
}

type SkillsResponse struct {
	JobID  string   `json:"job_id"`
	Skills []string `json:"skills"`
}
