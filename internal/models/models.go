package models

import (
	"time"
)

type JobType string

const (
	JobTypeFullTime  JobType = "Full-time"
	JobTypePartTime  JobType = "Part-time"
	JobTypeContract  JobType = "Contract"
	JobTypeFreelance JobType = "Freelance"
	JobTypeRemote    JobType = "Remote"
	JobTypeIntern    JobType = "Intern"
)

var JobTypes = []JobType{
	JobTypeFullTime,
	JobTypePartTime,
	JobTypeContract,
	JobTypeFreelance,
	JobTypeRemote,
	JobTypeIntern,
}

// Valid reports whether t is one of the known job types.
func (t JobType) Valid() bool {
	for _, known := range JobTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Where a listing came from.
const (
	SourceSeed  = "seed"
	SourceUser  = "user"
	SourceInbox = "inbox"
)

type Job struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title    string  `gorm:"not null" json:"title"`
	Company  string  `gorm:"not null;index" json:"company"`
	Location string  `json:"location"`
	Type     JobType `gorm:"not null" json:"type"`

	// Stored as JSON columns in SQL backends.
	AdditionalLevels []string `gorm:"serializer:json" json:"additional_levels"`
	EssentialSkills  []string `gorm:"serializer:json" json:"essential_skills"`
	Requirements     []string `gorm:"serializer:json" json:"requirements"`

	Salary      string `json:"salary"`
	Description string `gorm:"type:text" json:"description"`
	Logo        string `json:"logo"`
	ApplyLink   string `json:"apply_link"`

	// PostedBy is the account id of the poster, empty for seeded and imported listings.
	PostedBy string `gorm:"index" json:"posted_by,omitempty"`
	Source   string `gorm:"default:'user'" json:"source"`
}

// Account is a user profile. It only lives in process memory.
type Account struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name        string `json:"name"`
	Email       string `json:"email"`
	Title       string `json:"title"`
	Bio         string `json:"bio"`
	AvatarColor string `json:"avatar_color"`
	DarkMode    bool   `json:"dark_mode"`

	PasswordHash []byte `json:"-"`

	// Most recent first.
	RecentlyViewedIDs []string `json:"recently_viewed_ids"`
}

type ProcessedMessage struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
}
