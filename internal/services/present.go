package services

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/justsurfingit/uplift/internal/dtos"
	"github.com/justsurfingit/uplift/internal/models"
)

var accentColors = []string{"#8DFF74", "#78D9FF", "#ff9494", "#f5c6f5", "#FFEB3B", "#E2FF31"}

// AccentColor picks a stable card colour from the byte sum of the listing id.
func AccentColor(id string) string {
	sum := 0
	for i := 0; i < len(id); i++ {
		sum += int(id[i])
	}
	return accentColors[sum%len(accentColors)]
}

// PostedDate labels a creation time relative to now, e.g. "2 days ago".
func PostedDate(created, now time.Time) string {
	if now.Sub(created) < time.Minute {
		return "Just now"
	}
	return humanize.RelTime(created, now, "ago", "from now")
}

// JobView renders a listing for viewerID (empty for anonymous callers).
func JobView(job models.Job, viewerID string, now time.Time) dtos.JobResponse {
	return dtos.JobResponse{
		ID:               job.ID,
		Title:            job.Title,
		Company:          job.Company,
		Location:         job.Location,
		Type:             string(job.Type),
		AdditionalLevels: nonNil(job.AdditionalLevels),
		EssentialSkills:  nonNil(job.EssentialSkills),
		Salary:           job.Salary,
		Description:      job.Description,
		Requirements:     nonNil(job.Requirements),
		PostedDate:       PostedDate(job.CreatedAt, now),
		CreatedAt:        job.CreatedAt.UnixMilli(),
		Logo:             job.Logo,
		ApplyLink:        job.ApplyLink,
		AccentColor:      AccentColor(job.ID),
		Source:           job.Source,
		Mine:             viewerID != "" && job.PostedBy == viewerID,
	}
}

func JobViews(jobs []models.Job, viewerID string, now time.Time) []dtos.JobResponse {
	out := make([]dtos.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, JobView(j, viewerID, now))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
