package models

import "time"

const day = 24 * time.Hour

// SeedJobs returns the starter catalogue, newest first, dated relative to now.
func SeedJobs(now time.Time) []Job {
	return []Job{
		{
			ID:           "1",
			CreatedAt:    now.Add(-2 * day),
			UpdatedAt:    now.Add(-2 * day),
			Title:        "Senior Frontend Engineer",
			Company:      "TechFlow",
			Location:     "San Francisco, CA",
			Type:         JobTypeFullTime,
			Salary:       "$140k - $180k",
			Description:  "We are looking for a highly skilled React developer to lead our frontend team. You will work on building scalable web architectures and mentoring junior developers.",
			Requirements: []string{"React", "TypeScript", "Tailwind CSS", "Redux"},
			Logo:         "https://picsum.photos/seed/tech/100/100",
			ApplyLink:    "https://google.com/careers",
			Source:       SourceSeed,
		},
		{
			ID:           "2",
			CreatedAt:    now.Add(-5 * day),
			UpdatedAt:    now.Add(-5 * day),
			Title:        "Product Designer",
			Company:      "Creative Studio",
			Location:     "Remote",
			Type:         JobTypeRemote,
			Salary:       "$90k - $120k",
			Description:  "Join our design-first agency to craft beautiful user experiences for global startups. You should have a strong portfolio showcasing mobile and web projects.",
			Requirements: []string{"Figma", "UI/UX Design", "Prototyping"},
			Logo:         "https://picsum.photos/seed/design/100/100",
			ApplyLink:    "https://figma.com/careers",
			Source:       SourceSeed,
		},
		{
			ID:           "3",
			CreatedAt:    now.Add(-7 * day),
			UpdatedAt:    now.Add(-7 * day),
			Title:        "Backend Developer (Node.js)",
			Company:      "DataScale",
			Location:     "New York, NY",
			Type:         JobTypeFullTime,
			Salary:       "$130k - $160k",
			Description:  "Help us scale our real-time data processing engines. You will be responsible for API design and performance optimization.",
			Requirements: []string{"Node.js", "PostgreSQL", "Redis", "AWS"},
			Logo:         "https://picsum.photos/seed/data/100/100",
			ApplyLink:    "https://stripe.com/jobs",
			Source:       SourceSeed,
		},
	}
}
