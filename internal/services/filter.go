package services

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/justsurfingit/uplift/internal/models"
	"golang.org/x/text/cases"
)

// DateFilter is either a posting-age window or a sort order.
type DateFilter string

const (
	DateAnytime   DateFilter = "Anytime"
	DateThisMonth DateFilter = "This Month"
	DateLastMonth DateFilter = "Last Month"
	DateLatest    DateFilter = "Latest"
	DateOldest    DateFilter = "Oldest"
)

// TypeAll disables the job type check.
const TypeAll = "All"

// A "month" is a fixed 30 days.
const monthWindow = 30 * 24 * time.Hour

var dateFilters = []DateFilter{DateAnytime, DateThisMonth, DateLastMonth, DateLatest, DateOldest}

// ParseDateFilter accepts the display label or its snake_case form, any case.
// An empty string means Anytime.
func ParseDateFilter(s string) (DateFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateAnytime, nil
	}
	norm := strings.ReplaceAll(strings.ToLower(s), "_", " ")
	for _, f := range dateFilters {
		if strings.ToLower(string(f)) == norm {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown date filter %q", ErrInvalidFilter, s)
}

// ParseTypeFilter returns TypeAll for an empty value.
func ParseTypeFilter(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, TypeAll) {
		return TypeAll, nil
	}
	for _, t := range models.JobTypes {
		if strings.EqualFold(string(t), s) {
			return string(t), nil
		}
	}
	return "", fmt.Errorf("%w: unknown job type %q", ErrInvalidFilter, s)
}

type ListingFilter struct {
	Search string
	Type   string
	Date   DateFilter
}

// FilterJobs returns the listings matching every active predicate. Latest and Oldest
// sort by creation time; any other date filter keeps the input order.
// The input slice is not modified.
func FilterJobs(jobs []models.Job, f ListingFilter, now time.Time) []models.Job {
	fold := cases.Fold()
	term := fold.String(f.Search)

	result := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		matchesSearch := strings.Contains(fold.String(job.Title), term) ||
			strings.Contains(fold.String(job.Company), term)
		matchesType := f.Type == "" || f.Type == TypeAll || string(job.Type) == f.Type

		matchesDate := true
		age := now.Sub(job.CreatedAt)
		switch f.Date {
		case DateThisMonth:
			matchesDate = age < monthWindow
		case DateLastMonth:
			matchesDate = age >= monthWindow && age < 2*monthWindow
		}

		if matchesSearch && matchesType && matchesDate {
			result = append(result, job)
		}
	}

	switch f.Date {
	case DateLatest:
		slices.SortStableFunc(result, func(a, b models.Job) int { return b.CreatedAt.Compare(a.CreatedAt) })
	case DateOldest:
		slices.SortStableFunc(result, func(a, b models.Job) int { return a.CreatedAt.Compare(b.CreatedAt) })
	}
	return result
}
