package services

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/justsurfingit/uplift/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var filterNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ageDays(d int) time.Time {
	return filterNow.Add(-time.Duration(d) * 24 * time.Hour)
}

func filterFixture() []models.Job {
	return []models.Job{
		{ID: "a", Title: "Senior Go Engineer", Company: "Stripe", Type: models.JobTypeFullTime, CreatedAt: ageDays(3)},
		{ID: "b", Title: "Product Designer", Company: "Creative Studio", Type: models.JobTypeRemote, CreatedAt: ageDays(1)},
		{ID: "c", Title: "Data Intern", Company: "GoCardless", Type: models.JobTypeIntern, CreatedAt: ageDays(45)},
		{ID: "d", Title: "Backend Developer", Company: "DataScale", Type: models.JobTypeFullTime, CreatedAt: ageDays(75)},
		{ID: "e", Title: "Contract QA", Company: "TechFlow", Type: models.JobTypeContract, CreatedAt: ageDays(30)},
	}
}

func ids(jobs []models.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestFilterJobs(t *testing.T) {
	tests := []struct {
		name   string
		filter ListingFilter
		want   []string
	}{
		{"no filter keeps input order", ListingFilter{}, []string{"a", "b", "c", "d", "e"}},
		{"search matches title case-insensitively", ListingFilter{Search: "designer"}, []string{"b"}},
		{"search matches company", ListingFilter{Search: "go"}, []string{"a", "c"}},
		{"search matches nothing", ListingFilter{Search: "rust"}, []string{}},
		{"type all", ListingFilter{Type: TypeAll}, []string{"a", "b", "c", "d", "e"}},
		{"type equality", ListingFilter{Type: "Full-time"}, []string{"a", "d"}},
		{"this month is younger than 30 days", ListingFilter{Date: DateThisMonth}, []string{"a", "b"}},
		{"last month is 30 to 60 days", ListingFilter{Date: DateLastMonth}, []string{"c", "e"}},
		{"latest sorts newest first", ListingFilter{Date: DateLatest}, []string{"b", "a", "e", "c", "d"}},
		{"oldest sorts oldest first", ListingFilter{Date: DateOldest}, []string{"d", "c", "e", "a", "b"}},
		{"predicates combine", ListingFilter{Search: "e", Type: "Full-time", Date: DateOldest}, []string{"d", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterJobs(filterFixture(), tt.filter, filterNow)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("FilterJobs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterJobs_LastMonthBounds(t *testing.T) {
	jobs := []models.Job{
		{ID: "29d", CreatedAt: ageDays(29)},
		{ID: "30d", CreatedAt: ageDays(30)},
		{ID: "59d", CreatedAt: ageDays(59)},
		{ID: "60d", CreatedAt: ageDays(60)},
		{ID: "61d", CreatedAt: ageDays(61)},
	}
	got := FilterJobs(jobs, ListingFilter{Date: DateLastMonth}, filterNow)
	assert.Equal(t, []string{"30d", "59d"}, ids(got))

	got = FilterJobs(jobs, ListingFilter{Date: DateThisMonth}, filterNow)
	assert.Equal(t, []string{"29d"}, ids(got))
}

func TestFilterJobs_DoesNotReorderInput(t *testing.T) {
	jobs := filterFixture()
	FilterJobs(jobs, ListingFilter{Date: DateLatest}, filterNow)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(jobs))
}

func TestParseDateFilter(t *testing.T) {
	for in, want := range map[string]DateFilter{
		"":           DateAnytime,
		"Anytime":    DateAnytime,
		"this month": DateThisMonth,
		"last_month": DateLastMonth,
		"LATEST":     DateLatest,
		"Oldest":     DateOldest,
	} {
		got, err := ParseDateFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDateFilter("yesterday")
	require.ErrorIs(t, err, ErrInvalidFilter)
}

func TestParseTypeFilter(t *testing.T) {
	got, err := ParseTypeFilter("")
	require.NoError(t, err)
	assert.Equal(t, TypeAll, got)

	got, err = ParseTypeFilter("full-time")
	require.NoError(t, err)
	assert.Equal(t, "Full-time", got)

	_, err = ParseTypeFilter("Volunteer")
	require.ErrorIs(t, err, ErrInvalidFilter)
}
