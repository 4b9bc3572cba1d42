package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/uplift/internal/dtos"
	"github.com/justsurfingit/uplift/internal/metrics"
	"github.com/justsurfingit/uplift/internal/models"
	"github.com/justsurfingit/uplift/internal/repository"
	"go.uber.org/zap"
)

type ListingService struct {
	Repo     repository.JobRepository
	Accounts *AccountService
	Logger   *zap.Logger

	// Overridable in tests.
	Now   func() time.Time
	NewID func() string
}

func NewListingService(repo repository.JobRepository, accounts *AccountService, logger *zap.Logger) *ListingService {
	return &ListingService{
		Repo:     repo,
		Accounts: accounts,
		Logger:   logger,
		Now:      time.Now,
		NewID:    func() string { return uuid.NewString() },
	}
}

// Browse lists the listings matching the filter.
func (s *ListingService) Browse(ctx context.Context, f ListingFilter) ([]models.Job, error) {
	jobs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return FilterJobs(jobs, f, s.Now()), nil
}

func (s *ListingService) Get(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.Repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrJobNotFound
	}
	return job, err
}

// Post publishes a new listing on behalf of accountID.
func (s *ListingService) Post(ctx context.Context, accountID string, req *dtos.JobPostRequest) (*models.Job, error) {
	job, err := buildJob(req)
	if err != nil {
		return nil, err
	}
	job.PostedBy = accountID
	job.Source = models.SourceUser
	if err := s.Publish(ctx, job); err != nil {
		return nil, err
	}
	s.Logger.Info("Listing posted",
		zap.String("job_id", job.ID),
		zap.String("account_id", accountID),
		zap.String("title", job.Title))
	return job, nil
}

// Publish stores a fully built listing, assigning its id and timestamps.
func (s *ListingService) Publish(ctx context.Context, job *models.Job) error {
	if strings.TrimSpace(job.Title) == "" || strings.TrimSpace(job.Company) == "" {
		return ErrInvalidListing
	}
	if !job.Type.Valid() {
		job.Type = models.JobTypeFullTime
	}
	if job.Location == "" {
		job.Location = "Remote"
	}
	if job.Logo == "" {
		job.Logo = logoURL(job.Company)
	}
	now := s.Now()
	job.ID = s.NewID()
	job.CreatedAt = now
	job.UpdatedAt = now

	if err := s.Repo.Create(ctx, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	metrics.ListingsPublishedTotal.WithLabelValues(job.Source).Inc()
	return nil
}

// Update replaces the editable fields of a listing the account posted.
// The id, creation time and poster are kept.
func (s *ListingService) Update(ctx context.Context, accountID, id string, req *dtos.JobPostRequest) (*models.Job, error) {
	existing, err := s.owned(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	job, err := buildJob(req)
	if err != nil {
		return nil, err
	}
	job.ID = existing.ID
	job.CreatedAt = existing.CreatedAt
	job.PostedBy = existing.PostedBy
	job.Source = existing.Source
	job.UpdatedAt = s.Now()

	if err := s.Repo.Update(ctx, job); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// Delete removes a listing the account posted and drops it from every history.
func (s *ListingService) Delete(ctx context.Context, accountID, id string) error {
	if _, err := s.owned(ctx, accountID, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("delete job: %w", err)
	}
	if s.Accounts != nil {
		s.Accounts.ForgetListing(id)
	}
	s.Logger.Info("Listing deleted", zap.String("job_id", id), zap.String("account_id", accountID))
	return nil
}

// Postings returns the listings posted by the account, newest first.
func (s *ListingService) Postings(ctx context.Context, accountID string) ([]models.Job, error) {
	jobs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	var mine []models.Job
	for _, j := range jobs {
		if j.PostedBy == accountID {
			mine = append(mine, j)
		}
	}
	return mine, nil
}

// Companies returns the distinct company names currently listed.
func (s *ListingService) Companies(ctx context.Context) ([]string, error) {
	jobs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, j := range jobs {
		if !seen[j.Company] {
			seen[j.Company] = true
			names = append(names, j.Company)
		}
	}
	return names, nil
}

// EditForm splits a listing back into the fields of the post form.
func EditForm(job *models.Job) dtos.JobEditForm {
	form := dtos.JobEditForm{
		JobPostRequest: dtos.JobPostRequest{
			Title:            job.Title,
			Company:          job.Company,
			Description:      job.Description,
			ApplyLink:        job.ApplyLink,
			Location:         job.Location,
			Type:             string(job.Type),
			Currency:         DefaultCurrency,
			EssentialSkills:  job.EssentialSkills,
			AdditionalLevels: job.AdditionalLevels,
		},
	}
	if code, lo, hi, ok := ParseSalary(job.Salary); ok {
		form.Currency = code
		form.MinSalary = lo
		form.MaxSalary = hi
		form.SalaryParsed = true
	}
	return form
}

func (s *ListingService) owned(ctx context.Context, accountID, id string) (*models.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.PostedBy == "" || job.PostedBy != accountID {
		return nil, ErrForbidden
	}
	return job, nil
}

func buildJob(req *dtos.JobPostRequest) (*models.Job, error) {
	title := strings.TrimSpace(req.Title)
	company := strings.TrimSpace(req.Company)
	description := strings.TrimSpace(req.Description)
	applyLink := strings.TrimSpace(req.ApplyLink)
	if title == "" || company == "" || description == "" || applyLink == "" {
		return nil, ErrInvalidListing
	}

	minSalary, err := FormatAmount(req.MinSalary)
	if err != nil {
		return nil, err
	}
	maxSalary, err := FormatAmount(req.MaxSalary)
	if err != nil {
		return nil, err
	}
	if minSalary == "" || maxSalary == "" {
		return nil, ErrInvalidListing
	}

	jobType := models.JobType(req.Type)
	if req.Type == "" {
		jobType = models.JobTypeFullTime
	}
	if !jobType.Valid() {
		return nil, fmt.Errorf("%w: unknown job type %q", ErrInvalidListing, req.Type)
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		location = "Remote"
	}

	return &models.Job{
		Title:            title,
		Company:          company,
		Location:         location,
		Type:             jobType,
		AdditionalLevels: uniqueTrimmed(req.AdditionalLevels),
		EssentialSkills:  uniqueTrimmed(req.EssentialSkills),
		Salary:           FormatSalary(strings.ToUpper(strings.TrimSpace(req.Currency)), minSalary, maxSalary),
		Description:      description,
		Requirements:     []string{"See description"},
		Logo:             logoURL(company),
		ApplyLink:        applyLink,
	}, nil
}

func logoURL(company string) string {
	return "https://picsum.photos/seed/" + company + "/100/100"
}

// uniqueTrimmed drops blanks and repeats, keeping first-seen order.
func uniqueTrimmed(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
