package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/justsurfingit/uplift/internal/models"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InboxMessage is one email the importer may turn into a listing.
type InboxMessage struct {
	ID      string
	Subject string
	From    string
	Body    string
}

type Inbox interface {
	Fetch(ctx context.Context) ([]InboxMessage, error)
}

type JobExtractor interface {
	ExtractJobDetails(ctx context.Context, raw string) (*JobDraft, error)
}

// EmailService imports job-alert emails as listings.
type EmailService struct {
	Inbox     Inbox
	Extractor JobExtractor
	Listings  *ListingService
	Logger    *zap.Logger

	// Upper bound for one sync cycle.
	SyncTimeout time.Duration

	mu sync.Mutex
}

func NewEmailService(inbox Inbox, extractor JobExtractor, listings *ListingService, logger *zap.Logger) *EmailService {
	return &EmailService{
		Inbox:       inbox,
		Extractor:   extractor,
		Listings:    listings,
		Logger:      logger,
		SyncTimeout: 2 * time.Minute,
	}
}

// RunWatcher syncs once immediately and then on every tick of schedule until ctx
// is cancelled. It returns after the last running sync has finished.
func (s *EmailService) RunWatcher(ctx context.Context, schedule string) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, func() { s.syncLogged(ctx) }); err != nil {
		return fmt.Errorf("invalid inbox schedule %q: %w", schedule, err)
	}

	s.Logger.Info("Inbox watcher started", zap.String("schedule", schedule))
	c.Start()
	s.syncLogged(ctx)

	<-ctx.Done()
	<-c.Stop().Done()
	s.Logger.Info("Inbox watcher stopped")
	return nil
}

func (s *EmailService) syncLogged(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.SyncEmails(ctx); err != nil {
		s.Logger.Error("Inbox sync failed", zap.Error(err))
	}
}

// SyncEmails fetches candidate emails and publishes one listing per new message.
// It returns how many listings were published.
func (s *EmailService) SyncEmails(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.SyncTimeout)
	defer cancel()

	s.Logger.Debug("Inbox sync cycle starting")
	messages, err := s.Inbox.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		s.Logger.Debug("No new job alert emails")
		return 0, nil
	}

	published := 0
	for _, msg := range messages {
		seen, err := s.Listings.Repo.MarkMessageProcessed(ctx, msg.ID)
		if err != nil {
			return published, fmt.Errorf("mark message %s: %w", msg.ID, err)
		}
		if seen {
			continue
		}
		if s.processSingleEmail(ctx, msg) {
			published++
		}
	}
	if published > 0 {
		s.Logger.Info("Inbox sync published listings", zap.Int("count", published))
	}
	return published, nil
}

// processSingleEmail reports whether the message became a listing.
func (s *EmailService) processSingleEmail(ctx context.Context, msg InboxMessage) bool {
	log := s.Logger.With(zap.String("message_id", msg.ID), zap.String("subject", msg.Subject))

	draft, err := s.Extractor.ExtractJobDetails(ctx, msg.Subject+"\n\n"+msg.Body)
	if err != nil {
		log.Warn("Skipped: extraction failed", zap.Error(err))
		return false
	}
	if strings.TrimSpace(draft.Title) == "" {
		log.Info("Skipped: no job title found")
		return false
	}

	company := strings.TrimSpace(draft.CompanyName)
	if company == "" {
		known, err := s.Listings.Companies(ctx)
		if err != nil {
			log.Warn("Skipped: listing companies failed", zap.Error(err))
			return false
		}
		company = MatchCompany(msg.Subject, msg.From, known)
	}
	if company == "" {
		log.Info("Skipped: company could not be determined")
		return false
	}

	job := draftToJob(draft, company)
	if err := s.Listings.Publish(ctx, job); err != nil {
		log.Error("Publish failed", zap.Error(err))
		return false
	}
	log.Info("Imported listing", zap.String("job_id", job.ID), zap.String("company", company))
	return true
}

func draftToJob(d *JobDraft, company string) *models.Job {
	skills := uniqueTrimmed(d.TechStack)
	requirements := skills
	if len(requirements) == 0 {
		requirements = []string{"See description"}
	}
	salary := strings.TrimSpace(d.SalaryRange)
	if salary == "" {
		salary = "Not specified"
	}
	return &models.Job{
		Title:           strings.TrimSpace(d.Title),
		Company:         company,
		Location:        strings.TrimSpace(d.Location),
		Type:            models.JobType(strings.TrimSpace(d.Type)),
		EssentialSkills: skills,
		Requirements:    requirements,
		Salary:          salary,
		Description:     strings.TrimSpace(d.Description),
		ApplyLink:       strings.TrimSpace(d.ApplyLink),
		Source:          models.SourceInbox,
	}
}
