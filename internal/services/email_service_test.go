package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/justsurfingit/uplift/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type fakeInbox struct {
	mu       sync.Mutex
	messages []InboxMessage
	err      error
	fetches  int
}

func (f *fakeInbox) Fetch(context.Context) ([]InboxMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return f.messages, f.err
}

func (f *fakeInbox) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

// fakeExtractor answers with the draft registered for the message subject.
type fakeExtractor struct {
	drafts map[string]*JobDraft
}

func (f *fakeExtractor) ExtractJobDetails(_ context.Context, raw string) (*JobDraft, error) {
	for subject, d := range f.drafts {
		if len(raw) >= len(subject) && raw[:len(subject)] == subject {
			return d, nil
		}
	}
	return nil, errors.New("no draft")
}

func TestEmailService_SyncEmailsPublishesNewMessages(t *testing.T) {
	env := newTestEnv(t)
	inbox := &fakeInbox{messages: []InboxMessage{
		{ID: "m1", Subject: "Job alert: Go Engineer", From: "alerts@linkedin.com"},
		{ID: "m2", Subject: "New role at DataScale", From: "talent@datascale.io"},
		{ID: "m3", Subject: "Your weekly newsletter", From: "news@example.com"},
		{ID: "m4", Subject: "Unrelated", From: "x@example.com"},
	}}
	extractor := &fakeExtractor{drafts: map[string]*JobDraft{
		"Job alert: Go Engineer": {
			CompanyName: "Stripe", Title: "Go Engineer", Type: "Remote",
			TechStack: []string{"Go", "Postgres"}, ApplyLink: "https://stripe.com/jobs/1",
		},
		// No company in the draft: the sender domain resolves it.
		"New role at DataScale": {Title: "Data Engineer", SalaryRange: "$120k - $150k"},
		// No title: skipped.
		"Your weekly newsletter": {CompanyName: "Example"},
	}}
	svc := NewEmailService(inbox, extractor, env.listings, zap.NewNop())

	published, err := svc.SyncEmails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, published)

	jobs, err := env.listings.Browse(context.Background(), ListingFilter{})
	require.NoError(t, err)
	require.Len(t, jobs, 5)

	data := jobs[0]
	assert.Equal(t, "Data Engineer", data.Title)
	assert.Equal(t, "DataScale", data.Company)
	assert.Equal(t, "$120k - $150k", data.Salary)
	assert.Equal(t, models.JobTypeFullTime, data.Type)
	assert.Equal(t, "Remote", data.Location)
	assert.Equal(t, []string{"See description"}, data.Requirements)

	goJob := jobs[1]
	assert.Equal(t, "Stripe", goJob.Company)
	assert.Equal(t, models.JobTypeRemote, goJob.Type)
	assert.Equal(t, []string{"Go", "Postgres"}, goJob.EssentialSkills)
	assert.Equal(t, "Not specified", goJob.Salary)
	assert.Equal(t, models.SourceInbox, goJob.Source)
	assert.Empty(t, goJob.PostedBy)

	// Every message is processed once, published or not.
	published, err = svc.SyncEmails(context.Background())
	require.NoError(t, err)
	assert.Zero(t, published)
}

func TestEmailService_SyncEmailsFetchError(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEmailService(&fakeInbox{err: errors.New("gmail down")}, &fakeExtractor{}, env.listings, zap.NewNop())

	_, err := svc.SyncEmails(context.Background())
	require.Error(t, err)
}

func TestEmailService_RunWatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	env := newTestEnv(t)
	inbox := &fakeInbox{}
	svc := NewEmailService(inbox, &fakeExtractor{}, env.listings, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.RunWatcher(ctx, "@every 1h") }()

	require.Eventually(t, func() bool { return inbox.fetchCount() == 1 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestEmailService_RunWatcherRejectsBadSchedule(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEmailService(&fakeInbox{}, &fakeExtractor{}, env.listings, zap.NewNop())

	err := svc.RunWatcher(context.Background(), "every now and then")
	require.Error(t, err)
}
