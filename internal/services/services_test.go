package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/justsurfingit/uplift/internal/dtos"
	"github.com/justsurfingit/uplift/internal/models"
	"github.com/justsurfingit/uplift/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	repo     *repository.MemoryJobRepository
	accounts *AccountService
	listings *ListingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := repository.NewMemoryJobRepository(models.SeedJobs(testNow))

	accounts := NewAccountService(repo, zap.NewNop())
	accounts.HashCost = bcrypt.MinCost
	accounts.Now = func() time.Time { return testNow }

	listings := NewListingService(repo, accounts, zap.NewNop())
	listings.Now = func() time.Time { return testNow }
	n := 0
	listings.NewID = func() string {
		n++
		return fmt.Sprintf("job-%d", n)
	}
	return &testEnv{repo: repo, accounts: accounts, listings: listings}
}

// register returns the new account's id.
func (e *testEnv) register(t *testing.T, name, email string) string {
	t.Helper()
	_, acct, err := e.accounts.Register(&dtos.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "secret1",
	})
	require.NoError(t, err)
	return acct.ID
}

func postRequest() *dtos.JobPostRequest {
	return &dtos.JobPostRequest{
		Title:       "Android Developer",
		Company:     "Grab",
		Description: "Build the driver app.",
		ApplyLink:   "https://grab.careers/apply",
		MinSalary:   "50000",
		MaxSalary:   "80000",
		Currency:    "SGD",
	}
}

func (e *testEnv) post(t *testing.T, accountID string) *models.Job {
	t.Helper()
	job, err := e.listings.Post(context.Background(), accountID, postRequest())
	require.NoError(t, err)
	return job
}
