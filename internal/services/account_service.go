package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/uplift/internal/dtos"
	"github.com/justsurfingit/uplift/internal/metrics"
	"github.com/justsurfingit/uplift/internal/models"
	"github.com/justsurfingit/uplift/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// MaxRecentlyViewed caps each account's history.
	MaxRecentlyViewed = 20
	MinPasswordLength = 6
)

var avatarColors = []string{
	"#8DFF74", "#78D9FF", "#ff9494", "#f5c6f5", "#FFEB3B",
	"#E2FF31", "#FF9F40", "#FFCD56", "#4BC0C0", "#9966FF",
}

// AccountService keeps accounts and login sessions in memory.
type AccountService struct {
	Repo   repository.JobRepository
	Logger *zap.Logger
	Now    func() time.Time

	// bcrypt cost; tests lower it.
	HashCost int

	mu       sync.RWMutex
	accounts map[string]*models.Account // by id
	byEmail  map[string]string          // lower-cased email -> id
	sessions map[string]string          // token -> id
}

func NewAccountService(repo repository.JobRepository, logger *zap.Logger) *AccountService {
	return &AccountService{
		Repo:     repo,
		Logger:   logger,
		Now:      time.Now,
		HashCost: bcrypt.DefaultCost,
		accounts: make(map[string]*models.Account),
		byEmail:  make(map[string]string),
		sessions: make(map[string]string),
	}
}

// Register creates an account and opens a session for it.
func (s *AccountService) Register(req *dtos.RegisterRequest) (string, models.Account, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		return "", models.Account{}, ErrInvalidAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.HashCost)
	if err != nil {
		return "", models.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[email]; taken {
		return "", models.Account{}, ErrEmailTaken
	}
	acct := &models.Account{
		ID:           uuid.NewString(),
		CreatedAt:    s.Now(),
		Name:         name,
		Email:        email,
		Title:        strings.TrimSpace(req.Title),
		AvatarColor:  avatarColors[rand.IntN(len(avatarColors))],
		PasswordHash: hash,
	}
	s.accounts[acct.ID] = acct
	s.byEmail[email] = acct.ID

	s.Logger.Info("Account registered", zap.String("account_id", acct.ID))
	return s.openSession(acct.ID), cloneAccount(acct), nil
}

func (s *AccountService) Login(email, password string) (string, models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return "", models.Account{}, ErrInvalidCredentials
	}
	acct := s.accounts[id]
	if err := bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)); err != nil {
		return "", models.Account{}, ErrInvalidCredentials
	}
	return s.openSession(id), cloneAccount(acct), nil
}

func (s *AccountService) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[token]; ok {
		delete(s.sessions, token)
		metrics.ActiveSessions.Dec()
	}
}

// Authenticate resolves a session token to its account id.
func (s *AccountService) Authenticate(token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.sessions[token]
	if !ok {
		return "", ErrUnauthorized
	}
	return id, nil
}

func (s *AccountService) Profile(accountID string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.accounts[accountID]
	if !ok {
		return models.Account{}, ErrUnauthorized
	}
	return cloneAccount(acct), nil
}

// UpdateProfile changes the display fields. An empty avatar colour keeps the current one.
func (s *AccountService) UpdateProfile(accountID string, req *dtos.ProfileUpdateRequest) (models.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Account{}, ErrInvalidAccount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[accountID]
	if !ok {
		return models.Account{}, ErrUnauthorized
	}
	acct.Name = name
	acct.Title = strings.TrimSpace(req.Title)
	acct.Bio = strings.TrimSpace(req.Bio)
	if req.AvatarColor != "" {
		acct.AvatarColor = req.AvatarColor
	}
	return cloneAccount(acct), nil
}

func (s *AccountService) ChangePassword(accountID, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.HashCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[accountID]
	if !ok {
		return ErrUnauthorized
	}
	acct.PasswordHash = hash
	return nil
}

func (s *AccountService) SetDarkMode(accountID string, on bool) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[accountID]
	if !ok {
		return models.Account{}, ErrUnauthorized
	}
	acct.DarkMode = on
	return cloneAccount(acct), nil
}

// RecordView moves jobID to the front of the account's history.
func (s *AccountService) RecordView(accountID, jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[accountID]
	if !ok {
		return
	}
	ids := slices.DeleteFunc(acct.RecentlyViewedIDs, func(id string) bool { return id == jobID })
	ids = slices.Insert(ids, 0, jobID)
	if len(ids) > MaxRecentlyViewed {
		ids = ids[:MaxRecentlyViewed]
	}
	acct.RecentlyViewedIDs = ids
}

// History resolves the account's recently viewed ids, skipping listings that are gone.
func (s *AccountService) History(ctx context.Context, accountID string) ([]models.Job, error) {
	acct, err := s.Profile(accountID)
	if err != nil {
		return nil, err
	}
	jobs := make([]models.Job, 0, len(acct.RecentlyViewedIDs))
	for _, id := range acct.RecentlyViewedIDs {
		job, err := s.Repo.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

// ForgetListing drops a deleted listing from every account's history.
func (s *AccountService) ForgetListing(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acct := range s.accounts {
		acct.RecentlyViewedIDs = slices.DeleteFunc(acct.RecentlyViewedIDs, func(id string) bool { return id == jobID })
	}
}

// SeedDemo registers the demo account unless its email is already taken.
func (s *AccountService) SeedDemo(password string) error {
	_, acct, err := s.Register(&dtos.RegisterRequest{
		Name:     "Clara Nguyen",
		Email:    "clara@uplift.app",
		Title:    "Student",
		Password: password,
	})
	if errors.Is(err, ErrEmailTaken) {
		return nil
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.accounts[acct.ID].AvatarColor = "#f5c6f5"
	s.mu.Unlock()
	// Register opened a session nobody holds.
	s.closeSessionsOf(acct.ID)
	return nil
}

// Initials returns the upper-cased first letters of the first two words of name.
func Initials(name string) string {
	var letters []rune
	for _, word := range strings.Fields(name) {
		letters = append(letters, []rune(word)[0])
		if len(letters) == 2 {
			break
		}
	}
	return strings.ToUpper(string(letters))
}

// ProfileView renders an account for its owner.
func ProfileView(acct models.Account) dtos.ProfileResponse {
	return dtos.ProfileResponse{
		ID:                  acct.ID,
		Name:                acct.Name,
		Email:               acct.Email,
		Title:               acct.Title,
		Bio:                 acct.Bio,
		Initials:            Initials(acct.Name),
		AvatarColor:         acct.AvatarColor,
		DarkMode:            acct.DarkMode,
		CreatedAt:           acct.CreatedAt.Format(time.RFC3339),
		RecentlyViewedCount: len(acct.RecentlyViewedIDs),
	}
}

// caller holds s.mu
func (s *AccountService) openSession(accountID string) string {
	token := uuid.NewString()
	s.sessions[token] = accountID
	metrics.ActiveSessions.Inc()
	return token
}

func (s *AccountService) closeSessionsOf(accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, id := range s.sessions {
		if id == accountID {
			delete(s.sessions, token)
			metrics.ActiveSessions.Dec()
		}
	}
}

func cloneAccount(a *models.Account) models.Account {
	c := *a
	c.RecentlyViewedIDs = slices.Clone(a.RecentlyViewedIDs)
	c.PasswordHash = nil
	return c
}
