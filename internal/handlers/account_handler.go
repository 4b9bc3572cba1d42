package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/uplift/internal/dtos"
	"github.com/justsurfingit/uplift/internal/services"
)

type AccountHandler struct {
	Accounts *services.AccountService
	Listings *services.ListingService
	Now      func() time.Time
}

func NewAccountHandler(accounts *services.AccountService, listings *services.ListingService) *AccountHandler {
	return &AccountHandler{Accounts: accounts, Listings: listings, Now: time.Now}
}

// Register is POST /auth/register
func (h *AccountHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	token, acct, err := h.Accounts.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.SessionResponse{Token: token, Profile: services.ProfileView(acct)})
}

// Login is POST /auth/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	token, acct, err := h.Accounts.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.SessionResponse{Token: token, Profile: services.ProfileView(acct)})
}

// Logout is POST /auth/logout
func (h *AccountHandler) Logout(c *gin.Context) {
	h.Accounts.Logout(c.GetString(ctxToken))
	c.Status(http.StatusNoContent)
}

// Profile is GET /me
func (h *AccountHandler) Profile(c *gin.Context) {
	acct, err := h.Accounts.Profile(accountID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ProfileView(acct))
}

// UpdateProfile is PUT /me
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req dtos.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	acct, err := h.Accounts.UpdateProfile(accountID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ProfileView(acct))
}

// ChangePassword is PUT /me/password
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req dtos.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.Accounts.ChangePassword(accountID(c), req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully!"})
}

// SetTheme is PUT /me/theme
func (h *AccountHandler) SetTheme(c *gin.Context) {
	var req dtos.ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	acct, err := h.Accounts.SetDarkMode(accountID(c), *req.DarkMode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ProfileView(acct))
}

// History is GET /me/history
func (h *AccountHandler) History(c *gin.Context) {
	jobs, err := h.Accounts.History(c.Request.Context(), accountID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.JobViews(jobs, accountID(c), h.Now()))
}

// Postings is GET /me/postings
func (h *AccountHandler) Postings(c *gin.Context) {
	jobs, err := h.Listings.Postings(c.Request.Context(), accountID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.JobViews(jobs, accountID(c), h.Now()))
}

// Dashboard is GET /me/dashboard
func (h *AccountHandler) Dashboard(c *gin.Context) {
	id := accountID(c)
	acct, err := h.Accounts.Profile(id)
	if err != nil {
		respondError(c, err)
		return
	}
	history, err := h.Accounts.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	postings, err := h.Listings.Postings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dtos.DashboardResponse{
		UserName:       acct.Name,
		RecentlyViewed: services.JobViews(history, id, h.Now()),
		HistoryCount:   len(history),
		PostingsCount:  len(postings),
	})
}
