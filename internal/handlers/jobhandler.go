package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/uplift/internal/dtos"
	"github.com/justsurfingit/uplift/internal/services"
)

type SkillExtractor interface {
	ExtractSkills(ctx context.Context, description string) []string
}

type JobWriter interface {
	GenerateJobDescription(ctx context.Context, title, company string) string
	ExtractJobDetails(ctx context.Context, raw string) (*services.JobDraft, error)
}

type JobHandler struct {
	Listings *services.ListingService
	Accounts *services.AccountService
	Skills   SkillExtractor
	Writer   JobWriter
	Now      func() time.Time
}

func NewJobHandler(listings *services.ListingService, accounts *services.AccountService, skills SkillExtractor, writer JobWriter) *JobHandler {
	return &JobHandler{
		Listings: listings,
		Accounts: accounts,
		Skills:   skills,
		Writer:   writer,
		Now:      time.Now,
	}
}

// ListJobs is GET /jobs?q=&type=&date=
func (h *JobHandler) ListJobs(c *gin.Context) {
	var q dtos.ListingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	jobType, err := services.ParseTypeFilter(q.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	date, err := services.ParseDateFilter(q.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	jobs, err := h.Listings.Browse(c.Request.Context(), services.ListingFilter{
		Search: q.Search,
		Type:   jobType,
		Date:   date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.JobViews(jobs, accountID(c), h.Now()))
}

// GetJob is GET /jobs/:id. Viewing while logged in adds the listing to the history.
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.Listings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if id := accountID(c); id != "" {
		h.Accounts.RecordView(id, job.ID)
	}
	c.JSON(http.StatusOK, services.JobView(*job, accountID(c), h.Now()))
}

// EditForm is GET /jobs/:id/edit
func (h *JobHandler) EditForm(c *gin.Context) {
	job, err := h.Listings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if job.PostedBy != accountID(c) {
		respondError(c, services.ErrForbidden)
		return
	}
	c.JSON(http.StatusOK, services.EditForm(job))
}

// CreateJob is POST /jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	job, err := h.Listings.Post(c.Request.Context(), accountID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, services.JobView(*job, accountID(c), h.Now()))
}

// UpdateJob is PUT /jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dtos.JobPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	job, err := h.Listings.Update(c.Request.Context(), accountID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.JobView(*job, accountID(c), h.Now()))
}

// DeleteJob is DELETE /jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.Listings.Delete(c.Request.Context(), accountID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExtractSkills is GET /jobs/:id/skills. It answers 200 with an empty list when
// the AI call fails.
func (h *JobHandler) ExtractSkills(c *gin.Context) {
	job, err := h.Listings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	skills := h.Skills.ExtractSkills(c.Request.Context(), job.Description)
	c.JSON(http.StatusOK, dtos.SkillsResponse{JobID: job.ID, Skills: skills})
}

// DescribeJob is POST /jobs/describe
func (h *JobHandler) DescribeJob(c *gin.Context) {
	var req dtos.JobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	text := h.Writer.GenerateJobDescription(c.Request.Context(), req.Title, req.Company)
	c.JSON(http.StatusOK, gin.H{"description": text})
}

// ParseJob is POST /jobs/extract
func (h *JobHandler) ParseJob(c *gin.Context) {
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	draft, err := h.Writer.ExtractJobDetails(c.Request.Context(), req.RawHTML)
	if err != nil {
		respondError(c, err)
		return
	}
	if draft.ApplyLink == "" {
		draft.ApplyLink = req.URL
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    draft,
	})
}
