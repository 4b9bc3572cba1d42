package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/justsurfingit/uplift/internal/models"
)

// MemoryJobRepository keeps listings in process memory. Everything is lost on restart.
type MemoryJobRepository struct {
	mu        sync.RWMutex
	jobs      []models.Job
	processed map[string]struct{}
}

func NewMemoryJobRepository(seed []models.Job) *MemoryJobRepository {
	jobs := make([]models.Job, 0, len(seed))
	for _, j := range seed {
		jobs = append(jobs, cloneJob(j))
	}
	return &MemoryJobRepository{
		jobs:      jobs,
		processed: make(map[string]struct{}),
	}
}

func (r *MemoryJobRepository) List(_ context.Context) ([]models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Job, len(r.jobs))
	for i, j := range r.jobs {
		out[i] = cloneJob(j)
	}
	return out, nil
}

func (r *MemoryJobRepository) Get(_ context.Context, id string) (*models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	job := cloneJob(r.jobs[i])
	return &job, nil
}

// Create prepends the listing so the newest post comes first.
func (r *MemoryJobRepository) Create(_ context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(job.ID) >= 0 {
		return fmt.Errorf("job %s already exists", job.ID)
	}
	r.jobs = slices.Insert(r.jobs, 0, cloneJob(*job))
	return nil
}

func (r *MemoryJobRepository) Update(_ context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(job.ID)
	if i < 0 {
		return ErrNotFound
	}
	r.jobs[i] = cloneJob(*job)
	return nil
}

func (r *MemoryJobRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.jobs = slices.Delete(r.jobs, i, i+1)
	return nil
}

func (r *MemoryJobRepository) MarkMessageProcessed(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.processed[id]; ok {
		return true, nil
	}
	r.processed[id] = struct{}{}
	return false, nil
}

// caller holds r.mu
func (r *MemoryJobRepository) indexOf(id string) int {
	return slices.IndexFunc(r.jobs, func(j models.Job) bool { return j.ID == id })
}

func cloneJob(j models.Job) models.Job {
	j.AdditionalLevels = slices.Clone(j.AdditionalLevels)
	j.EssentialSkills = slices.Clone(j.EssentialSkills)
	j.Requirements = slices.Clone(j.Requirements)
	return j
}
