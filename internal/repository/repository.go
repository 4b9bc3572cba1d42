package repository

import (
	"context"
	"errors"

	"github.com/justsurfingit/uplift/internal/models"
)

var ErrNotFound = errors.New("job not found")

// JobRepository stores listings. List returns them newest first.
type JobRepository interface {
	List(ctx context.Context) ([]models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error

	// MarkMessageProcessed records an imported inbox message and reports whether
	// it had already been recorded.
	MarkMessageProcessed(ctx context.Context, id string) (bool, error)
}
