package repository

import (
	"context"
	"errors"

	"github.com/justsurfingit/uplift/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobRepository stores listings in a SQL database through gorm.
type GormJobRepository struct {
	DB *gorm.DB
}

func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{DB: db}
}

func (r *GormJobRepository) List(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *GormJobRepository) Get(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *GormJobRepository) Create(ctx context.Context, job *models.Job) error {
	return r.DB.WithContext(ctx).Create(job).Error
}

func (r *GormJobRepository) Update(ctx context.Context, job *models.Job) error {
	res := r.DB.WithContext(ctx).Model(&models.Job{}).Where("id = ?", job.ID).Select("*").Updates(job)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormJobRepository) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Job{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormJobRepository) MarkMessageProcessed(ctx context.Context, id string) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProcessedMessage{ID: id})
	if res.Error != nil {
		return false, res.Error
	}
	// Nothing inserted means the id was already there.
	return res.RowsAffected == 0, nil
}
