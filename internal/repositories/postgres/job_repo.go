package postgres

import (
	"context"
	"errors"

	"github.com/gigfeed/gigfeed/internal/models"
	"github.com/gigfeed/gigfeed/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobRepository interface {
	Upsert(ctx context.Context, j *models.JobPosting) error
	DeleteAll(ctx context.Context) error
	List(ctx context.Context) ([]models.JobPosting, error)
	GetByID(ctx context.Context, id string) (*models.JobPosting, error)
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Upsert(ctx context.Context, j *models.JobPosting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "currency", "budget_min", "budget_max", "skills", "type", "status", "seo_url", "raw", "posted_at", "updated_at"}),
		}).
		Create(j).Error
}

func (r *jobRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.JobPosting{}).Error
}

func (r *jobRepo) List(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	err := r.db.WithContext(ctx).
		Order("posted_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.JobPosting, error) {
	var j models.JobPosting
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &j, err
}
