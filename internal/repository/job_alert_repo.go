package repository

import (
	"context"

	"hireboard/internal/models"

	"gorm.io/gorm"
)

type JobAlertRepository struct {
	db *gorm.DB
}

func NewJobAlertRepository(db *gorm.DB) *JobAlertRepository {
	return &JobAlertRepository{db: db}
}

func (r *JobAlertRepository) Create(ctx context.Context, a *models.JobAlert) error {
	return translate(r.db.WithContext(ctx).Create(a).Error, "create job alert")
}

func (r *JobAlertRepository) GetByID(ctx context.Context, id uint) (*models.JobAlert, error) {
	var a models.JobAlert
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err, "get job alert")
	}
	return &a, nil
}

func (r *JobAlertRepository) ListByUser(ctx context.Context, userID uint) ([]models.JobAlert, error) {
	var list []models.JobAlert
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&list).Error
	return list, translate(err, "list job alerts")
}

func (r *JobAlertRepository) Update(ctx context.Context, a *models.JobAlert) error {
	return translate(r.db.WithContext(ctx).Save(a).Error, "update job alert")
}

func (r *JobAlertRepository) SetActive(ctx context.Context, id uint, active bool) error {
	err := r.db.WithContext(ctx).Model(&models.JobAlert{}).Where("id = ?", id).Update("is_active", active).Error
	return translate(err, "toggle job alert")
}

func (r *JobAlertRepository) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Delete(&models.JobAlert{}, id).Error, "delete job alert")
}
