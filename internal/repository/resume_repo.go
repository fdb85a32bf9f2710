package repository

import (
	"context"

	"hireboard/internal/models"

	"gorm.io/gorm"
)

type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

// Create stores the resume; the user's first resume becomes the default.
func (r *ResumeRepository) Create(ctx context.Context, res *models.Resume) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Resume{}).Where("user_id = ?", res.UserID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			res.IsDefault = true
		}
		return tx.Create(res).Error
	})
	return translate(err, "create resume")
}

func (r *ResumeRepository) GetByID(ctx context.Context, id uint) (*models.Resume, error) {
	var res models.Resume
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, translate(err, "get resume")
	}
	return &res, nil
}

func (r *ResumeRepository) ListByUser(ctx context.Context, userID uint) ([]models.Resume, error) {
	var list []models.Resume
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("is_default DESC, created_at DESC, id DESC").Find(&list).Error
	return list, translate(err, "list resumes")
}

func (r *ResumeRepository) SetDefault(ctx context.Context, userID, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Resume{}).Where("user_id = ? AND id <> ?", userID, id).Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Resume{}).Where("id = ?", id).Update("is_default", true).Error
	})
	return translate(err, "set default resume")
}

func (r *ResumeRepository) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Resume{}, id).Error, "delete resume")
}
