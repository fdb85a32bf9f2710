package repository

import (
	"context"

	"hireboard/internal/models"

	"gorm.io/gorm"
)

type SavedJobRepository struct {
	db *gorm.DB
}

func NewSavedJobRepository(db *gorm.DB) *SavedJobRepository {
	return &SavedJobRepository{db: db}
}

func (r *SavedJobRepository) Create(ctx context.Context, s *models.SavedJob) error {
	return translate(r.db.WithContext(ctx).Omit("Job").Create(s).Error, "save job")
}

func (r *SavedJobRepository) Get(ctx context.Context, userID, jobID uint) (*models.SavedJob, error) {
	var s models.SavedJob
	err := r.db.WithContext(ctx).Where("user_id = ? AND job_id = ?", userID, jobID).First(&s).Error
	if err != nil {
		return nil, translate(err, "get saved job")
	}
	return &s, nil
}

// Delete removes the entry for (userID, jobID); ErrNotFound when there is none.
func (r *SavedJobRepository) Delete(ctx context.Context, userID, jobID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND job_id = ?", userID, jobID).Delete(&models.SavedJob{})
	if res.Error != nil {
		return translate(res.Error, "remove saved job")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SavedJobRepository) UpdateNotes(ctx context.Context, userID, jobID uint, notes string) error {
	res := r.db.WithContext(ctx).Model(&models.SavedJob{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).Update("notes", notes)
	if res.Error != nil {
		return translate(res.Error, "update saved job notes")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SavedJobRepository) Exists(ctx context.Context, userID, jobID uint) (bool, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.SavedJob{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).Count(&c).Error
	return c > 0, translate(err, "check saved job")
}

func (r *SavedJobRepository) ListByUser(ctx context.Context, userID uint, p Page) ([]models.SavedJob, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.SavedJob{}).Where("user_id = ?", userID).Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count saved jobs")
	}
	var list []models.SavedJob
	err := q.Preload("Job").Preload("Job.Company").Order("created_at DESC, id DESC").
		Limit(p.Limit).Offset(p.Offset()).Find(&list).Error
	return list, total, translate(err, "list saved jobs")
}
