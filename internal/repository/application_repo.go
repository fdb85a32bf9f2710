package repository

import (
	"context"

	"hireboard/internal/models"

	"gorm.io/gorm"
)

type ApplicationFilter struct {
	JobID  uint
	Status string
}

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts the application and bumps the job's applicationsCount in
// one transaction. A second application for the same (job, applicant)
// fails on the unique index with ErrDuplicate.
func (r *ApplicationRepository) Create(ctx context.Context, a *models.Application) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Job", "Applicant").Create(a).Error; err != nil {
			return err
		}
		return tx.Model(&models.Job{}).Where("id = ?", a.JobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count + 1")).Error
	})
	return translate(err, "create application")
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var a models.Application
	if err := r.db.WithContext(ctx).Preload("Job").First(&a, id).Error; err != nil {
		return nil, translate(err, "get application")
	}
	return &a, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uint, status, notes string) error {
	res := r.db.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "notes": notes})
	if res.Error != nil {
		return translate(res.Error, "update application status")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes the application and decrements the job's applicationsCount.
func (r *ApplicationRepository) Delete(ctx context.Context, a *models.Application) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Application{}, a.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("application_id = ?", a.ID).Delete(&models.Interview{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Job{}).Where("id = ? AND applications_count > 0", a.JobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count - 1")).Error
	})
	return translate(err, "delete application")
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID uint, f ApplicationFilter, p Page) ([]models.Application, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Application{}).Where("applicant_id = ?", applicantID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.JobID != 0 {
		q = q.Where("job_id = ?", f.JobID)
	}
	return r.page(q, p, "list applicant applications", "Job")
}

// ListByEmployer returns applications to any job owned by employerID.
func (r *ApplicationRepository) ListByEmployer(ctx context.Context, employerID uint, f ApplicationFilter, p Page) ([]models.Application, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id IN (?)", r.db.Model(&models.Job{}).Select("id").Where("employer_id = ?", employerID))
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.JobID != 0 {
		q = q.Where("job_id = ?", f.JobID)
	}
	return r.page(q, p, "list employer applications", "Job", "Applicant")
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uint, status string, p Page) ([]models.Application, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Application{}).Where("job_id = ?", jobID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return r.page(q, p, "list job applications", "Applicant")
}

func (r *ApplicationRepository) page(q *gorm.DB, p Page, op string, preloads ...string) ([]models.Application, int64, error) {
	q = q.Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, op)
	}
	find := q
	for _, rel := range preloads {
		find = find.Preload(rel)
	}
	var list []models.Application
	err := find.Order("created_at DESC, id DESC").Limit(p.Limit).Offset(p.Offset()).Find(&list).Error
	return list, total, translate(err, op)
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "count applications")
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}
