package repository

import (
	"context"
	"strings"

	"hireboard/internal/domain"
	"hireboard/internal/models"

	"gorm.io/gorm"
)

// JobFilter narrows the public job search. Zero values are ignored; Status
// defaults to open.
type JobFilter struct {
	Keywords        string
	Category        string
	JobType         string
	ExperienceLevel string
	Location        string
	Remote          *bool
	MinSalary       int64
	CompanyID       uint
	Status          string
}

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j *models.Job) error {
	return translate(r.db.WithContext(ctx).Create(j).Error, "create job")
}

func (r *JobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var j models.Job
	if err := r.db.WithContext(ctx).Preload("Company").First(&j, id).Error; err != nil {
		return nil, translate(err, "get job")
	}
	return &j, nil
}

func (r *JobRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	return translate(err, "increment job views")
}

func (r *JobRepository) List(ctx context.Context, f JobFilter, p Page) ([]models.Job, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{})
	status := f.Status
	if status == "" {
		status = domain.JobStatusOpen
	}
	q = q.Where("status = ?", status)
	if f.Keywords != "" {
		like := "%" + strings.ToLower(f.Keywords) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.JobType != "" {
		q = q.Where("job_type = ?", f.JobType)
	}
	if f.ExperienceLevel != "" {
		q = q.Where("experience_level = ?", f.ExperienceLevel)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.Remote != nil {
		q = q.Where("is_remote = ?", *f.Remote)
	}
	if f.MinSalary > 0 {
		q = q.Where("salary_max >= ?", f.MinSalary)
	}
	if f.CompanyID != 0 {
		q = q.Where("company_id = ?", f.CompanyID)
	}
	return r.page(q, p, "list jobs")
}

func (r *JobRepository) ListByEmployer(ctx context.Context, employerID uint, status string, p Page) ([]models.Job, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{}).Where("employer_id = ?", employerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return r.page(q, p, "list employer jobs")
}

func (r *JobRepository) page(q *gorm.DB, p Page, op string) ([]models.Job, int64, error) {
	q = q.Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, op)
	}
	var list []models.Job
	err := q.Preload("Company").Order("created_at DESC, id DESC").Limit(p.Limit).Offset(p.Offset()).Find(&list).Error
	return list, total, translate(err, op)
}

// editableJobColumns are the columns an edit writes. Status, views and
// applications_count have their own single-column updates.
var editableJobColumns = []string{
	"title", "description", "requirements", "responsibilities", "skills",
	"category", "job_type", "experience_level",
	"salary_min", "salary_max", "salary_currency",
	"location", "is_remote", "deadline", "updated_at",
}

func (r *JobRepository) Update(ctx context.Context, j *models.Job) error {
	res := r.db.WithContext(ctx).Model(j).Select(editableJobColumns).Updates(j)
	if res.Error != nil {
		return translate(res.Error, "update job")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error, "update job status")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the job together with its applications, interviews and saved entries.
func (r *JobRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Interview{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&models.SavedJob{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Job{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err, "delete job")
}

func (r *JobRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).Where("status = ?", status).Count(&n).Error
	return n, translate(err, "count jobs")
}
