package repository

import (
	"context"

	"hireboard/internal/models"

	"gorm.io/gorm"
)

type AssessmentFilter struct {
	Skill     string
	JobID     uint
	CreatorID uint
}

type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) Create(ctx context.Context, a *models.Assessment) error {
	return translate(r.db.WithContext(ctx).Create(a).Error, "create assessment")
}

func (r *AssessmentRepository) GetByID(ctx context.Context, id uint) (*models.Assessment, error) {
	var a models.Assessment
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err, "get assessment")
	}
	return &a, nil
}

func (r *AssessmentRepository) List(ctx context.Context, f AssessmentFilter, p Page) ([]models.Assessment, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Assessment{})
	if f.CreatorID != 0 {
		q = q.Where("creator_id = ?", f.CreatorID)
	} else {
		q = q.Where("is_active = ?", true)
	}
	if f.Skill != "" {
		q = q.Where("skill = ?", f.Skill)
	}
	if f.JobID != 0 {
		q = q.Where("job_id = ?", f.JobID)
	}
	q = q.Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count assessments")
	}
	var list []models.Assessment
	err := q.Order("created_at DESC, id DESC").Limit(p.Limit).Offset(p.Offset()).Find(&list).Error
	return list, total, translate(err, "list assessments")
}

// CreateResult fails with ErrDuplicate when the user already submitted.
func (r *AssessmentRepository) CreateResult(ctx context.Context, res *models.AssessmentResult) error {
	return translate(r.db.WithContext(ctx).Create(res).Error, "create assessment result")
}

func (r *AssessmentRepository) ListResults(ctx context.Context, assessmentID, userID uint) ([]models.AssessmentResult, error) {
	q := r.db.WithContext(ctx).Where("assessment_id = ?", assessmentID)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	var list []models.AssessmentResult
	err := q.Order("score DESC, id ASC").Find(&list).Error
	return list, translate(err, "list assessment results")
}
