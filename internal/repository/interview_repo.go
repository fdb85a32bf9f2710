package repository

import (
	"context"
	"time"

	"hireboard/internal/domain"
	"hireboard/internal/models"

	"gorm.io/gorm"
)

type InterviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db: db}
}

func (r *InterviewRepository) Create(ctx context.Context, i *models.Interview) error {
	return translate(r.db.WithContext(ctx).Omit("Job", "Candidate", "Employer").Create(i).Error, "create interview")
}

func (r *InterviewRepository) GetByID(ctx context.Context, id uint) (*models.Interview, error) {
	var i models.Interview
	if err := r.db.WithContext(ctx).Preload("Job").First(&i, id).Error; err != nil {
		return nil, translate(err, "get interview")
	}
	return &i, nil
}

func (r *InterviewRepository) Update(ctx context.Context, i *models.Interview) error {
	return translate(r.db.WithContext(ctx).Omit("Job", "Candidate", "Employer").Save(i).Error, "update interview")
}

func (r *InterviewRepository) ListByEmployer(ctx context.Context, employerID uint, status string, p Page) ([]models.Interview, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Interview{}).Where("employer_id = ?", employerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return r.page(q, p, "list employer interviews", "Job", "Candidate")
}

func (r *InterviewRepository) ListByCandidate(ctx context.Context, candidateID uint, status string, p Page) ([]models.Interview, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Interview{}).Where("candidate_id = ?", candidateID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return r.page(q, p, "list candidate interviews", "Job")
}

func (r *InterviewRepository) page(q *gorm.DB, p Page, op string, preloads ...string) ([]models.Interview, int64, error) {
	q = q.Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, op)
	}
	find := q
	for _, rel := range preloads {
		find = find.Preload(rel)
	}
	var list []models.Interview
	err := find.Order("scheduled_date ASC, id ASC").Limit(p.Limit).Offset(p.Offset()).Find(&list).Error
	return list, total, translate(err, op)
}

// DueForReminder returns scheduled or rescheduled interviews in [from, until]
// that have not had a reminder yet.
func (r *InterviewRepository) DueForReminder(ctx context.Context, from, until time.Time) ([]models.Interview, error) {
	var list []models.Interview
	err := r.db.WithContext(ctx).Preload("Job").
		Where("status IN ? AND reminder_sent = ? AND scheduled_date >= ? AND scheduled_date <= ?",
			[]string{domain.InterviewScheduled, domain.InterviewRescheduled}, false, from, until).
		Order("scheduled_date ASC").Find(&list).Error
	return list, translate(err, "list interviews due for reminder")
}

// MarkReminderSent flips reminder_sent only if it is still false, so a
// concurrent run cannot remind twice. It reports whether this call won.
func (r *InterviewRepository) MarkReminderSent(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Interview{}).
		Where("id = ? AND reminder_sent = ?", id, false).
		Update("reminder_sent", true)
	if res.Error != nil {
		return false, translate(res.Error, "mark reminder sent")
	}
	return res.RowsAffected == 1, nil
}

func (r *InterviewRepository) CountUpcoming(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Interview{}).
		Where("status = ? AND scheduled_date >= ?", domain.InterviewScheduled, now).Count(&n).Error
	return n, translate(err, "count upcoming interviews")
}
