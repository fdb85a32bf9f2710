package repository

import (
	"context"

	"hireboard/internal/models"

	"gorm.io/gorm"
)

type RatingStats struct {
	Average float64 `json:"averageRating"`
	Count   int64   `json:"totalReviews"`
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create fails with ErrDuplicate when the user already reviewed the company.
func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) error {
	return translate(r.db.WithContext(ctx).Omit("User").Create(rv).Error, "create review")
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var rv models.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, translate(err, "get review")
	}
	return &rv, nil
}

func (r *ReviewRepository) ListByCompany(ctx context.Context, companyID uint, p Page) ([]models.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Review{}).Where("company_id = ?", companyID).Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count reviews")
	}
	var list []models.Review
	err := q.Preload("User").Order("created_at DESC, id DESC").Limit(p.Limit).Offset(p.Offset()).Find(&list).Error
	return list, total, translate(err, "list reviews")
}

func (r *ReviewRepository) Stats(ctx context.Context, companyID uint) (RatingStats, error) {
	var s RatingStats
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("company_id = ?", companyID).Scan(&s).Error
	return s, translate(err, "review stats")
}

func (r *ReviewRepository) Update(ctx context.Context, rv *models.Review) error {
	return translate(r.db.WithContext(ctx).Omit("User").Save(rv).Error, "update review")
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Review{}, id).Error, "delete review")
}
