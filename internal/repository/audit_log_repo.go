package repository

import (
	"context"

	"hireboard/internal/models"

	"gorm.io/gorm"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return translate(r.db.WithContext(ctx).Create(entry).Error, "create audit log")
}

func (r *AuditLogRepository) List(ctx context.Context, action string, userID uint, p Page) ([]models.AuditLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if action != "" {
		q = q.Where("action = ?", action)
	}
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	q = q.Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count audit logs")
	}
	var list []models.AuditLog
	err := q.Order("created_at DESC, id DESC").Limit(p.Limit).Offset(p.Offset()).Find(&list).Error
	return list, total, translate(err, "list audit logs")
}
