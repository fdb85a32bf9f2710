package repository

import (
	"context"
	"strings"

	"hireboard/internal/models"

	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, c *models.Company) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "create company")
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	var c models.Company
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "get company")
	}
	return &c, nil
}

func (r *CompanyRepository) GetByOwner(ctx context.Context, ownerID uint) (*models.Company, error) {
	var c models.Company
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&c).Error; err != nil {
		return nil, translate(err, "get company by owner")
	}
	return &c, nil
}

func (r *CompanyRepository) List(ctx context.Context, search, industry string, p Page) ([]models.Company, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Company{})
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if industry != "" {
		q = q.Where("industry = ?", industry)
	}
	q = q.Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count companies")
	}
	var list []models.Company
	err := q.Order("name ASC, id ASC").Limit(p.Limit).Offset(p.Offset()).Find(&list).Error
	return list, total, translate(err, "list companies")
}

func (r *CompanyRepository) Update(ctx context.Context, c *models.Company) error {
	return translate(r.db.WithContext(ctx).Save(c).Error, "update company")
}
