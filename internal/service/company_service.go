package service

import (
	"context"

	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/repository"

	"github.com/pkg/errors"
)

type CompanyInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Website     string `json:"website" validate:"omitempty,url,max=255"`
	Industry    string `json:"industry" validate:"max=100"`
	Size        string `json:"size" validate:"max=50"`
	Location    string `json:"location" validate:"max=255"`
}

func (in CompanyInput) apply(c *models.Company) {
	c.Name = in.Name
	c.Description = in.Description
	c.Website = in.Website
	c.Industry = in.Industry
	c.Size = in.Size
	c.Location = in.Location
}

// CompanyProfile is a company with its review summary.
type CompanyProfile struct {
	models.Company
	Rating repository.RatingStats `json:"rating"`
}

type CompanyService struct {
	companies *repository.CompanyRepository
	reviews   *repository.ReviewRepository
	store     documentStore
	folder    string
}

func NewCompanyService(companies *repository.CompanyRepository, reviews *repository.ReviewRepository, store documentStore, folder string) *CompanyService {
	return &CompanyService{companies: companies, reviews: reviews, store: store, folder: folder}
}

// Create registers the employer's company. An employer owns at most one.
func (s *CompanyService) Create(ctx context.Context, actor Actor, in CompanyInput) (*models.Company, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	c := &models.Company{OwnerID: actor.ID}
	in.apply(c)
	if err := s.companies.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflict("you already have a company")
		}
		return nil, err
	}
	return c, nil
}

func (s *CompanyService) Get(ctx context.Context, id uint) (*CompanyProfile, error) {
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "company")
	}
	stats, err := s.reviews.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CompanyProfile{Company: *c, Rating: stats}, nil
}

func (s *CompanyService) Mine(ctx context.Context, ownerID uint) (*models.Company, error) {
	c, err := s.companies.GetByOwner(ctx, ownerID)
	return c, notFound(err, "company")
}

func (s *CompanyService) List(ctx context.Context, search, industry string, p repository.Page) (Paged[models.Company], error) {
	p = repository.NewPage(p.Page, p.Limit)
	list, total, err := s.companies.List(ctx, search, industry, p)
	if err != nil {
		return Paged[models.Company]{}, err
	}
	return newPaged(list, total, p), nil
}

func (s *CompanyService) owned(ctx context.Context, actor Actor, id uint) (*models.Company, error) {
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "company")
	}
	if !actor.IsAdmin() && c.OwnerID != actor.ID {
		return nil, domain.Forbidden("not your company")
	}
	return c, nil
}

func (s *CompanyService) Update(ctx context.Context, actor Actor, id uint, in CompanyInput) (*models.Company, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	in.apply(c)
	if err := s.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CompanyService) UploadLogo(ctx context.Context, actor Actor, id uint, f Upload) (*models.Company, error) {
	if s.store == nil {
		return nil, domain.Validation("file uploads are not configured")
	}
	if _, err := checkUpload(f, imageExts, maxImageSize); err != nil {
		return nil, err
	}
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	url, _, err := s.store.UploadImage(ctx, f.Body, uploadFolder(s.folder, "logos", c.ID), newPublicID("logo"))
	if err != nil {
		return nil, errors.Wrap(err, "upload company logo")
	}
	c.LogoURL = url
	if err := s.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
