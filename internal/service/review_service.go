package service

import (
	"context"

	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/repository"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type ReviewInput struct {
	Rating      int    `json:"rating" validate:"min=1,max=5"`
	Title       string `json:"title" validate:"max=255"`
	Comment     string `json:"comment" validate:"max=5000"`
	Pros        string `json:"pros" validate:"max=2000"`
	Cons        string `json:"cons" validate:"max=2000"`
	IsAnonymous bool   `json:"isAnonymous"`
}

func (in ReviewInput) apply(rv *models.Review) {
	rv.Rating = in.Rating
	rv.Title = in.Title
	rv.Comment = in.Comment
	rv.Pros = in.Pros
	rv.Cons = in.Cons
	rv.IsAnonymous = in.IsAnonymous
}

// ReviewView is a review as shown publicly. Anonymous reviews carry no author.
type ReviewView struct {
	models.Review
	Author *models.UserSummary `json:"author,omitempty"`
}

func newReviewView(rv models.Review) ReviewView {
	v := ReviewView{Review: rv}
	if rv.IsAnonymous {
		v.UserID = 0
		return v
	}
	if rv.User != nil {
		author := rv.User.Summary()
		v.Author = &author
	}
	return v
}

type CompanyReviews struct {
	Paged[ReviewView]
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int64   `json:"totalReviews"`
}

type ReviewService struct {
	reviews   *repository.ReviewRepository
	companies *repository.CompanyRepository
}

func NewReviewService(reviews *repository.ReviewRepository, companies *repository.CompanyRepository) *ReviewService {
	return &ReviewService{reviews: reviews, companies: companies}
}

// Create adds the job seeker's review of a company; one per (company, user).
func (s *ReviewService) Create(ctx context.Context, actor Actor, companyID uint, in ReviewInput) (*ReviewView, error) {
	if actor.Role != domain.RoleJobSeeker {
		return nil, domain.Forbidden("only job seekers can review companies")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		return nil, notFound(err, "company")
	}
	rv := &models.Review{CompanyID: companyID, UserID: actor.ID}
	in.apply(rv)
	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.DuplicateReview()
		}
		return nil, err
	}
	v := newReviewView(*rv)
	return &v, nil
}

func (s *ReviewService) ListForCompany(ctx context.Context, companyID uint, p repository.Page) (*CompanyReviews, error) {
	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		return nil, notFound(err, "company")
	}
	p = repository.NewPage(p.Page, p.Limit)
	list, total, err := s.reviews.ListByCompany(ctx, companyID, p)
	if err != nil {
		return nil, err
	}
	stats, err := s.reviews.Stats(ctx, companyID)
	if err != nil {
		return nil, err
	}
	views := lo.Map(list, func(rv models.Review, _ int) ReviewView { return newReviewView(rv) })
	return &CompanyReviews{
		Paged:         newPaged(views, total, p),
		AverageRating: stats.Average,
		TotalReviews:  stats.Count,
	}, nil
}

func (s *ReviewService) owned(ctx context.Context, actor Actor, id uint) (*models.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "review")
	}
	if !actor.IsAdmin() && rv.UserID != actor.ID {
		return nil, domain.Forbidden("not your review")
	}
	return rv, nil
}

func (s *ReviewService) Update(ctx context.Context, actor Actor, id uint, in ReviewInput) (*ReviewView, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	rv, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	in.apply(rv)
	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	v := newReviewView(*rv)
	return &v, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}
