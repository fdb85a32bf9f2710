package service

import (
	"context"

	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/repository"

	"github.com/pkg/errors"
)

type SavedJobService struct {
	saved *repository.SavedJobRepository
	jobs  *repository.JobRepository
}

func NewSavedJobService(saved *repository.SavedJobRepository, jobs *repository.JobRepository) *SavedJobService {
	return &SavedJobService{saved: saved, jobs: jobs}
}

// Save bookmarks a job. Saving an already saved job returns the existing
// entry unchanged.
func (s *SavedJobService) Save(ctx context.Context, userID, jobID uint, notes string) (*models.SavedJob, error) {
	if len(notes) > 5000 {
		return nil, domain.Validation("notes must be at most 5000")
	}
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, notFound(err, "job")
	}
	if existing, err := s.saved.Get(ctx, userID, jobID); err == nil {
		return existing, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	entry := &models.SavedJob{UserID: userID, JobID: jobID, Notes: notes}
	if err := s.saved.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return s.saved.Get(ctx, userID, jobID)
		}
		return nil, err
	}
	return entry, nil
}

func (s *SavedJobService) Remove(ctx context.Context, userID, jobID uint) error {
	return notFound(s.saved.Delete(ctx, userID, jobID), "saved job")
}

func (s *SavedJobService) UpdateNotes(ctx context.Context, userID, jobID uint, notes string) (*models.SavedJob, error) {
	if len(notes) > 5000 {
		return nil, domain.Validation("notes must be at most 5000")
	}
	if err := s.saved.UpdateNotes(ctx, userID, jobID, notes); err != nil {
		return nil, notFound(err, "saved job")
	}
	return s.saved.Get(ctx, userID, jobID)
}

func (s *SavedJobService) List(ctx context.Context, userID uint, p repository.Page) (Paged[models.SavedJob], error) {
	p = repository.NewPage(p.Page, p.Limit)
	list, total, err := s.saved.ListByUser(ctx, userID, p)
	if err != nil {
		return Paged[models.SavedJob]{}, err
	}
	return newPaged(list, total, p), nil
}

func (s *SavedJobService) Check(ctx context.Context, userID, jobID uint) (bool, error) {
	return s.saved.Exists(ctx, userID, jobID)
}
