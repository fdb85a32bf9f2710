package service

import (
	"context"

	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/repository"

	"github.com/samber/lo"
)

type JobAlertInput struct {
	Name      string               `json:"name" validate:"required,max=100"`
	Criteria  models.AlertCriteria `json:"criteria"`
	Frequency string               `json:"frequency"`
}

type JobAlertService struct {
	alerts *repository.JobAlertRepository
}

func NewJobAlertService(alerts *repository.JobAlertRepository) *JobAlertService {
	return &JobAlertService{alerts: alerts}
}

func (in *JobAlertInput) check() error {
	if err := validateInput(*in); err != nil {
		return err
	}
	if in.Frequency == "" {
		in.Frequency = "daily"
	}
	if !lo.Contains(domain.AlertFrequencies, in.Frequency) {
		return domain.Validation("frequency must be one of %v", domain.AlertFrequencies)
	}
	if in.Criteria.JobType != "" && !lo.Contains(domain.JobTypes, in.Criteria.JobType) {
		return domain.Validation("criteria.jobType must be one of %v", domain.JobTypes)
	}
	if in.Criteria.MinSalary < 0 {
		return domain.Validation("criteria.minSalary must not be negative")
	}
	return nil
}

func (s *JobAlertService) Create(ctx context.Context, userID uint, in JobAlertInput) (*models.JobAlert, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	a := &models.JobAlert{UserID: userID, Name: in.Name, Criteria: in.Criteria, Frequency: in.Frequency, IsActive: true}
	if err := s.alerts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *JobAlertService) List(ctx context.Context, userID uint) ([]models.JobAlert, error) {
	list, err := s.alerts.ListByUser(ctx, userID)
	if list == nil {
		list = []models.JobAlert{}
	}
	return list, err
}

func (s *JobAlertService) owned(ctx context.Context, userID, id uint) (*models.JobAlert, error) {
	a, err := s.alerts.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job alert")
	}
	if a.UserID != userID {
		return nil, domain.Forbidden("not your job alert")
	}
	return a, nil
}

func (s *JobAlertService) Get(ctx context.Context, userID, id uint) (*models.JobAlert, error) {
	return s.owned(ctx, userID, id)
}

func (s *JobAlertService) Update(ctx context.Context, userID, id uint, in JobAlertInput) (*models.JobAlert, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	a.Name = in.Name
	a.Criteria = in.Criteria
	a.Frequency = in.Frequency
	if err := s.alerts.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Toggle flips the alert between active and paused.
func (s *JobAlertService) Toggle(ctx context.Context, userID, id uint) (*models.JobAlert, error) {
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	a.IsActive = !a.IsActive
	if err := s.alerts.SetActive(ctx, a.ID, a.IsActive); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *JobAlertService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.alerts.Delete(ctx, id)
}
