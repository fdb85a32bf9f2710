package service

import (
	"context"
	"time"

	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/repository"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type JobInput struct {
	Title            string        `json:"title" validate:"required,max=255"`
	Description      string        `json:"description" validate:"required"`
	Requirements     []string      `json:"requirements"`
	Responsibilities []string      `json:"responsibilities"`
	Skills           []string      `json:"skills"`
	Category         string        `json:"category" validate:"max=100"`
	JobType          string        `json:"jobType" validate:"required"`
	ExperienceLevel  string        `json:"experienceLevel"`
	Salary           models.Salary `json:"salary"`
	Location         string        `json:"location" validate:"max=255"`
	IsRemote         bool          `json:"isRemote"`
	Deadline         *time.Time    `json:"deadline"`
}

func (in JobInput) check() error {
	if err := validateInput(in); err != nil {
		return err
	}
	if !lo.Contains(domain.JobTypes, in.JobType) {
		return domain.Validation("jobType must be one of %v", domain.JobTypes)
	}
	if in.ExperienceLevel != "" && !lo.Contains(domain.ExperienceLevels, in.ExperienceLevel) {
		return domain.Validation("experienceLevel must be one of %v", domain.ExperienceLevels)
	}
	if in.Salary.Min < 0 || (in.Salary.Max > 0 && in.Salary.Max < in.Salary.Min) {
		return domain.Validation("salary range is invalid")
	}
	return nil
}

func (in JobInput) apply(j *models.Job) {
	j.Title = in.Title
	j.Description = in.Description
	j.Requirements = in.Requirements
	j.Responsibilities = in.Responsibilities
	j.Skills = in.Skills
	j.Category = in.Category
	j.JobType = in.JobType
	j.ExperienceLevel = in.ExperienceLevel
	j.Salary = in.Salary
	j.Location = in.Location
	j.IsRemote = in.IsRemote
	j.Deadline = in.Deadline
}

type JobService struct {
	jobs      *repository.JobRepository
	companies *repository.CompanyRepository
}

func NewJobService(jobs *repository.JobRepository, companies *repository.CompanyRepository) *JobService {
	return &JobService{jobs: jobs, companies: companies}
}

// Create posts a job for the employer, linked to their company when they have one.
func (s *JobService) Create(ctx context.Context, actor Actor, in JobInput) (*models.Job, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	j := &models.Job{EmployerID: actor.ID, Status: domain.JobStatusOpen}
	in.apply(j)

	c, err := s.companies.GetByOwner(ctx, actor.ID)
	switch {
	case err == nil:
		j.CompanyID = &c.ID
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	j.Company = c
	return j, nil
}

// Get returns the job and counts the view. Suspended jobs are only visible
// to their employer and admins.
func (s *JobService) Get(ctx context.Context, actor Actor, id uint) (*models.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job")
	}
	if j.Status == domain.JobStatusSuspended && !actor.IsAdmin() && actor.ID != j.EmployerID {
		return nil, domain.NotFound("job")
	}
	if err := s.jobs.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	j.Views++
	return j, nil
}

func (s *JobService) List(ctx context.Context, f repository.JobFilter, p repository.Page) (Paged[models.Job], error) {
	if f.Status != "" {
		status, err := domain.ParseJobStatus(f.Status)
		if err != nil {
			return Paged[models.Job]{}, err
		}
		if status == domain.JobStatusSuspended {
			return Paged[models.Job]{}, domain.Validation("suspended jobs are not listed")
		}
		f.Status = status
	}
	p = repository.NewPage(p.Page, p.Limit)
	list, total, err := s.jobs.List(ctx, f, p)
	if err != nil {
		return Paged[models.Job]{}, err
	}
	return newPaged(list, total, p), nil
}

func (s *JobService) ListMine(ctx context.Context, employerID uint, status string, p repository.Page) (Paged[models.Job], error) {
	if status != "" {
		if _, err := domain.ParseJobStatus(status); err != nil {
			return Paged[models.Job]{}, err
		}
	}
	p = repository.NewPage(p.Page, p.Limit)
	list, total, err := s.jobs.ListByEmployer(ctx, employerID, status, p)
	if err != nil {
		return Paged[models.Job]{}, err
	}
	return newPaged(list, total, p), nil
}

func (s *JobService) owned(ctx context.Context, actor Actor, id uint) (*models.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job")
	}
	if !actor.IsAdmin() && j.EmployerID != actor.ID {
		return nil, domain.Forbidden("not your job")
	}
	return j, nil
}

func (s *JobService) Update(ctx context.Context, actor Actor, id uint, in JobInput) (*models.Job, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	j, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	in.apply(j)
	if err := s.jobs.Update(ctx, j); err != nil {
		return nil, notFound(err, "job")
	}
	updated, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job")
	}
	return updated, nil
}

// UpdateStatus lets the owner open or close the job. Only admins may suspend
// it, and a suspended job stays suspended until an admin lifts it.
func (s *JobService) UpdateStatus(ctx context.Context, actor Actor, id uint, status string) (*models.Job, error) {
	status, err := domain.ParseJobStatus(status)
	if err != nil {
		return nil, err
	}
	j, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && (status == domain.JobStatusSuspended || j.Status == domain.JobStatusSuspended) {
		return nil, domain.Forbidden("only admins can change a suspended job")
	}
	if err := s.jobs.UpdateStatus(ctx, id, status); err != nil {
		return nil, notFound(err, "job")
	}
	j.Status = status
	return j, nil
}

func (s *JobService) Delete(ctx context.Context, actor Actor, id uint) error {
	if !actor.IsAdmin() {
		return domain.Forbidden("only admins can delete jobs")
	}
	return notFound(s.jobs.Delete(ctx, id), "job")
}
