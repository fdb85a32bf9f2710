package service

import (
	"context"
	"time"

	"hireboard/internal/domain"
	"hireboard/internal/events"
	"hireboard/internal/metrics"
	"hireboard/internal/models"
	"hireboard/internal/repository"

	"github.com/pkg/errors"
)

type SubmitApplicationInput struct {
	JobID       uint   `json:"jobId" validate:"required"`
	CoverLetter string `json:"coverLetter" validate:"max=10000"`
	ResumeURL   string `json:"resumeUrl" validate:"omitempty,url,max=512"`
}

type UpdateApplicationStatusInput struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes" validate:"max=5000"`
}

type ApplicationService struct {
	apps               *repository.ApplicationRepository
	jobs               *repository.JobRepository
	users              userLookup
	publisher          Notifier
	enforceTransitions bool
}

func NewApplicationService(apps *repository.ApplicationRepository, jobs *repository.JobRepository, users userLookup, publisher Notifier, enforceTransitions bool) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, users: users, publisher: publisher, enforceTransitions: enforceTransitions}
}

func (s *ApplicationService) Submit(ctx context.Context, applicantID uint, in SubmitApplicationInput) (*models.Application, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		return nil, notFound(err, "job")
	}
	if job.Status != domain.JobStatusOpen {
		return nil, domain.Validation("job is not accepting applications")
	}
	if job.Deadline != nil && job.Deadline.Before(time.Now()) {
		return nil, domain.Validation("application deadline has passed")
	}
	if job.EmployerID == applicantID {
		return nil, domain.Forbidden("cannot apply to your own job")
	}

	app := &models.Application{
		JobID:       job.ID,
		ApplicantID: applicantID,
		CoverLetter: in.CoverLetter,
		ResumeURL:   in.ResumeURL,
		Status:      domain.ApplicationPending,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.DuplicateApplication()
		}
		return nil, err
	}
	metrics.ApplicationsSubmitted.Inc()

	applicantName := ""
	if u, err := s.users.GetByID(ctx, applicantID); err == nil {
		applicantName = u.Name
	}
	s.publisher.ApplicationSubmitted(ctx, events.ApplicationSubmitted{
		ApplicationID: app.ID,
		JobID:         job.ID,
		JobTitle:      job.Title,
		EmployerID:    job.EmployerID,
		ApplicantID:   applicantID,
		ApplicantName: applicantName,
	})
	app.Job = job
	return app, nil
}

// UpdateStatus is reserved to the job's employer and admins. The new status is
// written together with the notes; transitions are only checked when enforced.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor Actor, id uint, in UpdateApplicationStatusInput) (*models.Application, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	status, err := domain.ParseApplicationStatus(in.Status)
	if err != nil {
		return nil, err
	}
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "application")
	}
	if !actor.IsAdmin() && (app.Job == nil || app.Job.EmployerID != actor.ID) {
		return nil, domain.Forbidden("only the job's employer can update this application")
	}
	if s.enforceTransitions && !domain.IsApplicationTransitionAllowed(app.Status, status) {
		return nil, domain.Conflict("cannot move application from " + app.Status + " to " + status)
	}

	previous := app.Status
	if err := s.apps.UpdateStatus(ctx, app.ID, status, in.Notes); err != nil {
		return nil, notFound(err, "application")
	}
	app.Status = status
	app.Notes = in.Notes
	metrics.ApplicationStatusChanges.WithLabelValues(status).Inc()

	jobTitle := ""
	if app.Job != nil {
		jobTitle = app.Job.Title
	}
	s.publisher.ApplicationStatusChanged(ctx, events.ApplicationStatusChanged{
		ApplicationID:  app.ID,
		JobID:          app.JobID,
		JobTitle:       jobTitle,
		ApplicantID:    app.ApplicantID,
		ActorID:        actor.ID,
		PreviousStatus: previous,
		Status:         status,
		Notes:          in.Notes,
	})
	return app, nil
}

func (s *ApplicationService) Withdraw(ctx context.Context, actor Actor, id uint) error {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "application")
	}
	if app.ApplicantID != actor.ID {
		return domain.Forbidden("only the applicant can withdraw an application")
	}
	return notFound(s.apps.Delete(ctx, app), "application")
}

func (s *ApplicationService) Get(ctx context.Context, actor Actor, id uint) (*models.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "application")
	}
	if actor.IsAdmin() || app.ApplicantID == actor.ID || (app.Job != nil && app.Job.EmployerID == actor.ID) {
		return app, nil
	}
	return nil, domain.Forbidden("not allowed to view this application")
}

func (s *ApplicationService) parseFilter(f repository.ApplicationFilter) (repository.ApplicationFilter, error) {
	if f.Status == "" {
		return f, nil
	}
	status, err := domain.ParseApplicationStatus(f.Status)
	if err != nil {
		return f, err
	}
	f.Status = status
	return f, nil
}

func (s *ApplicationService) ListForApplicant(ctx context.Context, applicantID uint, f repository.ApplicationFilter, p repository.Page) (Paged[models.Application], error) {
	f, err := s.parseFilter(f)
	if err != nil {
		return Paged[models.Application]{}, err
	}
	p = repository.NewPage(p.Page, p.Limit)
	list, total, err := s.apps.ListByApplicant(ctx, applicantID, f, p)
	if err != nil {
		return Paged[models.Application]{}, err
	}
	return newPaged(list, total, p), nil
}

func (s *ApplicationService) ListForEmployer(ctx context.Context, employerID uint, f repository.ApplicationFilter, p repository.Page) (Paged[models.Application], error) {
	f, err := s.parseFilter(f)
	if err != nil {
		return Paged[models.Application]{}, err
	}
	p = repository.NewPage(p.Page, p.Limit)
	list, total, err := s.apps.ListByEmployer(ctx, employerID, f, p)
	if err != nil {
		return Paged[models.Application]{}, err
	}
	return newPaged(list, total, p), nil
}

func (s *ApplicationService) ListForJob(ctx context.Context, actor Actor, jobID uint, status string, p repository.Page) (Paged[models.Application], error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return Paged[models.Application]{}, notFound(err, "job")
	}
	if !actor.IsAdmin() && job.EmployerID != actor.ID {
		return Paged[models.Application]{}, domain.Forbidden("not your job")
	}
	f, err := s.parseFilter(repository.ApplicationFilter{Status: status})
	if err != nil {
		return Paged[models.Application]{}, err
	}
	p = repository.NewPage(p.Page, p.Limit)
	list, total, err := s.apps.ListByJob(ctx, jobID, f.Status, p)
	if err != nil {
		return Paged[models.Application]{}, err
	}
	return newPaged(list, total, p), nil
}
