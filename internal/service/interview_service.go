package service

import (
	"context"
	"strings"
	"time"

	"hireboard/internal/domain"
	"hireboard/internal/events"
	"hireboard/internal/models"
	"hireboard/internal/repository"
)

const defaultInterviewDuration = 60

type ScheduleInterviewInput struct {
	ApplicationID uint      `json:"applicationId" validate:"required"`
	ScheduledDate time.Time `json:"scheduledDate" validate:"required"`
	Duration      int       `json:"duration" validate:"min=0,max=480"`
	Type          string    `json:"type" validate:"required"`
	Location      string    `json:"location" validate:"max=255"`
	MeetingLink   string    `json:"meetingLink" validate:"omitempty,url,max=512"`
	Notes         string    `json:"notes" validate:"max=5000"`
}

type UpdateInterviewStatusInput struct {
	Status        string                    `json:"status" validate:"required"`
	Feedback      *models.InterviewFeedback `json:"feedback"`
	ScheduledDate *time.Time                `json:"scheduledDate"`
	Notes         *string                   `json:"notes"`
}

type InterviewService struct {
	interviews *repository.InterviewRepository
	apps       *repository.ApplicationRepository
	publisher  Notifier
	now        func() time.Time
}

func NewInterviewService(interviews *repository.InterviewRepository, apps *repository.ApplicationRepository, publisher Notifier) *InterviewService {
	return &InterviewService{interviews: interviews, apps: apps, publisher: publisher, now: time.Now}
}

func (s *InterviewService) Schedule(ctx context.Context, actor Actor, in ScheduleInterviewInput) (*models.Interview, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	typ, err := domain.ParseInterviewType(in.Type)
	if err != nil {
		return nil, err
	}
	if !in.ScheduledDate.After(s.now()) {
		return nil, domain.Validation("scheduledDate must be in the future")
	}
	in.Location = strings.TrimSpace(in.Location)
	in.MeetingLink = strings.TrimSpace(in.MeetingLink)
	switch {
	case typ == domain.InterviewTypeVideo && in.MeetingLink == "":
		return nil, domain.Validation("meetingLink is required for video interviews")
	case typ == domain.InterviewTypeInPerson && in.Location == "":
		return nil, domain.Validation("location is required for in-person interviews")
	}

	app, err := s.apps.GetByID(ctx, in.ApplicationID)
	if err != nil {
		return nil, notFound(err, "application")
	}
	if app.Job == nil || app.Job.EmployerID != actor.ID {
		return nil, domain.Forbidden("only the job's employer can schedule interviews")
	}

	duration := in.Duration
	if duration == 0 {
		duration = defaultInterviewDuration
	}
	iv := &models.Interview{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		EmployerID:    actor.ID,
		CandidateID:   app.ApplicantID,
		ScheduledDate: in.ScheduledDate.UTC(),
		Duration:      duration,
		Type:          typ,
		Location:      in.Location,
		MeetingLink:   in.MeetingLink,
		Notes:         in.Notes,
		Status:        domain.InterviewScheduled,
	}
	if err := s.interviews.Create(ctx, iv); err != nil {
		return nil, err
	}

	s.publisher.InterviewScheduled(ctx, events.InterviewScheduled{
		InterviewID:   iv.ID,
		ApplicationID: app.ID,
		JobID:         app.JobID,
		JobTitle:      app.Job.Title,
		EmployerID:    actor.ID,
		CandidateID:   app.ApplicantID,
		ScheduledDate: iv.ScheduledDate,
		Duration:      iv.Duration,
		Type:          iv.Type,
		Location:      iv.Location,
		MeetingLink:   iv.MeetingLink,
	})
	iv.Job = app.Job
	return iv, nil
}

// UpdateStatus writes the new status as given. A new date resets the reminder
// so the candidate is reminded again before the moved interview. Nobody is
// notified of the change.
func (s *InterviewService) UpdateStatus(ctx context.Context, actor Actor, id uint, in UpdateInterviewStatusInput) (*models.Interview, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	status, err := domain.ParseInterviewStatus(in.Status)
	if err != nil {
		return nil, err
	}
	iv, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "interview")
	}
	if iv.EmployerID != actor.ID {
		return nil, domain.Forbidden("only the interviewing employer can update this interview")
	}

	iv.Status = status
	if in.Feedback != nil {
		if r := in.Feedback.Rating; r != 0 && (r < 1 || r > 5) {
			return nil, domain.Validation("feedback rating must be between 1 and 5")
		}
		iv.Feedback = *in.Feedback
	}
	if in.Notes != nil {
		iv.Notes = *in.Notes
	}
	if in.ScheduledDate != nil && !in.ScheduledDate.Equal(iv.ScheduledDate) {
		if !in.ScheduledDate.After(s.now()) {
			return nil, domain.Validation("scheduledDate must be in the future")
		}
		iv.ScheduledDate = in.ScheduledDate.UTC()
		iv.ReminderSent = false
	}
	if err := s.interviews.Update(ctx, iv); err != nil {
		return nil, err
	}
	return iv, nil
}

func (s *InterviewService) Get(ctx context.Context, actor Actor, id uint) (*models.Interview, error) {
	iv, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "interview")
	}
	if actor.IsAdmin() || iv.EmployerID == actor.ID || iv.CandidateID == actor.ID {
		return iv, nil
	}
	return nil, domain.Forbidden("not allowed to view this interview")
}

func (s *InterviewService) parseStatus(status string) (string, error) {
	if status == "" {
		return "", nil
	}
	return domain.ParseInterviewStatus(status)
}

func (s *InterviewService) ListForEmployer(ctx context.Context, employerID uint, status string, p repository.Page) (Paged[models.Interview], error) {
	status, err := s.parseStatus(status)
	if err != nil {
		return Paged[models.Interview]{}, err
	}
	p = repository.NewPage(p.Page, p.Limit)
	list, total, err := s.interviews.ListByEmployer(ctx, employerID, status, p)
	if err != nil {
		return Paged[models.Interview]{}, err
	}
	return newPaged(list, total, p), nil
}

func (s *InterviewService) ListForCandidate(ctx context.Context, candidateID uint, status string, p repository.Page) (Paged[models.Interview], error) {
	status, err := s.parseStatus(status)
	if err != nil {
		return Paged[models.Interview]{}, err
	}
	p = repository.NewPage(p.Page, p.Limit)
	list, total, err := s.interviews.ListByCandidate(ctx, candidateID, status, p)
	if err != nil {
		return Paged[models.Interview]{}, err
	}
	return newPaged(list, total, p), nil
}
