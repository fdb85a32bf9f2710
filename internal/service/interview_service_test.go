package service

import (
	"context"
	"testing"
	"time"

	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/repository"
	"hireboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_InterviewService_Schedule(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	employer := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, e.db, employer.ID, domain.JobStatusOpen)
	app := testutil.CreateApplication(t, e.db, job.ID, seeker.ID)
	actor := Actor{ID: employer.ID, Role: domain.RoleEmployer}
	at := time.Now().UTC().Add(48 * time.Hour)

	iv, err := e.interviews.Schedule(ctx, actor, ScheduleInterviewInput{
		ApplicationID: app.ID,
		ScheduledDate: at,
		Type:          domain.InterviewTypeVideo,
		MeetingLink:   "https://meet.example.com/abc",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InterviewScheduled, iv.Status)
	assert.Equal(t, seeker.ID, iv.CandidateID)
	assert.Equal(t, defaultInterviewDuration, iv.Duration)

	inbox, err := e.notifications.ListForUser(ctx, seeker.ID,
		repository.NotificationFilter{Type: domain.NotificationInterview}, repository.Page{})
	require.NoError(t, err)
	require.Len(t, inbox.Data, 1)
	assert.Equal(t, "/interviews/"+itoa(iv.ID), inbox.Data[0].Link)
	assert.Equal(t, domain.PriorityHigh, inbox.Data[0].Priority)

	e.bus.WaitAsync()
	require.Len(t, e.mail.sent(), 1)
	assert.Equal(t, domain.TemplateInterviewScheduled, e.mail.sent()[0].Template)
	assert.Equal(t, seeker.Email, e.mail.sent()[0].To)
}

func Test_InterviewService_ScheduleValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	employer := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	other := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, e.db, employer.ID, domain.JobStatusOpen)
	app := testutil.CreateApplication(t, e.db, job.ID, seeker.ID)
	actor := Actor{ID: employer.ID, Role: domain.RoleEmployer}
	future := time.Now().UTC().Add(time.Hour)

	cases := []struct {
		name string
		in   ScheduleInterviewInput
		kind domain.Kind
	}{
		{"past date", ScheduleInterviewInput{ApplicationID: app.ID, ScheduledDate: time.Now().UTC().Add(-time.Hour), Type: domain.InterviewTypePhone}, domain.KindValidation},
		{"unknown type", ScheduleInterviewInput{ApplicationID: app.ID, ScheduledDate: future, Type: "carrier pigeon"}, domain.KindValidation},
		{"video without link", ScheduleInterviewInput{ApplicationID: app.ID, ScheduledDate: future, Type: domain.InterviewTypeVideo}, domain.KindValidation},
		{"in-person without location", ScheduleInterviewInput{ApplicationID: app.ID, ScheduledDate: future, Type: domain.InterviewTypeInPerson}, domain.KindValidation},
		{"missing application", ScheduleInterviewInput{ApplicationID: 9999, ScheduledDate: future, Type: domain.InterviewTypePhone}, domain.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.interviews.Schedule(ctx, actor, tc.in)
			assert.Equal(t, tc.kind, domain.KindOf(err))
		})
	}

	_, err := e.interviews.Schedule(ctx, Actor{ID: other.ID, Role: domain.RoleEmployer},
		ScheduleInterviewInput{ApplicationID: app.ID, ScheduledDate: future, Type: domain.InterviewTypePhone})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}

func Test_InterviewService_UpdateStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	employer := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, e.db, employer.ID, domain.JobStatusOpen)
	app := testutil.CreateApplication(t, e.db, job.ID, seeker.ID)
	iv := testutil.CreateInterview(t, e.db, app, employer.ID, time.Now().UTC().Add(3*time.Hour))
	require.NoError(t, e.db.Model(iv).Update("reminder_sent", true).Error)
	actor := Actor{ID: employer.ID, Role: domain.RoleEmployer}

	_, err := e.interviews.UpdateStatus(ctx, Actor{ID: seeker.ID, Role: domain.RoleJobSeeker}, iv.ID,
		UpdateInterviewStatusInput{Status: domain.InterviewCancelled})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	moved := time.Now().UTC().Add(72 * time.Hour)
	updated, err := e.interviews.UpdateStatus(ctx, actor, iv.ID,
		UpdateInterviewStatusInput{Status: domain.InterviewRescheduled, ScheduledDate: &moved})
	require.NoError(t, err)
	assert.Equal(t, domain.InterviewRescheduled, updated.Status)
	assert.False(t, updated.ReminderSent)

	updated, err = e.interviews.UpdateStatus(ctx, actor, iv.ID, UpdateInterviewStatusInput{
		Status:   domain.InterviewCompleted,
		Feedback: &models.InterviewFeedback{Rating: 4, Comments: "Solid system design"},
	})
	require.NoError(t, err)

	var stored models.Interview
	require.NoError(t, e.db.First(&stored, iv.ID).Error)
	assert.Equal(t, domain.InterviewCompleted, stored.Status)
	assert.Equal(t, 4, stored.Feedback.Rating)
	assert.WithinDuration(t, moved, stored.ScheduledDate, time.Second)

	// status changes do not notify the candidate
	inbox, err := e.notifications.ListForUser(ctx, seeker.ID, repository.NotificationFilter{}, repository.Page{})
	require.NoError(t, err)
	assert.Empty(t, inbox.Data)
}

func Test_InterviewService_Lists(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	employer := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, e.db, employer.ID, domain.JobStatusOpen)
	app := testutil.CreateApplication(t, e.db, job.ID, seeker.ID)
	later := testutil.CreateInterview(t, e.db, app, employer.ID, time.Now().UTC().Add(48*time.Hour))
	sooner := testutil.CreateInterview(t, e.db, app, employer.ID, time.Now().UTC().Add(24*time.Hour))

	mine, err := e.interviews.ListForCandidate(ctx, seeker.ID, "", repository.Page{})
	require.NoError(t, err)
	require.Len(t, mine.Data, 2)
	assert.Equal(t, sooner.ID, mine.Data[0].ID)
	assert.Equal(t, later.ID, mine.Data[1].ID)

	theirs, err := e.interviews.ListForEmployer(ctx, employer.ID, domain.InterviewScheduled, repository.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, theirs.Total)

	_, err = e.interviews.ListForEmployer(ctx, employer.ID, "postponed", repository.Page{})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func Test_ReminderJob_RemindsOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	employer := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, e.db, employer.ID, domain.JobStatusOpen)
	app := testutil.CreateApplication(t, e.db, job.ID, seeker.ID)
	testutil.CreateInterview(t, e.db, app, employer.ID, time.Now().UTC().Add(2*time.Hour))
	testutil.CreateInterview(t, e.db, app, employer.ID, time.Now().UTC().Add(5*24*time.Hour))

	job2 := NewReminderJob(repository.NewInterviewRepository(e.db), e.publisher, 24*time.Hour)
	n, err := job2.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = job2.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	inbox, err := e.notifications.ListForUser(ctx, seeker.ID, repository.NotificationFilter{}, repository.Page{})
	require.NoError(t, err)
	require.Len(t, inbox.Data, 1)
	assert.Equal(t, "Interview reminder", inbox.Data[0].Title)

	e.bus.WaitAsync()
	require.Len(t, e.mail.sent(), 1)
	assert.Equal(t, domain.TemplateInterviewReminder, e.mail.sent()[0].Template)
}
