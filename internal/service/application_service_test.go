package service

import (
	"context"
	"sync"
	"testing"

	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/repository"
	"hireboard/internal/testutil"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ApplicationService_ShortlistScenario(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	employer := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, e.db, employer.ID, domain.JobStatusOpen)

	app, err := e.applications.Submit(ctx, seeker.ID, SubmitApplicationInput{JobID: job.ID, CoverLetter: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, app.Status)

	_, err = e.applications.UpdateStatus(ctx, Actor{ID: employer.ID, Role: domain.RoleEmployer}, app.ID,
		UpdateApplicationStatusInput{Status: domain.ApplicationShortlisted, Notes: "Strong candidate"})
	require.NoError(t, err)

	mine, err := e.applications.ListForApplicant(ctx, seeker.ID, repository.ApplicationFilter{}, repository.Page{})
	require.NoError(t, err)
	require.Len(t, mine.Data, 1)
	assert.Equal(t, domain.ApplicationShortlisted, mine.Data[0].Status)
	assert.Equal(t, "Strong candidate", mine.Data[0].Notes)

	inbox, err := e.notifications.ListForUser(ctx, seeker.ID,
		repository.NotificationFilter{Type: domain.NotificationStatusUpdate}, repository.Page{})
	require.NoError(t, err)
	require.Len(t, inbox.Data, 1)
	assert.Equal(t, "/applications/"+itoa(app.ID), inbox.Data[0].Link)

	employerInbox, err := e.notifications.ListForUser(ctx, employer.ID, repository.NotificationFilter{}, repository.Page{})
	require.NoError(t, err)
	require.Len(t, employerInbox.Data, 1)
	assert.Equal(t, domain.NotificationApplication, employerInbox.Data[0].Type)

	e.bus.WaitAsync()
	templates := []string{}
	for _, m := range e.mail.sent() {
		templates = append(templates, m.Template)
	}
	assert.ElementsMatch(t, []string{domain.TemplateApplicationReceived, domain.TemplateApplicationStatusUpdate}, templates)
}

func Test_ApplicationService_SubmitRejectsDuplicate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	employer := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, e.db, employer.ID, domain.JobStatusOpen)

	_, err := e.applications.Submit(ctx, seeker.ID, SubmitApplicationInput{JobID: job.ID})
	require.NoError(t, err)
	_, err = e.applications.Submit(ctx, seeker.ID, SubmitApplicationInput{JobID: job.ID})
	assert.True(t, domain.IsKind(err, domain.KindDuplicateApplication))

	var reloaded models.Job
	require.NoError(t, e.db.First(&reloaded, job.ID).Error)
	assert.EqualValues(t, 1, reloaded.ApplicationsCount)
}

func Test_ApplicationService_SubmitValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	employer := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	closed := testutil.CreateJob(t, e.db, employer.ID, domain.JobStatusClosed)

	_, err := e.applications.Submit(ctx, seeker.ID, SubmitApplicationInput{JobID: 9999})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	_, err = e.applications.Submit(ctx, seeker.ID, SubmitApplicationInput{JobID: closed.ID})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = e.applications.Submit(ctx, seeker.ID, SubmitApplicationInput{JobID: closed.ID, ResumeURL: "not a url"})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func Test_ApplicationService_UpdateStatusPermissions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	employer := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	other := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, e.db, employer.ID, domain.JobStatusOpen)
	app := testutil.CreateApplication(t, e.db, job.ID, seeker.ID)

	_, err := e.applications.UpdateStatus(ctx, Actor{ID: other.ID, Role: domain.RoleEmployer}, app.ID,
		UpdateApplicationStatusInput{Status: domain.ApplicationRejected})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	_, err = e.applications.UpdateStatus(ctx, Actor{ID: employer.ID, Role: domain.RoleEmployer}, app.ID,
		UpdateApplicationStatusInput{Status: "hired"})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	// free-form by default: pending straight to accepted is allowed
	updated, err := e.applications.UpdateStatus(ctx, Actor{ID: 1, Role: domain.RoleAdmin}, app.ID,
		UpdateApplicationStatusInput{Status: domain.ApplicationAccepted})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationAccepted, updated.Status)
}

func Test_ApplicationService_EnforcedTransitions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.applications.enforceTransitions = true
	employer := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, e.db, employer.ID, domain.JobStatusOpen)
	app := testutil.CreateApplication(t, e.db, job.ID, seeker.ID)
	actor := Actor{ID: employer.ID, Role: domain.RoleEmployer}

	_, err := e.applications.UpdateStatus(ctx, actor, app.ID, UpdateApplicationStatusInput{Status: domain.ApplicationAccepted})
	assert.True(t, domain.IsKind(err, domain.KindConflict))

	_, err = e.applications.UpdateStatus(ctx, actor, app.ID, UpdateApplicationStatusInput{Status: domain.ApplicationReviewed})
	assert.NoError(t, err)
}

func Test_ApplicationService_WithdrawRemovesFromBothLists(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	employer := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, e.db, employer.ID, domain.JobStatusOpen)

	app, err := e.applications.Submit(ctx, seeker.ID, SubmitApplicationInput{JobID: job.ID})
	require.NoError(t, err)

	err = e.applications.Withdraw(ctx, Actor{ID: employer.ID, Role: domain.RoleEmployer}, app.ID)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	require.NoError(t, e.applications.Withdraw(ctx, Actor{ID: seeker.ID, Role: domain.RoleJobSeeker}, app.ID))

	mine, err := e.applications.ListForApplicant(ctx, seeker.ID, repository.ApplicationFilter{}, repository.Page{})
	require.NoError(t, err)
	assert.Empty(t, mine.Data)
	theirs, err := e.applications.ListForEmployer(ctx, employer.ID, repository.ApplicationFilter{}, repository.Page{})
	require.NoError(t, err)
	assert.Empty(t, theirs.Data)

	_, err = e.applications.Get(ctx, Actor{ID: seeker.ID, Role: domain.RoleJobSeeker}, app.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func Test_ApplicationService_GetVisibility(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	employer := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	stranger := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, e.db, employer.ID, domain.JobStatusOpen)
	app := testutil.CreateApplication(t, e.db, job.ID, seeker.ID)

	_, err := e.applications.Get(ctx, Actor{ID: seeker.ID, Role: domain.RoleJobSeeker}, app.ID)
	assert.NoError(t, err)
	_, err = e.applications.Get(ctx, Actor{ID: employer.ID, Role: domain.RoleEmployer}, app.ID)
	assert.NoError(t, err)
	_, err = e.applications.Get(ctx, Actor{ID: stranger.ID, Role: domain.RoleJobSeeker}, app.ID)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	_, err = e.applications.ListForJob(ctx, Actor{ID: stranger.ID, Role: domain.RoleEmployer}, job.ID, "", repository.Page{})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	list, err := e.applications.ListForJob(ctx, Actor{ID: employer.ID, Role: domain.RoleEmployer}, job.ID, "", repository.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)
}

func Test_ApplicationService_ConcurrentSubmitsForSamePair(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	employer := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, e.db, employer.ID, domain.JobStatusOpen)

	const n = 8
	start := make(chan struct{})
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := e.applications.Submit(ctx, seeker.ID, SubmitApplicationInput{JobID: job.ID})
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	ok, dup := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case domain.IsKind(err, domain.KindDuplicateApplication):
			dup++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)

	var reloaded models.Job
	require.NoError(t, e.db.First(&reloaded, job.ID).Error)
	assert.EqualValues(t, 1, reloaded.ApplicationsCount)

	inbox, err := e.notifications.ListForUser(ctx, employer.ID, repository.NotificationFilter{}, repository.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, inbox.Total)
}

// submitAndShortlist runs the two writes that fan out notifications and
// emails, and checks both were stored.
func submitAndShortlist(t *testing.T, e *env) {
	t.Helper()
	ctx := context.Background()
	employer := testutil.CreateUser(t, e.db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, e.db, employer.ID, domain.JobStatusOpen)

	app, err := e.applications.Submit(ctx, seeker.ID, SubmitApplicationInput{JobID: job.ID, CoverLetter: "Hi"})
	require.NoError(t, err)
	updated, err := e.applications.UpdateStatus(ctx, Actor{ID: employer.ID, Role: domain.RoleEmployer}, app.ID,
		UpdateApplicationStatusInput{Status: domain.ApplicationShortlisted, Notes: "call back"})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationShortlisted, updated.Status)

	stored, err := repository.NewApplicationRepository(e.db).GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationShortlisted, stored.Status)
	assert.Equal(t, "call back", stored.Notes)
	assert.EqualValues(t, 1, stored.Job.ApplicationsCount)
}

func Test_ApplicationService_WritesSurviveBrokenNotificationStore(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.db.Migrator().DropTable(&models.Notification{}))

	submitAndShortlist(t, e)

	e.bus.WaitAsync()
	assert.Len(t, e.mail.sent(), 2)
}

func Test_ApplicationService_WritesSurviveFailingMailer(t *testing.T) {
	e := newEnv(t)
	e.mail.fail(errors.New("mail queue unavailable"))

	submitAndShortlist(t, e)

	e.bus.WaitAsync()
	assert.Equal(t, 2, e.mail.failures())
	assert.Empty(t, e.mail.sent())
}
