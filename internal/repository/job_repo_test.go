package repository

import (
	"context"
	"testing"

	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_JobRepository_UpdateKeepsCountersAndStatus(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	employer := testutil.CreateUser(t, db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, db, employer.ID, domain.JobStatusOpen)
	jobs := NewJobRepository(db)

	stale, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)

	// writes that land between the edit's read and its save
	require.NoError(t, NewApplicationRepository(db).Create(ctx, &models.Application{
		JobID: job.ID, ApplicantID: seeker.ID, Status: domain.ApplicationPending,
	}))
	require.NoError(t, jobs.IncrementViews(ctx, job.ID))
	require.NoError(t, jobs.UpdateStatus(ctx, job.ID, domain.JobStatusSuspended))

	stale.Title = "Staff Engineer"
	stale.Skills = []string{"go"}
	stale.Salary.Max = 120000
	stale.IsRemote = false
	require.NoError(t, jobs.Update(ctx, stale))

	got, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", got.Title)
	assert.Equal(t, []string{"go"}, got.Skills)
	assert.Equal(t, int64(120000), got.Salary.Max)
	assert.Equal(t, int64(1), got.ApplicationsCount)
	assert.Equal(t, int64(1), got.Views)
	assert.Equal(t, domain.JobStatusSuspended, got.Status)
}

func Test_JobRepository_UpdateMissing(t *testing.T) {
	db := testutil.NewDB(t)
	err := NewJobRepository(db).Update(context.Background(), &models.Job{ID: 404, Title: "gone"})
	assert.ErrorIs(t, err, ErrNotFound)
}
