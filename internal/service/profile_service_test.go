package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/repository"
	"hireboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ResumeService_FirstIsDefault(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	store := &fakeStore{}
	svc := NewResumeService(repository.NewResumeRepository(db), store, "hireboard")
	u := testutil.CreateUser(t, db, domain.RoleJobSeeker)

	first, err := svc.Upload(ctx, u.ID, "", Upload{Filename: "Ada Lovelace CV.pdf", Size: 2048, Body: strings.NewReader("%PDF")})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)
	assert.Equal(t, "Ada Lovelace CV", first.Title)
	assert.True(t, strings.HasSuffix(first.FileURL, ".pdf"))

	second, err := svc.Upload(ctx, u.ID, "Short CV", Upload{Filename: "short.docx", Size: 2048, Body: strings.NewReader("PK")})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	_, err = svc.Upload(ctx, u.ID, "", Upload{Filename: "huge.pdf", Size: 50 << 20, Body: strings.NewReader("")})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = svc.SetDefault(ctx, u.ID+1, second.ID)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	_, err = svc.SetDefault(ctx, u.ID, second.ID)
	require.NoError(t, err)

	list, err := svc.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.True(t, list[0].IsDefault)
	assert.False(t, list[1].IsDefault)

	require.NoError(t, svc.Delete(ctx, u.ID, first.ID))
	assert.Equal(t, []string{first.FileURL}, store.deleted)
	err = svc.Delete(ctx, u.ID, first.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func Test_UserService_ProfileAndTokens(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	cache := &countingInvalidator{}
	svc := NewUserService(repository.NewUserRepository(db), cache, &fakeStore{}, "hireboard")
	u := testutil.CreateUser(t, db, domain.RoleJobSeeker)

	headline := "Backend engineer"
	me, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Headline: &headline, Skills: []string{"go", "postgres"}})
	require.NoError(t, err)
	assert.Equal(t, headline, me.Headline)
	assert.Equal(t, []string{"go", "postgres"}, me.Skills)
	assert.Equal(t, u.Name, me.Name)

	empty := "  "
	_, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Name: &empty})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	me, err = svc.UploadAvatar(ctx, u.ID, Upload{Filename: "me.jpg", Size: 100, Body: strings.NewReader("jpg")})
	require.NoError(t, err)
	assert.Contains(t, me.AvatarURL, "hireboard/avatars/")

	require.NoError(t, svc.RegisterFCMToken(ctx, u.ID, "device-token"))
	var stored models.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.Equal(t, "device-token", stored.FCMToken)
	assert.Len(t, cache.ids, 3)

	profile, err := svc.PublicProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, headline, profile.Headline)
	_, err = svc.PublicProfile(ctx, 9999)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func Test_JobAlertService_OwnerScoped(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewJobAlertService(repository.NewJobAlertRepository(db))
	u := testutil.CreateUser(t, db, domain.RoleJobSeeker)
	other := testutil.CreateUser(t, db, domain.RoleJobSeeker)

	a, err := svc.Create(ctx, u.ID, JobAlertInput{Name: "Go jobs", Criteria: models.AlertCriteria{Keywords: "go", JobType: "full-time"}})
	require.NoError(t, err)
	assert.Equal(t, "daily", a.Frequency)
	assert.True(t, a.IsActive)

	_, err = svc.Create(ctx, u.ID, JobAlertInput{Name: "Bad", Frequency: "hourly"})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = svc.Toggle(ctx, other.ID, a.ID)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	toggled, err := svc.Toggle(ctx, u.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	got, err := svc.Get(ctx, u.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	updated, err := svc.Update(ctx, u.ID, a.ID, JobAlertInput{Name: "Go remote", Frequency: "weekly"})
	require.NoError(t, err)
	assert.Equal(t, "weekly", updated.Frequency)

	require.NoError(t, svc.Delete(ctx, u.ID, a.ID))
	list, err := svc.List(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func Test_AdminService(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)
	settings := repository.NewSettingRepository(db)
	require.NoError(t, settings.SeedDefaults(ctx, models.DefaultSettings))
	jobs := NewJobService(repository.NewJobRepository(db), repository.NewCompanyRepository(db))
	cache := &countingInvalidator{}
	svc := NewAdminService(repository.NewAdminRepository(db), users, jobs, settings, repository.NewAuditLogRepository(db), cache)

	admin := testutil.CreateUser(t, db, domain.RoleAdmin)
	employer := testutil.CreateUser(t, db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, db, domain.RoleJobSeeker)
	job := testutil.CreateJob(t, db, employer.ID, domain.JobStatusOpen)
	app := testutil.CreateApplication(t, db, job.ID, seeker.ID)
	testutil.CreateInterview(t, db, app, employer.ID, time.Now().UTC().Add(time.Hour))
	actor := Actor{ID: admin.ID, Role: domain.RoleAdmin}
	meta := RequestMeta{IP: "127.0.0.1"}

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, dash.TotalUsers)
	assert.EqualValues(t, 1, dash.OpenJobs)
	assert.EqualValues(t, 1, dash.ApplicationsByStatus[domain.ApplicationPending])
	assert.EqualValues(t, 1, dash.UpcomingInterviews)
	require.Len(t, dash.Signups, 30)
	assert.EqualValues(t, 3, dash.Signups[29].Count)

	_, err = svc.SetUserActive(ctx, actor, admin.ID, false, meta)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	u, err := svc.SetUserActive(ctx, actor, seeker.ID, false, meta)
	require.NoError(t, err)
	assert.False(t, u.IsActive)
	assert.Equal(t, []uint{seeker.ID}, cache.ids)

	j, err := svc.SetJobStatus(ctx, actor, job.ID, domain.JobStatusSuspended, meta)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusSuspended, j.Status)

	require.NoError(t, svc.UpdateSetting(ctx, actor, models.SettingRegistrationOpen, "false", meta))
	assert.True(t, domain.IsKind(svc.UpdateSetting(ctx, actor, models.SettingRegistrationOpen, "maybe", meta), domain.KindValidation))
	assert.True(t, domain.IsKind(svc.UpdateSetting(ctx, actor, "dark_mode", "on", meta), domain.KindNotFound))
	all, err := svc.Settings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "false", all[0].Value)

	require.NoError(t, svc.DeleteJob(ctx, actor, job.ID, meta))

	logs, err := svc.AuditLogs(ctx, "", admin.ID, repository.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, logs.Total)
	assert.Equal(t, AuditJobDeleted, logs.Data[0].Action)

	users2, err := svc.ListUsers(ctx, "", domain.RoleEmployer, repository.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, users2.Total)
}
