// Package testutil wires an in-memory database for repository, service and
// handler tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"hireboard/internal/database"
	"hireboard/internal/domain"
	"hireboard/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var seq atomic.Int64

// NewDB returns a migrated in-memory sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	n := seq.Add(1)
	u := &models.User{
		Email:    fmt.Sprintf("user%d@example.com", n),
		Name:     fmt.Sprintf("User %d", n),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateJob(t *testing.T, db *gorm.DB, employerID uint, status string) *models.Job {
	t.Helper()
	n := seq.Add(1)
	j := &models.Job{
		EmployerID:      employerID,
		Title:           fmt.Sprintf("Backend Engineer %d", n),
		Description:     "Build and run services",
		Category:        "engineering",
		JobType:         "full-time",
		ExperienceLevel: "mid",
		Salary:          models.Salary{Min: 50000, Max: 80000, Currency: "USD"},
		Location:        "Berlin",
		Status:          status,
	}
	require.NoError(t, db.Create(j).Error)
	return j
}

func CreateApplication(t *testing.T, db *gorm.DB, jobID, applicantID uint) *models.Application {
	t.Helper()
	a := &models.Application{JobID: jobID, ApplicantID: applicantID, Status: domain.ApplicationPending}
	require.NoError(t, db.Create(a).Error)
	return a
}

func CreateInterview(t *testing.T, db *gorm.DB, app *models.Application, employerID uint, at time.Time) *models.Interview {
	t.Helper()
	i := &models.Interview{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		EmployerID:    employerID,
		CandidateID:   app.ApplicantID,
		ScheduledDate: at,
		Duration:      45,
		Type:          domain.InterviewTypePhone,
		Status:        domain.InterviewScheduled,
	}
	require.NoError(t, db.Create(i).Error)
	return i
}
