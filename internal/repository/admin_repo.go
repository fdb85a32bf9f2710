package repository

import (
	"context"
	"time"

	"hireboard/internal/domain"
	"hireboard/internal/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalUsers           int64            `json:"totalUsers"`
	JobSeekers           int64            `json:"jobSeekers"`
	Employers            int64            `json:"employers"`
	ActiveUsers          int64            `json:"activeUsers"`
	TotalCompanies       int64            `json:"totalCompanies"`
	TotalJobs            int64            `json:"totalJobs"`
	OpenJobs             int64            `json:"openJobs"`
	SuspendedJobs        int64            `json:"suspendedJobs"`
	TotalApplications    int64            `json:"totalApplications"`
	ApplicationsByStatus map[string]int64 `json:"applicationsByStatus"`
	UpcomingInterviews   int64            `json:"upcomingInterviews"`
	TotalReviews         int64            `json:"totalReviews"`
}

type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetDashboardStats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	db := r.db.WithContext(ctx)
	s := DashboardStats{ApplicationsByStatus: map[string]int64{}}
	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&s.TotalUsers, db.Model(&models.User{})},
		{&s.JobSeekers, db.Model(&models.User{}).Where("role = ?", domain.RoleJobSeeker)},
		{&s.Employers, db.Model(&models.User{}).Where("role = ?", domain.RoleEmployer)},
		{&s.ActiveUsers, db.Model(&models.User{}).Where("is_active = ?", true)},
		{&s.TotalCompanies, db.Model(&models.Company{})},
		{&s.TotalJobs, db.Model(&models.Job{})},
		{&s.OpenJobs, db.Model(&models.Job{}).Where("status = ?", domain.JobStatusOpen)},
		{&s.SuspendedJobs, db.Model(&models.Job{}).Where("status = ?", domain.JobStatusSuspended)},
		{&s.TotalApplications, db.Model(&models.Application{})},
		{&s.UpcomingInterviews, db.Model(&models.Interview{}).Where("status = ? AND scheduled_date >= ?", domain.InterviewScheduled, now)},
		{&s.TotalReviews, db.Model(&models.Review{})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, translate(err, "dashboard stats")
		}
	}

	var rows []struct {
		Status string
		Total  int64
	}
	if err := db.Model(&models.Application{}).Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error; err != nil {
		return nil, translate(err, "dashboard application stats")
	}
	for _, row := range rows {
		s.ApplicationsByStatus[row.Status] = row.Total
	}
	return &s, nil
}

// SignupsByDay returns daily signup counts for the last N days, oldest first.
// Days without signups are included with a zero count.
func (r *AdminRepository) SignupsByDay(ctx context.Context, now time.Time, days int) ([]TimeSeriesPoint, error) {
	since := now.AddDate(0, 0, -days+1).Truncate(24 * time.Hour)
	var created []time.Time
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("created_at >= ?", since).Pluck("created_at", &created).Error
	if err != nil {
		return nil, translate(err, "signups by day")
	}
	perDay := lo.CountValuesBy(created, func(t time.Time) string { return t.UTC().Format("2006-01-02") })

	points := make([]TimeSeriesPoint, 0, days)
	for d := since; !d.After(now); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		points = append(points, TimeSeriesPoint{Date: key, Count: int64(perDay[key])})
	}
	return points, nil
}
