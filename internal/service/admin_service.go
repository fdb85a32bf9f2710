package service

import (
	"context"
	"strconv"
	"time"

	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/repository"
)

type Dashboard struct {
	repository.DashboardStats
	Signups []repository.TimeSeriesPoint `json:"signups"`
}

type AdminService struct {
	stats    *repository.AdminRepository
	users    *repository.UserRepository
	jobs     *JobService
	settings *repository.SettingRepository
	audits   *repository.AuditLogRepository
	cache    userCache
	audit    auditor
}

func NewAdminService(stats *repository.AdminRepository, users *repository.UserRepository, jobs *JobService,
	settings *repository.SettingRepository, audits *repository.AuditLogRepository, cache userCache) *AdminService {
	return &AdminService{
		stats:    stats,
		users:    users,
		jobs:     jobs,
		settings: settings,
		audits:   audits,
		cache:    cache,
		audit:    auditor{repo: audits},
	}
}

func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := time.Now().UTC()
	stats, err := s.stats.GetDashboardStats(ctx, now)
	if err != nil {
		return nil, err
	}
	signups, err := s.stats.SignupsByDay(ctx, now, 30)
	if err != nil {
		return nil, err
	}
	return &Dashboard{DashboardStats: *stats, Signups: signups}, nil
}

func (s *AdminService) ListUsers(ctx context.Context, search, role string, p repository.Page) (Paged[models.User], error) {
	if role != "" && role != domain.RoleJobSeeker && role != domain.RoleEmployer && role != domain.RoleAdmin {
		return Paged[models.User]{}, domain.Validation("unknown role %q", role)
	}
	p = repository.NewPage(p.Page, p.Limit)
	list, total, err := s.users.List(ctx, search, role, p)
	if err != nil {
		return Paged[models.User]{}, err
	}
	return newPaged(list, total, p), nil
}

// SetUserActive activates or deactivates an account. Admins cannot
// deactivate themselves.
func (s *AdminService) SetUserActive(ctx context.Context, actor Actor, userID uint, active bool, meta RequestMeta) (*models.User, error) {
	if userID == actor.ID && !active {
		return nil, domain.Validation("you cannot deactivate your own account")
	}
	if err := s.users.SetActive(ctx, userID, active); err != nil {
		return nil, notFound(err, "user")
	}
	if s.cache != nil {
		s.cache.Invalidate(userID)
	}
	action := AuditUserDeactivated
	if active {
		action = AuditUserActivated
	}
	s.audit.record(ctx, actor.ID, action, "user", strconv.FormatUint(uint64(userID), 10), meta, nil)
	u, err := s.users.GetByID(ctx, userID)
	return u, notFound(err, "user")
}

func (s *AdminService) SetJobStatus(ctx context.Context, actor Actor, jobID uint, status string, meta RequestMeta) (*models.Job, error) {
	j, err := s.jobs.UpdateStatus(ctx, actor, jobID, status)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor.ID, AuditJobStatus, "job", strconv.FormatUint(uint64(jobID), 10), meta,
		map[string]interface{}{"status": j.Status})
	return j, nil
}

func (s *AdminService) DeleteJob(ctx context.Context, actor Actor, jobID uint, meta RequestMeta) error {
	if err := s.jobs.Delete(ctx, actor, jobID); err != nil {
		return err
	}
	s.audit.record(ctx, actor.ID, AuditJobDeleted, "job", strconv.FormatUint(uint64(jobID), 10), meta, nil)
	return nil
}

func (s *AdminService) AuditLogs(ctx context.Context, action string, userID uint, p repository.Page) (Paged[models.AuditLog], error) {
	p = repository.NewPage(p.Page, p.Limit)
	list, total, err := s.audits.List(ctx, action, userID, p)
	if err != nil {
		return Paged[models.AuditLog]{}, err
	}
	return newPaged(list, total, p), nil
}

func (s *AdminService) Settings(ctx context.Context) ([]models.SystemSetting, error) {
	list, err := s.settings.GetAll(ctx)
	if list == nil {
		list = []models.SystemSetting{}
	}
	return list, err
}

// UpdateSetting changes one of the known settings.
func (s *AdminService) UpdateSetting(ctx context.Context, actor Actor, key, value string, meta RequestMeta) error {
	if _, ok := models.DefaultSettings[key]; !ok {
		return domain.NotFound("setting")
	}
	if key == models.SettingRegistrationOpen && value != "true" && value != "false" {
		return domain.Validation("%s must be true or false", key)
	}
	if err := s.settings.Set(ctx, key, value); err != nil {
		return err
	}
	s.audit.record(ctx, actor.ID, AuditSettingChanged, "setting", key, meta, map[string]interface{}{"value": value})
	return nil
}
