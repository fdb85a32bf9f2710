package service

import (
	"context"
	"encoding/json"

	"hireboard/internal/logger"
	"hireboard/internal/models"
	"hireboard/internal/repository"

	log "github.com/sirupsen/logrus"
)

// RequestMeta identifies where a request came from, for the audit log.
type RequestMeta struct {
	IP        string
	UserAgent string
}

const (
	AuditRegister        = "auth.register"
	AuditLogin           = "auth.login"
	AuditGoogleLogin     = "auth.google_login"
	AuditPasswordChange  = "auth.password_change"
	AuditUserActivated   = "admin.user_activated"
	AuditUserDeactivated = "admin.user_deactivated"
	AuditJobStatus       = "admin.job_status"
	AuditJobDeleted      = "admin.job_deleted"
	AuditSettingChanged  = "admin.setting_changed"
)

type auditor struct {
	repo *repository.AuditLogRepository
}

// record writes an audit entry. Failures are logged and never fail the caller.
func (a auditor) record(ctx context.Context, userID uint, action, resource, resourceID string, meta RequestMeta, extra map[string]interface{}) {
	if a.repo == nil {
		return
	}
	entry := &models.AuditLog{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IP:         meta.IP,
		UserAgent:  truncate(meta.UserAgent, 512),
	}
	if userID != 0 {
		entry.UserID = &userID
	}
	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Metadata = string(b)
		}
	}
	if err := a.repo.Create(ctx, entry); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("audit %s: %v", action, err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
