package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"hireboard/config"
	"hireboard/internal/auth"
	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/repository"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCreds = domain.Unauthorized("invalid email or password")

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=255"`
	Role     string `json:"role" validate:"required,oneof=jobseeker employer"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

// AuthResult is returned by every sign-in path.
type AuthResult struct {
	User  *models.User `json:"user"`
	IsNew bool         `json:"isNew,omitempty"`
	auth.TokenPair
}

type AuthService struct {
	jwt      *config.JWTConfig
	users    *repository.UserRepository
	settings *repository.SettingRepository
	google   auth.GoogleVerifier
	audit    auditor
}

func NewAuthService(jwt *config.JWTConfig, users *repository.UserRepository, settings *repository.SettingRepository,
	audits *repository.AuditLogRepository, google auth.GoogleVerifier) *AuthService {
	return &AuthService{jwt: jwt, users: users, settings: settings, google: google, audit: auditor{repo: audits}}
}

func (s *AuthService) issue(u *models.User, isNew bool) (*AuthResult, error) {
	pair, err := auth.IssueTokens(s.jwt, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, errors.Wrap(err, "issue tokens")
	}
	return &AuthResult{User: u, IsNew: isNew, TokenPair: pair}, nil
}

func (s *AuthService) registrationOpen(ctx context.Context) (bool, error) {
	v, err := s.settings.Get(ctx, models.SettingRegistrationOpen)
	if errors.Is(err, repository.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return v != "false", nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput, meta RequestMeta) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	open, err := s.registrationOpen(ctx)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, domain.Forbidden("registration is currently closed")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	u := &models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflict("email already registered")
		}
		return nil, err
	}
	s.audit.record(ctx, u.ID, AuditRegister, "user", strconv.FormatUint(uint64(u.ID), 10), meta, map[string]interface{}{"role": u.Role})
	return s.issue(u, true)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput, meta RequestMeta) (*AuthResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errInvalidCreds
		}
		return nil, err
	}
	if u.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return nil, errInvalidCreds
	}
	if !u.IsActive {
		return nil, domain.Forbidden("account is deactivated")
	}
	s.touchLogin(ctx, u)
	s.audit.record(ctx, u.ID, AuditLogin, "user", strconv.FormatUint(uint64(u.ID), 10), meta, nil)
	return s.issue(u, false)
}

func (s *AuthService) touchLogin(ctx context.Context, u *models.User) {
	now := time.Now().UTC()
	if err := s.users.UpdateFields(ctx, u.ID, map[string]interface{}{"last_login_at": now}); err == nil {
		u.LastLoginAt = &now
	}
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	userID, err := auth.ParseRefreshToken(s.jwt, refreshToken)
	if err != nil {
		return nil, domain.Unauthorized("invalid refresh token")
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.Unauthorized("invalid refresh token")
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, domain.Forbidden("account is deactivated")
	}
	pair, err := auth.IssueTokens(s.jwt, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, errors.Wrap(err, "issue tokens")
	}
	return &pair, nil
}

func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if s.google == nil {
		return "", domain.Validation("google sign-in is not configured")
	}
	return s.google.AuthCodeURL(state), nil
}

// GoogleCallback completes the redirect flow with the authorization code.
func (s *AuthService) GoogleCallback(ctx context.Context, code, role string, meta RequestMeta) (*AuthResult, error) {
	if s.google == nil {
		return nil, domain.Validation("google sign-in is not configured")
	}
	id, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, domain.Unauthorized("google sign-in failed")
	}
	return s.LoginWithGoogle(ctx, id, role, meta)
}

// GoogleIDToken signs in with an ID token obtained by a client-side Google flow.
func (s *AuthService) GoogleIDToken(ctx context.Context, idToken, role string, meta RequestMeta) (*AuthResult, error) {
	if s.google == nil {
		return nil, domain.Validation("google sign-in is not configured")
	}
	id, err := s.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, domain.Unauthorized("invalid google id token")
	}
	return s.LoginWithGoogle(ctx, id, role, meta)
}

// LoginWithGoogle finds the user by Google ID, links Google to an existing
// account with the same email, or creates a new account. role only applies
// to new accounts and defaults to jobseeker.
func (s *AuthService) LoginWithGoogle(ctx context.Context, id *auth.GoogleIdentity, role string, meta RequestMeta) (*AuthResult, error) {
	if id.ID == "" || id.Email == "" {
		return nil, domain.Unauthorized("google account has no email")
	}
	u, err := s.users.GetByGoogleID(ctx, id.ID)
	if err == nil {
		return s.googleSignedIn(ctx, u, false, meta)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	gid := id.ID
	existing, err := s.users.GetByEmail(ctx, id.Email)
	switch {
	case err == nil:
		existing.GoogleID = &gid
		if existing.AvatarURL == "" {
			existing.AvatarURL = id.Picture
		}
		if err := s.users.Update(ctx, existing); err != nil {
			return nil, err
		}
		return s.googleSignedIn(ctx, existing, false, meta)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	open, err := s.registrationOpen(ctx)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, domain.Forbidden("registration is currently closed")
	}
	if role != domain.RoleEmployer {
		role = domain.RoleJobSeeker
	}
	name := strings.TrimSpace(id.Name)
	if name == "" {
		name = strings.Split(id.Email, "@")[0]
	}
	u = &models.User{
		Email:     strings.ToLower(id.Email),
		Name:      name,
		Role:      role,
		GoogleID:  &gid,
		AvatarURL: id.Picture,
		IsActive:  true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.googleSignedIn(ctx, u, true, meta)
}

func (s *AuthService) googleSignedIn(ctx context.Context, u *models.User, isNew bool, meta RequestMeta) (*AuthResult, error) {
	if !u.IsActive {
		return nil, domain.Forbidden("account is deactivated")
	}
	s.touchLogin(ctx, u)
	s.audit.record(ctx, u.ID, AuditGoogleLogin, "user", strconv.FormatUint(uint64(u.ID), 10), meta, map[string]interface{}{"new": isNew})
	return s.issue(u, isNew)
}

// ChangePassword updates the user's password. Requires current password verification.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, in ChangePasswordInput, meta RequestMeta) error {
	if err := validateInput(in); err != nil {
		return err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return notFound(err, "user")
	}
	if u.PasswordHash == "" {
		return domain.Validation("account uses Google sign-in and has no password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.Unauthorized("current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	if err := s.users.UpdateFields(ctx, u.ID, map[string]interface{}{"password_hash": string(hash)}); err != nil {
		return err
	}
	s.audit.record(ctx, u.ID, AuditPasswordChange, "user", strconv.FormatUint(uint64(u.ID), 10), meta, nil)
	return nil
}
