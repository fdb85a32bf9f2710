package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hireboard/config"
	"hireboard/internal/auth"
	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/repository"
	"hireboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGoogle struct {
	identity *auth.GoogleIdentity
}

func (f *fakeGoogle) AuthCodeURL(state string) string {
	return "https://accounts.example.com?state=" + state
}

func (f *fakeGoogle) Exchange(_ context.Context, code string) (*auth.GoogleIdentity, error) {
	if code != "good-code" {
		return nil, errors.New("bad code")
	}
	return f.identity, nil
}

func (f *fakeGoogle) VerifyIDToken(_ context.Context, idToken string) (*auth.GoogleIdentity, error) {
	if idToken != "good-token" {
		return nil, errors.New("bad token")
	}
	return f.identity, nil
}

var testJWT = &config.JWTConfig{
	AccessSecret:  "access-secret",
	RefreshSecret: "refresh-secret",
	AccessExpiry:  15 * time.Minute,
	RefreshExpiry: time.Hour,
	Issuer:        "hireboard-test",
}

func newAuthService(t *testing.T, google auth.GoogleVerifier) (*AuthService, *repository.SettingRepository, *repository.AuditLogRepository) {
	t.Helper()
	db := testutil.NewDB(t)
	settings := repository.NewSettingRepository(db)
	audits := repository.NewAuditLogRepository(db)
	return NewAuthService(testJWT, repository.NewUserRepository(db), settings, audits, google), settings, audits
}

func Test_AuthService_RegisterAndLogin(t *testing.T) {
	svc, _, audits := newAuthService(t, nil)
	ctx := context.Background()
	meta := RequestMeta{IP: "10.0.0.1", UserAgent: "test"}

	res, err := svc.Register(ctx, RegisterInput{Email: " Ada@Example.com ", Password: "s3cretpass", Name: "Ada", Role: domain.RoleJobSeeker}, meta)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)

	claims, err := auth.ParseAccessToken(testJWT, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleJobSeeker, claims.Role)

	_, err = svc.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "s3cretpass", Name: "Ada", Role: domain.RoleJobSeeker}, meta)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	_, err = svc.Register(ctx, RegisterInput{Email: "root@example.com", Password: "s3cretpass", Name: "Root", Role: domain.RoleAdmin}, meta)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = svc.Login(ctx, LoginInput{Email: "ada@example.com", Password: "wrong-pass"}, meta)
	assert.True(t, domain.IsKind(err, domain.KindUnauthorized))
	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever"}, meta)
	assert.True(t, domain.IsKind(err, domain.KindUnauthorized))

	logged, err := svc.Login(ctx, LoginInput{Email: "ADA@example.com", Password: "s3cretpass"}, meta)
	require.NoError(t, err)
	assert.NotNil(t, logged.User.LastLoginAt)

	entries, total, err := audits.List(ctx, "", res.User.ID, repository.NewPage(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, AuditLogin, entries[0].Action)
	assert.Equal(t, "10.0.0.1", entries[0].IP)
}

func Test_AuthService_RegistrationClosed(t *testing.T) {
	svc, settings, _ := newAuthService(t, nil)
	ctx := context.Background()
	require.NoError(t, settings.Set(ctx, models.SettingRegistrationOpen, "false"))

	_, err := svc.Register(ctx, RegisterInput{Email: "bo@example.com", Password: "s3cretpass", Name: "Bo", Role: domain.RoleEmployer}, RequestMeta{})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}

func Test_AuthService_DeactivatedCannotLogin(t *testing.T) {
	svc, _, _ := newAuthService(t, nil)
	ctx := context.Background()
	res, err := svc.Register(ctx, RegisterInput{Email: "cy@example.com", Password: "s3cretpass", Name: "Cy", Role: domain.RoleEmployer}, RequestMeta{})
	require.NoError(t, err)
	require.NoError(t, svc.users.SetActive(ctx, res.User.ID, false))

	_, err = svc.Login(ctx, LoginInput{Email: "cy@example.com", Password: "s3cretpass"}, RequestMeta{})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	_, err = svc.Refresh(ctx, res.RefreshToken)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}

func Test_AuthService_RefreshAndChangePassword(t *testing.T) {
	svc, _, _ := newAuthService(t, nil)
	ctx := context.Background()
	res, err := svc.Register(ctx, RegisterInput{Email: "di@example.com", Password: "s3cretpass", Name: "Di", Role: domain.RoleJobSeeker}, RequestMeta{})
	require.NoError(t, err)

	pair, err := svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	_, err = svc.Refresh(ctx, res.AccessToken)
	assert.True(t, domain.IsKind(err, domain.KindUnauthorized))

	err = svc.ChangePassword(ctx, res.User.ID, ChangePasswordInput{CurrentPassword: "nope-nope", NewPassword: "n3wpassword"}, RequestMeta{})
	assert.True(t, domain.IsKind(err, domain.KindUnauthorized))
	require.NoError(t, svc.ChangePassword(ctx, res.User.ID, ChangePasswordInput{CurrentPassword: "s3cretpass", NewPassword: "n3wpassword"}, RequestMeta{}))

	_, err = svc.Login(ctx, LoginInput{Email: "di@example.com", Password: "n3wpassword"}, RequestMeta{})
	assert.NoError(t, err)
}

func Test_AuthService_Google(t *testing.T) {
	google := &fakeGoogle{identity: &auth.GoogleIdentity{ID: "g-123", Email: "eve@example.com", Name: "Eve", Picture: "https://img.example.com/eve.png"}}
	svc, _, _ := newAuthService(t, google)
	ctx := context.Background()

	existing, err := svc.Register(ctx, RegisterInput{Email: "eve@example.com", Password: "s3cretpass", Name: "Eve", Role: domain.RoleEmployer}, RequestMeta{})
	require.NoError(t, err)

	res, err := svc.GoogleIDToken(ctx, "good-token", "", RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, existing.User.ID, res.User.ID)
	assert.False(t, res.IsNew)
	assert.Equal(t, domain.RoleEmployer, res.User.Role)

	_, err = svc.GoogleIDToken(ctx, "forged", "", RequestMeta{})
	assert.True(t, domain.IsKind(err, domain.KindUnauthorized))

	google.identity = &auth.GoogleIdentity{ID: "g-456", Email: "fay@example.com", Name: "Fay"}
	res, err = svc.GoogleCallback(ctx, "good-code", domain.RoleAdmin, RequestMeta{})
	require.NoError(t, err)
	assert.True(t, res.IsNew)
	assert.Equal(t, domain.RoleJobSeeker, res.User.Role)

	again, err := svc.GoogleCallback(ctx, "good-code", "", RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, again.User.ID)
	assert.False(t, again.IsNew)
}

func Test_AuthService_GoogleNotConfigured(t *testing.T) {
	svc, _, _ := newAuthService(t, nil)
	_, err := svc.GoogleAuthURL("state")
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}
