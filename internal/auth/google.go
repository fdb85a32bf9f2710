package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"hireboard/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// GoogleIdentity is what a verified Google sign-in tells us about the user.
type GoogleIdentity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type GoogleVerifier interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*GoogleIdentity, error)
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

type googleVerifier struct {
	conf *oauth2.Config
}

// NewGoogleVerifier returns nil when Google sign-in is not configured.
func NewGoogleVerifier(cfg config.OAuthConfig) GoogleVerifier {
	if cfg.GoogleClientID == "" {
		return nil
	}
	return &googleVerifier{conf: &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}}
}

func (g *googleVerifier) AuthCodeURL(state string) string {
	return g.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for tokens and fetches the profile.
func (g *googleVerifier) Exchange(ctx context.Context, code string) (*GoogleIdentity, error) {
	tok, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	resp, err := g.conf.Client(ctx, tok).Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch userinfo: status %d", resp.StatusCode)
	}
	var info GoogleIdentity
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	return &info, nil
}

// VerifyIDToken validates an ID token issued to our client id (mobile sign-in).
func (g *googleVerifier) VerifyIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, idToken, g.conf.ClientID)
	if err != nil {
		return nil, fmt.Errorf("validate id token: %w", err)
	}
	claim := func(k string) string {
		v, _ := payload.Claims[k].(string)
		return v
	}
	info := &GoogleIdentity{ID: payload.Subject, Email: claim("email"), Name: claim("name"), Picture: claim("picture")}
	if info.ID == "" || info.Email == "" {
		return nil, ErrInvalidToken
	}
	return info, nil
}
