package handler

import (
	"net/http"

	"hireboard/internal/domain"
	"hireboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	stateCookie = "oauth_state"
	roleCookie  = "oauth_role"
	cookieTTL   = 600
)

type GoogleOAuthHandler struct {
	svc    *service.AuthService
	secure bool
}

// NewGoogleOAuthHandler builds the Google sign-in endpoints. secure marks the
// state cookies Secure and should be set in production.
func NewGoogleOAuthHandler(svc *service.AuthService, secure bool) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{svc: svc, secure: secure}
}

// Redirect sends the user to the Google consent screen. ?role=employer makes
// a newly created account an employer.
func (h *GoogleOAuthHandler) Redirect(c *gin.Context) {
	state := uuid.NewString()
	url, err := h.svc.GoogleAuthURL(state)
	if err != nil {
		respondError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, cookieTTL, "/", "", h.secure, true)
	c.SetCookie(roleCookie, c.Query("role"), cookieTTL, "/", "", h.secure, true)
	c.Redirect(http.StatusFound, url)
}

// Callback verifies the state, exchanges the code and returns our own tokens.
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		badRequest(c, "missing code")
		return
	}
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid oauth state", "kind": domain.KindUnauthorized})
		return
	}
	role, _ := c.Cookie(roleCookie)
	c.SetCookie(stateCookie, "", -1, "/", "", h.secure, true)
	c.SetCookie(roleCookie, "", -1, "/", "", h.secure, true)

	res, err := h.svc.GoogleCallback(c.Request.Context(), code, role, metaFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Token accepts an ID token from a client-side Google sign-in (mobile or
// web) and returns our own tokens.
func (h *GoogleOAuthHandler) Token(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken" binding:"required"`
		Role    string `json:"role"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.GoogleIDToken(c.Request.Context(), req.IDToken, req.Role, metaFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
