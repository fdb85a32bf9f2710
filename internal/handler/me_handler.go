package handler

import (
	"net/http"

	"hireboard/internal/middleware"
	"hireboard/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the caller's own account under /users/me and public
// profiles under /users/:id.
type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.svc.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateProfileInput
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.svc.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UploadAvatar handles POST /users/me/avatar (multipart: file).
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	up, closer, ok := formFile(c)
	if !ok {
		return
	}
	defer closer.Close()
	u, err := h.svc.UploadAvatar(c.Request.Context(), middleware.GetUserID(c), up)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// RegisterFCMToken stores the device token for push notifications. An empty
// token unregisters the device.
func (h *UserHandler) RegisterFCMToken(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if err := h.svc.RegisterFCMToken(c.Request.Context(), middleware.GetUserID(c), req.Token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *UserHandler) PublicProfile(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.PublicProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
