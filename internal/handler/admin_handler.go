package handler

import (
	"net/http"

	"hireboard/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ListUsers handles GET /admin/users?search=&role=.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	res, err := h.svc.ListUsers(c.Request.Context(), c.Query("search"), c.Query("role"), parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SetUserActive handles PUT /admin/users/:id/active {isActive}.
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.svc.SetUserActive(c.Request.Context(), actorFrom(c), id, *req.IsActive, metaFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// SetJobStatus handles PUT /admin/jobs/:id/status. Admins may suspend jobs.
func (h *AdminHandler) SetJobStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	j, err := h.svc.SetJobStatus(c.Request.Context(), actorFrom(c), id, req.Status, metaFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *AdminHandler) DeleteJob(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteJob(c.Request.Context(), actorFrom(c), id, metaFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AuditLogs handles GET /admin/audit-logs?action=&userId=.
func (h *AdminHandler) AuditLogs(c *gin.Context) {
	userID, ok := uintQuery(c, "userId")
	if !ok {
		return
	}
	res, err := h.svc.AuditLogs(c.Request.Context(), c.Query("action"), userID, parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) Settings(c *gin.Context) {
	list, err := h.svc.Settings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// UpdateSetting handles PUT /admin/settings/:key {value}.
func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if !bindJSON(c, &req) {
		return
	}
	key := c.Param("key")
	if err := h.svc.UpdateSetting(c.Request.Context(), actorFrom(c), key, req.Value, metaFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}
