package handler

import (
	"net/http"

	"hireboard/internal/middleware"
	"hireboard/internal/repository"
	"hireboard/internal/service"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	svc *service.ApplicationService
}

func NewApplicationHandler(svc *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

// Submit handles POST /applications {jobId, coverLetter, resumeUrl}.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req service.SubmitApplicationInput
	if !bindJSON(c, &req) {
		return
	}
	app, err := h.svc.Submit(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ListMine handles GET /applications/mine?status=.
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	f := repository.ApplicationFilter{Status: c.Query("status")}
	res, err := h.svc.ListForApplicant(c.Request.Context(), middleware.GetUserID(c), f, parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListForEmployer handles GET /applications/employer?jobId=&status=.
func (h *ApplicationHandler) ListForEmployer(c *gin.Context) {
	jobID, ok := uintQuery(c, "jobId")
	if !ok {
		return
	}
	f := repository.ApplicationFilter{JobID: jobID, Status: c.Query("status")}
	res, err := h.svc.ListForEmployer(c.Request.Context(), middleware.GetUserID(c), f, parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListForJob handles GET /jobs/:id/applications?status=.
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	jobID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	res, err := h.svc.ListForJob(c.Request.Context(), actorFrom(c), jobID, c.Query("status"), parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	app, err := h.svc.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// UpdateStatus handles PUT /applications/:id/status {status, notes}.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req service.UpdateApplicationStatusInput
	if !bindJSON(c, &req) {
		return
	}
	app, err := h.svc.UpdateStatus(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Withdraw handles DELETE /applications/:id.
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Withdraw(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
