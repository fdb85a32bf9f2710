package handler

import (
	"net/http"

	"hireboard/internal/domain"
	"hireboard/internal/middleware"
	"hireboard/internal/models"
	"hireboard/internal/service"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	svc *service.InterviewService
}

func NewInterviewHandler(svc *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{svc: svc}
}

func (h *InterviewHandler) Schedule(c *gin.Context) {
	var req service.ScheduleInterviewInput
	if !bindJSON(c, &req) {
		return
	}
	iv, err := h.svc.Schedule(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, iv)
}

// List handles GET /interviews?status=. Employers see the interviews they
// scheduled, everyone else the interviews they are invited to.
func (h *InterviewHandler) List(c *gin.Context) {
	var (
		res service.Paged[models.Interview]
		err error
	)
	userID, status, p := middleware.GetUserID(c), c.Query("status"), parsePagination(c)
	if middleware.GetRole(c) == domain.RoleEmployer {
		res, err = h.svc.ListForEmployer(c.Request.Context(), userID, status, p)
	} else {
		res, err = h.svc.ListForCandidate(c.Request.Context(), userID, status, p)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *InterviewHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	iv, err := h.svc.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

// UpdateStatus handles PUT /interviews/:id/status {status, feedback?, scheduledDate?, notes?}.
func (h *InterviewHandler) UpdateStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req service.UpdateInterviewStatusInput
	if !bindJSON(c, &req) {
		return
	}
	iv, err := h.svc.UpdateStatus(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}
