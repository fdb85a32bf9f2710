package handler

import (
	"io"
	"net/http"

	"hireboard/internal/middleware"
	"hireboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type SavedJobHandler struct {
	svc *service.SavedJobService
}

func NewSavedJobHandler(svc *service.SavedJobService) *SavedJobHandler {
	return &SavedJobHandler{svc: svc}
}

type notesRequest struct {
	Notes string `json:"notes"`
}

// bindNotes accepts an empty body, sized or chunked, as empty notes.
func bindNotes(c *gin.Context) (string, bool) {
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", true
		}
		badRequest(c, "invalid request body: "+err.Error())
		return "", false
	}
	return req.Notes, true
}

// Save handles POST /saved-jobs/:jobId {notes}.
func (h *SavedJobHandler) Save(c *gin.Context) {
	jobID, ok := uintParam(c, "jobId")
	if !ok {
		return
	}
	notes, ok := bindNotes(c)
	if !ok {
		return
	}
	s, err := h.svc.Save(c.Request.Context(), middleware.GetUserID(c), jobID, notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *SavedJobHandler) UpdateNotes(c *gin.Context) {
	jobID, ok := uintParam(c, "jobId")
	if !ok {
		return
	}
	notes, ok := bindNotes(c)
	if !ok {
		return
	}
	s, err := h.svc.UpdateNotes(c.Request.Context(), middleware.GetUserID(c), jobID, notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SavedJobHandler) Remove(c *gin.Context) {
	jobID, ok := uintParam(c, "jobId")
	if !ok {
		return
	}
	if err := h.svc.Remove(c.Request.Context(), middleware.GetUserID(c), jobID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SavedJobHandler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context(), middleware.GetUserID(c), parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Check handles GET /saved-jobs/check/:jobId.
func (h *SavedJobHandler) Check(c *gin.Context) {
	jobID, ok := uintParam(c, "jobId")
	if !ok {
		return
	}
	saved, err := h.svc.Check(c.Request.Context(), middleware.GetUserID(c), jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isSaved": saved})
}
