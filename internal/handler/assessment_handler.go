package handler

import (
	"net/http"

	"hireboard/internal/repository"
	"hireboard/internal/service"

	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	svc *service.AssessmentService
}

func NewAssessmentHandler(svc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{svc: svc}
}

func (h *AssessmentHandler) Create(c *gin.Context) {
	var req service.AssessmentInput
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.svc.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// List handles GET /assessments?skill=&jobId=&mine=true.
func (h *AssessmentHandler) List(c *gin.Context) {
	jobID, ok := uintQuery(c, "jobId")
	if !ok {
		return
	}
	mine, ok := boolQuery(c, "mine")
	if !ok {
		return
	}
	actor := actorFrom(c)
	f := repository.AssessmentFilter{Skill: c.Query("skill"), JobID: jobID}
	if mine != nil && *mine {
		f.CreatorID = actor.ID
	}
	res, err := h.svc.List(c.Request.Context(), actor, f, parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AssessmentHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	a, err := h.svc.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Submit handles POST /assessments/:id/submit {answers}.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req service.SubmitAssessmentInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.Submit(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *AssessmentHandler) Results(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	list, err := h.svc.Results(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}
