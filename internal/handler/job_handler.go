package handler

import (
	"net/http"
	"strconv"

	"hireboard/internal/middleware"
	"hireboard/internal/repository"
	"hireboard/internal/service"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	svc *service.JobService
}

func NewJobHandler(svc *service.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

func (h *JobHandler) Create(c *gin.Context) {
	var req service.JobInput
	if !bindJSON(c, &req) {
		return
	}
	j, err := h.svc.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, j)
}

// List handles the public search GET /jobs?keywords=&category=&jobType=&experienceLevel=&location=&remote=&minSalary=&companyId=&status=.
func (h *JobHandler) List(c *gin.Context) {
	remote, ok := boolQuery(c, "remote")
	if !ok {
		return
	}
	companyID, ok := uintQuery(c, "companyId")
	if !ok {
		return
	}
	var minSalary int64
	if raw := c.Query("minSalary"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(c, "invalid minSalary")
			return
		}
		minSalary = v
	}
	f := repository.JobFilter{
		Keywords:        c.Query("keywords"),
		Category:        c.Query("category"),
		JobType:         c.Query("jobType"),
		ExperienceLevel: c.Query("experienceLevel"),
		Location:        c.Query("location"),
		Remote:          remote,
		MinSalary:       minSalary,
		CompanyID:       companyID,
		Status:          c.Query("status"),
	}
	res, err := h.svc.List(c.Request.Context(), f, parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListMine handles GET /jobs/mine?status= for the calling employer.
func (h *JobHandler) ListMine(c *gin.Context) {
	res, err := h.svc.ListMine(c.Request.Context(), middleware.GetUserID(c), c.Query("status"), parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Get handles GET /jobs/:id. Each view is counted.
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	j, err := h.svc.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *JobHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req service.JobInput
	if !bindJSON(c, &req) {
		return
	}
	j, err := h.svc.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *JobHandler) UpdateStatus(c *gin.Context) {
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
	j, err := h.svc.UpdateStatus(c.Request.Context(), actorFrom(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}
