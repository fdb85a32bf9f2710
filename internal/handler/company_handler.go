package handler

import (
	"net/http"

	"hireboard/internal/middleware"
	"hireboard/internal/service"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companies *service.CompanyService
	reviews   *service.ReviewService
}

func NewCompanyHandler(companies *service.CompanyService, reviews *service.ReviewService) *CompanyHandler {
	return &CompanyHandler{companies: companies, reviews: reviews}
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req service.CompanyInput
	if !bindJSON(c, &req) {
		return
	}
	co, err := h.companies.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, co)
}

// List handles GET /companies?search=&industry=.
func (h *CompanyHandler) List(c *gin.Context) {
	res, err := h.companies.List(c.Request.Context(), c.Query("search"), c.Query("industry"), parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *CompanyHandler) Mine(c *gin.Context) {
	co, err := h.companies.Mine(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, co)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	p, err := h.companies.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req service.CompanyInput
	if !bindJSON(c, &req) {
		return
	}
	co, err := h.companies.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, co)
}

// UploadLogo handles POST /companies/:id/logo (multipart: file).
func (h *CompanyHandler) UploadLogo(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	up, closer, ok := formFile(c)
	if !ok {
		return
	}
	defer closer.Close()
	co, err := h.companies.UploadLogo(c.Request.Context(), actorFrom(c), id, up)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, co)
}

// CreateReview handles POST /companies/:id/reviews.
func (h *CompanyHandler) CreateReview(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req service.ReviewInput
	if !bindJSON(c, &req) {
		return
	}
	rv, err := h.reviews.Create(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

// ListReviews handles GET /companies/:id/reviews.
func (h *CompanyHandler) ListReviews(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	res, err := h.reviews.ListForCompany(c.Request.Context(), id, parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateReview handles PUT /reviews/:id.
func (h *CompanyHandler) UpdateReview(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req service.ReviewInput
	if !bindJSON(c, &req) {
		return
	}
	rv, err := h.reviews.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

func (h *CompanyHandler) DeleteReview(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.reviews.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
