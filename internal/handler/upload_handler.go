package handler

import (
	"io"
	"net/http"

	"hireboard/internal/middleware"
	"hireboard/internal/service"

	"github.com/gin-gonic/gin"
)

const maxMultipartMemory = 12 << 20

// formFile opens the multipart field "file". The caller must close the
// returned closer.
func formFile(c *gin.Context) (service.Upload, io.Closer, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxMultipartMemory)
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file required")
		return service.Upload{}, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, "could not read file")
		return service.Upload{}, nil, false
	}
	return service.Upload{Filename: fh.Filename, Size: fh.Size, Body: f}, f, true
}

type ResumeHandler struct {
	svc *service.ResumeService
}

func NewResumeHandler(svc *service.ResumeService) *ResumeHandler {
	return &ResumeHandler{svc: svc}
}

// Upload handles POST /resumes (multipart: file, title).
func (h *ResumeHandler) Upload(c *gin.Context) {
	up, closer, ok := formFile(c)
	if !ok {
		return
	}
	defer closer.Close()
	res, err := h.svc.Upload(c.Request.Context(), middleware.GetUserID(c), c.PostForm("title"), up)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *ResumeHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *ResumeHandler) SetDefault(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	res, err := h.svc.SetDefault(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
