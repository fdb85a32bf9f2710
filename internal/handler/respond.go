package handler

import (
	"net/http"
	"strconv"

	"hireboard/internal/domain"
	"hireboard/internal/logger"
	"hireboard/internal/middleware"
	"hireboard/internal/repository"
	"hireboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const kindInternal = "internal_error"

var statusByKind = map[domain.Kind]int{
	domain.KindNotFound:             http.StatusNotFound,
	domain.KindForbidden:            http.StatusForbidden,
	domain.KindDuplicateApplication: http.StatusConflict,
	domain.KindDuplicateReview:      http.StatusConflict,
	domain.KindConflict:             http.StatusConflict,
	domain.KindValidation:           http.StatusBadRequest,
	domain.KindUnauthorized:         http.StatusUnauthorized,
}

// respondError writes {"error", "kind"} for domain errors. Anything else is
// logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		status, ok := statusByKind[de.Kind]
		if !ok {
			status = http.StatusBadRequest
		}
		c.AbortWithStatusJSON(status, gin.H{"error": de.Msg, "kind": de.Kind})
		return
	}
	log.WithFields(log.Fields{
		"method":              c.Request.Method,
		"path":                c.FullPath(),
		logger.ErrorTypeField: logger.ErrorTypeInternal,
	}).Errorf("request failed: %v", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "kind": kindInternal})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg, "kind": domain.KindValidation})
}

// bindJSON decodes the body into dst and answers 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// uintParam parses a positive id path parameter and answers 400 on failure.
func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func uintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func boolQuery(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		badRequest(c, "invalid "+name)
		return nil, false
	}
	return &v, true
}

// parsePagination reads ?page=&limit=. Bad values fall back to the defaults.
func parsePagination(c *gin.Context) repository.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(repository.DefaultPageSize)))
	return repository.NewPage(page, limit)
}

func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{ID: middleware.GetUserID(c), Role: middleware.GetRole(c)}
}

func metaFrom(c *gin.Context) service.RequestMeta {
	return service.RequestMeta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}
