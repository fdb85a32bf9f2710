package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hireboard/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func Test_respondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{domain.NotFound("job"), http.StatusNotFound, `{"error":"job not found","kind":"not_found"}`},
		{domain.Forbidden("nope"), http.StatusForbidden, `{"error":"nope","kind":"forbidden"}`},
		{domain.DuplicateApplication(), http.StatusConflict, `{"error":"you have already applied to this job","kind":"duplicate_application"}`},
		{domain.DuplicateReview(), http.StatusConflict, `{"error":"you have already reviewed this company","kind":"duplicate_review"}`},
		{domain.Validation("bad %s", "input"), http.StatusBadRequest, `{"error":"bad input","kind":"validation_error"}`},
		{domain.Unauthorized("who"), http.StatusUnauthorized, `{"error":"who","kind":"unauthorized"}`},
		{errors.New("connection refused"), http.StatusInternalServerError, `{"error":"internal server error","kind":"internal_error"}`},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		respondError(c, tc.err)
		assert.Equal(t, tc.status, w.Code)
		assert.JSONEq(t, tc.body, w.Body.String())
	}
}

func Test_parsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=3&limit=500", nil)
	p := parsePagination(c)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.Limit)

	c.Request = httptest.NewRequest(http.MethodGet, "/?page=x", nil)
	p = parsePagination(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
}
