package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_KindOf_UnwrapsChain(t *testing.T) {
	err := errors.Wrap(NotFound("job"), "load job")

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "load job: job not found", err.Error())
}

func Test_KindOf_PlainError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("boom")))
	assert.False(t, IsKind(nil, KindNotFound))
}

func Test_Constructors(t *testing.T) {
	assert.True(t, IsKind(DuplicateApplication(), KindDuplicateApplication))
	assert.True(t, IsKind(DuplicateReview(), KindDuplicateReview))
	assert.True(t, IsKind(Forbidden("no"), KindForbidden))
	assert.True(t, IsKind(Conflict("taken"), KindConflict))
	assert.Equal(t, "limit must be positive, got -1", Validation("limit must be positive, got %d", -1).Error())
}
