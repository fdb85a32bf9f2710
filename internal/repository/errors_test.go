package repository

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func Test_Translate(t *testing.T) {
	assert.NoError(t, translate(nil, "op"))
	assert.Equal(t, ErrNotFound, translate(gorm.ErrRecordNotFound, "op"))
	assert.Equal(t, ErrDuplicate, translate(gorm.ErrDuplicatedKey, "op"))
	assert.Equal(t, ErrDuplicate, translate(errors.New("UNIQUE constraint failed: applications.job_id"), "op"))
	assert.Equal(t, ErrDuplicate, translate(errors.New("Error 1062: Duplicate entry '1-2'"), "op"))
	assert.Equal(t, ErrDuplicate, translate(errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"), "op"))

	err := translate(errors.New("connection refused"), "create job")
	assert.EqualError(t, err, "create job: connection refused")
}
