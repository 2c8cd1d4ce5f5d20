package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestBusinessCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrBusiness("staff_required"))

	code, ok := BusinessCode(err)
	assert.True(t, ok)
	assert.Equal(t, "staff_required", code)
	assert.True(t, IsBusiness(err, "staff_required"))
	assert.False(t, IsBusiness(err, "reason_required"))

	_, ok = BusinessCode(errors.New("boom"))
	assert.False(t, ok)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor("appointment_not_found"))
	assert.Equal(t, http.StatusConflict, StatusFor("role_in_use"))
	assert.Equal(t, http.StatusBadRequest, StatusFor("invalid_time"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}
