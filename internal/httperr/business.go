package httperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code of a BusinessError anywhere in err's chain.
func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// businessStatus maps codes that are not plain validation failures.
var businessStatus = map[string]int{
	"appointment_not_found": http.StatusNotFound,
	"client_not_found":      http.StatusNotFound,
	"service_not_found":     http.StatusNotFound,
	"staff_not_found":       http.StatusNotFound,
	"role_not_found":        http.StatusNotFound,
	"permission_not_found":  http.StatusNotFound,
	"role_in_use":           http.StatusConflict,
	"already_exists":        http.StatusConflict,
}

// StatusFor returns the HTTP status of a business code, 400 by default.
func StatusFor(code string) int {
	if s, ok := businessStatus[code]; ok {
		return s
	}
	return http.StatusBadRequest
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueViolation detects duplicate keys from Postgres (23505) and from
// gorm's translated error.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
