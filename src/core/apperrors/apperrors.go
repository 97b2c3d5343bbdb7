package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for the failure categories the API reports. Services wrap
// store errors with one of these; handlers translate them to a status code
// without inspecting driver errors themselves.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrPolicyViolation  = errors.New("policy violation")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Wrap attaches a category to a lower-level error while keeping its message.
func Wrap(kind error, op string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %v", op, kind, err)
}

// FromStore categorizes an error returned by the entity store. Postgres
// row-level-security rejections (SQLSTATE 42501) are distinguished so listing
// endpoints can surface them as 403 for diagnosis; everything else unexpected
// is a plain store failure.
func FromStore(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42501" {
		return Wrap(ErrPolicyViolation, op, err)
	}
	return Wrap(ErrStoreUnavailable, op, err)
}

// StatusCode maps a categorized error to its HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrPolicyViolation):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
