package types

const (
	ErrInvalidInput     = "Invalid input"
	ErrDatabaseError    = "Database error"
	ErrUpstreamError    = "Upstream service error"
	ErrUnauthorized     = "Unauthorized access"
	ErrForbidden        = "Forbidden"
	ErrNotFound         = "Not found"
	ErrConflict         = "Conflict"
	ErrInternalError    = "internal server error"
	ErrValidationFailed = "Validation failed"
)
