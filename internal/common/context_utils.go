package common

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type contextKey string

// UserIDKey carries the authenticated user through the request context. The
// creator of a subscription is always taken from here at the handler and
// passed down explicitly; services never reach into ambient state.
const UserIDKey contextKey = "user_id"

// ValidationError is a field-level input rejection. Handlers translate it to
// a 400 with the field in the error details; anything else bubbling out of a
// service is a 500.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrorResponse is the standardized error envelope for every non-2xx reply.
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response.
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a 400 with a single field-level message.
func SendValidationError(c echo.Context, field, message string) error {
	return SendValidationErrors(c, map[string]string{field: message})
}

// SendValidationErrors sends a 400 with per-field messages.
func SendValidationErrors(c echo.Context, details map[string]string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a generic 400.
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a 500 without leaking internals.
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a 404 for the named resource.
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendConflictError sends a 409, used for restricted deletes.
func SendConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, CreateErrorResponse("CONFLICT", message, nil))
}

// SendUnauthorizedError sends a 401.
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
}

// ValidateUUID validates and parses a path/body id.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, &ValidationError{Field: fieldName, Message: fieldName + " is required"}
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, &ValidationError{Field: fieldName, Message: fieldName + " is not a valid UUID"}
	}
	return id, nil
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: fieldName, Message: fieldName + " is required"}
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail validates email format.
func ValidateEmail(email, fieldName string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return &ValidationError{Field: fieldName, Message: fieldName + " must be a valid email address"}
	}
	return nil
}

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[0-9]{1}[A-Z]{1}[A-Z0-9]{1}$`)

// ValidateGSTIN validates GSTIN format (15 characters, e.g. 22AAAAA1234A1Z5).
// Empty is allowed; the field is optional on customers.
func ValidateGSTIN(gstin, fieldName string) error {
	gstin = strings.TrimSpace(gstin)
	if gstin == "" {
		return nil
	}
	if len(gstin) != 15 {
		return &ValidationError{Field: fieldName, Message: fieldName + " must be exactly 15 characters"}
	}
	if !gstinPattern.MatchString(gstin) {
		return &ValidationError{Field: fieldName, Message: fieldName + " has invalid GSTIN format"}
	}
	return nil
}

var panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]{1}$`)

// ValidatePAN validates PAN format (10 characters, e.g. ABCDE1234F). Empty is
// allowed; the field is optional on resellers.
func ValidatePAN(pan, fieldName string) error {
	pan = strings.TrimSpace(pan)
	if pan == "" {
		return nil
	}
	if !panPattern.MatchString(pan) {
		return &ValidationError{Field: fieldName, Message: fieldName + " has invalid PAN format"}
	}
	return nil
}

// ValidateCommissionRate validates a commission percentage: 0 to 100
// inclusive. Negative or >100 rates are rejected here, before any pricing
// math sees them.
func ValidateCommissionRate(rate decimal.Decimal, fieldName string) error {
	if rate.IsNegative() {
		return &ValidationError{Field: fieldName, Message: fieldName + " cannot be negative"}
	}
	if rate.GreaterThan(decimal.NewFromInt(100)) {
		return &ValidationError{Field: fieldName, Message: fieldName + " cannot exceed 100"}
	}
	return nil
}

// ValidateDateOrder enforces expiry strictly after start.
func ValidateDateOrder(start, expiry time.Time) error {
	if !expiry.After(start) {
		return &ValidationError{Field: "expiry_date", Message: "expiry_date must be after start_date"}
	}
	return nil
}

// ValidatePaginationParams normalizes limit/offset query parameters.
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// SafeString safely dereferences an optional string.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetUserIDFromContext extracts the authenticated user ID from the request
// context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
