package handlers

import (
	"errors"

	"subtrack/internal/common"
	"subtrack/internal/repositories"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// respondError maps service-layer errors onto the HTTP error envelope.
// Validation failures become 400s with the offending field, missing rows
// 404s, restricted deletes 409s. Anything else is logged and hidden behind
// a 500.
func respondError(c echo.Context, err error, resource string) error {
	var vErr *common.ValidationError
	switch {
	case errors.As(err, &vErr):
		return common.SendValidationError(c, vErr.Field, vErr.Message)
	case errors.Is(err, repositories.ErrNotFound):
		return common.SendNotFoundError(c, resource)
	case errors.Is(err, repositories.ErrRestricted):
		return common.SendConflictError(c, resource+" is referenced by existing subscriptions")
	case errors.Is(err, repositories.ErrDuplicate):
		return common.SendConflictError(c, resource+" already exists")
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return common.SendServerError(c, "Internal server error")
	}
}

// listQuery is the shared pagination query binding.
type listQuery struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}
