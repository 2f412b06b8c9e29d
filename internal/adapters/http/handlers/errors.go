package handlers

import (
	"errors"
	"strings"

	"edugate/internal/core/domain"
	"edugate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// detail strips the sentinel prefix added by fmt.Errorf("%w: ...")
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

// handleError maps domain errors to the HTTP envelope. Anything unrecognised
// is logged and answered with fallback.
func handleError(c *fiber.Ctx, log *logrus.Logger, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return response.BadRequest(c, detail(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid email, password or role")
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidToken):
		return response.Unauthorized(c, "Authentication required")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to access this resource")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Resource not found")
	case errors.Is(err, domain.ErrDuplicateEmail):
		return response.Conflict(c, "Email already registered")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, "Invalid status transition: "+detail(err, domain.ErrInvalidTransition))
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"request_id": c.Locals("requestid"),
		}).Error(fallback)
		return response.InternalServerError(c, fallback)
	}
}
