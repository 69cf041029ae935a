package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"apartment-be-svc/internal/middleware"
	"apartment-be-svc/internal/service"
	"apartment-be-svc/pkg/logger"
	"apartment-be-svc/pkg/utils"
)

// respondError maps a service error to the matching HTTP response.
// Unexpected errors are logged and answered with a 500.
func respondError(c *gin.Context, log *logger.Logger, err error, fallback string) {
	msg := err.Error()

	switch {
	case errors.Is(err, service.ErrNotFound):
		utils.NotFoundResponse(c, msg)
	case errors.Is(err, service.ErrForbidden):
		utils.ForbiddenResponse(c, msg)
	case errors.Is(err, service.ErrInvalidInput):
		utils.BadRequestResponse(c, msg, nil)
	case errors.Is(err, service.ErrConflict):
		utils.ConflictResponse(c, msg, nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, msg)
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error(fallback)
		utils.InternalServerErrorResponse(c, fallback, err)
	}
}

// currentActor returns the authenticated caller or answers 401
func currentActor(c *gin.Context) (service.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
	}
	return actor, ok
}
