package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tunahan/uniplanner/internal/app/models/dto"
	"github.com/tunahan/uniplanner/internal/pkg/apperrors"
	"github.com/tunahan/uniplanner/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. All pipeline
// failures come through here so the status mapping lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidSelector):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidSelector, err, "Invalid semester selector")
	case errors.Is(err, apperrors.ErrPreconditionFailed):
		respond(c, http.StatusBadRequest, dto.ErrorCodePreconditionFailed, err, "Required records are missing")
	case errors.Is(err, apperrors.ErrEngineTimedOut):
		respond(c, http.StatusGatewayTimeout, dto.ErrorCodeEngineTimeout, err, "Timetable generation timed out")
	case errors.Is(err, apperrors.ErrNoFeasibleSolution):
		respond(c, http.StatusUnprocessableEntity, dto.ErrorCodeNoFeasibleSolution, err, "No feasible timetable solution found")
	case errors.Is(err, apperrors.ErrEngineContractViolation):
		respond(c, http.StatusInternalServerError, dto.ErrorCodeEngineContract, err, "Solver did not generate a schedule file")
	case errors.Is(err, apperrors.ErrRenderingFailed):
		respond(c, http.StatusInternalServerError, dto.ErrorCodeRenderingFailed, err, "Failed to render the timetable")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err, "Validation failed")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err, "Resource not found")
	default:
		// Unexpected fault: log the full detail, return a generic message.
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error in API request")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error during timetable generation.")))
	}
}

// respond builds the error envelope, preferring the message and diagnostic
// details carried by a CustomError over the fallback.
func respond(c *gin.Context, status int, code dto.ErrorCode, err error, fallback string) {
	message := fallback
	var details interface{}

	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if custom.Message != "" {
			message = custom.Message
		}
		if custom.Details != "" {
			details = custom.Details
		}
	}

	detail := dto.NewErrorDetail(code, message)
	if details != nil {
		detail = detail.WithDetails(details)
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}
