package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Renishchandera/gameforge-ai/internal/modules/serializer"
	"github.com/Renishchandera/gameforge-ai/internal/modules/service"
)

// writeServiceErr maps service sentinels to status codes. Unknown errors are
// reported with fallback as a 500.
func writeServiceErr(c *gin.Context, err error, fallback string) {
	switch {
	case service.IsValidation(err), service.IsConflict(err):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(sentinelMsg(err), nil))
	case service.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(sentinelMsg(err)))
	case service.IsForbidden(err):
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr(sentinelMsg(err)))
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(sentinelMsg(err)))
	case service.IsUpstream(err):
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, sentinelMsg(err), err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr(fallback, err))
	}
}

// sentinelMsg returns the client-safe message of the innermost service sentinel.
func sentinelMsg(err error) string {
	for _, s := range knownSentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}

var knownSentinels = []error{
	service.ErrRegisterFieldsRequired, service.ErrLoginFieldsRequired, service.ErrIdeaContentRequired,
	service.ErrProjectNameRequired, service.ErrTaskTitleRequired, service.ErrInvalidStatus,
	service.ErrInvalidPriority, service.ErrInvalidDocType, service.ErrTaskIDsRequired,
	service.ErrEmailTaken, service.ErrUsernameTaken, service.ErrIdeaAlreadyConverted,
	service.ErrInvalidCredentials, service.ErrNoToken, service.ErrTokenExpired, service.ErrTokenInvalid,
	service.ErrUserNotFound, service.ErrNoRefreshToken, service.ErrRefreshInvalid,
	service.ErrForbidden, service.ErrIdeaNotFound, service.ErrProjectNotFound,
	service.ErrTaskNotFound, service.ErrDocNotFound,
	service.ErrPredictionFailed, service.ErrUpstream,
}
