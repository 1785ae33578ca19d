package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/platform/apierr"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

// StatusForCode maps an aggregate error code onto its HTTP status.
// A blocked deletion answers 405 Method Not Allowed.
func StatusForCode(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeValidation:
		return http.StatusBadRequest
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeReferentialConflict:
		return http.StatusMethodNotAllowed
	case domainagg.CodeConflict:
		return http.StatusConflict
	case domainagg.CodePreconditionFailed:
		return http.StatusPreconditionFailed
	case domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondErr writes err using the most specific shape it carries and returns the status.
// Server-side failures are logged and their cause is withheld from the body.
func RespondErr(c *gin.Context, log *logger.Logger, err error) int {
	if err == nil {
		RespondError(c, http.StatusInternalServerError, string(domainagg.CodeInternal), nil)
		return http.StatusInternalServerError
	}
	_ = c.Error(err)

	if ae, ok := apierr.As(err); ok {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		if status >= http.StatusInternalServerError {
			logServerError(c, log, status, err)
		}
		RespondError(c, status, ae.Code, ae.Err)
		return status
	}

	aggErr := domainagg.AsError(err)
	if aggErr == nil {
		logServerError(c, log, http.StatusInternalServerError, err)
		RespondError(c, http.StatusInternalServerError, string(domainagg.CodeInternal), nil)
		return http.StatusInternalServerError
	}

	status := StatusForCode(aggErr.Code)
	body := ErrorBody{Error: aggErr.Message, Code: string(aggErr.Code)}
	if body.Error == "" {
		body.Error = string(aggErr.Code)
	}
	switch {
	case aggErr.Code == domainagg.CodeReferentialConflict:
		n := aggErr.Dependents
		body.Dependents = &n
	case status >= http.StatusInternalServerError:
		logServerError(c, log, status, err)
		body.Error = http.StatusText(status)
	}
	c.JSON(status, body)
	return status
}

func logServerError(c *gin.Context, log *logger.Logger, status int, err error) {
	if log == nil {
		return
	}
	log.Error("request failed",
		"status", status,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
}
