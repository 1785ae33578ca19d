package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HeaderTotalCount carries the unpaginated row count on offset-paginated lists.
const HeaderTotalCount = "X-Total-Count"

// ErrorBody is the JSON shape of every non-2xx response.
type ErrorBody struct {
	Error      string `json:"error"`
	Code       string `json:"code,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Dependents *int64 `json:"dependents,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		msg = "unknown error"
	}
	c.JSON(status, ErrorBody{Error: msg, Code: code})
}

// RespondInvalidRequest reports a body or query that failed to bind.
func RespondInvalidRequest(c *gin.Context, err error) {
	body := ErrorBody{Error: "invalid_request", Code: "invalid_request"}
	if err != nil {
		body.Detail = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
