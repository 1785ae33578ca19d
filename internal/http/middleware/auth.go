package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/platform/apierr"
	"github.com/yungbote/storefront-backend/internal/platform/authjwt"
	"github.com/yungbote/storefront-backend/internal/platform/ctxutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type StaffTokenVerifier interface {
	Verify(token string) (*authjwt.StaffClaims, error)
}

type StaffAuthMiddleware struct {
	log      *logger.Logger
	verifier StaffTokenVerifier
}

func NewStaffAuthMiddleware(log *logger.Logger, verifier StaffTokenVerifier) *StaffAuthMiddleware {
	return &StaffAuthMiddleware{log: log.With("Middleware", "StaffAuthMiddleware"), verifier: verifier}
}

// RequireStaff admits requests carrying a valid staff bearer token.
func (am *StaffAuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" || am.verifier == nil {
			am.reject(c, apierr.Unauthorized())
			return
		}
		claims, err := am.verifier.Verify(tokenString)
		switch {
		case errors.Is(err, authjwt.ErrNotStaff):
			am.reject(c, apierr.Forbidden(err))
			return
		case err != nil:
			am.log.Debug("staff token rejected", "reason", err.Error())
			am.reject(c, apierr.Unauthorized())
			return
		}
		ctx := ctxutil.WithStaffData(c.Request.Context(), &ctxutil.StaffData{Username: claims.Subject})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (am *StaffAuthMiddleware) reject(c *gin.Context, err *apierr.Error) {
	response.RespondErr(c, am.log, err)
	c.Abort()
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
