package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/http/response"
)

// DefaultCORSOrigins are the local dev origins of the storefront and admin frontends.
var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://localhost:5174",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
	"http://127.0.0.1:5174",
}

// CORS admits the given origins, falling back to DefaultCORSOrigins. Browsers
// only let scripts read the ids and the total count if they are exposed here.
func CORS(origins []string) gin.HandlerFunc {
	return cors.New(corsConfig(origins))
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = DefaultCORSOrigins
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:     []string{"Authorization", "Content-Type", headerRequestID},
		ExposeHeaders:    []string{headerRequestID, headerTraceID, response.HeaderTotalCount},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
