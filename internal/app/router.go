package app

import (
	apphttp "github.com/yungbote/storefront-backend/internal/http"
	"github.com/yungbote/storefront-backend/internal/http/middleware"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

// routerConfig leaves StaffAuth nil when no signing secret is configured,
// which keeps the admin routes unmounted.
func routerConfig(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, services Services) apphttp.RouterConfig {
	rc := apphttp.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		CORSOrigins:       cfg.CORSOrigins,
		HealthHandler:     handlers.Health,
		CollectionHandler: handlers.Collection,
		ProductHandler:    handlers.Product,
		ReviewHandler:     handlers.Review,
		TagHandler:        handlers.Tag,
		CustomerHandler:   handlers.Customer,
		OrderHandler:      handlers.Order,
		AdminHandler:      handlers.Admin,
	}
	if services.StaffTokens != nil {
		rc.StaffAuth = middleware.NewStaffAuthMiddleware(log, services.StaffTokens)
	}
	if cfg.Otel.Enabled {
		rc.TracingService = cfg.Otel.ServiceName
	}
	return rc
}
