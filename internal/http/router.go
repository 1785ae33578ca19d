package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/storefront-backend/internal/http/handlers"
	httpMW "github.com/yungbote/storefront-backend/internal/http/middleware"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics
	// TracingService names the otelgin spans; empty disables HTTP tracing.
	TracingService string
	CORSOrigins    []string

	StaffAuth *httpMW.StaffAuthMiddleware

	HealthHandler     *httpH.HealthHandler
	CollectionHandler *httpH.CollectionHandler
	ProductHandler    *httpH.ProductHandler
	ReviewHandler     *httpH.ReviewHandler
	TagHandler        *httpH.TagHandler
	CustomerHandler   *httpH.CustomerHandler
	OrderHandler      *httpH.OrderHandler
	AdminHandler      *httpH.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	store := r.Group("/store")
	{
		if cfg.CollectionHandler != nil {
			store.GET("/collections", cfg.CollectionHandler.List)
			store.POST("/collections", cfg.CollectionHandler.Create)
			store.GET("/collections/:id", cfg.CollectionHandler.Get)
			store.PUT("/collections/:id", cfg.CollectionHandler.Update)
			store.DELETE("/collections/:id", cfg.CollectionHandler.Delete)
		}

		if cfg.ProductHandler != nil {
			store.GET("/products", cfg.ProductHandler.List)
			store.POST("/products", cfg.ProductHandler.Create)
			store.GET("/products/:id", cfg.ProductHandler.Get)
			store.PUT("/products/:id", cfg.ProductHandler.Update)
			store.DELETE("/products/:id", cfg.ProductHandler.Delete)
		}

		// Reviews are nested under their product.
		if cfg.ReviewHandler != nil {
			store.GET("/products/:id/reviews", cfg.ReviewHandler.List)
			store.POST("/products/:id/reviews", cfg.ReviewHandler.Create)
			store.GET("/products/:id/reviews/:review_id", cfg.ReviewHandler.Get)
			store.PUT("/products/:id/reviews/:review_id", cfg.ReviewHandler.Update)
			store.DELETE("/products/:id/reviews/:review_id", cfg.ReviewHandler.Delete)
		}

		if cfg.TagHandler != nil {
			store.GET("/products/:id/tags", cfg.TagHandler.ListForProduct)
			store.POST("/products/:id/tags", cfg.TagHandler.TagProduct)
		}

		if cfg.CustomerHandler != nil {
			store.GET("/customers", cfg.CustomerHandler.List)
			store.POST("/customers", cfg.CustomerHandler.Create)
			store.GET("/customers/:id", cfg.CustomerHandler.Get)
		}

		if cfg.OrderHandler != nil {
			store.GET("/orders", cfg.OrderHandler.List)
			store.POST("/orders", cfg.OrderHandler.Create)
			store.GET("/orders/:id", cfg.OrderHandler.Get)
		}
	}

	if cfg.AdminHandler != nil && cfg.StaffAuth != nil {
		adm := r.Group("/admin/api")
		adm.Use(cfg.StaffAuth.RequireStaff())
		{
			adm.GET("/registry", cfg.AdminHandler.Registry)
			adm.GET("/products", cfg.AdminHandler.Products)
			adm.PATCH("/products/:id", cfg.AdminHandler.UpdateProduct)
			adm.POST("/products/actions/clear_inventory", cfg.AdminHandler.ClearInventory)
			adm.GET("/collections", cfg.AdminHandler.Collections)
			adm.GET("/customers", cfg.AdminHandler.Customers)
			adm.PATCH("/customers/:id", cfg.AdminHandler.UpdateCustomer)
			adm.GET("/orders", cfg.AdminHandler.Orders)
			adm.GET("/log", cfg.AdminHandler.Log)
		}
	}

	return r
}
