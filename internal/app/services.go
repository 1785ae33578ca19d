package app

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/admin"
	"github.com/yungbote/storefront-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/authjwt"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type Services struct {
	Catalog     domainagg.CatalogAggregate
	Collections services.CollectionService
	Products    services.ProductService
	Reviews     services.ReviewService
	Tags        services.TagService
	Customers   services.CustomerService
	Orders      services.OrderService
	Admin       services.AdminService

	// StaffTokens is nil when ADMIN_JWT_SECRET is unset.
	StaffTokens *authjwt.Signer
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	catalog := aggregates.NewCatalogAggregate(aggregates.CatalogAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:    db,
			Log:   log,
			Hooks: aggregates.NewObservabilityHooks(metrics),
		},
		Collections: r.Collections,
		Products:    r.Products,
		Customers:   r.Customers,
		Orders:      r.Orders,
		OrderItems:  r.OrderItems,
		Reviews:     r.Reviews,
		TaggedItems: r.TaggedItems,
		AdminLog:    r.AdminLog,
	})

	registry, err := admin.Default()
	if err != nil {
		return Services{}, fmt.Errorf("load admin registry: %w", err)
	}

	customers := services.NewCustomerService(db, log, r.Customers)
	adminSvc, err := services.NewAdminService(services.AdminServiceDeps{
		DB:          db,
		Log:         log,
		Registry:    registry,
		Catalog:     catalog,
		Collections: r.Collections,
		Products:    r.Products,
		Customers:   customers,
		Orders:      r.Orders,
		AdminLog:    r.AdminLog,
	})
	if err != nil {
		return Services{}, err
	}

	out := Services{
		Catalog:     catalog,
		Collections: services.NewCollectionService(db, log, r.Collections, r.Products, catalog),
		Products:    services.NewProductService(db, log, r.Products, catalog),
		Reviews:     services.NewReviewService(db, log, r.Products, r.Reviews),
		Tags:        services.NewTagService(db, log, r.Products, r.Tags, r.TaggedItems),
		Customers:   customers,
		Orders:      services.NewOrderService(db, log, r.Orders, catalog),
		Admin:       adminSvc,
	}

	if cfg.AdminJWTSecret == "" {
		log.Warn("ADMIN_JWT_SECRET is not set; admin API disabled")
		return out, nil
	}
	ttl := cfg.AdminTokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	signer, err := authjwt.NewSigner(cfg.AdminJWTSecret, ttl)
	if err != nil {
		return Services{}, fmt.Errorf("init staff token signer: %w", err)
	}
	out.StaffTokens = signer
	return out, nil
}
