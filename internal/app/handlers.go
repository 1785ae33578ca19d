package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/storefront-backend/internal/http/handlers"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Collection *httpH.CollectionHandler
	Product    *httpH.ProductHandler
	Review     *httpH.ReviewHandler
	Tag        *httpH.TagHandler
	Customer   *httpH.CustomerHandler
	Order      *httpH.OrderHandler
	Admin      *httpH.AdminHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	var pinger httpH.Pinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	}
	return Handlers{
		Health:     httpH.NewHealthHandler(pinger),
		Collection: httpH.NewCollectionHandler(log, services.Collections),
		Product:    httpH.NewProductHandler(log, services.Products),
		Review:     httpH.NewReviewHandler(log, services.Reviews),
		Tag:        httpH.NewTagHandler(log, services.Tags),
		Customer:   httpH.NewCustomerHandler(log, services.Customers),
		Order:      httpH.NewOrderHandler(log, services.Orders),
		Admin:      httpH.NewAdminHandler(log, services.Admin),
	}
}
