package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type Repos struct {
	Collections repos.CollectionRepo
	Products    repos.ProductRepo
	Customers   repos.CustomerRepo
	Orders      repos.OrderRepo
	OrderItems  repos.OrderItemRepo
	Reviews     repos.ReviewRepo
	Tags        repos.TagRepo
	TaggedItems repos.TaggedItemRepo
	AdminLog    repos.AdminLogEntryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Collections: repos.NewCollectionRepo(db, log),
		Products:    repos.NewProductRepo(db, log),
		Customers:   repos.NewCustomerRepo(db, log),
		Orders:      repos.NewOrderRepo(db, log),
		OrderItems:  repos.NewOrderItemRepo(db, log),
		Reviews:     repos.NewReviewRepo(db, log),
		Tags:        repos.NewTagRepo(db, log),
		TaggedItems: repos.NewTaggedItemRepo(db, log),
		AdminLog:    repos.NewAdminLogEntryRepo(db, log),
	}
}
