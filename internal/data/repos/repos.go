package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos/adminlog"
	"github.com/yungbote/storefront-backend/internal/data/repos/store"
	"github.com/yungbote/storefront-backend/internal/data/repos/tags"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

const (
	LockForUpdate = store.LockForUpdate
	LockForShare  = store.LockForShare
)

type ProductFilter = store.ProductFilter
type CustomerFilter = store.CustomerFilter

func IsProductOrdering(v string) bool { return store.IsProductOrdering(v) }

type CollectionRepo = store.CollectionRepo
type ProductRepo = store.ProductRepo
type CustomerRepo = store.CustomerRepo
type OrderRepo = store.OrderRepo
type OrderItemRepo = store.OrderItemRepo
type ReviewRepo = store.ReviewRepo

type TagRepo = tags.TagRepo
type TaggedItemRepo = tags.TaggedItemRepo

type AdminLogEntryRepo = adminlog.LogEntryRepo

func NewCollectionRepo(db *gorm.DB, baseLog *logger.Logger) CollectionRepo {
	return store.NewCollectionRepo(db, baseLog)
}
func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return store.NewProductRepo(db, baseLog)
}
func NewCustomerRepo(db *gorm.DB, baseLog *logger.Logger) CustomerRepo {
	return store.NewCustomerRepo(db, baseLog)
}
func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return store.NewOrderRepo(db, baseLog)
}
func NewOrderItemRepo(db *gorm.DB, baseLog *logger.Logger) OrderItemRepo {
	return store.NewOrderItemRepo(db, baseLog)
}
func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return store.NewReviewRepo(db, baseLog)
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo { return tags.NewTagRepo(db, baseLog) }
func NewTaggedItemRepo(db *gorm.DB, baseLog *logger.Logger) TaggedItemRepo {
	return tags.NewTaggedItemRepo(db, baseLog)
}

func NewAdminLogEntryRepo(db *gorm.DB, baseLog *logger.Logger) AdminLogEntryRepo {
	return adminlog.NewLogEntryRepo(db, baseLog)
}
