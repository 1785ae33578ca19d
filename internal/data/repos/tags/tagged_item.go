package tags

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type TaggedItemRepo interface {
	Link(dbc dbctx.Context, tagID uint, objectType string, objectID uint) error
	DeleteForObject(dbc dbctx.Context, objectType string, objectID uint) (int64, error)
}

type taggedItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaggedItemRepo(db *gorm.DB, baseLog *logger.Logger) TaggedItemRepo {
	return &taggedItemRepo{db: db, log: baseLog.With("repo", "TaggedItemRepo")}
}

// Link is idempotent: linking the same tag twice keeps a single row.
func (r *taggedItemRepo) Link(dbc dbctx.Context, tagID uint, objectType string, objectID uint) error {
	if tagID == 0 || objectType == "" || objectID == 0 {
		return fmt.Errorf("tag_id, object_type and object_id are required")
	}
	txx := dbc.DB(r.db)
	row := &types.TaggedItem{TagID: tagID, ObjectType: objectType, ObjectID: objectID}
	return txx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "object_type"}, {Name: "object_id"}, {Name: "tag_id"}},
			DoNothing: true,
		}).
		Create(row).Error
}

// DeleteForObject removes links only; tagged_item has no FK to the tagged object.
func (r *taggedItemRepo) DeleteForObject(dbc dbctx.Context, objectType string, objectID uint) (int64, error) {
	txx := dbc.DB(r.db)
	res := txx.
		Where("object_type = ? AND object_id = ?", objectType, objectID).
		Delete(&types.TaggedItem{})
	return res.RowsAffected, res.Error
}
