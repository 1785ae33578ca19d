package tags

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type TagRepo interface {
	GetOrCreateByLabel(dbc dbctx.Context, label string) (*types.Tag, error)
	ListForObject(dbc dbctx.Context, objectType string, objectID uint) ([]*types.Tag, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{db: db, log: baseLog.With("repo", "TagRepo")}
}

func (r *tagRepo) GetOrCreateByLabel(dbc dbctx.Context, label string) (*types.Tag, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("missing label")
	}
	txx := dbc.DB(r.db)
	if err := txx.
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "label"}}, DoNothing: true}).
		Create(&types.Tag{Label: label}).Error; err != nil {
		return nil, err
	}
	var out types.Tag
	if err := txx.
		Where("label = ?", label).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// ListForObject resolves tag links with a single join.
func (r *tagRepo) ListForObject(dbc dbctx.Context, objectType string, objectID uint) ([]*types.Tag, error) {
	txx := dbc.DB(r.db)
	var out []*types.Tag
	if err := txx.
		Model(&types.Tag{}).
		Joins("JOIN tagged_item ON tagged_item.tag_id = tag.id").
		Where("tagged_item.object_type = ? AND tagged_item.object_id = ?", objectType, objectID).
		Order("tag.label ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
