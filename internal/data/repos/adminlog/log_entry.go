package adminlog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type LogEntryRepo interface {
	Create(dbc dbctx.Context, row *types.AdminLogEntry) (*types.AdminLogEntry, error)
	ListRecent(dbc dbctx.Context, limit int) ([]*types.AdminLogEntry, error)
}

type logEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLogEntryRepo(db *gorm.DB, baseLog *logger.Logger) LogEntryRepo {
	return &logEntryRepo{db: db, log: baseLog.With("repo", "AdminLogEntryRepo")}
}

func (r *logEntryRepo) Create(dbc dbctx.Context, row *types.AdminLogEntry) (*types.AdminLogEntry, error) {
	if row == nil {
		return nil, fmt.Errorf("missing log entry")
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	txx := dbc.DB(r.db)
	if err := txx.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *logEntryRepo) ListRecent(dbc dbctx.Context, limit int) ([]*types.AdminLogEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	txx := dbc.DB(r.db)
	var out []*types.AdminLogEntry
	if err := txx.
		Model(&types.AdminLogEntry{}).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
