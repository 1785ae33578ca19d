package store

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type CustomerFilter struct {
	// NamePrefix matches first_name or last_name case-insensitively from the start.
	NamePrefix string
	Limit      int
	Offset     int
}

type CustomerRepo interface {
	Create(dbc dbctx.Context, row *types.Customer) (*types.Customer, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Customer, error)
	List(dbc dbctx.Context, f CustomerFilter) ([]*types.Customer, int64, error)
	LockByID(dbc dbctx.Context, id uint, strength string) (*types.Customer, error)
	UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error
}

type customerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCustomerRepo(db *gorm.DB, baseLog *logger.Logger) CustomerRepo {
	return &customerRepo{db: db, log: baseLog.With("repo", "CustomerRepo")}
}

func (r *customerRepo) Create(dbc dbctx.Context, row *types.Customer) (*types.Customer, error) {
	if row == nil {
		return nil, fmt.Errorf("missing customer")
	}
	if row.Membership == "" {
		row.Membership = types.MembershipBronze
	}
	txx := dbc.DB(r.db)
	if err := txx.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *customerRepo) GetByID(dbc dbctx.Context, id uint) (*types.Customer, error) {
	if id == 0 {
		return nil, nil
	}
	txx := dbc.DB(r.db)
	var out types.Customer
	res := txx.
		Model(&types.Customer{}).
		Where("id = ?", id).
		Limit(1).
		Find(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &out, nil
}

func (r *customerRepo) List(dbc dbctx.Context, f CustomerFilter) ([]*types.Customer, int64, error) {
	txx := dbc.DB(r.db)
	q := txx.Model(&types.Customer{})
	if p := strings.TrimSpace(f.NamePrefix); p != "" {
		like := prefixPattern(p)
		q = q.Where("LOWER(first_name) LIKE ?"+escapeLike+" OR LOWER(last_name) LIKE ?"+escapeLike, like, like)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	q = q.Order("first_name ASC").Order("last_name ASC").Order("id ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	var out []*types.Customer
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *customerRepo) LockByID(dbc dbctx.Context, id uint, strength string) (*types.Customer, error) {
	if id == 0 {
		return nil, fmt.Errorf("missing id")
	}
	if !dbc.InTx() {
		return nil, fmt.Errorf("LockByID requires dbc.Tx")
	}
	lock, err := lockingClause(strength)
	if err != nil {
		return nil, err
	}
	var out types.Customer
	res := dbc.DB(nil).
		Clauses(lock).
		Where("id = ?", id).
		Limit(1).
		Find(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &out, nil
}

func (r *customerRepo) UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error {
	if id == 0 {
		return fmt.Errorf("missing id")
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	txx := dbc.DB(r.db)
	return txx.
		Model(&types.Customer{}).
		Where("id = ?", id).
		Updates(updates).Error
}
