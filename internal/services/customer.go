package services

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/aggregates"
	"github.com/yungbote/storefront-backend/internal/data/repos"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/domain/store"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type CustomerInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	BirthDate  *time.Time
	Membership string
}

type CustomerQuery struct {
	// Search is a case-insensitive prefix of first or last name.
	Search   string
	Page     int
	PageSize int
}

type CustomerPage struct {
	Customers []*types.Customer
	Count     int64
	Page      Page
}

type CustomerService interface {
	List(ctx context.Context, q CustomerQuery) (*CustomerPage, error)
	Get(ctx context.Context, id uint) (*types.Customer, error)
	Create(ctx context.Context, in CustomerInput) (*types.Customer, error)
	UpdateMembership(ctx context.Context, id uint, membership string) (*types.Customer, error)
}

type customerService struct {
	db        *gorm.DB
	log       *logger.Logger
	customers repos.CustomerRepo
}

func NewCustomerService(db *gorm.DB, baseLog *logger.Logger, customers repos.CustomerRepo) CustomerService {
	return &customerService{
		db:        db,
		log:       baseLog.With("service", "CustomerService"),
		customers: customers,
	}
}

func (s *customerService) List(ctx context.Context, q CustomerQuery) (*CustomerPage, error) {
	page := NewPage(q.Page, q.PageSize, DefaultPageSize)
	rows, total, err := s.customers.List(dbctx.Context{Ctx: ctx}, repos.CustomerFilter{
		NamePrefix: q.Search,
		Limit:      page.Size,
		Offset:     page.Offset(),
	})
	if err != nil {
		return nil, storeErr("CustomerService.List", err)
	}
	return &CustomerPage{Customers: rows, Count: total, Page: page}, nil
}

func (s *customerService) Get(ctx context.Context, id uint) (*types.Customer, error) {
	const op = "CustomerService.Get"
	c, err := s.customers.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, storeErr(op, err)
	}
	if c == nil {
		return nil, notFound(op, "customer", id)
	}
	return c, nil
}

func normalizeCustomer(op string, in CustomerInput) (CustomerInput, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Membership = strings.ToUpper(strings.TrimSpace(in.Membership))
	if in.Membership == "" {
		in.Membership = store.MembershipBronze
	}
	checks := []error{
		aggregates.RequireNonBlank("first_name", in.FirstName, 255),
		aggregates.RequireNonBlank("last_name", in.LastName, 255),
		aggregates.RequireNonBlank("email", in.Email, 254),
		aggregates.RequireNonBlank("phone", in.Phone, 255),
		aggregates.RequireOneOf("membership", in.Membership, store.Memberships...),
	}
	for _, err := range checks {
		if err != nil {
			return in, aggregates.MapError(op, err)
		}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return in, invalid(op, "email is not a valid address")
	}
	return in, nil
}

func (s *customerService) Create(ctx context.Context, in CustomerInput) (*types.Customer, error) {
	const op = "CustomerService.Create"
	in, err := normalizeCustomer(op, in)
	if err != nil {
		return nil, err
	}
	c, err := s.customers.Create(dbctx.Context{Ctx: ctx}, &types.Customer{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		BirthDate:  in.BirthDate,
		Membership: in.Membership,
	})
	if err != nil {
		return nil, storeErr(op, err)
	}
	s.log.Info("customer created", "customer_id", c.ID, "email", c.Email)
	return c, nil
}

func (s *customerService) UpdateMembership(ctx context.Context, id uint, membership string) (*types.Customer, error) {
	const op = "CustomerService.UpdateMembership"
	membership = strings.ToUpper(strings.TrimSpace(membership))
	if !store.IsMembership(membership) {
		return nil, invalid(op, "membership must be one of "+strings.Join(store.Memberships, ", "))
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		cur, err := s.customers.LockByID(dbc, id, repos.LockForUpdate)
		if err != nil {
			return err
		}
		if cur == nil {
			return notFound(op, "customer", id)
		}
		return s.customers.UpdateFields(dbc, id, map[string]interface{}{"membership": membership})
	})
	if err != nil {
		return nil, storeErr(op, err)
	}
	return s.Get(ctx, id)
}
