package schema

import (
	"strings"
	"time"

	types "github.com/yungbote/storefront-backend/internal/domain"
	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/services"
)

const dateLayout = "2006-01-02"

// Write schemas never carry derived fields; unknown JSON keys are ignored on decode.

type ProductWrite struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Slug        string  `json:"slug" binding:"required,max=255"`
	Description *string `json:"description"`
	Inventory   *int    `json:"inventory" binding:"required,min=0"`
	UnitPrice   *Money  `json:"unit_price" binding:"required"`
	Collection  uint    `json:"collection" binding:"required,min=1"`
}

func (w ProductWrite) Fields() domainagg.ProductFields {
	f := domainagg.ProductFields{
		Title:        w.Title,
		Slug:         w.Slug,
		Description:  w.Description,
		CollectionID: w.Collection,
	}
	if w.Inventory != nil {
		f.Inventory = *w.Inventory
	}
	if w.UnitPrice != nil {
		f.UnitPrice = w.UnitPrice.Decimal
	}
	return f
}

type ProductRead struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	Description  *string `json:"description"`
	Inventory    int     `json:"inventory"`
	UnitPrice    Money   `json:"unit_price"`
	PriceWithTax Money   `json:"price_with_tax"`
	Collection   uint    `json:"collection"`
}

func NewProductRead(p *types.Product) ProductRead {
	return ProductRead{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Description:  p.Description,
		Inventory:    p.Inventory,
		UnitPrice:    NewMoney(p.UnitPrice),
		PriceWithTax: NewMoney(p.PriceWithTax()),
		Collection:   p.CollectionID,
	}
}

func NewProductReads(rows []*types.Product) []ProductRead {
	out := make([]ProductRead, 0, len(rows))
	for _, p := range rows {
		out = append(out, NewProductRead(p))
	}
	return out
}

type CollectionWrite struct {
	Title           string `json:"title" binding:"required,max=255"`
	FeaturedProduct *uint  `json:"featured_product"`
}

func (w CollectionWrite) Input() services.CollectionInput {
	return services.CollectionInput{Title: w.Title, FeaturedProductID: w.FeaturedProduct}
}

type CollectionRead struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	FeaturedProduct *uint  `json:"featured_product"`
	ProductsCount   int64  `json:"products_count"`
}

func NewCollectionRead(c *types.CollectionWithCount) CollectionRead {
	return CollectionRead{
		ID:              c.ID,
		Title:           c.Title,
		FeaturedProduct: c.FeaturedProductID,
		ProductsCount:   c.ProductsCount,
	}
}

func NewCollectionReads(rows []*types.CollectionWithCount) []CollectionRead {
	out := make([]CollectionRead, 0, len(rows))
	for _, c := range rows {
		out = append(out, NewCollectionRead(c))
	}
	return out
}

type ReviewWrite struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
}

func (w ReviewWrite) Input() services.ReviewInput {
	return services.ReviewInput{Name: w.Name, Description: w.Description}
}

type ReviewRead struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

func NewReviewRead(r *types.Review) ReviewRead {
	return ReviewRead{ID: r.ID, Date: r.Date, Name: r.Name, Description: r.Description}
}

func NewReviewReads(rows []*types.Review) []ReviewRead {
	out := make([]ReviewRead, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewReviewRead(r))
	}
	return out
}

type TagWrite struct {
	Label string `json:"label" binding:"required,max=255"`
}

type TagRead struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

func NewTagReads(rows []*types.Tag) []TagRead {
	out := make([]TagRead, 0, len(rows))
	for _, t := range rows {
		out = append(out, TagRead{ID: t.ID, Label: t.Label})
	}
	return out
}

type CustomerWrite struct {
	FirstName  string  `json:"first_name" binding:"required,max=255"`
	LastName   string  `json:"last_name" binding:"required,max=255"`
	Email      string  `json:"email" binding:"required,email"`
	Phone      string  `json:"phone" binding:"required,max=255"`
	BirthDate  *string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Membership string  `json:"membership" binding:"omitempty,oneof=B S G"`
}

func (w CustomerWrite) Input() (services.CustomerInput, error) {
	in := services.CustomerInput{
		FirstName:  w.FirstName,
		LastName:   w.LastName,
		Email:      w.Email,
		Phone:      w.Phone,
		Membership: w.Membership,
	}
	if w.BirthDate != nil && strings.TrimSpace(*w.BirthDate) != "" {
		d, err := time.Parse(dateLayout, strings.TrimSpace(*w.BirthDate))
		if err != nil {
			return in, err
		}
		in.BirthDate = &d
	}
	return in, nil
}

type CustomerRead struct {
	ID         uint    `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	BirthDate  *string `json:"birth_date"`
	Membership string  `json:"membership"`
}

func NewCustomerRead(c *types.Customer) CustomerRead {
	out := CustomerRead{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		Membership: c.Membership,
	}
	if c.BirthDate != nil {
		s := c.BirthDate.Format(dateLayout)
		out.BirthDate = &s
	}
	return out
}

func NewCustomerReads(rows []*types.Customer) []CustomerRead {
	out := make([]CustomerRead, 0, len(rows))
	for _, c := range rows {
		out = append(out, NewCustomerRead(c))
	}
	return out
}

type OrderItemWrite struct {
	Product  uint `json:"product" binding:"required,min=1"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type OrderWrite struct {
	Customer      uint             `json:"customer" binding:"required,min=1"`
	PaymentStatus string           `json:"payment_status" binding:"omitempty,oneof=P C F"`
	Items         []OrderItemWrite `json:"items" binding:"required,min=1,dive"`
}

func (w OrderWrite) Input() domainagg.CreateOrderInput {
	in := domainagg.CreateOrderInput{CustomerID: w.Customer, PaymentStatus: w.PaymentStatus}
	for _, it := range w.Items {
		in.Items = append(in.Items, domainagg.OrderLineInput{ProductID: it.Product, Quantity: it.Quantity})
	}
	return in
}

type ProductSummary struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	UnitPrice Money  `json:"unit_price"`
}

type CustomerSummary struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type OrderItemRead struct {
	ID         uint            `json:"id"`
	Product    *ProductSummary `json:"product"`
	Quantity   int             `json:"quantity"`
	UnitPrice  Money           `json:"unit_price"`
	TotalPrice Money           `json:"total_price"`
}

type OrderRead struct {
	ID            uint             `json:"id"`
	PlacedAt      time.Time        `json:"placed_at"`
	PaymentStatus string           `json:"payment_status"`
	Customer      *CustomerSummary `json:"customer"`
	Items         []OrderItemRead  `json:"items"`
	TotalPrice    Money            `json:"total_price"`
}

func NewOrderRead(o *types.Order) OrderRead {
	out := OrderRead{
		ID:            o.ID,
		PlacedAt:      o.PlacedAt,
		PaymentStatus: o.PaymentStatus,
		Items:         make([]OrderItemRead, 0, len(o.Items)),
		TotalPrice:    NewMoney(o.Total()),
	}
	if o.Customer != nil {
		out.Customer = &CustomerSummary{ID: o.Customer.ID, FirstName: o.Customer.FirstName, LastName: o.Customer.LastName}
	}
	for _, it := range o.Items {
		item := OrderItemRead{
			ID:         it.ID,
			Quantity:   it.Quantity,
			UnitPrice:  NewMoney(it.UnitPrice),
			TotalPrice: NewMoney(it.Subtotal()),
		}
		if it.Product != nil {
			item.Product = &ProductSummary{ID: it.Product.ID, Title: it.Product.Title, UnitPrice: NewMoney(it.Product.UnitPrice)}
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func NewOrderReads(rows []*types.Order) []OrderRead {
	out := make([]OrderRead, 0, len(rows))
	for _, o := range rows {
		out = append(out, NewOrderRead(o))
	}
	return out
}
