package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yungbote/storefront-backend/internal/app"
	types "github.com/yungbote/storefront-backend/internal/domain"
	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/services"
)

type seedProduct struct {
	Title     string
	Price     string
	Inventory int
}

type seedCollection struct {
	Title    string
	Products []seedProduct
}

type seedCustomer struct {
	First, Last, Email, Membership string
}

var catalog = []seedCollection{
	{Title: "Beauty", Products: []seedProduct{
		{"Hand Soap", "4.25", 40},
		{"Face Lotion", "18.90", 6},
		{"Lip Balm", "2.10", 120},
	}},
	{Title: "Grocery", Products: []seedProduct{
		{"Green Tea", "2.49", 8},
		{"Olive Oil", "20.00", 25},
	}},
	{Title: "Stationery", Products: []seedProduct{
		{"Notebook", "6.50", 3},
	}},
	{Title: "Clearance"},
}

var customers = []seedCustomer{
	{"Ada", "Lovelace", "ada@example.com", types.MembershipGold},
	{"Grace", "Hopper", "grace@example.com", types.MembershipSilver},
	{"Alan", "Turing", "alan@example.com", types.MembershipBronze},
}

func main() {
	var dryRun bool
	flag.BoolVar(&dryRun, "dry-run", false, "print what would be created without writing")
	flag.Parse()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := seed(context.Background(), application.Services, dryRun, os.Stdout); err != nil {
		application.Log.Error("seed failed", "error", err)
		application.Close()
		os.Exit(1)
	}
}

// seed creates whatever part of the sample catalog is missing; rerunning it is a no-op.
func seed(ctx context.Context, svc app.Services, dryRun bool, out io.Writer) error {
	productIDs := map[string]uint{}
	for _, sc := range catalog {
		col, err := findCollection(ctx, svc.Collections, sc.Title)
		if err != nil {
			return err
		}
		if col == nil {
			fmt.Fprintf(out, "create collection %q\n", sc.Title)
			if dryRun {
				continue
			}
			created, err := svc.Collections.Create(ctx, services.CollectionInput{Title: sc.Title})
			if err != nil {
				return fmt.Errorf("create collection %q: %w", sc.Title, err)
			}
			col = created
		}
		for _, sp := range sc.Products {
			p, err := findProduct(ctx, svc.Products, col.ID, sp.Title)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintf(out, "create product %q in %q\n", sp.Title, sc.Title)
				if dryRun {
					continue
				}
				p, err = svc.Products.Create(ctx, domainagg.ProductFields{
					Title:        sp.Title,
					Slug:         slug(sp.Title),
					UnitPrice:    decimal.RequireFromString(sp.Price),
					Inventory:    sp.Inventory,
					CollectionID: col.ID,
				})
				if err != nil {
					return fmt.Errorf("create product %q: %w", sp.Title, err)
				}
			}
			productIDs[sp.Title] = p.ID
		}
	}

	for i, sc := range customers {
		existing, err := svc.Customers.List(ctx, services.CustomerQuery{Search: sc.First, PageSize: services.MaxPageSize})
		if err != nil {
			return err
		}
		if hasEmail(existing.Customers, sc.Email) {
			continue
		}
		fmt.Fprintf(out, "create customer %s and one order\n", sc.Email)
		if dryRun {
			continue
		}
		cust, err := svc.Customers.Create(ctx, services.CustomerInput{
			FirstName:  sc.First,
			LastName:   sc.Last,
			Email:      sc.Email,
			Phone:      fmt.Sprintf("555-01%02d", i),
			Membership: sc.Membership,
		})
		if err != nil {
			return fmt.Errorf("create customer %s: %w", sc.Email, err)
		}
		// Only new customers get a sample order, which keeps reruns idempotent.
		if _, err := svc.Orders.Create(ctx, domainagg.CreateOrderInput{
			CustomerID: cust.ID,
			Items: []domainagg.OrderLineInput{
				{ProductID: productIDs["Green Tea"], Quantity: i + 1},
				{ProductID: productIDs["Hand Soap"], Quantity: 1},
			},
		}); err != nil {
			return fmt.Errorf("create order for %s: %w", sc.Email, err)
		}
	}

	if dryRun {
		return nil
	}
	return printCounts(ctx, svc.Collections, out)
}

func findCollection(ctx context.Context, svc services.CollectionService, title string) (*types.CollectionWithCount, error) {
	rows, err := svc.List(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	for _, c := range rows {
		if c.Title == title {
			return c, nil
		}
	}
	return nil, nil
}

func findProduct(ctx context.Context, svc services.ProductService, collectionID uint, title string) (*types.Product, error) {
	page, err := svc.List(ctx, services.ProductQuery{CollectionID: &collectionID, Search: title, PageSize: services.MaxPageSize})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	for _, p := range page.Products {
		if p.Title == title {
			return p, nil
		}
	}
	return nil, nil
}

func hasEmail(rows []*types.Customer, email string) bool {
	for _, c := range rows {
		if strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}

func printCounts(ctx context.Context, svc services.CollectionService, out io.Writer) error {
	rows, err := svc.List(ctx, "")
	if err != nil {
		return err
	}
	counts, err := svc.ProductCounts(ctx)
	if err != nil {
		return err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Title < rows[j].Title })
	for _, c := range rows {
		fmt.Fprintf(out, "%-12s %d products\n", c.Title, counts[c.ID])
	}
	return nil
}

func slug(title string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "-")
}
