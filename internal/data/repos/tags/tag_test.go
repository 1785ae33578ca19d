package tags

import (
	"context"
	"testing"

	"github.com/yungbote/storefront-backend/internal/data/repos/testutil"
	types "github.com/yungbote/storefront-backend/internal/domain"
	domaintags "github.com/yungbote/storefront-backend/internal/domain/tags"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
)

func TestTagRepoLinkAndList(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	tagRepo := NewTagRepo(db, testutil.Logger(t))
	links := NewTaggedItemRepo(db, testutil.Logger(t))

	c := testutil.SeedCollection(t, ctx, db, "Tools")
	p := testutil.SeedProduct(t, ctx, db, c.ID, "Hammer", "9.00", 4)

	sale, err := tagRepo.GetOrCreateByLabel(dbc, "sale")
	if err != nil {
		t.Fatalf("GetOrCreateByLabel: %v", err)
	}
	again, err := tagRepo.GetOrCreateByLabel(dbc, " sale ")
	if err != nil || again.ID != sale.ID {
		t.Fatalf("label must be unique: first=%d again=%v err=%v", sale.ID, again, err)
	}
	hot, err := tagRepo.GetOrCreateByLabel(dbc, "hot")
	if err != nil {
		t.Fatalf("GetOrCreateByLabel hot: %v", err)
	}

	for _, tagID := range []uint{sale.ID, hot.ID, sale.ID} {
		if err := links.Link(dbc, tagID, domaintags.ObjectTypeProduct, p.ID); err != nil {
			t.Fatalf("Link: %v", err)
		}
	}

	got, err := tagRepo.ListForObject(dbc, domaintags.ObjectTypeProduct, p.ID)
	if err != nil {
		t.Fatalf("ListForObject: %v", err)
	}
	if len(got) != 2 || got[0].Label != "hot" || got[1].Label != "sale" {
		t.Fatalf("unexpected tags: %+v", got)
	}

	if n, err := links.DeleteForObject(dbc, domaintags.ObjectTypeProduct, p.ID); err != nil || n != 2 {
		t.Fatalf("DeleteForObject: n=%d err=%v", n, err)
	}
	var left int64
	if err := db.Model(&types.TaggedItem{}).Count(&left).Error; err != nil || left != 0 {
		t.Fatalf("links left: n=%d err=%v", left, err)
	}
}

func TestTagRepoRejectsBlankLabel(t *testing.T) {
	db := testutil.DB(t)
	repo := NewTagRepo(db, testutil.Logger(t))
	if _, err := repo.GetOrCreateByLabel(dbctx.Context{Ctx: context.Background()}, "  "); err == nil {
		t.Fatalf("expected error for blank label")
	}
}
