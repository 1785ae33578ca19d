package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryMatchesConsole(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	p, ok := reg.Entity(EntityProduct)
	require.True(t, ok)
	assert.Equal(t, []string{"title", "unit_price", "inventory_status", "collection_title"}, p.ListDisplay)
	assert.Equal(t, []string{"unit_price"}, p.ListEditable)
	assert.Equal(t, 10, p.ListPerPage)
	assert.True(t, reg.HasAction(EntityProduct, ActionClearInventory))

	c, ok := reg.Entity(EntityCustomer)
	require.True(t, ok)
	assert.Equal(t, []string{"first_name", "last_name"}, c.Ordering)
	assert.Equal(t, []string{"membership"}, c.ListEditable)

	assert.Equal(t, DefaultListPerPage, reg.PerPage(EntityCollection))
	assert.Len(t, reg.Entities(), 4)
}

func TestDefaultIsBuiltOnce(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestEntityReturnsCopies(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	p, _ := reg.Entity(EntityProduct)
	p.ListEditable[0] = "inventory"
	p.Actions = nil

	again, _ := reg.Entity(EntityProduct)
	assert.Equal(t, []string{"unit_price"}, again.ListEditable)
	assert.True(t, reg.HasAction(EntityProduct, ActionClearInventory))
}

func TestEditableFields(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	kept, rejected := reg.EditableFields(EntityProduct, map[string]any{
		"unit_price": "12.50",
		"inventory":  3,
		"title":      "x",
	})
	assert.Equal(t, map[string]any{"unit_price": "12.50"}, kept)
	assert.Equal(t, []string{"inventory", "title"}, rejected)
}

func TestParseRejectsInvalidRegistry(t *testing.T) {
	cases := map[string]string{
		"empty":     "site: x\n",
		"no name":   "entities:\n  - list_display: [a]\n",
		"duplicate": "entities:\n  - name: a\n    list_display: [x]\n  - name: a\n    list_display: [x]\n",
		"editable":  "entities:\n  - name: a\n    list_display: [x]\n    list_editable: [y]\n",
		"display":   "entities:\n  - name: a\n",
		"syntax":    "entities: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestInventoryStatus(t *testing.T) {
	assert.Equal(t, InventoryLow, InventoryStatus(0))
	assert.Equal(t, InventoryLow, InventoryStatus(9))
	assert.Equal(t, InventoryOK, InventoryStatus(10))
	assert.Equal(t, "/admin/api/products?collection_id=4", ProductsURL(4))
}
