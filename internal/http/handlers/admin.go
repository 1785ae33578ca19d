package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/http/schema"
	"github.com/yungbote/storefront-backend/internal/platform/ctxutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

const defaultAdminLogLimit = 50

// AdminHandler serves the staff console under /admin/api.
type AdminHandler struct {
	log   *logger.Logger
	admin services.AdminService
}

func NewAdminHandler(log *logger.Logger, adminSvc services.AdminService) *AdminHandler {
	return &AdminHandler{log: log.With("handler", "AdminHandler"), admin: adminSvc}
}

func staffName(c *gin.Context) string {
	if sd := ctxutil.GetStaffData(c.Request.Context()); sd != nil {
		return sd.Username
	}
	return ""
}

// GET /admin/api/registry
func (h *AdminHandler) Registry(c *gin.Context) {
	reg := h.admin.Registry()
	response.RespondOK(c, gin.H{
		"site":     reg.Site(),
		"entities": reg.Entities(),
	})
}

// GET /admin/api/products?inventory=low&collection_id=&q=&page=
func (h *AdminHandler) Products(c *gin.Context) {
	collectionID, err := queryUint(c, "collection_id")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	page, err := queryInt(c, "page")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	list, err := h.admin.Products(c.Request.Context(), services.AdminProductQuery{
		CollectionID: collectionID,
		LowInventory: strings.EqualFold(c.Query("inventory"), "low"),
		Search:       c.Query("q"),
		Page:         page,
	})
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewPaginated(c.Request.URL, list.Page, list.Count, schema.NewAdminProductRows(list.Rows)))
}

// POST /admin/api/products/actions/clear_inventory
func (h *AdminHandler) ClearInventory(c *gin.Context) {
	var req schema.ClearInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondInvalidRequest(c, err)
		return
	}
	res, err := h.admin.ClearInventory(c.Request.Context(), req.IDs, staffName(c))
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.ClearInventoryResponse{Updated: res.Updated, Message: res.Message})
}

// PATCH /admin/api/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.RespondInvalidRequest(c, err)
		return
	}
	p, err := h.admin.UpdateProduct(c.Request.Context(), id, updates, staffName(c))
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewProductRead(p))
}

// PATCH /admin/api/customers/:id
func (h *AdminHandler) UpdateCustomer(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.RespondInvalidRequest(c, err)
		return
	}
	cust, err := h.admin.UpdateCustomer(c.Request.Context(), id, updates, staffName(c))
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewCustomerRead(cust))
}

// GET /admin/api/collections?q=
func (h *AdminHandler) Collections(c *gin.Context) {
	rows, err := h.admin.Collections(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewAdminCollectionRows(rows))
}

// GET /admin/api/customers?q=&page=
func (h *AdminHandler) Customers(c *gin.Context) {
	page, err := queryInt(c, "page")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	list, err := h.admin.Customers(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewPaginated(c.Request.URL, list.Page, list.Count, schema.NewCustomerReads(list.Rows)))
}

// GET /admin/api/orders?page=
func (h *AdminHandler) Orders(c *gin.Context) {
	page, err := queryInt(c, "page")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	list, err := h.admin.Orders(c.Request.Context(), page)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewPaginated(c.Request.URL, list.Page, list.Count, schema.NewAdminOrderRows(list.Rows)))
}

// GET /admin/api/log?limit=
func (h *AdminHandler) Log(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	if limit == 0 {
		limit = defaultAdminLogLimit
	}
	rows, err := h.admin.Log(c.Request.Context(), limit)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewAdminLogEntries(rows))
}
