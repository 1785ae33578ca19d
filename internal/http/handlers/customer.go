package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/http/schema"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type CustomerHandler struct {
	log       *logger.Logger
	customers services.CustomerService
}

func NewCustomerHandler(log *logger.Logger, customers services.CustomerService) *CustomerHandler {
	return &CustomerHandler{log: log.With("handler", "CustomerHandler"), customers: customers}
}

// GET /store/customers
func (h *CustomerHandler) List(c *gin.Context) {
	page, err := queryInt(c, "page")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	size, err := queryInt(c, "page_size")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	res, err := h.customers.List(c.Request.Context(), services.CustomerQuery{Search: c.Query("search"), Page: page, PageSize: size})
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewPaginated(c.Request.URL, res.Page, res.Count, schema.NewCustomerReads(res.Customers)))
}

// GET /store/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	cust, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewCustomerRead(cust))
}

// POST /store/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req schema.CustomerWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondInvalidRequest(c, err)
		return
	}
	in, err := req.Input()
	if err != nil {
		response.RespondInvalidRequest(c, err)
		return
	}
	cust, err := h.customers.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondCreated(c, schema.NewCustomerRead(cust))
}
