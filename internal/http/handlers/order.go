package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/http/schema"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type OrderHandler struct {
	log    *logger.Logger
	orders services.OrderService
}

func NewOrderHandler(log *logger.Logger, orders services.OrderService) *OrderHandler {
	return &OrderHandler{log: log.With("handler", "OrderHandler"), orders: orders}
}

// GET /store/orders?limit=&offset=
func (h *OrderHandler) List(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	rows, total, err := h.orders.ListRecent(c.Request.Context(), limit, offset)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	c.Header(response.HeaderTotalCount, strconv.FormatInt(total, 10))
	response.RespondOK(c, schema.NewOrderReads(rows))
}

// GET /store/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	o, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewOrderRead(o))
}

// POST /store/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req schema.OrderWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondInvalidRequest(c, err)
		return
	}
	o, err := h.orders.Create(c.Request.Context(), req.Input())
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondCreated(c, schema.NewOrderRead(o))
}
