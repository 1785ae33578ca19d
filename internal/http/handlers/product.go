package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/http/schema"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type ProductHandler struct {
	log      *logger.Logger
	products services.ProductService
}

func NewProductHandler(log *logger.Logger, products services.ProductService) *ProductHandler {
	return &ProductHandler{
		log:      log.With("handler", "ProductHandler"),
		products: products,
	}
}

func productQuery(c *gin.Context) (services.ProductQuery, error) {
	var q services.ProductQuery
	var err error
	if q.CollectionID, err = queryUint(c, "collection_id"); err != nil {
		return q, err
	}
	if q.UnitPriceGT, err = queryDecimal(c, "unit_price__gt"); err != nil {
		return q, err
	}
	if q.UnitPriceLT, err = queryDecimal(c, "unit_price__lt"); err != nil {
		return q, err
	}
	if q.Page, err = queryInt(c, "page"); err != nil {
		return q, err
	}
	if q.PageSize, err = queryInt(c, "page_size"); err != nil {
		return q, err
	}
	q.Search = c.Query("search")
	q.Ordering = c.Query("ordering")
	return q, nil
}

// GET /store/products
func (h *ProductHandler) List(c *gin.Context) {
	q, err := productQuery(c)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	page, err := h.products.List(c.Request.Context(), q)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewPaginated(c.Request.URL, page.Page, page.Count, schema.NewProductReads(page.Products)))
}

// GET /store/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewProductRead(p))
}

// POST /store/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req schema.ProductWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondInvalidRequest(c, err)
		return
	}
	p, err := h.products.Create(c.Request.Context(), req.Fields())
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondCreated(c, schema.NewProductRead(p))
}

// PUT /store/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	var req schema.ProductWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondInvalidRequest(c, err)
		return
	}
	p, err := h.products.Update(c.Request.Context(), id, req.Fields())
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewProductRead(p))
}

// DELETE /store/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondNoContent(c)
}
