package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/http/schema"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type CollectionHandler struct {
	log         *logger.Logger
	collections services.CollectionService
}

func NewCollectionHandler(log *logger.Logger, collections services.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		log:         log.With("handler", "CollectionHandler"),
		collections: collections,
	}
}

// GET /store/collections
func (h *CollectionHandler) List(c *gin.Context) {
	rows, err := h.collections.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewCollectionReads(rows))
}

// GET /store/collections/:id
func (h *CollectionHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	col, err := h.collections.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewCollectionRead(col))
}

// POST /store/collections
func (h *CollectionHandler) Create(c *gin.Context) {
	var req schema.CollectionWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondInvalidRequest(c, err)
		return
	}
	col, err := h.collections.Create(c.Request.Context(), req.Input())
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondCreated(c, schema.NewCollectionRead(col))
}

// PUT /store/collections/:id
func (h *CollectionHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	var req schema.CollectionWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondInvalidRequest(c, err)
		return
	}
	col, err := h.collections.Update(c.Request.Context(), id, req.Input())
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewCollectionRead(col))
}

// DELETE /store/collections/:id
func (h *CollectionHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	if err := h.collections.Delete(c.Request.Context(), id); err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondNoContent(c)
}
