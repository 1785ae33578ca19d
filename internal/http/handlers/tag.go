package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/http/schema"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type TagHandler struct {
	log  *logger.Logger
	tags services.TagService
}

func NewTagHandler(log *logger.Logger, tags services.TagService) *TagHandler {
	return &TagHandler{log: log.With("handler", "TagHandler"), tags: tags}
}

// GET /store/products/:id/tags
func (h *TagHandler) ListForProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	rows, err := h.tags.ListForProduct(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewTagReads(rows))
}

// POST /store/products/:id/tags
func (h *TagHandler) TagProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	var req schema.TagWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondInvalidRequest(c, err)
		return
	}
	tag, err := h.tags.TagProduct(c.Request.Context(), id, req.Label)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondCreated(c, schema.TagRead{ID: tag.ID, Label: tag.Label})
}
