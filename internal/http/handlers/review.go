package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/http/schema"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

// ReviewHandler serves reviews nested under /store/products/:id.
type ReviewHandler struct {
	log     *logger.Logger
	reviews services.ReviewService
}

func NewReviewHandler(log *logger.Logger, reviews services.ReviewService) *ReviewHandler {
	return &ReviewHandler{log: log.With("handler", "ReviewHandler"), reviews: reviews}
}

func (h *ReviewHandler) ids(c *gin.Context, withReview bool) (productID, reviewID uint, ok bool) {
	productID, err := pathID(c, "id")
	if err != nil {
		response.RespondErr(c, h.log, err)
		return 0, 0, false
	}
	if withReview {
		if reviewID, err = pathID(c, "review_id"); err != nil {
			response.RespondErr(c, h.log, err)
			return 0, 0, false
		}
	}
	return productID, reviewID, true
}

// GET /store/products/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	productID, _, ok := h.ids(c, false)
	if !ok {
		return
	}
	rows, err := h.reviews.List(c.Request.Context(), productID)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewReviewReads(rows))
}

// POST /store/products/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	productID, _, ok := h.ids(c, false)
	if !ok {
		return
	}
	var req schema.ReviewWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondInvalidRequest(c, err)
		return
	}
	r, err := h.reviews.Create(c.Request.Context(), productID, req.Input())
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondCreated(c, schema.NewReviewRead(r))
}

// GET /store/products/:id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	productID, reviewID, ok := h.ids(c, true)
	if !ok {
		return
	}
	r, err := h.reviews.Get(c.Request.Context(), productID, reviewID)
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewReviewRead(r))
}

// PUT /store/products/:id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	productID, reviewID, ok := h.ids(c, true)
	if !ok {
		return
	}
	var req schema.ReviewWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondInvalidRequest(c, err)
		return
	}
	r, err := h.reviews.Update(c.Request.Context(), productID, reviewID, req.Input())
	if err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondOK(c, schema.NewReviewRead(r))
}

// DELETE /store/products/:id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	productID, reviewID, ok := h.ids(c, true)
	if !ok {
		return
	}
	if err := h.reviews.Delete(c.Request.Context(), productID, reviewID); err != nil {
		response.RespondErr(c, h.log, err)
		return
	}
	response.RespondNoContent(c)
}
