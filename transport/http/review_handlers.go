package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/uaplabs/minidapps/core"
	"github.com/uaplabs/minidapps/service"
)

// ReviewHandlers exposes the book review endpoints.
type ReviewHandlers struct {
	reviews    *service.ReviewService
	log        *zap.Logger
	production bool
}

// NewReviewHandlers creates the review handler set.
func NewReviewHandlers(reviews *service.ReviewService, log *zap.Logger, production bool) *ReviewHandlers {
	return &ReviewHandlers{reviews: reviews, log: log, production: production}
}

// SaveReviewRequest creates a review. Rating is a pointer so a missing field
// can be told apart from an explicit zero.
type SaveReviewRequest struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
	Rating *int   `json:"rating"`
}

// VoteRequest registers a like or dislike on a review.
type VoteRequest struct {
	Kind string `json:"kind"`
}

// Save handles POST /api/books/:bookId/reviews.
func (h *ReviewHandlers) Save(c *gin.Context) {
	var req SaveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "detail": "userId, text and rating are required"})
		return
	}

	all, err := h.reviews.Save(c.Request.Context(), c.Param("bookId"), req.UserID, req.Text, req.Rating)
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": all})
}

// List handles GET /api/books/:bookId/reviews.
func (h *ReviewHandlers) List(c *gin.Context) {
	all, err := h.reviews.List(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": all})
}

// Vote handles POST /api/books/:bookId/reviews/:reviewId/vote.
func (h *ReviewHandlers) Vote(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "detail": "kind is required"})
		return
	}

	all, err := h.reviews.Vote(c.Request.Context(), c.Param("bookId"), c.Param("reviewId"), core.VoteKind(req.Kind))
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": all})
}
