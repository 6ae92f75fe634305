package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/apexauto/garage-api/internal/httperr"
	"github.com/apexauto/garage-api/internal/httpresp"
	"github.com/apexauto/garage-api/internal/models"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

// --------- Requests ---------

type CreateReviewRequest struct {
	Author  string `json:"author" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// --------- Public ---------

func (h *ReviewHandler) ListApproved(c *gin.Context) {
	var reviews []models.Review
	if err := h.db.
		Where("approved = ?", true).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {

		httperr.Internal(c, "failed_to_list_reviews", "Failed to list reviews.")
		return
	}

	httpresp.List(c, reviews)
}

// Create accepts a visitor review; it stays hidden until approved.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	review := models.Review{
		Author:  req.Author,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := h.db.Create(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_create_review", "Failed to submit review.")
		return
	}

	httpresp.Created(c, review)
}

// --------- Admin ---------

func (h *ReviewHandler) ListAll(c *gin.Context) {
	var reviews []models.Review
	if err := h.db.Order("created_at DESC").Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Failed to list reviews.")
		return
	}

	httpresp.List(c, reviews)
}

func (h *ReviewHandler) Approve(c *gin.Context) {
	id := c.Param("id")

	var review models.Review
	if err := h.db.First(&review, id).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	review.Approved = true
	if err := h.db.Save(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_approve_review", "Failed to approve review.")
		return
	}

	httpresp.OK(c, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Delete(&models.Review{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_review", "Failed to delete review.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	httpresp.NoContent(c)
}
