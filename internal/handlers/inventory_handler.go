package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/apexauto/garage-api/internal/httperr"
	"github.com/apexauto/garage-api/internal/httpresp"
	"github.com/apexauto/garage-api/internal/models"
)

type InventoryHandler struct {
	db *gorm.DB
}

func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{db: db}
}

// --------- Requests ---------

type CreateInventoryItemRequest struct {
	Name       string  `json:"name" binding:"required"`
	PartNumber string  `json:"part_number" binding:"required"`
	Quantity   int     `json:"quantity" binding:"min=0"`
	UnitPrice  float64 `json:"unit_price" binding:"min=0"`
}

type UpdateInventoryItemRequest struct {
	Name      *string  `json:"name,omitempty"`
	Quantity  *int     `json:"quantity,omitempty"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
}

type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// --------- Handlers ---------

func (h *InventoryHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	lowStock := c.Query("low_stock")

	q := h.db.Model(&models.InventoryItem{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(part_number) LIKE ?", like, like)
	}

	if lowStock == "true" {
		q = q.Where("quantity <= 5")
	}

	var items []models.InventoryItem
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_inventory", "Failed to list inventory.")
		return
	}

	httpresp.List(c, items)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	item := models.InventoryItem{
		Name:       req.Name,
		PartNumber: strings.TrimSpace(req.PartNumber),
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_item", "Failed to create inventory item.")
		return
	}

	httpresp.Created(c, item)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var item models.InventoryItem
	if err := h.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "item_not_found", "Inventory item not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_item", "Failed to load inventory item.")
		return
	}

	var req UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			httperr.BadRequest(c, "invalid_quantity", "Quantity may not be negative.")
			return
		}
		item.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_item", "Failed to update inventory item.")
		return
	}

	httpresp.OK(c, item)
}

// Restock adds stock to an existing item. The increment happens in SQL so a
// concurrent settlement decrement cannot be lost.
func (h *InventoryHandler) Restock(c *gin.Context) {
	id := c.Param("id")

	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	res := h.db.Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", req.Quantity))

	if res.Error != nil {
		httperr.Internal(c, "failed_to_restock", "Failed to restock item.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "item_not_found", "Inventory item not found.")
		return
	}

	var item models.InventoryItem
	h.db.First(&item, id)

	httpresp.OK(c, item)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Delete(&models.InventoryItem{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_item", "Failed to delete inventory item.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "item_not_found", "Inventory item not found.")
		return
	}

	httpresp.NoContent(c)
}
