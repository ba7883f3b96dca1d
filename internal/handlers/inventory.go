package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"homestock/internal/database"
	"homestock/internal/inventory"
	"homestock/internal/logger"
	"homestock/internal/models"
	"homestock/internal/prices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createItemRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
	MinQuantity *int   `json:"minQuantity"`
}

type updateItemRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Unit        string `json:"unit"`
	MinQuantity *int   `json:"minQuantity"`
}

type addStockRequest struct {
	Amount    int     `json:"amount"`
	Initial   bool    `json:"initial"`
	UnitPrice float64 `json:"unitPrice"`
	Shop      string  `json:"shop"`
}

type removeStockRequest struct {
	Amount     int     `json:"amount"`
	LocationID *string `json:"locationId"`
}

type moveStockRequest struct {
	Amount         int     `json:"amount"`
	FromLocationID *string `json:"fromLocationId"`
	ToLocationID   string  `json:"toLocationId"`
}

func handleCreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid item payload")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		badRequest(c, "Item name is required")
		return
	}
	if len(req.Name) > 200 {
		badRequest(c, "Item name must be less than 200 characters")
		return
	}
	if req.Quantity < 0 {
		badRequest(c, "Quantity cannot be negative")
		return
	}
	if req.MinQuantity != nil && *req.MinQuantity < 0 {
		badRequest(c, "Minimum quantity cannot be negative")
		return
	}
	if req.Category == "" {
		req.Category = "general"
	}
	if req.Unit == "" {
		req.Unit = "items"
	}

	now := time.Now().UTC()
	unassigned := req.Quantity
	item := models.InventoryItem{
		ID:                 uuid.New().String(),
		Name:               req.Name,
		Category:           req.Category,
		Quantity:           req.Quantity,
		Unit:               req.Unit,
		MinQuantity:        req.MinQuantity,
		LocationQuantities: []models.LocationQuantity{},
		UnassignedQuantity: &unassigned,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	db := getDB(c)
	items, err := database.LoadInventory(db)
	if err != nil {
		internalError(c, "Failed to load inventory")
		return
	}
	items = append(items, item)
	if err := database.SaveInventory(db, items); err != nil {
		internalError(c, "Failed to save inventory")
		return
	}

	c.JSON(http.StatusCreated, item)
}

func handleUpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid item payload")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		badRequest(c, "Item name is required")
		return
	}
	if req.MinQuantity != nil && *req.MinQuantity < 0 {
		badRequest(c, "Minimum quantity cannot be negative")
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	db := getDB(c)
	items, err := database.LoadInventory(db)
	if err != nil {
		internalError(c, "Failed to load inventory")
		return
	}

	item := findItem(items, c.Param("id"))
	if item == nil {
		notFound(c, "Item not found")
		return
	}

	item.Name = req.Name
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	item.MinQuantity = req.MinQuantity
	item.UpdatedAt = time.Now().UTC()

	if err := database.SaveInventory(db, items); err != nil {
		internalError(c, "Failed to save inventory")
		return
	}
	c.JSON(http.StatusOK, item)
}

func handleDeleteItem(c *gin.Context) {
	writeMu.Lock()
	defer writeMu.Unlock()

	db := getDB(c)
	items, err := database.LoadInventory(db)
	if err != nil {
		internalError(c, "Failed to load inventory")
		return
	}

	kept := items[:0]
	found := false
	for _, item := range items {
		if item.ID == c.Param("id") {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		notFound(c, "Item not found")
		return
	}

	// Purchases referencing the item keep their denormalized snapshot; no
	// cascade.
	if err := database.SaveInventory(db, kept); err != nil {
		internalError(c, "Failed to save inventory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func handleAddStock(c *gin.Context) {
	var req addStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid stock payload")
		return
	}
	if req.Amount <= 0 {
		badRequest(c, "Amount must be positive")
		return
	}
	if !req.Initial {
		if req.UnitPrice < 0 {
			badRequest(c, "Unit price cannot be negative")
			return
		}
		if req.Shop == "" {
			badRequest(c, "Shop is required for a purchase")
			return
		}
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	db := getDB(c)
	items, err := database.LoadInventory(db)
	if err != nil {
		internalError(c, "Failed to load inventory")
		return
	}

	item := findItem(items, c.Param("id"))
	if item == nil {
		notFound(c, "Item not found")
		return
	}

	now := time.Now().UTC()
	inventory.AddStock(item, req.Amount, now)
	persistInventory(db, items)

	// Initial stock is pre-existing inventory being entered for the first
	// time; only real purchases get a history entry.
	var purchase *models.PurchaseLog
	if !req.Initial {
		purchase = &models.PurchaseLog{
			ID:          uuid.New().String(),
			ItemID:      item.ID,
			ItemName:    item.Name,
			Quantity:    req.Amount,
			UnitPrice:   req.UnitPrice,
			TotalPrice:  prices.TotalPrice(req.Amount, req.UnitPrice),
			Shop:        req.Shop,
			PurchasedAt: now,
		}
		history, err := database.LoadPurchases(db)
		if err != nil {
			logger.Error("Failed to load purchase history", "error", err)
		} else {
			history = append([]models.PurchaseLog{*purchase}, history...)
			if err := database.SavePurchases(db, history); err != nil {
				logger.Error("Failed to save purchase history", "error", err)
			}
		}
	}

	resp := gin.H{"item": item}
	if purchase != nil {
		resp["purchase"] = purchase
	}
	c.JSON(http.StatusOK, resp)
}

func handleRemoveStock(c *gin.Context) {
	var req removeStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid stock payload")
		return
	}
	if req.Amount <= 0 {
		badRequest(c, "Amount must be positive")
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	db := getDB(c)
	items, err := database.LoadInventory(db)
	if err != nil {
		internalError(c, "Failed to load inventory")
		return
	}

	item := findItem(items, c.Param("id"))
	if item == nil {
		notFound(c, "Item not found")
		return
	}

	// Over-requesting is not an error: removal clamps to what the chosen
	// bucket holds.
	removed := inventory.RemoveStock(item, req.Amount, req.LocationID, time.Now().UTC())
	persistInventory(db, items)

	c.JSON(http.StatusOK, gin.H{"item": item, "removed": removed})
}

func handleMoveStock(c *gin.Context) {
	var req moveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid stock payload")
		return
	}
	if req.Amount <= 0 {
		badRequest(c, "Amount must be positive")
		return
	}
	if req.FromLocationID == nil && req.ToLocationID == "" {
		badRequest(c, "Destination location is required")
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	db := getDB(c)
	items, err := database.LoadInventory(db)
	if err != nil {
		internalError(c, "Failed to load inventory")
		return
	}

	item := findItem(items, c.Param("id"))
	if item == nil {
		notFound(c, "Item not found")
		return
	}

	inventory.MoveBetweenLocations(item, req.FromLocationID, req.ToLocationID, req.Amount, time.Now().UTC())
	persistInventory(db, items)

	c.JSON(http.StatusOK, gin.H{"item": item})
}

func findItem(items []models.InventoryItem, id string) *models.InventoryItem {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

// persistInventory writes the mutated ledger back. Stock operations treat the
// computed state as the source of truth; a failed write is logged, not
// surfaced to the caller.
func persistInventory(db *sql.DB, items []models.InventoryItem) {
	if err := database.SaveInventory(db, items); err != nil {
		logger.Error("Failed to save inventory", "error", err)
	}
}
