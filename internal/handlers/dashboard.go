package handlers

import (
	"net/http"
	"time"

	"homestock/internal/chores"
	"homestock/internal/database"
	"homestock/internal/inventory"
	"homestock/internal/models"
	"homestock/internal/prices"

	"github.com/gin-gonic/gin"
)

// handlePrices returns the per-shop price comparison for every item.
func handlePrices(c *gin.Context) {
	db := getDB(c)
	items, err := database.LoadInventory(db)
	if err != nil {
		internalError(c, "Failed to load inventory")
		return
	}
	purchases, err := database.LoadPurchases(db)
	if err != nil {
		internalError(c, "Failed to load purchase history")
		return
	}

	c.JSON(http.StatusOK, prices.Compare(items, purchases))
}

// handleDashboard returns the attention list: items that are low or out of
// stock, and chores that are overdue or due soon.
func handleDashboard(c *gin.Context) {
	db := getDB(c)
	items, err := database.LoadInventory(db)
	if err != nil {
		internalError(c, "Failed to load inventory")
		return
	}
	allChores, err := database.LoadChores(db)
	if err != nil {
		internalError(c, "Failed to load chores")
		return
	}
	history, err := database.LoadChoreHistory(db)
	if err != nil {
		internalError(c, "Failed to load chore history")
		return
	}

	now := time.Now().UTC()
	overdue := []models.Chore{}
	dueSoon := []models.Chore{}
	for i := range allChores {
		switch chores.Status(&allChores[i], history, now) {
		case chores.StatusOverdue:
			overdue = append(overdue, allChores[i])
		case chores.StatusDueSoon:
			dueSoon = append(dueSoon, allChores[i])
		}
	}

	low := inventory.LowStock(items)
	if low == nil {
		low = []models.InventoryItem{}
	}
	out := inventory.OutOfStock(items)
	if out == nil {
		out = []models.InventoryItem{}
	}

	totalQuantity := 0
	for _, item := range items {
		totalQuantity += item.Quantity
	}

	c.JSON(http.StatusOK, gin.H{
		"totalItems":    len(items),
		"totalQuantity": totalQuantity,
		"totalChores":   len(allChores),
		"lowStock":      low,
		"outOfStock":    out,
		"overdueChores": overdue,
		"dueSoonChores": dueSoon,
	})
}
