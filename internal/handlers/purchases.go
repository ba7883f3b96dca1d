package handlers

import (
	"net/http"

	"homestock/internal/database"
	"homestock/internal/models"

	"github.com/gin-gonic/gin"
)

func handleDeletePurchase(c *gin.Context) {
	writeMu.Lock()
	defer writeMu.Unlock()

	db := getDB(c)
	history, err := database.LoadPurchases(db)
	if err != nil {
		internalError(c, "Failed to load purchase history")
		return
	}

	kept := history[:0]
	found := false
	for _, purchase := range history {
		if purchase.ID == c.Param("id") {
			found = true
			continue
		}
		kept = append(kept, purchase)
	}
	if !found {
		notFound(c, "Purchase not found")
		return
	}

	// Deleting a purchase record does not touch item quantities; the stock
	// was already consumed or miscounted and the ledger is the truth.
	if err := database.SavePurchases(db, kept); err != nil {
		internalError(c, "Failed to save purchase history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func handleClearPurchases(c *gin.Context) {
	writeMu.Lock()
	defer writeMu.Unlock()

	if err := database.SavePurchases(getDB(c), []models.PurchaseLog{}); err != nil {
		internalError(c, "Failed to save purchase history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
