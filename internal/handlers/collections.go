package handlers

import (
	"net/http"

	"homestock/internal/database"
	"homestock/internal/models"

	"github.com/gin-gonic/gin"
)

func handleGetInventory(c *gin.Context) {
	items, err := database.LoadInventory(getDB(c))
	if err != nil {
		internalError(c, "Failed to load inventory")
		return
	}
	c.JSON(http.StatusOK, items)
}

func handleReplaceInventory(c *gin.Context) {
	var items []models.InventoryItem
	if err := c.ShouldBindJSON(&items); err != nil {
		badRequest(c, "Invalid inventory payload")
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	if err := database.SaveInventory(getDB(c), items); err != nil {
		internalError(c, "Failed to save inventory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func handleGetPurchases(c *gin.Context) {
	purchases, err := database.LoadPurchases(getDB(c))
	if err != nil {
		internalError(c, "Failed to load purchase history")
		return
	}
	c.JSON(http.StatusOK, purchases)
}

func handleReplacePurchases(c *gin.Context) {
	var purchases []models.PurchaseLog
	if err := c.ShouldBindJSON(&purchases); err != nil {
		badRequest(c, "Invalid purchases payload")
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	if err := database.SavePurchases(getDB(c), purchases); err != nil {
		internalError(c, "Failed to save purchase history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func handleGetChores(c *gin.Context) {
	chores, err := database.LoadChores(getDB(c))
	if err != nil {
		internalError(c, "Failed to load chores")
		return
	}
	c.JSON(http.StatusOK, chores)
}

func handleReplaceChores(c *gin.Context) {
	var chores []models.Chore
	if err := c.ShouldBindJSON(&chores); err != nil {
		badRequest(c, "Invalid chores payload")
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	if err := database.SaveChores(getDB(c), chores); err != nil {
		internalError(c, "Failed to save chores")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func handleGetChoreHistory(c *gin.Context) {
	completions, err := database.LoadChoreHistory(getDB(c))
	if err != nil {
		internalError(c, "Failed to load chore history")
		return
	}
	c.JSON(http.StatusOK, completions)
}

func handleReplaceChoreHistory(c *gin.Context) {
	var completions []models.ChoreCompletion
	if err := c.ShouldBindJSON(&completions); err != nil {
		badRequest(c, "Invalid chore history payload")
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	if err := database.SaveChoreHistory(getDB(c), completions); err != nil {
		internalError(c, "Failed to save chore history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func handleGetSettings(c *gin.Context) {
	settings, err := database.LoadSettings(getDB(c))
	if err != nil {
		internalError(c, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func handleReplaceSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		badRequest(c, "Invalid settings payload")
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	if err := database.SaveSettings(getDB(c), &settings); err != nil {
		internalError(c, "Failed to save settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
