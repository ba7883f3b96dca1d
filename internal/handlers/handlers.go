package handlers

import (
	"database/sql"
	"net/http"
	"sync"
	"time"

	"homestock/internal/email"
	"homestock/internal/middleware"

	"github.com/gin-gonic/gin"
)

// writeMu serialises every read-modify-write mutation. The app is built for a
// single household, so one writer at a time is plenty and it removes the
// lost-update race between two clients editing the same record.
var writeMu sync.Mutex

func SetupRoutes(r *gin.Engine, db *sql.DB, emailService *email.Service) {
	r.Use(middleware.LogRequests())
	r.Use(middleware.AddDBContext(db))
	r.Use(addEmailServiceContext(emailService))

	api := r.Group("/api")
	{
		// Collection endpoints: GET returns the stored document, PUT
		// replaces it wholesale. This is the contract the single-page client
		// and the backup tooling speak.
		api.GET("/inventory", handleGetInventory)
		api.PUT("/inventory", handleReplaceInventory)
		api.GET("/purchases", handleGetPurchases)
		api.PUT("/purchases", handleReplacePurchases)
		api.GET("/chores", handleGetChores)
		api.PUT("/chores", handleReplaceChores)
		api.GET("/chore-history", handleGetChoreHistory)
		api.PUT("/chore-history", handleReplaceChoreHistory)
		api.GET("/settings", handleGetSettings)
		api.PUT("/settings", handleReplaceSettings)

		// Record-level operations.
		api.POST("/inventory/items", handleCreateItem)
		api.PUT("/inventory/items/:id", handleUpdateItem)
		api.DELETE("/inventory/items/:id", handleDeleteItem)
		api.POST("/inventory/items/:id/stock/add", handleAddStock)
		api.POST("/inventory/items/:id/stock/remove", handleRemoveStock)
		api.POST("/inventory/items/:id/stock/move", handleMoveStock)

		api.DELETE("/purchases", handleClearPurchases)
		api.DELETE("/purchases/:id", handleDeletePurchase)

		api.POST("/chores", handleCreateChore)
		api.PUT("/chores/:id", handleUpdateChore)
		api.DELETE("/chores/:id", handleDeleteChore)
		api.POST("/chores/:id/complete", handleCompleteChore)
		api.GET("/chores/schedule", handleChoreSchedule)
		api.DELETE("/chore-history/:id", handleDeleteCompletion)

		// Derived views.
		api.GET("/prices", handlePrices)
		api.GET("/dashboard", handleDashboard)

		// Backup and export.
		api.GET("/export-backup", handleExportBackup)
		api.POST("/import-backup", handleImportBackup)
		api.GET("/export-csv", handleExportCSV)
	}
}

func addEmailServiceContext(emailService *email.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("email_service", emailService)
		c.Next()
	}
}

func getDB(c *gin.Context) *sql.DB {
	return c.MustGet("db").(*sql.DB)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

func internalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// parseRangeParam accepts both date-only and RFC 3339 timestamps, since the
// calendar sends plain dates and other clients send full timestamps.
func parseRangeParam(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
