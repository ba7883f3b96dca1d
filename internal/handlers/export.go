package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"homestock/internal/database"
	"homestock/internal/models"

	"github.com/gin-gonic/gin"
)

// handleExportBackup streams every collection as a single versioned JSON
// envelope. Collections are passed through as stored, so an export/import
// round trip is byte-faithful.
func handleExportBackup(c *gin.Context) {
	db := getDB(c)

	backup := models.Backup{
		Version:    models.BackupVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	reads := []struct {
		name     string
		target   *json.RawMessage
		fallback string
	}{
		{database.CollectionInventory, &backup.Inventory, "[]"},
		{database.CollectionPurchases, &backup.Purchases, "[]"},
		{database.CollectionSettings, &backup.Settings, "null"},
		{database.CollectionChores, &backup.Chores, "[]"},
		{database.CollectionChoreHistory, &backup.ChoreHistory, "[]"},
	}
	for _, r := range reads {
		raw, err := database.ReadCollection(db, r.name)
		if err != nil {
			internalError(c, "Failed to read "+r.name)
			return
		}
		if raw == nil {
			raw = json.RawMessage(r.fallback)
		}
		*r.target = raw
	}

	filename := fmt.Sprintf("home-inventory-backup-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, backup)
}

// handleImportBackup restores collections from a backup envelope. Only the
// collections present in the envelope are replaced.
func handleImportBackup(c *gin.Context) {
	var backup models.Backup
	if err := c.ShouldBindJSON(&backup); err != nil {
		badRequest(c, "Invalid backup payload")
		return
	}
	if backup.Version != models.BackupVersion {
		badRequest(c, fmt.Sprintf("Unsupported backup version %d", backup.Version))
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	db := getDB(c)
	writes := []struct {
		name string
		doc  json.RawMessage
	}{
		{database.CollectionInventory, backup.Inventory},
		{database.CollectionPurchases, backup.Purchases},
		{database.CollectionSettings, backup.Settings},
		{database.CollectionChores, backup.Chores},
		{database.CollectionChoreHistory, backup.ChoreHistory},
	}
	for _, w := range writes {
		if w.doc == nil || string(w.doc) == "null" {
			continue
		}
		if err := database.WriteCollection(db, w.name, w.doc); err != nil {
			internalError(c, "Failed to restore "+w.name)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// handleExportCSV writes the inventory as a shopping-list style CSV, emptiest
// items first so the most urgent restocks are at the top.
func handleExportCSV(c *gin.Context) {
	db := getDB(c)
	items, err := database.LoadInventory(db)
	if err != nil {
		internalError(c, "Failed to load inventory")
		return
	}
	settings, err := database.LoadSettings(db)
	if err != nil {
		internalError(c, "Failed to load settings")
		return
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Quantity != items[j].Quantity {
			return items[i].Quantity < items[j].Quantity
		}
		return items[i].Name < items[j].Name
	})

	filename := fmt.Sprintf("inventory-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Name", "Quantity", "Unit"})
	for _, item := range items {
		_ = w.Write([]string{
			item.Name,
			fmt.Sprintf("%d", item.Quantity),
			models.UnitLabel(settings, item.Unit, item.Quantity),
		})
	}
	w.Flush()
}
