package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"homestock/internal/models"
)

// Logical collection names. These double as the keys of the backup envelope's
// stores.
const (
	CollectionInventory    = "inventory"
	CollectionPurchases    = "purchases"
	CollectionSettings     = "settings"
	CollectionChores       = "chores"
	CollectionChoreHistory = "chore-history"
)

// ReadCollection returns the raw JSON document stored under name, or nil if
// the collection has never been written.
func ReadCollection(db *sql.DB, name string) (json.RawMessage, error) {
	var doc string
	err := db.QueryRow("SELECT doc FROM collections WHERE name = ?", name).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", name, err)
	}
	return json.RawMessage(doc), nil
}

// WriteCollection replaces the document stored under name wholesale.
func WriteCollection(db *sql.DB, name string, doc json.RawMessage) error {
	_, err := db.Exec(
		`INSERT INTO collections (name, doc, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (name) DO UPDATE SET doc = excluded.doc, updated_at = CURRENT_TIMESTAMP`,
		name, string(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to write collection %s: %w", name, err)
	}
	return nil
}

// LoadInventory returns all inventory items, normalized so records written
// before per-location tracking still carry a derived unassigned quantity.
func LoadInventory(db *sql.DB) ([]models.InventoryItem, error) {
	raw, err := ReadCollection(db, CollectionInventory)
	if err != nil {
		return nil, err
	}
	items := []models.InventoryItem{}
	if raw != nil {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("failed to decode inventory: %w", err)
		}
	}
	for i := range items {
		models.NormalizeItem(&items[i])
	}
	return items, nil
}

// SaveInventory replaces the inventory collection and logs what changed.
func SaveInventory(db *sql.DB, items []models.InventoryItem) error {
	old, _ := LoadInventory(db)
	if err := writeJSON(db, CollectionInventory, items); err != nil {
		return err
	}
	logInventoryChanges(old, items)
	return nil
}

// LoadPurchases returns the purchase history, most recent first as stored.
func LoadPurchases(db *sql.DB) ([]models.PurchaseLog, error) {
	raw, err := ReadCollection(db, CollectionPurchases)
	if err != nil {
		return nil, err
	}
	purchases := []models.PurchaseLog{}
	if raw != nil {
		if err := json.Unmarshal(raw, &purchases); err != nil {
			return nil, fmt.Errorf("failed to decode purchases: %w", err)
		}
	}
	return purchases, nil
}

// SavePurchases replaces the purchase history and logs new purchases.
func SavePurchases(db *sql.DB, purchases []models.PurchaseLog) error {
	old, _ := LoadPurchases(db)
	if err := writeJSON(db, CollectionPurchases, purchases); err != nil {
		return err
	}
	logPurchaseChanges(old, purchases)
	return nil
}

// LoadSettings returns the reference lists, falling back to the defaults for
// a fresh install or any list the stored document is missing.
func LoadSettings(db *sql.DB) (*models.Settings, error) {
	raw, err := ReadCollection(db, CollectionSettings)
	if err != nil {
		return nil, err
	}
	defaults := models.DefaultSettings()
	if raw == nil {
		return defaults, nil
	}

	settings := &models.Settings{}
	if err := json.Unmarshal(raw, settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if settings.Categories == nil {
		settings.Categories = defaults.Categories
	}
	if settings.UnitTypes == nil {
		settings.UnitTypes = defaults.UnitTypes
	}
	if settings.Locations == nil {
		settings.Locations = defaults.Locations
	}
	if settings.Shops == nil {
		settings.Shops = defaults.Shops
	}
	return settings, nil
}

// SaveSettings replaces the settings document and logs reference list
// additions and removals.
func SaveSettings(db *sql.DB, settings *models.Settings) error {
	old, _ := LoadSettings(db)
	if err := writeJSON(db, CollectionSettings, settings); err != nil {
		return err
	}
	logSettingsChanges(old, settings)
	return nil
}

// LoadChores returns all chores.
func LoadChores(db *sql.DB) ([]models.Chore, error) {
	raw, err := ReadCollection(db, CollectionChores)
	if err != nil {
		return nil, err
	}
	chores := []models.Chore{}
	if raw != nil {
		if err := json.Unmarshal(raw, &chores); err != nil {
			return nil, fmt.Errorf("failed to decode chores: %w", err)
		}
	}
	return chores, nil
}

// SaveChores replaces the chore collection.
func SaveChores(db *sql.DB, chores []models.Chore) error {
	return writeJSON(db, CollectionChores, chores)
}

// LoadChoreHistory returns all chore completions.
func LoadChoreHistory(db *sql.DB) ([]models.ChoreCompletion, error) {
	raw, err := ReadCollection(db, CollectionChoreHistory)
	if err != nil {
		return nil, err
	}
	completions := []models.ChoreCompletion{}
	if raw != nil {
		if err := json.Unmarshal(raw, &completions); err != nil {
			return nil, fmt.Errorf("failed to decode chore history: %w", err)
		}
	}
	return completions, nil
}

// SaveChoreHistory replaces the chore completion log.
func SaveChoreHistory(db *sql.DB, completions []models.ChoreCompletion) error {
	return writeJSON(db, CollectionChoreHistory, completions)
}

func writeJSON(db *sql.DB, name string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return WriteCollection(db, name, doc)
}
