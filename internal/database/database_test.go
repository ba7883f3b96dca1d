package database

import (
	"database/sql"
	"testing"
	"time"

	"homestock/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatal("Failed to run migrations:", err)
	}

	return db
}

func TestCollectionRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	raw, err := ReadCollection(db, CollectionInventory)
	if err != nil {
		t.Fatal("Failed to read missing collection:", err)
	}
	if raw != nil {
		t.Errorf("Expected nil for a never-written collection, got %s", raw)
	}

	doc := []byte(`[{"id":"a","name":"Rice"}]`)
	if err := WriteCollection(db, CollectionInventory, doc); err != nil {
		t.Fatal("Failed to write collection:", err)
	}

	raw, err = ReadCollection(db, CollectionInventory)
	if err != nil {
		t.Fatal("Failed to read collection:", err)
	}
	if string(raw) != string(doc) {
		t.Errorf("Expected stored document %s, got %s", doc, raw)
	}

	doc2 := []byte(`[]`)
	if err := WriteCollection(db, CollectionInventory, doc2); err != nil {
		t.Fatal("Failed to overwrite collection:", err)
	}
	raw, err = ReadCollection(db, CollectionInventory)
	if err != nil {
		t.Fatal("Failed to re-read collection:", err)
	}
	if string(raw) != string(doc2) {
		t.Errorf("Expected overwritten document %s, got %s", doc2, raw)
	}
}

func TestInventoryLoadSave(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	items, err := LoadInventory(db)
	if err != nil {
		t.Fatal("Failed to load empty inventory:", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty inventory, got %d items", len(items))
	}

	minQty := 2
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	items = []models.InventoryItem{
		{
			ID:          "item-1",
			Name:        "Olive oil",
			Category:    "pantry",
			Quantity:    3,
			Unit:        "bottles",
			MinQuantity: &minQty,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	if err := SaveInventory(db, items); err != nil {
		t.Fatal("Failed to save inventory:", err)
	}

	loaded, err := LoadInventory(db)
	if err != nil {
		t.Fatal("Failed to load inventory:", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(loaded))
	}
	if loaded[0].Name != "Olive oil" {
		t.Errorf("Expected name 'Olive oil', got %s", loaded[0].Name)
	}
	if loaded[0].MinQuantity == nil || *loaded[0].MinQuantity != 2 {
		t.Error("Expected minimum quantity 2 to survive the round trip")
	}
	if !loaded[0].CreatedAt.Equal(now) {
		t.Errorf("Expected createdAt %v, got %v", now, loaded[0].CreatedAt)
	}
}

func TestInventoryLoadNormalizesLegacyRecords(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	// A record written before per-location tracking: no unit, no location
	// list, no unassigned quantity.
	doc := []byte(`[{"id":"old","name":"Flour","category":"pantry","quantity":5,` +
		`"createdAt":"2023-01-01T00:00:00Z","updatedAt":"2023-01-01T00:00:00Z"}]`)
	if err := WriteCollection(db, CollectionInventory, doc); err != nil {
		t.Fatal("Failed to seed legacy record:", err)
	}

	items, err := LoadInventory(db)
	if err != nil {
		t.Fatal("Failed to load inventory:", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Unit != "items" {
		t.Errorf("Expected default unit 'items', got %s", item.Unit)
	}
	if item.LocationQuantities == nil {
		t.Error("Expected location quantities to be normalized to an empty list")
	}
	if item.UnassignedQuantity == nil || *item.UnassignedQuantity != 5 {
		t.Error("Expected unassigned quantity derived as the full total")
	}
}

func TestInventoryLoadDerivesUnassignedFromLocations(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	doc := []byte(`[{"id":"x","name":"Batteries","category":"general","quantity":10,` +
		`"unit":"items","locationQuantities":[{"locationId":"garage","quantity":4}],` +
		`"createdAt":"2023-01-01T00:00:00Z","updatedAt":"2023-01-01T00:00:00Z"}]`)
	if err := WriteCollection(db, CollectionInventory, doc); err != nil {
		t.Fatal("Failed to seed record:", err)
	}

	items, err := LoadInventory(db)
	if err != nil {
		t.Fatal("Failed to load inventory:", err)
	}
	if items[0].UnassignedQuantity == nil || *items[0].UnassignedQuantity != 6 {
		t.Error("Expected unassigned quantity 10 - 4 = 6")
	}
}

func TestPurchasesLoadSave(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	purchases := []models.PurchaseLog{
		{
			ID:          "p-1",
			ItemID:      "item-1",
			ItemName:    "Olive oil",
			Quantity:    2,
			UnitPrice:   4.50,
			TotalPrice:  9.00,
			Shop:        "market",
			PurchasedAt: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
		},
	}
	if err := SavePurchases(db, purchases); err != nil {
		t.Fatal("Failed to save purchases:", err)
	}

	loaded, err := LoadPurchases(db)
	if err != nil {
		t.Fatal("Failed to load purchases:", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("Expected 1 purchase, got %d", len(loaded))
	}
	if loaded[0].TotalPrice != 9.00 {
		t.Errorf("Expected total price 9.00, got %f", loaded[0].TotalPrice)
	}
	if loaded[0].Shop != "market" {
		t.Errorf("Expected shop 'market', got %s", loaded[0].Shop)
	}
}

func TestSettingsDefaults(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	settings, err := LoadSettings(db)
	if err != nil {
		t.Fatal("Failed to load settings:", err)
	}
	if len(settings.Categories) != 1 || settings.Categories[0].ID != "general" {
		t.Error("Expected default category 'general' on a fresh install")
	}
	if len(settings.UnitTypes) != 1 || settings.UnitTypes[0].ID != "items" {
		t.Error("Expected default unit type 'items' on a fresh install")
	}
	if len(settings.Locations) != 1 || settings.Locations[0].ID != "home" {
		t.Error("Expected default location 'home' on a fresh install")
	}
	if len(settings.Shops) != 1 || settings.Shops[0].ID != "shop" {
		t.Error("Expected default shop 'shop' on a fresh install")
	}
}

func TestSettingsMissingListsFallBackToDefaults(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	// Stored settings with only categories present.
	doc := []byte(`{"categories":[{"id":"pantry","name":"Pantry"}]}`)
	if err := WriteCollection(db, CollectionSettings, doc); err != nil {
		t.Fatal("Failed to seed settings:", err)
	}

	settings, err := LoadSettings(db)
	if err != nil {
		t.Fatal("Failed to load settings:", err)
	}
	if len(settings.Categories) != 1 || settings.Categories[0].ID != "pantry" {
		t.Error("Expected stored categories to be kept")
	}
	if len(settings.UnitTypes) != 1 || settings.UnitTypes[0].ID != "items" {
		t.Error("Expected missing unit types to fall back to defaults")
	}
	if len(settings.Shops) != 1 || settings.Shops[0].ID != "shop" {
		t.Error("Expected missing shops to fall back to defaults")
	}
}

func TestChoresAndHistoryLoadSave(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	freq := 7
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	chores := []models.Chore{
		{ID: "c-1", Name: "Water plants", FrequencyDays: &freq, CreatedAt: created, UpdatedAt: created},
		{ID: "c-2", Name: "Descale kettle", CreatedAt: created, UpdatedAt: created},
	}
	if err := SaveChores(db, chores); err != nil {
		t.Fatal("Failed to save chores:", err)
	}

	loaded, err := LoadChores(db)
	if err != nil {
		t.Fatal("Failed to load chores:", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 chores, got %d", len(loaded))
	}
	if loaded[0].FrequencyDays == nil || *loaded[0].FrequencyDays != 7 {
		t.Error("Expected frequency 7 to survive the round trip")
	}
	if loaded[1].FrequencyDays != nil {
		t.Error("Expected log-only chore to keep a nil frequency")
	}

	completions := []models.ChoreCompletion{
		{ID: "h-1", ChoreID: "c-1", ChoreName: "Water plants", CompletedAt: created.AddDate(0, 0, 3), Notes: "front room only"},
	}
	if err := SaveChoreHistory(db, completions); err != nil {
		t.Fatal("Failed to save chore history:", err)
	}

	history, err := LoadChoreHistory(db)
	if err != nil {
		t.Fatal("Failed to load chore history:", err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected 1 completion, got %d", len(history))
	}
	if history[0].Notes != "front room only" {
		t.Errorf("Expected notes to survive, got %s", history[0].Notes)
	}
}

func TestRawCollectionPreservedByteForByte(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	// The backup path reads and writes raw documents; key order and
	// formatting must come back exactly as stored.
	doc := []byte(`[{"name":"Rice","id":"a","quantity":2,"extra":{"nested":true}}]`)
	if err := WriteCollection(db, CollectionInventory, doc); err != nil {
		t.Fatal("Failed to write raw document:", err)
	}

	raw, err := ReadCollection(db, CollectionInventory)
	if err != nil {
		t.Fatal("Failed to read raw document:", err)
	}
	if string(raw) != string(doc) {
		t.Errorf("Expected byte-identical document, got %s", raw)
	}
}
