package models

import (
	"encoding/json"
	"time"
)

// LocationQuantity is the share of an item's stock held at one location.
// Entries with a zero quantity are never persisted.
type LocationQuantity struct {
	LocationID string `json:"locationId"`
	Quantity   int    `json:"quantity"`
}

// InventoryItem is a tracked household item. Quantity is the total number of
// units owned and always equals UnassignedQuantity plus the sum of all
// location quantities.
type InventoryItem struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Category           string             `json:"category"`
	Quantity           int                `json:"quantity"`
	Unit               string             `json:"unit"`
	MinQuantity        *int               `json:"minQuantity,omitempty"`
	LocationQuantities []LocationQuantity `json:"locationQuantities"`
	UnassignedQuantity *int               `json:"unassignedQuantity,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// PurchaseLog records one purchase of an item. Immutable once created; the
// item name is a snapshot so the record survives item deletion.
type PurchaseLog struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"itemId"`
	ItemName    string    `json:"itemName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	TotalPrice  float64   `json:"totalPrice"`
	Shop        string    `json:"shop"`
	PurchasedAt time.Time `json:"purchasedAt"`
}

// Chore is a recurring or log-only household task. A nil FrequencyDays means
// the chore is log-only and has no due-date semantics.
type Chore struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	FrequencyDays *int      `json:"frequencyDays,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ChoreCompletion records one "mark done" of a chore. Immutable; the chore
// name is a snapshot so history survives chore deletion.
type ChoreCompletion struct {
	ID          string    `json:"id"`
	ChoreID     string    `json:"choreId"`
	ChoreName   string    `json:"choreName"`
	CompletedAt time.Time `json:"completedAt"`
	Notes       string    `json:"notes,omitempty"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UnitType struct {
	ID       string `json:"id"`
	Singular string `json:"singular"`
	Plural   string `json:"plural"`
}

type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Shop struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Settings holds the user-extensible reference lists. References from items,
// purchases and chores are by id with no enforced integrity; a dangling id
// degrades to a fallback label at display time.
type Settings struct {
	Categories []Category `json:"categories"`
	UnitTypes  []UnitType `json:"unitTypes"`
	Locations  []Location `json:"locations"`
	Shops      []Shop     `json:"shops"`
}

// DefaultSettings returns the reference lists a fresh install starts with.
func DefaultSettings() *Settings {
	return &Settings{
		Categories: []Category{{ID: "general", Name: "General"}},
		UnitTypes:  []UnitType{{ID: "items", Singular: "Item", Plural: "Items"}},
		Locations:  []Location{{ID: "home", Name: "Home"}},
		Shops:      []Shop{{ID: "shop", Name: "Shop"}},
	}
}

// UnitLabel resolves a unit id to its display label, singular or plural for
// the given quantity. A dangling unit reference falls back to the raw id.
func UnitLabel(settings *Settings, unitID string, quantity int) string {
	for _, u := range settings.UnitTypes {
		if u.ID == unitID {
			if quantity == 1 {
				return u.Singular
			}
			return u.Plural
		}
	}
	return unitID
}

// Backup is the bulk export/import envelope. Collections are kept as raw JSON
// so an export/import round trip restores them byte for byte.
type Backup struct {
	Version      int             `json:"version"`
	ExportedAt   string          `json:"exportedAt"`
	Inventory    json.RawMessage `json:"inventory"`
	Purchases    json.RawMessage `json:"purchases"`
	Settings     json.RawMessage `json:"settings"`
	Chores       json.RawMessage `json:"chores"`
	ChoreHistory json.RawMessage `json:"choreHistory"`
}

const BackupVersion = 1

// NormalizeItem fills fields that records written before per-location tracking
// may be missing: the unit defaults to "items", the location list is never
// nil, and an absent unassigned quantity is derived as the total minus the sum
// of location quantities, floored at zero.
func NormalizeItem(item *InventoryItem) {
	if item.Unit == "" {
		item.Unit = "items"
	}
	if item.LocationQuantities == nil {
		item.LocationQuantities = []LocationQuantity{}
	}
	if item.UnassignedQuantity == nil {
		assigned := 0
		for _, lq := range item.LocationQuantities {
			assigned += lq.Quantity
		}
		unassigned := item.Quantity - assigned
		if unassigned < 0 {
			unassigned = 0
		}
		item.UnassignedQuantity = &unassigned
	}
}
