package database

import (
	"fmt"
	"strings"

	"homestock/internal/logger"
	"homestock/internal/models"
)

// Change logging: every save diffs the stored document against the incoming
// one and logs a human-readable summary, so the server log reads as an audit
// trail of what the household actually did.

func logInventoryChanges(old, updated []models.InventoryItem) {
	oldByID := make(map[string]models.InventoryItem, len(old))
	for _, item := range old {
		oldByID[item.ID] = item
	}
	newIDs := make(map[string]bool, len(updated))

	var msgs []string
	for _, item := range updated {
		newIDs[item.ID] = true
		prev, existed := oldByID[item.ID]
		if !existed {
			msgs = append(msgs, fmt.Sprintf("added %q", item.Name))
			continue
		}
		if len(old) > 0 && prev.Quantity != item.Quantity {
			diff := item.Quantity - prev.Quantity
			if diff > 0 {
				msgs = append(msgs, fmt.Sprintf("%q +%d (now %d)", item.Name, diff, item.Quantity))
			} else {
				msgs = append(msgs, fmt.Sprintf("%q %d (now %d)", item.Name, diff, item.Quantity))
			}
		}
	}
	for _, item := range old {
		if !newIDs[item.ID] {
			msgs = append(msgs, fmt.Sprintf("removed %q", item.Name))
		}
	}

	if len(msgs) > 0 {
		logger.Info("Inventory changed", "changes", strings.Join(msgs, ", "))
	}
}

func logPurchaseChanges(old, updated []models.PurchaseLog) {
	oldIDs := make(map[string]bool, len(old))
	for _, p := range old {
		oldIDs[p.ID] = true
	}
	for _, p := range updated {
		if !oldIDs[p.ID] {
			logger.Info("Purchase logged",
				"item", p.ItemName,
				"quantity", p.Quantity,
				"unit_price", fmt.Sprintf("%.2f", p.UnitPrice),
				"total", fmt.Sprintf("%.2f", p.TotalPrice))
		}
	}
}

func logSettingsChanges(old, updated *models.Settings) {
	if updated == nil {
		return
	}
	if old == nil {
		logger.Info("Settings: initial save")
		return
	}

	var msgs []string
	msgs = append(msgs, diffNamed("category", categoryPairs(old.Categories), categoryPairs(updated.Categories))...)
	msgs = append(msgs, diffNamed("location", locationPairs(old.Locations), locationPairs(updated.Locations))...)
	msgs = append(msgs, diffNamed("shop", shopPairs(old.Shops), shopPairs(updated.Shops))...)
	msgs = append(msgs, diffNamed("unit type", unitPairs(old.UnitTypes), unitPairs(updated.UnitTypes))...)

	if len(msgs) > 0 {
		logger.Info("Settings changed", "changes", strings.Join(msgs, ", "))
	}
}

type namedRecord struct {
	id   string
	name string
}

func diffNamed(kind string, old, updated []namedRecord) []string {
	oldIDs := make(map[string]bool, len(old))
	for _, r := range old {
		oldIDs[r.id] = true
	}
	newIDs := make(map[string]bool, len(updated))

	var msgs []string
	for _, r := range updated {
		newIDs[r.id] = true
		if !oldIDs[r.id] {
			msgs = append(msgs, fmt.Sprintf("added %s %q", kind, r.name))
		}
	}
	for _, r := range old {
		if !newIDs[r.id] {
			msgs = append(msgs, fmt.Sprintf("removed %s %q", kind, r.name))
		}
	}
	return msgs
}

func categoryPairs(categories []models.Category) []namedRecord {
	records := make([]namedRecord, len(categories))
	for i, c := range categories {
		records[i] = namedRecord{id: c.ID, name: c.Name}
	}
	return records
}

func locationPairs(locations []models.Location) []namedRecord {
	records := make([]namedRecord, len(locations))
	for i, l := range locations {
		records[i] = namedRecord{id: l.ID, name: l.Name}
	}
	return records
}

func shopPairs(shops []models.Shop) []namedRecord {
	records := make([]namedRecord, len(shops))
	for i, s := range shops {
		records[i] = namedRecord{id: s.ID, name: s.Name}
	}
	return records
}

func unitPairs(units []models.UnitType) []namedRecord {
	records := make([]namedRecord, len(units))
	for i, u := range units {
		records[i] = namedRecord{id: u.ID, name: u.Singular}
	}
	return records
}
