// Package inventory implements the stock ledger: each item's total quantity
// split across named locations plus an unassigned pool. Every operation keeps
// quantity == unassigned + sum(location quantities), never lets a bucket go
// negative, and prunes buckets that reach zero.
//
// Over-withdrawal clamps to what the source bucket holds and an invalid move
// source is a no-op; neither is an error. Input validation (rejecting
// non-positive amounts before any mutation) is the caller's job.
package inventory

import (
	"time"

	"homestock/internal/models"
)

// UnassignedQuantity returns the stock not assigned to any location. Records
// created before per-location tracking may lack the cached field, in which
// case it is derived from the total.
func UnassignedQuantity(item *models.InventoryItem) int {
	if item.UnassignedQuantity != nil {
		return *item.UnassignedQuantity
	}
	if len(item.LocationQuantities) == 0 {
		return item.Quantity
	}
	assigned := 0
	for _, lq := range item.LocationQuantities {
		assigned += lq.Quantity
	}
	if item.Quantity < assigned {
		return 0
	}
	return item.Quantity - assigned
}

// LocationQuantity returns the stock held at the given location, 0 if none.
func LocationQuantity(item *models.InventoryItem, locationID string) int {
	for _, lq := range item.LocationQuantities {
		if lq.LocationID == locationID {
			return lq.Quantity
		}
	}
	return 0
}

// AddStock increases the item's total by amount. New stock always lands in
// the unassigned pool; no location is chosen automatically. Amounts <= 0 are
// a no-op.
func AddStock(item *models.InventoryItem, amount int, now time.Time) {
	if amount <= 0 {
		return
	}
	unassigned := UnassignedQuantity(item) + amount
	item.Quantity += amount
	item.UnassignedQuantity = &unassigned
	item.UpdatedAt = now
}

// RemoveStock removes up to amount units from the unassigned pool
// (locationID nil) or from one location bucket. The actual amount removed is
// clamped to what that bucket holds; other buckets are never drawn from.
// Returns the amount actually removed.
func RemoveStock(item *models.InventoryItem, amount int, locationID *string, now time.Time) int {
	if amount <= 0 {
		return 0
	}

	removed := 0
	if locationID == nil {
		unassigned := UnassignedQuantity(item)
		removed = min(amount, unassigned)
		unassigned -= removed
		item.UnassignedQuantity = &unassigned
	} else {
		for i := range item.LocationQuantities {
			if item.LocationQuantities[i].LocationID != *locationID {
				continue
			}
			removed = min(amount, item.LocationQuantities[i].Quantity)
			item.LocationQuantities[i].Quantity -= removed
			break
		}
		item.LocationQuantities = pruneEmpty(item.LocationQuantities)
	}

	if removed == 0 {
		return 0
	}

	item.Quantity -= removed
	if item.Quantity < 0 {
		item.Quantity = 0
	}
	item.UpdatedAt = now
	return removed
}

// MoveToLocation moves up to amount units from the unassigned pool into the
// given location, merging into an existing bucket if one exists. The amount
// is clamped to the current unassigned quantity; a clamped amount <= 0 leaves
// the item unchanged.
func MoveToLocation(item *models.InventoryItem, toLocationID string, amount int, now time.Time) {
	unassigned := UnassignedQuantity(item)
	moved := min(amount, unassigned)
	if moved <= 0 {
		return
	}

	unassigned -= moved
	item.UnassignedQuantity = &unassigned
	item.LocationQuantities = addToBucket(item.LocationQuantities, toLocationID, moved)
	item.UpdatedAt = now
}

// MoveBetweenLocations moves up to amount units from one bucket to another.
// A nil fromLocationID means the unassigned pool is the source; an empty
// toLocationID means the unassigned pool is the destination. The amount is
// clamped to what the source holds, and a missing source bucket or a clamped
// amount <= 0 leaves the item unchanged. Emptied source buckets are pruned.
func MoveBetweenLocations(item *models.InventoryItem, fromLocationID *string, toLocationID string, amount int, now time.Time) {
	if fromLocationID == nil {
		MoveToLocation(item, toLocationID, amount, now)
		return
	}

	fromIdx := -1
	for i := range item.LocationQuantities {
		if item.LocationQuantities[i].LocationID == *fromLocationID {
			fromIdx = i
			break
		}
	}
	if fromIdx < 0 {
		return
	}

	moved := min(amount, item.LocationQuantities[fromIdx].Quantity)
	if moved <= 0 {
		return
	}
	item.LocationQuantities[fromIdx].Quantity -= moved

	if toLocationID == "" {
		unassigned := UnassignedQuantity(item) + moved
		item.UnassignedQuantity = &unassigned
	} else {
		item.LocationQuantities = addToBucket(item.LocationQuantities, toLocationID, moved)
	}

	item.LocationQuantities = pruneEmpty(item.LocationQuantities)
	item.UpdatedAt = now
}

// LowStock returns the items at or below their minimum quantity threshold but
// not yet out of stock.
func LowStock(items []models.InventoryItem) []models.InventoryItem {
	var low []models.InventoryItem
	for _, item := range items {
		if item.MinQuantity != nil && item.Quantity > 0 && item.Quantity <= *item.MinQuantity {
			low = append(low, item)
		}
	}
	return low
}

// OutOfStock returns the items with no stock left.
func OutOfStock(items []models.InventoryItem) []models.InventoryItem {
	var out []models.InventoryItem
	for _, item := range items {
		if item.Quantity == 0 {
			out = append(out, item)
		}
	}
	return out
}

func addToBucket(buckets []models.LocationQuantity, locationID string, amount int) []models.LocationQuantity {
	for i := range buckets {
		if buckets[i].LocationID == locationID {
			buckets[i].Quantity += amount
			return buckets
		}
	}
	return append(buckets, models.LocationQuantity{LocationID: locationID, Quantity: amount})
}

func pruneEmpty(buckets []models.LocationQuantity) []models.LocationQuantity {
	kept := buckets[:0]
	for _, lq := range buckets {
		if lq.Quantity > 0 {
			kept = append(kept, lq)
		}
	}
	return kept
}
