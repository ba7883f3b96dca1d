package inventory

import (
	"testing"
	"time"

	"homestock/internal/models"
)

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func testItem(quantity, unassigned int, buckets ...models.LocationQuantity) *models.InventoryItem {
	if buckets == nil {
		buckets = []models.LocationQuantity{}
	}
	return &models.InventoryItem{
		ID:                 "item-1",
		Name:               "Olive oil",
		Category:           "general",
		Quantity:           quantity,
		Unit:               "items",
		LocationQuantities: buckets,
		UnassignedQuantity: intPtr(unassigned),
		CreatedAt:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func checkInvariant(t *testing.T, item *models.InventoryItem) {
	t.Helper()

	assigned := 0
	for _, lq := range item.LocationQuantities {
		if lq.Quantity <= 0 {
			t.Errorf("location %q has non-positive quantity %d", lq.LocationID, lq.Quantity)
		}
		assigned += lq.Quantity
	}

	unassigned := UnassignedQuantity(item)
	if unassigned < 0 {
		t.Errorf("unassigned quantity is negative: %d", unassigned)
	}
	if item.Quantity < 0 {
		t.Errorf("total quantity is negative: %d", item.Quantity)
	}
	if item.Quantity != unassigned+assigned {
		t.Errorf("invariant broken: quantity %d != unassigned %d + assigned %d", item.Quantity, unassigned, assigned)
	}
}

func TestAddStock(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	item := testItem(5, 5)

	AddStock(item, 3, now)

	if item.Quantity != 8 {
		t.Errorf("Expected quantity 8, got %d", item.Quantity)
	}
	if UnassignedQuantity(item) != 8 {
		t.Errorf("Expected unassigned 8, got %d", UnassignedQuantity(item))
	}
	if !item.UpdatedAt.Equal(now) {
		t.Error("Expected UpdatedAt to be bumped")
	}
	checkInvariant(t, item)
}

func TestAddStockIgnoresNonPositiveAmount(t *testing.T) {
	now := time.Now()
	item := testItem(5, 5)

	AddStock(item, 0, now)
	AddStock(item, -2, now)

	if item.Quantity != 5 || UnassignedQuantity(item) != 5 {
		t.Errorf("Expected item unchanged, got quantity=%d unassigned=%d", item.Quantity, UnassignedQuantity(item))
	}
	checkInvariant(t, item)
}

func TestRemoveStockClampsToUnassigned(t *testing.T) {
	now := time.Now()
	item := testItem(5, 2, models.LocationQuantity{LocationID: "A", Quantity: 3})

	removed := RemoveStock(item, 5, nil, now)

	if removed != 2 {
		t.Errorf("Expected 2 removed, got %d", removed)
	}
	if UnassignedQuantity(item) != 0 {
		t.Errorf("Expected unassigned 0, got %d", UnassignedQuantity(item))
	}
	if item.Quantity != 3 {
		t.Errorf("Expected quantity reduced by 2 only, got %d", item.Quantity)
	}
	if LocationQuantity(item, "A") != 3 {
		t.Error("Removal from unassigned must not touch location buckets")
	}
	checkInvariant(t, item)
}

func TestRemoveStockFromLocation(t *testing.T) {
	now := time.Now()
	item := testItem(5, 2, models.LocationQuantity{LocationID: "A", Quantity: 3})

	removed := RemoveStock(item, 1, strPtr("A"), now)

	if removed != 1 {
		t.Errorf("Expected 1 removed, got %d", removed)
	}
	if LocationQuantity(item, "A") != 2 {
		t.Errorf("Expected 2 left at A, got %d", LocationQuantity(item, "A"))
	}
	if item.Quantity != 4 {
		t.Errorf("Expected quantity 4, got %d", item.Quantity)
	}
	checkInvariant(t, item)
}

func TestRemoveStockPrunesEmptyBucket(t *testing.T) {
	now := time.Now()
	item := testItem(5, 2, models.LocationQuantity{LocationID: "A", Quantity: 3})

	removed := RemoveStock(item, 10, strPtr("A"), now)

	if removed != 3 {
		t.Errorf("Expected 3 removed, got %d", removed)
	}
	if len(item.LocationQuantities) != 0 {
		t.Errorf("Expected empty bucket pruned, got %v", item.LocationQuantities)
	}
	if item.Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", item.Quantity)
	}
	checkInvariant(t, item)
}

func TestRemoveStockFromUnknownLocationIsNoop(t *testing.T) {
	now := time.Now()
	item := testItem(5, 2, models.LocationQuantity{LocationID: "A", Quantity: 3})

	removed := RemoveStock(item, 2, strPtr("B"), now)

	if removed != 0 {
		t.Errorf("Expected 0 removed, got %d", removed)
	}
	if item.Quantity != 5 {
		t.Errorf("Expected quantity unchanged, got %d", item.Quantity)
	}
	checkInvariant(t, item)
}

func TestMoveToLocationClamps(t *testing.T) {
	now := time.Now()
	item := testItem(4, 4)

	MoveToLocation(item, "fridge", 10, now)

	if UnassignedQuantity(item) != 0 {
		t.Errorf("Expected unassigned 0, got %d", UnassignedQuantity(item))
	}
	if LocationQuantity(item, "fridge") != 4 {
		t.Errorf("Expected 4 in fridge, got %d", LocationQuantity(item, "fridge"))
	}
	if item.Quantity != 4 {
		t.Errorf("Moves must not change the total, got %d", item.Quantity)
	}
	checkInvariant(t, item)
}

func TestMoveToLocationMergesExistingBucket(t *testing.T) {
	now := time.Now()
	item := testItem(6, 2, models.LocationQuantity{LocationID: "fridge", Quantity: 4})

	MoveToLocation(item, "fridge", 2, now)

	if LocationQuantity(item, "fridge") != 6 {
		t.Errorf("Expected 6 in fridge, got %d", LocationQuantity(item, "fridge"))
	}
	if len(item.LocationQuantities) != 1 {
		t.Errorf("Expected a single merged bucket, got %v", item.LocationQuantities)
	}
	checkInvariant(t, item)
}

func TestMoveToLocationNoopWhenNothingUnassigned(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	item := testItem(3, 0, models.LocationQuantity{LocationID: "A", Quantity: 3})
	before := item.UpdatedAt

	MoveToLocation(item, "fridge", 2, now)

	if LocationQuantity(item, "fridge") != 0 {
		t.Error("Expected no bucket created")
	}
	if !item.UpdatedAt.Equal(before) {
		t.Error("No-op must not bump UpdatedAt")
	}
	checkInvariant(t, item)
}

func TestMoveBetweenLocations(t *testing.T) {
	now := time.Now()
	item := testItem(5, 0, models.LocationQuantity{LocationID: "A", Quantity: 5})

	MoveBetweenLocations(item, strPtr("A"), "B", 3, now)

	if LocationQuantity(item, "A") != 2 {
		t.Errorf("Expected 2 left at A, got %d", LocationQuantity(item, "A"))
	}
	if LocationQuantity(item, "B") != 3 {
		t.Errorf("Expected 3 at B, got %d", LocationQuantity(item, "B"))
	}
	checkInvariant(t, item)
}

func TestMoveBetweenLocationsClampsAndPrunesSource(t *testing.T) {
	now := time.Now()
	item := testItem(2, 0, models.LocationQuantity{LocationID: "A", Quantity: 2})

	MoveBetweenLocations(item, strPtr("A"), "B", 5, now)

	if LocationQuantity(item, "A") != 0 {
		t.Error("Expected A emptied")
	}
	if LocationQuantity(item, "B") != 2 {
		t.Errorf("Expected 2 at B, got %d", LocationQuantity(item, "B"))
	}
	if len(item.LocationQuantities) != 1 {
		t.Errorf("Expected zero entry pruned, got %v", item.LocationQuantities)
	}
	checkInvariant(t, item)
}

func TestMoveBetweenLocationsToUnassignedPool(t *testing.T) {
	now := time.Now()
	item := testItem(5, 1, models.LocationQuantity{LocationID: "A", Quantity: 4})

	MoveBetweenLocations(item, strPtr("A"), "", 3, now)

	if UnassignedQuantity(item) != 4 {
		t.Errorf("Expected unassigned 4, got %d", UnassignedQuantity(item))
	}
	if LocationQuantity(item, "A") != 1 {
		t.Errorf("Expected 1 left at A, got %d", LocationQuantity(item, "A"))
	}
	checkInvariant(t, item)
}

func TestMoveBetweenLocationsMissingSourceIsNoop(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	item := testItem(3, 3)
	before := item.UpdatedAt

	MoveBetweenLocations(item, strPtr("A"), "B", 2, now)

	if UnassignedQuantity(item) != 3 || len(item.LocationQuantities) != 0 {
		t.Error("Expected item unchanged for missing source bucket")
	}
	if !item.UpdatedAt.Equal(before) {
		t.Error("No-op must not bump UpdatedAt")
	}
	checkInvariant(t, item)
}

func TestMoveBetweenLocationsFromNilSourceUsesUnassigned(t *testing.T) {
	now := time.Now()
	item := testItem(4, 4)

	MoveBetweenLocations(item, nil, "pantry", 3, now)

	if UnassignedQuantity(item) != 1 {
		t.Errorf("Expected unassigned 1, got %d", UnassignedQuantity(item))
	}
	if LocationQuantity(item, "pantry") != 3 {
		t.Errorf("Expected 3 in pantry, got %d", LocationQuantity(item, "pantry"))
	}
	checkInvariant(t, item)
}

// The invariant must hold after any sequence of ledger operations, not just
// single calls.
func TestInvariantHoldsAcrossOperationSequence(t *testing.T) {
	now := time.Now()
	item := testItem(0, 0)

	steps := []func(){
		func() { AddStock(item, 10, now) },
		func() { MoveToLocation(item, "fridge", 4, now) },
		func() { MoveToLocation(item, "pantry", 3, now) },
		func() { MoveBetweenLocations(item, strPtr("fridge"), "pantry", 2, now) },
		func() { RemoveStock(item, 2, strPtr("pantry"), now) },
		func() { RemoveStock(item, 100, nil, now) },
		func() { MoveBetweenLocations(item, strPtr("pantry"), "", 1, now) },
		func() { AddStock(item, 5, now) },
		func() { RemoveStock(item, 3, strPtr("fridge"), now) },
		func() { MoveBetweenLocations(item, strPtr("ghost"), "fridge", 1, now) },
	}
	for _, step := range steps {
		step()
		checkInvariant(t, item)
	}
}

func TestUnassignedQuantityFallbackForLegacyRecords(t *testing.T) {
	item := &models.InventoryItem{
		Quantity: 7,
		LocationQuantities: []models.LocationQuantity{
			{LocationID: "A", Quantity: 3},
		},
	}

	if got := UnassignedQuantity(item); got != 4 {
		t.Errorf("Expected derived unassigned 4, got %d", got)
	}

	item.LocationQuantities = nil
	if got := UnassignedQuantity(item); got != 7 {
		t.Errorf("Expected all stock unassigned for legacy record, got %d", got)
	}
}

func TestLowStockAndOutOfStock(t *testing.T) {
	items := []models.InventoryItem{
		{ID: "a", Name: "Rice", Quantity: 2, MinQuantity: intPtr(3)},
		{ID: "b", Name: "Salt", Quantity: 5, MinQuantity: intPtr(3)},
		{ID: "c", Name: "Milk", Quantity: 0, MinQuantity: intPtr(2)},
		{ID: "d", Name: "Tea", Quantity: 1},
	}

	low := LowStock(items)
	if len(low) != 1 || low[0].ID != "a" {
		t.Errorf("Expected only item a low on stock, got %v", low)
	}

	out := OutOfStock(items)
	if len(out) != 1 || out[0].ID != "c" {
		t.Errorf("Expected only item c out of stock, got %v", out)
	}
}
