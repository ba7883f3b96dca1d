// Package prices aggregates the purchase log into per-shop price statistics
// used by the price comparison view. Money arithmetic goes through decimals
// to keep averages free of float accumulation error.
package prices

import (
	"sort"

	"homestock/internal/models"

	"github.com/shopspring/decimal"
)

// ShopPrice summarises what one shop has charged for an item.
type ShopPrice struct {
	ShopID    string  `json:"shopId"`
	Average   float64 `json:"average"`
	Count     int     `json:"count"`
	LastPrice float64 `json:"lastPrice"`
}

// ItemPrices holds the per-shop price breakdown for one inventory item.
// Shops are ordered cheapest average first.
type ItemPrices struct {
	ItemID         string      `json:"itemId"`
	ItemName       string      `json:"itemName"`
	ShopPrices     []ShopPrice `json:"shopPrices"`
	CheapestShopID string      `json:"cheapestShopId,omitempty"`
	HasPurchases   bool        `json:"hasPurchases"`
}

// TotalPrice computes quantity times unit price for a new purchase record.
func TotalPrice(quantity int, unitPrice float64) float64 {
	total := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
	f, _ := total.Float64()
	return f
}

// Compare builds the price breakdown for every item. Items without purchase
// history are included with an empty breakdown so the view can still list
// them.
func Compare(items []models.InventoryItem, purchases []models.PurchaseLog) []ItemPrices {
	byItem := make(map[string][]models.PurchaseLog)
	for _, p := range purchases {
		byItem[p.ItemID] = append(byItem[p.ItemID], p)
	}

	result := make([]ItemPrices, 0, len(items))
	for _, item := range items {
		result = append(result, compareItem(item, byItem[item.ID]))
	}
	return result
}

type shopStats struct {
	total    decimal.Decimal
	count    int
	last     float64
	lastSeen models.PurchaseLog
}

func compareItem(item models.InventoryItem, purchases []models.PurchaseLog) ItemPrices {
	ip := ItemPrices{
		ItemID:     item.ID,
		ItemName:   item.Name,
		ShopPrices: []ShopPrice{},
	}
	if len(purchases) == 0 {
		return ip
	}
	ip.HasPurchases = true

	stats := make(map[string]*shopStats)
	for _, p := range purchases {
		s, ok := stats[p.Shop]
		if !ok {
			s = &shopStats{}
			stats[p.Shop] = s
		}
		s.total = s.total.Add(decimal.NewFromFloat(p.UnitPrice))
		s.count++
		if s.count == 1 || p.PurchasedAt.After(s.lastSeen.PurchasedAt) {
			s.last = p.UnitPrice
			s.lastSeen = p
		}
	}

	for shopID, s := range stats {
		avg, _ := s.total.Div(decimal.NewFromInt(int64(s.count))).Float64()
		ip.ShopPrices = append(ip.ShopPrices, ShopPrice{
			ShopID:    shopID,
			Average:   avg,
			Count:     s.count,
			LastPrice: s.last,
		})
	}

	sort.Slice(ip.ShopPrices, func(i, j int) bool {
		if ip.ShopPrices[i].Average != ip.ShopPrices[j].Average {
			return ip.ShopPrices[i].Average < ip.ShopPrices[j].Average
		}
		return ip.ShopPrices[i].ShopID < ip.ShopPrices[j].ShopID
	})
	ip.CheapestShopID = ip.ShopPrices[0].ShopID
	return ip
}
