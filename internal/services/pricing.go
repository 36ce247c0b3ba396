package services

import (
	"math"
	"strconv"

	"gorm.io/gorm"

	"github.com/example/palme/internal/models"
)

// PricingSettings is a per-request snapshot of the delivery-fee settings.
// Loading it once up front keeps a checkout's pricing stable even if an
// admin edits settings mid-request.
type PricingSettings struct {
	BaseWeightKg  float64
	ExtraKgPrice  float64
	DoorstepPrice float64
	ParkPrice     float64
	LowStockLevel int
}

// DefaultPricingSettings are used for any key missing from the settings table.
func DefaultPricingSettings() PricingSettings {
	return PricingSettings{
		BaseWeightKg:  10,
		ExtraKgPrice:  500,
		DoorstepPrice: 10000,
		ParkPrice:     5000,
		LowStockLevel: 5,
	}
}

// LoadPricingSettings reads the settings table into a snapshot, falling
// back to defaults for missing or unparseable values.
func LoadPricingSettings(db *gorm.DB) PricingSettings {
	snapshot := DefaultPricingSettings()

	var rows []models.Setting
	if err := db.Find(&rows).Error; err != nil {
		return snapshot
	}

	for _, row := range rows {
		value, err := strconv.ParseFloat(row.Value, 64)
		if err != nil {
			continue
		}
		switch row.Key {
		case models.SettingBaseWeightKg:
			snapshot.BaseWeightKg = value
		case models.SettingExtraKgPrice:
			snapshot.ExtraKgPrice = value
		case models.SettingDoorstepPrice:
			snapshot.DoorstepPrice = value
		case models.SettingParkPrice:
			snapshot.ParkPrice = value
		case models.SettingLowStockLevel:
			snapshot.LowStockLevel = int(value)
		}
	}

	return snapshot
}

// QuoteLine pairs a server-resolved product with the requested quantity.
// Prices and weights always come from the catalog row, never the client.
type QuoteLine struct {
	Product  models.Product
	Quantity int
}

// Quote is the server-derived money breakdown for an order.
type Quote struct {
	Subtotal       float64
	TotalWeight    float64
	ShippingFee    float64
	DiscountAmount float64
	TipAmount      float64
	TotalAmount    float64
}

// ComputeQuote derives the full price breakdown for an order from catalog
// data and the settings snapshot. Pure: no reads, no writes.
func ComputeQuote(lines []QuoteLine, deliveryMethod string, discountPercent, tip float64, settings PricingSettings) Quote {
	var q Quote

	for _, line := range lines {
		qty := float64(line.Quantity)
		q.Subtotal += line.Product.Price * qty
		q.TotalWeight += line.Product.WeightKg * qty
	}

	switch deliveryMethod {
	case models.DeliveryMethodDoorstep:
		q.ShippingFee = settings.DoorstepPrice
		if excess := q.TotalWeight - settings.BaseWeightKg; excess > 0 {
			q.ShippingFee += math.Ceil(excess) * settings.ExtraKgPrice
		}
	case models.DeliveryMethodPark:
		q.ShippingFee = settings.ParkPrice
	}

	if discountPercent > 0 {
		q.DiscountAmount = q.Subtotal * discountPercent / 100
	}

	if tip > 0 {
		q.TipAmount = tip
	}

	q.TotalAmount = q.Subtotal + q.ShippingFee + q.TipAmount - q.DiscountAmount
	if q.TotalAmount < 0 {
		q.TotalAmount = 0
	}

	return q
}
