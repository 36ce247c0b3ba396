package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/palme/internal/models"
	"github.com/example/palme/internal/services"
)

func testSettings() services.PricingSettings {
	return services.PricingSettings{
		BaseWeightKg:  10,
		ExtraKgPrice:  500,
		DoorstepPrice: 10000,
		ParkPrice:     5000,
		LowStockLevel: 5,
	}
}

func quoteLines() []services.QuoteLine {
	return []services.QuoteLine{
		{
			Product:  models.Product{Name: "Palm Oil 5L", Price: 2500, WeightKg: 2},
			Quantity: 2,
		},
	}
}

func TestComputeQuoteDoorstepBaseFee(t *testing.T) {
	quote := services.ComputeQuote(quoteLines(), models.DeliveryMethodDoorstep, 0, 0, testSettings())

	assert.Equal(t, 5000.0, quote.Subtotal)
	assert.Equal(t, 4.0, quote.TotalWeight)
	assert.Equal(t, 10000.0, quote.ShippingFee)
	assert.Equal(t, 0.0, quote.DiscountAmount)
	assert.Equal(t, 0.0, quote.TipAmount)
	assert.Equal(t, 15000.0, quote.TotalAmount)
}

func TestComputeQuoteCouponDiscount(t *testing.T) {
	quote := services.ComputeQuote(quoteLines(), models.DeliveryMethodDoorstep, 10, 0, testSettings())

	assert.Equal(t, 500.0, quote.DiscountAmount)
	assert.Equal(t, 14500.0, quote.TotalAmount)
}

func TestComputeQuoteOverweightSurcharge(t *testing.T) {
	lines := []services.QuoteLine{
		{
			Product:  models.Product{Name: "Palm Oil 25L", Price: 20000, WeightKg: 12.5},
			Quantity: 1,
		},
	}

	quote := services.ComputeQuote(lines, models.DeliveryMethodDoorstep, 0, 0, testSettings())

	// 2.5kg over the allowance rounds up to 3 billable kilos.
	require.Equal(t, 12.5, quote.TotalWeight)
	assert.Equal(t, 10000.0+3*500, quote.ShippingFee)
}

func TestComputeQuoteParkDeliveryIgnoresWeight(t *testing.T) {
	lines := []services.QuoteLine{
		{
			Product:  models.Product{Name: "Palm Oil 25L", Price: 20000, WeightKg: 30},
			Quantity: 2,
		},
	}

	quote := services.ComputeQuote(lines, models.DeliveryMethodPark, 0, 0, testSettings())

	assert.Equal(t, 5000.0, quote.ShippingFee)
}

func TestComputeQuoteTipClampedToZero(t *testing.T) {
	quote := services.ComputeQuote(quoteLines(), models.DeliveryMethodDoorstep, 0, -500, testSettings())

	assert.Equal(t, 0.0, quote.TipAmount)
	assert.Equal(t, 15000.0, quote.TotalAmount)
}

func TestComputeQuoteTipIncluded(t *testing.T) {
	quote := services.ComputeQuote(quoteLines(), models.DeliveryMethodDoorstep, 0, 1000, testSettings())

	assert.Equal(t, 1000.0, quote.TipAmount)
	assert.Equal(t, 16000.0, quote.TotalAmount)
}

func TestComputeQuoteTotalNeverNegative(t *testing.T) {
	settings := testSettings()
	settings.DoorstepPrice = 0

	quote := services.ComputeQuote(quoteLines(), models.DeliveryMethodDoorstep, 150, 0, settings)

	assert.Equal(t, 0.0, quote.TotalAmount)
}

func TestComputeQuoteTotalIdentity(t *testing.T) {
	quote := services.ComputeQuote(quoteLines(), models.DeliveryMethodDoorstep, 10, 750, testSettings())

	assert.Equal(t, quote.Subtotal+quote.ShippingFee+quote.TipAmount-quote.DiscountAmount, quote.TotalAmount)
}
