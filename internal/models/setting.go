package models

// Setting keys consumed by the pricing engine.
const (
	SettingBaseWeightKg = "base_weight_kg"
	SettingExtraKgPrice = "extra_kg_price"
	SettingDoorstepPrice = "doorstep_price"
	SettingParkPrice     = "park_price"
	SettingLowStockLevel = "low_stock_level"
)

// Setting is an admin-managed key/value pair.
type Setting struct {
	BaseModel
	Key   string `gorm:"uniqueIndex" json:"key"`
	Value string `json:"value"`
}
