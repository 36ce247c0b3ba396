package models

// Coupon grants a flat percentage discount per order. UsedCount only ever
// increases; redemption is capped at MaxUses.
type Coupon struct {
	BaseModel
	Code               string  `gorm:"uniqueIndex" json:"code"`
	DiscountPercentage float64 `json:"discount_percentage"`
	IsActive           bool    `gorm:"default:true" json:"is_active"`
	MaxUses            int     `gorm:"default:1000" json:"max_uses"`
	UsedCount          int     `gorm:"default:0" json:"used_count"`
}
