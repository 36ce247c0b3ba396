package models

// Product is a catalog entry. Stock is only mutated through the checkout
// reservation path; the storefront never writes it directly.
type Product struct {
	BaseModel
	Name        string  `gorm:"uniqueIndex" json:"name"`
	Size        string  `json:"size"`
	Price       float64 `json:"price"`
	WeightKg    float64 `json:"weight_kg"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
}
