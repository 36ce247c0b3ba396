package models

// SiteContent is an editable content block rendered by the storefront,
// grouped by type (hero, faq, banner, ...).
type SiteContent struct {
	BaseModel
	Type         string `gorm:"index" json:"type"`
	Title        string `json:"title"`
	Body         string `json:"body"`
	Image        string `json:"image"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
}
