package models

// Location is a park pickup point shown to customers choosing park delivery.
type Location struct {
	BaseModel
	State     string `json:"state"`
	ParkName  string `json:"park_name"`
	Address   string `json:"address"`
	AdminNote string `json:"admin_note"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
}
