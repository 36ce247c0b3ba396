package models

import "time"

// Admin is a back-office account.
type Admin struct {
	BaseModel
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"default:Editor" json:"role"`
}

// PasswordResetToken tracks outstanding admin password-reset links. Only
// a sha256 digest of the token is stored.
type PasswordResetToken struct {
	BaseModel
	Email     string     `gorm:"index" json:"email"`
	TokenHash string     `gorm:"index" json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
}
