package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/palme/internal/models"
)

// SettingHandler manages the key/value settings consumed by the pricing
// engine.
type SettingHandler struct {
	db *gorm.DB
}

// NewSettingHandler constructs SettingHandler.
func NewSettingHandler(db *gorm.DB) *SettingHandler {
	return &SettingHandler{db: db}
}

// GetSettings returns the full settings table as a flat key/value map.
func (h *SettingHandler) GetSettings(c *fiber.Ctx) error {
	var rows []models.Setting
	if err := h.db.Find(&rows).Error; err != nil {
		return err
	}

	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}

	return c.JSON(fiber.Map{"success": true, "data": settings})
}

type upsertSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UpsertSetting creates or overwrites a single setting. Admin only.
func (h *SettingHandler) UpsertSetting(c *fiber.Ctx) error {
	var req upsertSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Key == "" {
		return fiber.NewError(fiber.StatusBadRequest, "key is required")
	}

	setting := models.Setting{Key: req.Key, Value: req.Value}
	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": setting})
}
