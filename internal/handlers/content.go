package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/palme/internal/models"
)

// ContentHandler manages editable site content blocks.
type ContentHandler struct {
	db *gorm.DB
}

// NewContentHandler constructs ContentHandler.
func NewContentHandler(db *gorm.DB) *ContentHandler {
	return &ContentHandler{db: db}
}

// ListByType returns active content blocks for a storefront section.
func (h *ContentHandler) ListByType(c *fiber.Ctx) error {
	contentType := c.Params("type")

	var blocks []models.SiteContent
	if err := h.db.Where("type = ? AND is_active = ?", contentType, true).
		Order("display_order asc").
		Find(&blocks).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": blocks})
}

// CreateContent persists a new content block. Admin only.
func (h *ContentHandler) CreateContent(c *fiber.Ctx) error {
	var payload models.SiteContent
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Type == "" {
		return fiber.NewError(fiber.StatusBadRequest, "type is required")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateContent updates a content block. Admin only.
func (h *ContentHandler) UpdateContent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var block models.SiteContent
	if err := h.db.First(&block, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "content not found")
		}
		return err
	}

	var payload models.SiteContent
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = block.ID
	if err := h.db.Model(&block).Select("*").Omit("id", "created_at").Updates(payload).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": block})
}

// DeleteContent removes a content block by ID. Admin only.
func (h *ContentHandler) DeleteContent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.SiteContent{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "content removed"})
}
