package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/palme/internal/models"
)

// LocationHandler manages park pickup locations.
type LocationHandler struct {
	db *gorm.DB
}

// NewLocationHandler constructs LocationHandler.
func NewLocationHandler(db *gorm.DB) *LocationHandler {
	return &LocationHandler{db: db}
}

// ListLocations returns active pickup locations (public storefront view).
func (h *LocationHandler) ListLocations(c *fiber.Ctx) error {
	var locations []models.Location
	if err := h.db.Where("is_active = ?", true).
		Order("state asc, park_name asc").
		Find(&locations).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": locations})
}

// ListAllLocations returns every pickup location including inactive ones.
// Admin only.
func (h *LocationHandler) ListAllLocations(c *fiber.Ctx) error {
	var locations []models.Location
	if err := h.db.Order("state asc, park_name asc").Find(&locations).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": locations})
}

// CreateLocation persists a new pickup location. Admin only.
func (h *LocationHandler) CreateLocation(c *fiber.Ctx) error {
	var payload models.Location
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.State == "" || payload.ParkName == "" || payload.Address == "" {
		return fiber.NewError(fiber.StatusBadRequest, "state, park_name and address are required")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateLocation updates a pickup location. Admin only.
func (h *LocationHandler) UpdateLocation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var location models.Location
	if err := h.db.First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "location not found")
		}
		return err
	}

	var payload models.Location
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = location.ID
	if err := h.db.Model(&location).Select("*").Omit("id", "created_at").Updates(payload).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": location})
}

// DeleteLocation removes a pickup location by ID. Admin only.
func (h *LocationHandler) DeleteLocation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Location{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "location removed"})
}
