package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/palme/internal/models"
	"github.com/example/palme/internal/utils"
)

// CouponHandler manages coupon administration.
type CouponHandler struct {
	db *gorm.DB
}

// NewCouponHandler constructs CouponHandler.
func NewCouponHandler(db *gorm.DB) *CouponHandler {
	return &CouponHandler{db: db}
}

func validateCoupon(coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code is required")
	}
	if coupon.DiscountPercentage < 0 || coupon.DiscountPercentage > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "discount percentage must be between 0 and 100")
	}
	if coupon.MaxUses < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "max uses cannot be negative")
	}
	return nil
}

// ListCoupons returns all coupons, paginated. Admin only.
func (h *CouponHandler) ListCoupons(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var coupons []models.Coupon
	var total int64

	if err := h.db.Model(&models.Coupon{}).Count(&total).Error; err != nil {
		return err
	}

	if err := h.db.Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&coupons).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    coupons,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// CreateCoupon persists a new coupon. Admin only.
func (h *CouponHandler) CreateCoupon(c *fiber.Ctx) error {
	var payload models.Coupon
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validateCoupon(&payload); err != nil {
		return err
	}

	payload.UsedCount = 0
	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateCoupon updates coupon settings. Admin only. The usage counter is
// never written here; it only moves through checkout redemption.
func (h *CouponHandler) UpdateCoupon(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var coupon models.Coupon
	if err := h.db.First(&coupon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "coupon not found")
		}
		return err
	}

	var payload models.Coupon
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validateCoupon(&payload); err != nil {
		return err
	}

	updates := map[string]any{
		"code":                payload.Code,
		"discount_percentage": payload.DiscountPercentage,
		"is_active":           payload.IsActive,
		"max_uses":            payload.MaxUses,
	}
	if err := h.db.Model(&coupon).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": coupon})
}

// DeleteCoupon removes a coupon by ID. Admin only.
func (h *CouponHandler) DeleteCoupon(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Coupon{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "coupon removed"})
}
