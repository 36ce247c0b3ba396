package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/palme/internal/middleware"
	"github.com/example/palme/internal/models"
	"github.com/example/palme/internal/services"
	"github.com/example/palme/internal/utils"
)

// AdminHandler manages admin account endpoints and the dashboard.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// DashboardStats returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	var totalProducts int64
	if err := h.db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return err
	}

	type statusCount struct {
		OrderStatus string `json:"order_status"`
		Count       int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("order_status, count(*) as count").
		Group("order_status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.OrderStatus] = sc.Count
	}

	// Revenue excludes cancelled orders.
	var totalRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("order_status != ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	var todayRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("order_status != ? AND created_at::date = CURRENT_DATE", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&todayRevenue).Error; err != nil {
		return err
	}

	settings := services.LoadPricingSettings(h.db)
	var lowStockCount int64
	if err := h.db.Model(&models.Product{}).
		Where("stock <= ?", settings.LowStockLevel).
		Count(&lowStockCount).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_orders":     totalOrders,
			"total_products":   totalProducts,
			"orders_by_status": ordersByStatus,
			"total_revenue":    totalRevenue,
			"today_revenue":    todayRevenue,
			"low_stock_count":  lowStockCount,
		},
	})
}

// ListAdmins returns all admin accounts without password hashes.
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	var admins []models.Admin
	if err := h.db.Order("created_at asc").Find(&admins).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": admins})
}

type createAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateAdmin adds a new back-office account.
func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	var req createAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}

	var existing models.Admin
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusConflict, "admin already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	admin := models.Admin{
		Email:        req.Email,
		PasswordHash: hash,
	}
	if req.Role != "" {
		admin.Role = req.Role
	}

	if err := h.db.Create(&admin).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": admin})
}

// DeleteAdmin removes an admin account. Admins cannot delete themselves.
func (h *AdminHandler) DeleteAdmin(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if currentID, ok := middleware.GetCurrentAdminID(c); ok && currentID == id {
		return fiber.NewError(fiber.StatusBadRequest, "cannot delete your own account")
	}

	if err := h.db.Delete(&models.Admin{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "admin removed"})
}
