package handlers

import (
	"net/mail"

	"github.com/gofiber/fiber/v2"

	"github.com/example/palme/internal/services"
)

// ContactHandler relays storefront inquiries to the admin mailbox. Unlike
// order notifications these surface mail failures to the caller, since the
// email is the whole point of the request.
type ContactHandler struct {
	mailer *services.MailerService
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(mailer *services.MailerService) *ContactHandler {
	return &ContactHandler{mailer: mailer}
}

// BulkOrderRequest forwards a wholesale quote inquiry.
func (h *ContactHandler) BulkOrderRequest(c *fiber.Ctx) error {
	var req services.BulkOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Phone == "" || req.ProductType == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name, phone and product_type are required")
	}

	if err := h.mailer.SendBulkOrderRequest(req); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to send email")
	}

	return c.JSON(fiber.Map{"success": true, "message": "quote sent"})
}

type newsletterRequest struct {
	Email string `json:"email"`
}

// NewsletterSignup records a newsletter subscription request.
func (h *ContactHandler) NewsletterSignup(c *fiber.Ctx) error {
	var req newsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid email format")
	}

	if err := h.mailer.SendNewsletterSignup(req.Email); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to subscribe")
	}

	return c.JSON(fiber.Map{"success": true})
}
