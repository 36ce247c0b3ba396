package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/palme/internal/models"
)

// Checkout failure modes. Handlers map these onto HTTP statuses; anything
// else is treated as a server-side failure.
var (
	ErrValidation        = errors.New("invalid checkout request")
	ErrPaymentNotSettled = errors.New("payment verification failed")
	ErrAmountMismatch    = errors.New("paid amount does not match order total")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrIllegalTransition = errors.New("illegal order status transition")
)

// PaymentVerifier confirms with the payment gateway that a transaction
// settled and for what amount.
type PaymentVerifier interface {
	Verify(ctx context.Context, reference string) (*VerifiedPayment, error)
}

// Notifier delivers best-effort customer and admin email. Failures are
// logged by the order service and never surface to checkout clients.
type Notifier interface {
	SendOrderConfirmation(order *models.Order) error
	SendStatusUpdate(order *models.Order) error
	SendLowStockAlert(productName string, remaining int) error
}

// OrderService orchestrates checkout and order lifecycle transitions.
type OrderService struct {
	db       *gorm.DB
	payments PaymentVerifier
	notifier Notifier

	// AmountTolerance is the maximum allowed gap between the gateway-charged
	// amount and the server-recomputed total.
	AmountTolerance float64
}

// NewOrderService constructs an OrderService.
func NewOrderService(db *gorm.DB, payments PaymentVerifier, notifier Notifier) *OrderService {
	return &OrderService{
		db:              db,
		payments:        payments,
		notifier:        notifier,
		AmountTolerance: 0.01,
	}
}

// CheckoutCustomer is the contact block submitted with a checkout.
type CheckoutCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CheckoutLine requests a quantity of one catalog product.
type CheckoutLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// CheckoutInput is everything the client supplies for createOrder. Prices
// and totals are deliberately absent: they are re-derived server-side.
type CheckoutInput struct {
	Customer         CheckoutCustomer `json:"customer"`
	Items            []CheckoutLine   `json:"items"`
	DeliveryMethod   string           `json:"delivery_method"`
	ParkLocation     string           `json:"park_location"`
	CouponCode       string           `json:"coupon_code"`
	Tip              float64          `json:"tip"`
	PaymentReference string           `json:"payment_reference"`
}

// Validate rejects checkouts missing required fields before any side effect.
func (in *CheckoutInput) Validate() error {
	if in.Customer.Name == "" || in.Customer.Email == "" || in.Customer.Phone == "" {
		return fmt.Errorf("%w: customer name, email and phone are required", ErrValidation)
	}
	switch in.DeliveryMethod {
	case models.DeliveryMethodDoorstep:
		if in.Customer.Address == "" {
			return fmt.Errorf("%w: address is required for doorstep delivery", ErrValidation)
		}
	case models.DeliveryMethodPark:
	default:
		return fmt.Errorf("%w: unknown delivery method %q", ErrValidation, in.DeliveryMethod)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: order has no items", ErrValidation)
	}
	for _, item := range in.Items {
		if item.ProductID == uuid.Nil {
			return fmt.Errorf("%w: item is missing product_id", ErrValidation)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item quantity must be at least 1", ErrValidation)
		}
	}
	if in.PaymentReference == "" {
		return fmt.Errorf("%w: payment reference is required", ErrValidation)
	}
	return nil
}

type lowStockAlert struct {
	name      string
	remaining int
}

// CreateOrder runs the checkout pipeline: verify payment, then inside one
// transaction reserve stock, redeem the coupon, recompute pricing from
// catalog data, check the charged amount, and persist the order. Any
// failure rolls everything back; no partial order, stock, or coupon state
// survives. Email goes out after commit and never blocks the response.
func (s *OrderService) CreateOrder(ctx context.Context, input CheckoutInput) (*models.Order, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payment, err := s.payments.Verify(ctx, input.PaymentReference)
	if err != nil {
		return nil, err
	}
	if !payment.Settled() {
		return nil, ErrPaymentNotSettled
	}

	settings := LoadPricingSettings(s.db.WithContext(ctx))

	var order *models.Order
	var alerts []lowStockAlert

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, lowStock, err := reserveLines(tx, input.Items, settings.LowStockLevel)
		if err != nil {
			return err
		}
		alerts = lowStock

		discountPercent := redeemCoupon(tx, input.CouponCode)
		quote := ComputeQuote(lines, input.DeliveryMethod, discountPercent, input.Tip, settings)

		if math.Abs(quote.TotalAmount-payment.Amount) > s.AmountTolerance {
			return fmt.Errorf("%w: charged %.2f, order total %.2f",
				ErrAmountMismatch, payment.Amount, quote.TotalAmount)
		}

		parkLocation := ""
		if input.DeliveryMethod == models.DeliveryMethodPark {
			parkLocation = input.ParkLocation
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			productID := line.Product.ID
			items = append(items, models.OrderItem{
				ProductID:   &productID,
				ProductName: line.Product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   line.Product.Price,
				Size:        line.Product.Size,
				Image:       line.Product.Image,
				WeightKg:    line.Product.WeightKg,
			})
		}

		order = &models.Order{
			CustomerName:     input.Customer.Name,
			CustomerEmail:    input.Customer.Email,
			CustomerPhone:    input.Customer.Phone,
			CustomerAddress:  input.Customer.Address,
			DeliveryMethod:   input.DeliveryMethod,
			ParkLocation:     parkLocation,
			Subtotal:         quote.Subtotal,
			ShippingFee:      quote.ShippingFee,
			DiscountAmount:   quote.DiscountAmount,
			TipAmount:        quote.TipAmount,
			TotalAmount:      quote.TotalAmount,
			TotalWeight:      quote.TotalWeight,
			PaymentReference: input.PaymentReference,
			PaymentStatus:    models.PaymentStatusPaid,
			OrderStatus:      models.OrderStatusPending,
			Items:            items,
		}

		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}

	s.dispatchOrderNotifications(order, alerts)
	return order, nil
}

// reserveLines resolves every requested line against the catalog and takes
// its stock with a single conditional decrement per line. The check and the
// write commit together, so two checkouts cannot both take the last unit.
func reserveLines(tx *gorm.DB, requested []CheckoutLine, lowStockLevel int) ([]QuoteLine, []lowStockAlert, error) {
	lines := make([]QuoteLine, 0, len(requested))
	var alerts []lowStockAlert

	for _, item := range requested {
		var product models.Product
		if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
			}
			return nil, nil, err
		}

		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
		if res.Error != nil {
			return nil, nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, nil, fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
		}

		product.Stock -= item.Quantity
		if product.Stock <= lowStockLevel {
			alerts = append(alerts, lowStockAlert{name: product.Name, remaining: product.Stock})
		}

		lines = append(lines, QuoteLine{Product: product, Quantity: item.Quantity})
	}

	return lines, alerts, nil
}

// redeemCoupon increments used_count exactly once for this order and
// returns the discount percentage. Unknown, inactive, or exhausted codes
// degrade to a zero discount; they never fail a checkout. The increment is
// conditional on used_count < max_uses, so the cap holds under concurrent
// redemptions, and it rolls back with the surrounding transaction.
func redeemCoupon(tx *gorm.DB, code string) float64 {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return 0
	}

	var coupon models.Coupon
	if err := tx.Where("code = ?", code).First(&coupon).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Checkout] coupon lookup failed for %s: %v", code, err)
		}
		return 0
	}

	res := tx.Model(&models.Coupon{}).
		Where("code = ? AND is_active = ? AND used_count < max_uses", code, true).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil || res.RowsAffected == 0 {
		return 0
	}

	return coupon.DiscountPercentage
}

func (s *OrderService) dispatchOrderNotifications(order *models.Order, alerts []lowStockAlert) {
	if s.notifier == nil {
		return
	}

	go func() {
		if err := s.notifier.SendOrderConfirmation(order); err != nil {
			log.Printf("[Checkout] confirmation email failed for order %s: %v", order.ID, err)
		}
		for _, alert := range alerts {
			if err := s.notifier.SendLowStockAlert(alert.name, alert.remaining); err != nil {
				log.Printf("[Checkout] low stock alert failed for %s: %v", alert.name, err)
			}
		}
	}()
}

// UpdateOrderStatus moves an order along the lifecycle. Illegal edges are
// rejected; Delivered also forces the payment status to Paid. The customer
// is notified best-effort on every transition.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !models.CanTransitionOrderStatus(order.OrderStatus, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, order.OrderStatus, status)
	}

	updates := map[string]any{"order_status": status}
	if status == models.OrderStatusDelivered {
		updates["payment_status"] = models.PaymentStatusPaid
	}

	if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	order.OrderStatus = status
	if status == models.OrderStatusDelivered {
		order.PaymentStatus = models.PaymentStatusPaid
	}

	if s.notifier != nil {
		notified := order
		go func() {
			if err := s.notifier.SendStatusUpdate(&notified); err != nil {
				log.Printf("[Orders] status email failed for order %s: %v", notified.ID, err)
			}
		}()
	}

	return &order, nil
}
