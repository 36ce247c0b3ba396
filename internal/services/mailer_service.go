package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/google/uuid"

	"github.com/example/palme/internal/models"
)

// MailerService sends transactional email over SMTP.
type MailerService struct {
	host       string
	port       string
	username   string
	password   string
	fromName   string
	adminEmail string
}

// NewMailerService creates a new MailerService.
func NewMailerService(host, port, username, password, fromName, adminEmail string) *MailerService {
	return &MailerService{
		host:       host,
		port:       port,
		username:   username,
		password:   password,
		fromName:   fromName,
		adminEmail: adminEmail,
	}
}

// Send delivers an HTML email to a single recipient.
func (s *MailerService) Send(to, subject, htmlBody string) error {
	if s.username == "" || s.password == "" {
		log.Println("[Mailer] SMTP credentials not configured")
		return nil
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %q <%s>\r\n", s.fromName, s.username))
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(s.host+":"+s.port, auth, s.username, []string{to}, []byte(msg.String())); err != nil {
		log.Printf("[Mailer] Failed to send %q to %s: %v", subject, to, err)
		return err
	}

	return nil
}

// SendToAdmin delivers an HTML email to the configured admin mailbox.
func (s *MailerService) SendToAdmin(subject, htmlBody string) error {
	if s.adminEmail == "" {
		log.Println("[Mailer] Admin email not configured")
		return nil
	}
	return s.Send(s.adminEmail, subject, htmlBody)
}

// FormatPrice formats a naira amount with thousand separators.
func FormatPrice(amount float64) string {
	intAmount := int64(amount)
	str := fmt.Sprintf("%d", intAmount)

	var result strings.Builder
	length := len(str)
	for i, digit := range str {
		if i > 0 && (length-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}

	return "₦" + result.String()
}

// ShortOrderID renders the compact order reference shown to customers.
func ShortOrderID(id uuid.UUID) string {
	compact := strings.ReplaceAll(id.String(), "-", "")
	return "#" + strings.ToUpper(compact[:6])
}

// SendOrderConfirmation emails the customer an itemized receipt.
func (s *MailerService) SendOrderConfirmation(order *models.Order) error {
	shippingDisplay := order.CustomerAddress
	if order.DeliveryMethod == models.DeliveryMethodPark {
		park := order.ParkLocation
		if park == "" {
			park = "Selected Park"
		}
		shippingDisplay = "Pickup at: " + park
	}

	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding:10px 0;border-bottom:1px solid #f1f5f9;">%s<br/><span style="font-size:12px;color:#64748b;">Size: %s | Qty: %d</span></td><td style="text-align:right;font-weight:bold;">%s</td></tr>`,
			item.ProductName, item.Size, item.Quantity, FormatPrice(item.UnitPrice*float64(item.Quantity)),
		))
	}

	var totals strings.Builder
	totals.WriteString(fmt.Sprintf(`<tr><td style="color:#64748b;">Subtotal</td><td style="text-align:right;">%s</td></tr>`, FormatPrice(order.Subtotal)))
	if order.ShippingFee > 0 {
		totals.WriteString(fmt.Sprintf(`<tr><td style="color:#64748b;">Delivery Fee</td><td style="text-align:right;">%s</td></tr>`, FormatPrice(order.ShippingFee)))
	}
	if order.DiscountAmount > 0 {
		totals.WriteString(fmt.Sprintf(`<tr><td style="color:#16a34a;">Discount</td><td style="text-align:right;color:#16a34a;">-%s</td></tr>`, FormatPrice(order.DiscountAmount)))
	}
	if order.TipAmount > 0 {
		totals.WriteString(fmt.Sprintf(`<tr><td style="color:#64748b;">Tip</td><td style="text-align:right;">%s</td></tr>`, FormatPrice(order.TipAmount)))
	}
	totals.WriteString(fmt.Sprintf(`<tr><td style="padding-top:12px;font-weight:bold;color:#1a4d2e;">TOTAL PAID</td><td style="text-align:right;padding-top:12px;font-weight:bold;font-size:18px;color:#1a4d2e;">%s</td></tr>`, FormatPrice(order.TotalAmount)))

	firstName := order.CustomerName
	if idx := strings.IndexByte(firstName, ' '); idx > 0 {
		firstName = firstName[:idx]
	}

	orderID := ShortOrderID(order.ID)
	body := fmt.Sprintf(`
<div style="font-family:Helvetica,Arial,sans-serif;max-width:600px;margin:0 auto;border:1px solid #e5e7eb;border-radius:8px;overflow:hidden;">
  <div style="background-color:#1a4d2e;padding:30px;text-align:center;">
    <h1 style="color:#ffffff;margin:0;font-size:24px;letter-spacing:1px;">PALME FOODS</h1>
  </div>
  <div style="padding:30px;">
    <h2 style="color:#1a4d2e;margin-top:0;">Order Received</h2>
    <p style="color:#4b5563;">Hello <strong>%s</strong>, we have received your payment.</p>
    <p style="font-size:13px;color:#64748b;">Order ID: <strong>%s</strong> | Date: <strong>%s</strong></p>
    <table style="width:100%%;border-collapse:collapse;">
      <tbody>%s</tbody>
      <tfoot>%s</tfoot>
    </table>
    <div style="margin-top:25px;border-top:1px solid #f1f5f9;padding-top:15px;">
      <p style="margin:0;color:#475569;"><strong>Delivering to:</strong> %s</p>
      <p style="margin:5px 0 0 0;color:#475569;">%s</p>
    </div>
  </div>
</div>`,
		firstName, orderID, order.CreatedAt.Format("2 January 2006"),
		rows.String(), totals.String(), shippingDisplay, order.CustomerPhone)

	return s.Send(order.CustomerEmail, "Order Confirmed: "+orderID, body)
}

// SendStatusUpdate emails the customer when an order changes status.
func (s *MailerService) SendStatusUpdate(order *models.Order) error {
	orderID := ShortOrderID(order.ID)

	var note string
	switch order.OrderStatus {
	case models.OrderStatusShipped:
		note = "Your premium palm oil is on its way. If you selected Park Pickup, please keep your phone on."
	case models.OrderStatusDelivered:
		note = "Thank you for shopping with Palme Foods. We hope you enjoy the taste of quality!"
	case models.OrderStatusCancelled:
		note = "Your order has been cancelled. Contact support if this was not expected."
	}

	noteBlock := ""
	if note != "" {
		noteBlock = fmt.Sprintf(`<div style="background-color:#f0fdf4;border:1px solid #dcfce7;padding:16px;margin:20px 0;border-radius:8px;"><p style="margin:0;color:#374151;font-size:14px;">%s</p></div>`, note)
	}

	body := fmt.Sprintf(`
<div style="font-family:Helvetica,Arial,sans-serif;max-width:600px;margin:0 auto;border:1px solid #e5e7eb;border-radius:8px;overflow:hidden;">
  <div style="background-color:#1a4d2e;padding:30px;text-align:center;">
    <h1 style="color:#ffffff;margin:0;font-size:24px;">PALME FOODS</h1>
  </div>
  <div style="padding:30px;">
    <h2 style="color:#1a4d2e;margin-top:0;">Order Update</h2>
    <p style="font-size:16px;color:#4b5563;">Your order <strong>%s</strong> has been updated to:
      <span style="color:#ffffff;background-color:#1a4d2e;padding:4px 8px;border-radius:4px;font-weight:bold;text-transform:uppercase;">%s</span>
    </p>
    %s
  </div>
</div>`, orderID, order.OrderStatus, noteBlock)

	return s.Send(order.CustomerEmail, fmt.Sprintf("Update: Order %s is %s", orderID, order.OrderStatus), body)
}

// SendLowStockAlert warns the admin mailbox that a product is running out.
func (s *MailerService) SendLowStockAlert(productName string, remaining int) error {
	body := fmt.Sprintf(`
<h3>Low Stock Alert</h3>
<p><strong>%s</strong> is down to <strong>%d</strong> unit(s). Restock soon to avoid rejected orders.</p>`,
		productName, remaining)

	return s.SendToAdmin("Low Stock: "+productName, body)
}

// BulkOrderRequest captures a wholesale quote inquiry from the contact form.
type BulkOrderRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	BusinessName string `json:"business_name"`
	ProductType  string `json:"product_type"`
	Quantity     string `json:"quantity"`
	Message      string `json:"message"`
}

// SendBulkOrderRequest forwards a wholesale inquiry to the admin mailbox.
func (s *MailerService) SendBulkOrderRequest(req BulkOrderRequest) error {
	business := req.BusinessName
	if business == "" {
		business = "N/A"
	}

	body := fmt.Sprintf(`
<h3>New Bulk Order Request</h3>
<p><strong>Name:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Business:</strong> %s</p>
<hr/>
<p><strong>Product:</strong> %s</p>
<p><strong>Quantity:</strong> %s</p>
<p><strong>Message:</strong><br/>%s</p>`,
		req.Name, req.Phone, req.Email, business, req.ProductType, req.Quantity, req.Message)

	return s.SendToAdmin("New Bulk Order: "+req.ProductType, body)
}

// SendNewsletterSignup notifies the admin mailbox about a new subscriber.
func (s *MailerService) SendNewsletterSignup(email string) error {
	body := fmt.Sprintf(`<p>A new user has subscribed to your newsletter: <strong>%s</strong></p>`, email)
	return s.SendToAdmin("New Newsletter Subscriber", body)
}

// SendPasswordReset emails an admin a reset link valid for a short window.
func (s *MailerService) SendPasswordReset(to, resetURL string) error {
	body := fmt.Sprintf(`
<h3>Password Reset</h3>
<p>Click the link below to reset your password:</p>
<a href="%s">%s</a>
<p style="color:#64748b;font-size:13px;">This link expires in 10 minutes. If you did not request a reset, ignore this email.</p>`,
		resetURL, resetURL)

	return s.Send(to, "Password Reset Request", body)
}
