package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/palme/internal/database"
	"github.com/example/palme/internal/handlers"
	"github.com/example/palme/internal/models"
	"github.com/example/palme/internal/services"
)

type fakeVerifier struct {
	status string
	amount float64
}

func (f *fakeVerifier) Verify(ctx context.Context, reference string) (*services.VerifiedPayment, error) {
	return &services.VerifiedPayment{
		Reference: reference,
		Status:    f.status,
		Amount:    f.amount,
		Currency:  "NGN",
	}, nil
}

func newOrderApp(t *testing.T, verifier services.PaymentVerifier) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "palme.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	orders := services.NewOrderService(db, verifier, nil)
	handler := handlers.NewOrderHandler(db, orders)

	app := fiber.New()
	app.Post("/api/orders", handler.Checkout)
	app.Get("/api/admin/orders", handler.ListOrders)
	app.Get("/api/admin/orders/:id", handler.GetOrder)
	app.Put("/api/admin/orders/:id", handler.UpdateStatus)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func checkoutPayload(productID uuid.UUID, qty int, reference string) fiber.Map {
	return fiber.Map{
		"customer": fiber.Map{
			"name":    "Ada Obi",
			"email":   "ada@example.com",
			"phone":   "+2348012345678",
			"address": "12 Marina Road, Lagos",
		},
		"items":             []fiber.Map{{"product_id": productID, "quantity": qty}},
		"delivery_method":   models.DeliveryMethodDoorstep,
		"payment_reference": reference,
	}
}

func TestCheckoutEndpointCreatesOrder(t *testing.T) {
	app, db := newOrderApp(t, &fakeVerifier{status: "success", amount: 15000})

	product := models.Product{Name: "Palm Oil 5L", Price: 2500, WeightKg: 2, Stock: 10}
	require.NoError(t, db.Create(&product).Error)

	resp := postJSON(t, app, "/api/orders", checkoutPayload(product.ID, 2, "ref-http-1"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, true, envelope["success"])

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 15000.0, data["total_amount"])
	assert.Equal(t, models.OrderStatusPending, data["order_status"])
	assert.Equal(t, models.PaymentStatusPaid, data["payment_status"])

	var updated models.Product
	require.NoError(t, db.First(&updated, "id = ?", product.ID).Error)
	assert.Equal(t, 8, updated.Stock)
}

func TestCheckoutEndpointRejectsMissingFields(t *testing.T) {
	app, _ := newOrderApp(t, &fakeVerifier{status: "success", amount: 15000})

	payload := checkoutPayload(uuid.New(), 2, "ref-http-2")
	payload["customer"] = fiber.Map{"name": "Ada Obi"}

	resp := postJSON(t, app, "/api/orders", payload)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutEndpointRejectsInsufficientStock(t *testing.T) {
	app, db := newOrderApp(t, &fakeVerifier{status: "success", amount: 15000})

	product := models.Product{Name: "Palm Oil 5L", Price: 2500, WeightKg: 2, Stock: 1}
	require.NoError(t, db.Create(&product).Error)

	resp := postJSON(t, app, "/api/orders", checkoutPayload(product.ID, 2, "ref-http-3"))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCheckoutEndpointRejectsUnsettledPayment(t *testing.T) {
	app, db := newOrderApp(t, &fakeVerifier{status: "abandoned", amount: 15000})

	product := models.Product{Name: "Palm Oil 5L", Price: 2500, WeightKg: 2, Stock: 10}
	require.NoError(t, db.Create(&product).Error)

	resp := postJSON(t, app, "/api/orders", checkoutPayload(product.ID, 2, "ref-http-4"))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	app, db := newOrderApp(t, &fakeVerifier{status: "success", amount: 15000})

	order := models.Order{
		CustomerName:     "Ada Obi",
		CustomerEmail:    "ada@example.com",
		CustomerPhone:    "+2348012345678",
		CustomerAddress:  "12 Marina Road, Lagos",
		DeliveryMethod:   models.DeliveryMethodDoorstep,
		TotalAmount:      15000,
		PaymentReference: "ref-http-5",
		PaymentStatus:    models.PaymentStatusPaid,
		OrderStatus:      models.OrderStatusPending,
	}
	require.NoError(t, db.Create(&order).Error)

	path := "/api/admin/orders/" + order.ID.String()

	body, err := json.Marshal(fiber.Map{"status": models.OrderStatusProcessing})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusProcessing, data["order_status"])

	// Skipping the chain is rejected.
	body, err = json.Marshal(fiber.Map{"status": models.OrderStatusDelivered})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPut, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdateStatusEndpointUnknownOrder(t *testing.T) {
	app, _ := newOrderApp(t, &fakeVerifier{status: "success", amount: 15000})

	body, err := json.Marshal(fiber.Map{"status": models.OrderStatusProcessing})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/"+uuid.NewString(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListOrdersEndpoint(t *testing.T) {
	app, db := newOrderApp(t, &fakeVerifier{status: "success", amount: 15000})

	for i := 0; i < 3; i++ {
		order := models.Order{
			CustomerName:     "Ada Obi",
			CustomerEmail:    "ada@example.com",
			CustomerPhone:    "+2348012345678",
			CustomerAddress:  "12 Marina Road, Lagos",
			DeliveryMethod:   models.DeliveryMethodDoorstep,
			TotalAmount:      15000,
			PaymentReference: fmt.Sprintf("ref-list-%d", i),
			PaymentStatus:    models.PaymentStatusPaid,
			OrderStatus:      models.OrderStatusPending,
		}
		require.NoError(t, db.Create(&order).Error)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data, ok := envelope["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 3)

	pagination, ok := envelope["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3.0, pagination["total_items"])
}
