package services_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/palme/internal/services"
)

func TestPaystackVerifySuccess(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		fmt.Fprint(w, `{
			"status": true,
			"message": "Verification successful",
			"data": {"status": "success", "reference": "ref-123", "amount": 1500000, "currency": "NGN"}
		}`)
	}))
	defer server.Close()

	svc := services.NewPaystackService(server.URL, "sk_test_secret")

	payment, err := svc.Verify(context.Background(), "ref-123")
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk_test_secret", gotAuth)
	assert.Equal(t, "/transaction/verify/ref-123", gotPath)
	assert.Equal(t, "ref-123", payment.Reference)
	assert.Equal(t, 15000.0, payment.Amount)
	assert.Equal(t, "NGN", payment.Currency)
	assert.True(t, payment.Settled())
}

func TestPaystackVerifyDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"status": true,
			"message": "Verification successful",
			"data": {"status": "failed", "reference": "ref-404", "amount": 1500000, "currency": "NGN"}
		}`)
	}))
	defer server.Close()

	svc := services.NewPaystackService(server.URL, "sk_test_secret")

	payment, err := svc.Verify(context.Background(), "ref-404")
	require.NoError(t, err)
	assert.False(t, payment.Settled())
}

func TestPaystackVerifyAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": false, "message": "Transaction reference not found"}`)
	}))
	defer server.Close()

	svc := services.NewPaystackService(server.URL, "sk_test_secret")

	_, err := svc.Verify(context.Background(), "ref-missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Transaction reference not found")
	assert.False(t, errors.Is(err, services.ErrGatewayTimeout))
}

func TestPaystackVerifyHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := services.NewPaystackService(server.URL, "sk_test_secret")

	_, err := svc.Verify(context.Background(), "ref-500")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestPaystackVerifyTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	svc := services.NewPaystackService(server.URL, "sk_test_secret")
	svc.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := svc.Verify(context.Background(), "ref-slow")
	require.ErrorIs(t, err, services.ErrGatewayTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}
