package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrGatewayTimeout marks a payment-gateway call that exceeded its deadline.
var ErrGatewayTimeout = errors.New("payment gateway timed out")

// VerifiedPayment is the gateway's word on a settled transaction. Amount is
// in major currency units (Paystack reports kobo).
type VerifiedPayment struct {
	Reference string
	Status    string
	Amount    float64
	Currency  string
}

// Settled reports whether the gateway confirmed the funds were captured.
func (p *VerifiedPayment) Settled() bool {
	return p != nil && p.Status == "success"
}

// PaystackService verifies transactions against the Paystack API.
type PaystackService struct {
	baseURL   string
	secretKey string
	Timeout   time.Duration
	client    *http.Client
}

// NewPaystackService constructs a PaystackService.
func NewPaystackService(baseURL, secretKey string) *PaystackService {
	return &PaystackService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		Timeout:   15 * time.Second,
		client:    &http.Client{},
	}
}

type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
	} `json:"data"`
}

// Verify looks up a transaction by reference. The call is bounded by
// Timeout; deadline failures surface as ErrGatewayTimeout so callers can
// tell a gateway outage from a declined payment.
func (s *PaystackService) Verify(ctx context.Context, reference string) (*VerifiedPayment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	endpoint := s.baseURL + "/transaction/verify/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("paystack verify request build: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrGatewayTimeout, err)
		}
		return nil, fmt.Errorf("paystack verify request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paystack verify failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var vr paystackVerifyResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("paystack verify unmarshal: %w", err)
	}

	if !vr.Status {
		return nil, fmt.Errorf("paystack verify rejected: %s", vr.Message)
	}

	return &VerifiedPayment{
		Reference: vr.Data.Reference,
		Status:    vr.Data.Status,
		Amount:    float64(vr.Data.Amount) / 100,
		Currency:  vr.Data.Currency,
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
