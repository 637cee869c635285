package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway creates orders through the Razorpay REST API
type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
}

// NewRazorpayGateway builds a gateway client from the key pair
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
	}
}

// KeyID returns the publishable key id
func (g *RazorpayGateway) KeyID() string { return g.keyID }

// CreateIntent creates a Razorpay order. The SDK call is single-attempt and not cancellable.
func (g *RazorpayGateway) CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*Intent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := g.client.Order.Create(map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay create order: response has no id")
	}
	intent := &Intent{ID: id, Amount: amountMinor, Currency: currency, Receipt: receipt}
	// JSON numbers decode as float64
	if amt, ok := body["amount"].(float64); ok {
		intent.Amount = int64(amt)
	}
	if cur, ok := body["currency"].(string); ok && cur != "" {
		intent.Currency = cur
	}
	return intent, nil
}
