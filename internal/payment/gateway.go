// Package payment talks to the online payment gateway and verifies its callbacks.
package payment

import "context"

// Currency is the only currency orders are raised in
const Currency = "INR"

// Intent is a gateway-side order authorizing a pending charge
type Intent struct {
	ID       string // Gateway order id
	Amount   int64  // Minor currency units
	Currency string
	Receipt  string
}

// Gateway creates payment intents at a remote provider
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*Intent, error)
	KeyID() string // Publishable key the client needs to open the payment modal
}
