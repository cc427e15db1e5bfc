// Package payment holds the payment-gateway seam. The kiosk only
// simulates payment: the dummy generator stands in for a real PayPal
// integration and can be swapped without touching the interpreter.
package payment

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LinkGenerator produces a checkout link for an order total.
type LinkGenerator interface {
	PaymentLink(totalPrice int) string
}

// DummyPayPal generates fake checkout links with a timestamp-derived
// order id. The clock is injectable for tests.
type DummyPayPal struct {
	Now func() time.Time
}

// NewDummyPayPal creates a DummyPayPal on the system clock.
func NewDummyPayPal() *DummyPayPal {
	return &DummyPayPal{Now: time.Now}
}

// PaymentLink returns a dummy checkout URL. The amount is rendered
// with two decimal places, the format PayPal expects.
func (g *DummyPayPal) PaymentLink(totalPrice int) string {
	amount := decimal.NewFromInt(int64(totalPrice)).StringFixed(2)
	return fmt.Sprintf("https://your-dummy-paypal-link.com/pay?orderId=%d&amount=%s",
		g.Now().UnixMilli(), amount)
}
