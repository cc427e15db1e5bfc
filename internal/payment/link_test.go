package payment

import (
	"testing"
	"time"
)

func TestDummyPayPalLink(t *testing.T) {
	now := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)
	g := &DummyPayPal{Now: func() time.Time { return now }}

	got := g.PaymentLink(9000)
	want := "https://your-dummy-paypal-link.com/pay?orderId=1740834000000&amount=9000.00"
	if got != want {
		t.Errorf("PaymentLink(9000):\n got %q\nwant %q", got, want)
	}
}
