package enum

// ── Order status state machine (wire tokens, lowercase) ──
//
// pending → selecting_menu → ordered ⇄ payment_requested → completed
// Cancelling from any status resets the whole order back to pending.

const (
	OrderStatusPending          = "pending"
	OrderStatusSelectingMenu    = "selecting_menu"
	OrderStatusOrdered          = "ordered"
	OrderStatusPaymentRequested = "payment_requested"
	OrderStatusCompleted        = "completed"
)

// ── Payment methods (wire tokens; replies use the Korean labels) ──

const (
	PaymentMethodCard   = "card"
	PaymentMethodCash   = "cash"
	PaymentMethodPayPal = "paypal"
)
