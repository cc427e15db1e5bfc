package interpreter

import (
	"fmt"
	"time"
)

// pickupDelay is how far ahead of payment completion the order is
// promised ready for collection.
const pickupDelay = 15 * time.Minute

// pickupTime is the promised ready-for-collection moment: a Korean
// hour-minute display string plus the same instant as RFC 3339 for
// the frontend countdown.
type pickupTime struct {
	Display string
	Instant string
}

func generatePickupTime(now time.Time) pickupTime {
	t := now.Add(pickupDelay)
	return pickupTime{
		Display: fmt.Sprintf("%d시 %d분", t.Hour(), t.Minute()),
		Instant: t.Format(time.RFC3339),
	}
}
