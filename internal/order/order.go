// Package order defines the per-session order aggregate and its wire
// format. One Order belongs to exactly one conversation session; the
// interpreter takes a snapshot in and hands a new snapshot back.
package order

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ai-kiosk/api/internal/enum"
)

// Option is a selected add-on snapshot on a line item.
type Option struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// LineItem is one (item, option-set) entry in an order. Price is the
// unit price captured when the item was added.
type LineItem struct {
	ItemID   int      `json:"itemId"`
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Price    int      `json:"price"`
	Options  []Option `json:"options"`
}

// Order is the mutable per-session aggregate. Field names match the
// snapshot format the kiosk frontend round-trips between turns.
type Order struct {
	StoreID        *string    `json:"storeId"`
	StoreName      *string    `json:"storeName"`
	Items          []LineItem `json:"items"`
	TotalPrice     int        `json:"totalPrice"`
	Status         string     `json:"status"`
	PaymentMethod  *string    `json:"paymentMethod"`
	PickupTime     *string    `json:"pickupTime"`
	PickupTimeDate *string    `json:"pickupTimeDate"`
}

// New returns the empty initial order.
func New() *Order {
	return &Order{
		Items:  []LineItem{},
		Status: enum.OrderStatusPending,
	}
}

// Clone deep-copies the order so the interpreter can work on a private
// snapshot without mutating the caller's state.
func (o *Order) Clone() *Order {
	c := &Order{
		StoreID:        copyStr(o.StoreID),
		StoreName:      copyStr(o.StoreName),
		Items:          make([]LineItem, len(o.Items)),
		TotalPrice:     o.TotalPrice,
		Status:         o.Status,
		PaymentMethod:  copyStr(o.PaymentMethod),
		PickupTime:     copyStr(o.PickupTime),
		PickupTimeDate: copyStr(o.PickupTimeDate),
	}
	for i, li := range o.Items {
		// Keep empty option sets as [], not nil: the snapshot must
		// serialize "options" as an array on every turn.
		opts := make([]Option, len(li.Options))
		copy(opts, li.Options)
		li.Options = opts
		c.Items[i] = li
	}
	return c
}

// AddItem merges the line into an existing one with the same item id
// and option set, or appends it. The total is not recomputed here;
// callers recompute once after a batch of mutations.
func (o *Order) AddItem(line LineItem) {
	key := optionsKey(line.Options)
	for i := range o.Items {
		if o.Items[i].ItemID == line.ItemID && optionsKey(o.Items[i].Options) == key {
			o.Items[i].Quantity += line.Quantity
			return
		}
	}
	if line.Options == nil {
		line.Options = []Option{}
	}
	o.Items = append(o.Items, line)
}

// RemoveItem drops every line with the given item id, regardless of
// options. Reports whether anything was removed.
func (o *Order) RemoveItem(itemID int) bool {
	kept := o.Items[:0]
	removed := false
	for _, li := range o.Items {
		if li.ItemID == itemID {
			removed = true
			continue
		}
		kept = append(kept, li)
	}
	o.Items = kept
	return removed
}

// RecalculateTotal derives TotalPrice from the items. Option prices
// count once per line, not per unit. Always recomputed in full, never
// incrementally adjusted.
func (o *Order) RecalculateTotal() {
	total := 0
	for _, li := range o.Items {
		lineTotal := li.Price * li.Quantity
		for _, opt := range li.Options {
			lineTotal += opt.Price
		}
		total += lineTotal
	}
	o.TotalPrice = total
}

// optionsKey serializes an option set for same-line comparison.
// Sorted so the comparison is insensitive to selection order.
func optionsKey(opts []Option) string {
	if len(opts) == 0 {
		return ""
	}
	parts := make([]string, len(opts))
	for i, opt := range opts {
		parts[i] = fmt.Sprintf("%s=%d", opt.Name, opt.Price)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

func copyStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
