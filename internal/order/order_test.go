package order

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/ai-kiosk/api/internal/enum"
)

func line(id int, name string, qty, price int, opts ...Option) LineItem {
	if opts == nil {
		opts = []Option{}
	}
	return LineItem{ItemID: id, Name: name, Quantity: qty, Price: price, Options: opts}
}

func TestNewIsEmptyPending(t *testing.T) {
	o := New()
	if o.Status != enum.OrderStatusPending {
		t.Errorf("status: got %q, want pending", o.Status)
	}
	if len(o.Items) != 0 || o.TotalPrice != 0 {
		t.Errorf("not empty: %+v", o)
	}
	if o.StoreID != nil || o.PaymentMethod != nil || o.PickupTime != nil || o.PickupTimeDate != nil {
		t.Errorf("nullable fields not nil: %+v", o)
	}
}

func TestAddItemMergesSameLine(t *testing.T) {
	o := New()
	o.AddItem(line(1, "참치김밥", 1, 4500))
	o.AddItem(line(1, "참치김밥", 2, 4500))

	if len(o.Items) != 1 {
		t.Fatalf("got %d lines, want 1", len(o.Items))
	}
	if o.Items[0].Quantity != 3 {
		t.Errorf("quantity: got %d, want 3", o.Items[0].Quantity)
	}
}

func TestAddItemKeepsDifferentOptionSetsApart(t *testing.T) {
	o := New()
	o.AddItem(line(3, "라볶이", 1, 6000))
	o.AddItem(line(3, "라볶이", 1, 6000, Option{Name: "치즈 추가", Price: 1000}))

	if len(o.Items) != 2 {
		t.Fatalf("got %d lines, want 2", len(o.Items))
	}
}

func TestAddItemOptionOrderInsensitive(t *testing.T) {
	o := New()
	o.AddItem(line(10, "아메리카노", 1, 4100,
		Option{Name: "샷 추가", Price: 500}, Option{Name: "시럽 추가", Price: 300}))
	o.AddItem(line(10, "아메리카노", 1, 4100,
		Option{Name: "시럽 추가", Price: 300}, Option{Name: "샷 추가", Price: 500}))

	if len(o.Items) != 1 {
		t.Fatalf("got %d lines, want 1 merged line", len(o.Items))
	}
	if o.Items[0].Quantity != 2 {
		t.Errorf("quantity: got %d, want 2", o.Items[0].Quantity)
	}
}

func TestRemoveItemDropsAllLinesWithID(t *testing.T) {
	o := New()
	o.AddItem(line(3, "라볶이", 1, 6000))
	o.AddItem(line(3, "라볶이", 1, 6000, Option{Name: "치즈 추가", Price: 1000}))
	o.AddItem(line(1, "참치김밥", 1, 4500))

	if !o.RemoveItem(3) {
		t.Fatal("RemoveItem(3) reported nothing removed")
	}
	if len(o.Items) != 1 || o.Items[0].ItemID != 1 {
		t.Errorf("items: got %+v, want only 참치김밥", o.Items)
	}
	if o.RemoveItem(99) {
		t.Error("RemoveItem(99) reported a removal for an unknown id")
	}
}

func TestRecalculateTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		want  int
	}{
		{"empty", nil, 0},
		{"single line", []LineItem{line(1, "참치김밥", 2, 4500)}, 9000},
		{
			// Option price counts once per line, not per unit.
			"options once per line",
			[]LineItem{line(3, "라볶이", 2, 6000, Option{Name: "치즈 추가", Price: 1000})},
			13000,
		},
		{
			"mixed lines",
			[]LineItem{
				line(1, "참치김밥", 1, 4500),
				line(3, "라볶이", 1, 6000, Option{Name: "치즈 추가", Price: 1000}),
			},
			11500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New()
			o.Items = append(o.Items, tt.items...)
			o.RecalculateTotal()
			if o.TotalPrice != tt.want {
				t.Errorf("totalPrice: got %d, want %d", o.TotalPrice, tt.want)
			}

			// Recomputing is idempotent.
			o.RecalculateTotal()
			if o.TotalPrice != tt.want {
				t.Errorf("totalPrice after recompute: got %d, want %d", o.TotalPrice, tt.want)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	o := New()
	id, name := "store_kimbap", "김밥천국 중앙점"
	o.StoreID = &id
	o.StoreName = &name
	o.AddItem(line(3, "라볶이", 1, 6000, Option{Name: "치즈 추가", Price: 1000}))
	o.RecalculateTotal()

	c := o.Clone()
	if !reflect.DeepEqual(o, c) {
		t.Fatalf("clone differs: %+v vs %+v", o, c)
	}

	*c.StoreID = "store_cafe"
	c.Items[0].Quantity = 9
	c.Items[0].Options[0].Price = 0

	if *o.StoreID != "store_kimbap" || o.Items[0].Quantity != 1 || o.Items[0].Options[0].Price != 1000 {
		t.Errorf("mutating the clone leaked into the original: %+v", o)
	}
}

func TestCloneKeepsEmptyOptionsArray(t *testing.T) {
	o := New()
	o.AddItem(line(1, "참치김밥", 2, 4500))

	c := o.Clone()
	if c.Items[0].Options == nil {
		t.Fatal("clone turned an empty option set into nil")
	}

	// The snapshot wire format always carries options as an array.
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal clone: %v", err)
	}
	if strings.Contains(string(data), `"options":null`) {
		t.Errorf(`clone serialized "options" as null: %s`, data)
	}
	if !strings.Contains(string(data), `"options":[]`) {
		t.Errorf(`clone did not serialize "options" as []: %s`, data)
	}
}
