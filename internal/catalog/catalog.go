// Package catalog holds the static store and menu reference data.
// The catalog is seeded once at startup and never mutated, so it is
// safe to share across any number of concurrent sessions.
package catalog

import "strings"

// MenuOption is an add-on a menu item can be ordered with.
type MenuOption struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// MenuItem is a single orderable dish or drink. Names are unique
// within a store.
type MenuItem struct {
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Price   int          `json:"price"`
	Options []MenuOption `json:"options"`
}

// Store is one shop the kiosk can order from. Distance is a display
// string shown in the store directory.
type Store struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Distance string     `json:"distance"`
	Menu     []MenuItem `json:"menu"`
}

// Catalog is a read-only store lookup table.
type Catalog struct {
	stores []Store
}

// New creates a Catalog from the given stores.
func New(stores []Store) *Catalog {
	return &Catalog{stores: stores}
}

// Default returns the demo catalog the kiosk ships with.
func Default() *Catalog {
	return New([]Store{
		{
			ID:       "store_kimbap",
			Name:     "김밥천국 중앙점",
			Distance: "300m",
			Menu: []MenuItem{
				{ID: 1, Name: "참치김밥", Price: 4500, Options: []MenuOption{}},
				{ID: 2, Name: "야채김밥", Price: 3500, Options: []MenuOption{}},
				{ID: 3, Name: "라볶이", Price: 6000, Options: []MenuOption{{Name: "치즈 추가", Price: 1000}}},
				{ID: 4, Name: "돈까스", Price: 8000, Options: []MenuOption{}},
			},
		},
		{
			ID:       "store_cafe",
			Name:     "스타벅스 강남점",
			Distance: "500m",
			Menu: []MenuItem{
				{ID: 10, Name: "아메리카노", Price: 4100, Options: []MenuOption{{Name: "샷 추가", Price: 500}}},
				{ID: 11, Name: "카페라떼", Price: 4600, Options: []MenuOption{}},
			},
		},
	})
}

// Stores returns every store in directory order.
func (c *Catalog) Stores() []Store {
	return c.stores
}

// FindStoreByName returns the first store whose display name appears
// as a substring of text (case-insensitive). Absence is a normal nil
// result, not an error.
func (c *Catalog) FindStoreByName(text string) *Store {
	lower := strings.ToLower(text)
	for i := range c.stores {
		if strings.Contains(lower, strings.ToLower(c.stores[i].Name)) {
			return &c.stores[i]
		}
	}
	return nil
}

// GetStore returns the store with the given id, or nil.
func (c *Catalog) GetStore(id string) *Store {
	for i := range c.stores {
		if c.stores[i].ID == id {
			return &c.stores[i]
		}
	}
	return nil
}
