package handler

import (
	"net/http"

	"github.com/ai-kiosk/api/internal/catalog"
	"github.com/go-chi/chi/v5"
)

// StoreHandler serves the read-only store directory for the kiosk UI.
type StoreHandler struct {
	catalog *catalog.Catalog
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(c *catalog.Catalog) *StoreHandler {
	return &StoreHandler{catalog: c}
}

// RegisterRoutes registers store endpoints on the given Chi router.
// Expected to be mounted at /api/stores.
func (h *StoreHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}

// List handles GET /api/stores.
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"stores": h.catalog.Stores()})
}

// Get handles GET /api/stores/{id}.
func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := h.catalog.GetStore(chi.URLParam(r, "id"))
	if s == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "store not found"})
		return
	}
	writeJSON(w, http.StatusOK, s)
}
