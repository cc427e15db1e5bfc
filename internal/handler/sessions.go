package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ai-kiosk/api/internal/auth"
	"github.com/ai-kiosk/api/internal/order"
	"github.com/ai-kiosk/api/internal/session"
	"github.com/ai-kiosk/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SessionHandler manages server-side conversation sessions: the
// snapshot is read from the session store before each turn and the
// result written back, then pushed to any websocket watchers.
type SessionHandler struct {
	proc      Processor
	store     session.Store
	hub       *ws.Hub // may be nil when push is disabled
	jwtSecret string
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(proc Processor, store session.Store, hub *ws.Hub, jwtSecret string) *SessionHandler {
	return &SessionHandler{proc: proc, store: store, hub: hub, jwtSecret: jwtSecret}
}

// RegisterRoutes registers the session-scoped endpoints. Expected to
// be mounted at /api/sessions/{sid} behind RequireSession.
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/commands", h.Command)
	r.Get("/order", h.GetOrder)
	r.Delete("/", h.Delete)
}

type createSessionResponse struct {
	SessionID uuid.UUID `json:"sessionId"`
	Token     string    `json:"token"`
}

// Create handles POST /api/sessions. Public: a kiosk opens a session
// when a customer walks up.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := uuid.New()
	if err := h.store.Put(r.Context(), id, order.New()); err != nil {
		log.Printf("create session: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, id)
	if err != nil {
		log.Printf("generate session token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
		return
	}

	writeJSON(w, http.StatusCreated, createSessionResponse{SessionID: id, Token: token})
}

type sessionCommandRequest struct {
	Message string `json:"message"`
}

// Command handles POST /api/sessions/{sid}/commands: one conversation
// turn with server-held state.
func (h *SessionHandler) Command(w http.ResponseWriter, r *http.Request) {
	sid, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	var req sessionCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Message is required"})
		return
	}

	current, err := h.store.Get(r.Context(), sid)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
			return
		}
		log.Printf("load session %s: %v", sid, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load session"})
		return
	}

	reply, next := h.proc.Process(req.Message, current)

	if err := h.store.Put(r.Context(), sid, next); err != nil {
		log.Printf("save session %s: %v", sid, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save session"})
		return
	}

	h.broadcastOrder(sid, next)
	writeJSON(w, http.StatusOK, processCommandResponse{Reply: reply, CurrentOrder: next})
}

// GetOrder handles GET /api/sessions/{sid}/order.
func (h *SessionHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	sid, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	o, err := h.store.Get(r.Context(), sid)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
			return
		}
		log.Printf("load session %s: %v", sid, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load session"})
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// Delete handles DELETE /api/sessions/{sid}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sid, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	if err := h.store.Delete(r.Context(), sid); err != nil {
		log.Printf("delete session %s: %v", sid, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete session"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) broadcastOrder(sid uuid.UUID, o *order.Order) {
	if h.hub == nil {
		return
	}
	payload, err := json.Marshal(o)
	if err != nil {
		log.Printf("marshal order snapshot: %v", err)
		return
	}
	h.hub.BroadcastToSession(sid, ws.Event{Type: ws.EventOrderUpdated, Payload: payload})
}
