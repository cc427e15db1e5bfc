package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ai-kiosk/api/internal/order"
	"github.com/go-chi/chi/v5"
)

// Processor runs one conversation turn. Satisfied by
// *interpreter.Interpreter; narrow interface for testability.
type Processor interface {
	Process(message string, current *order.Order) (string, *order.Order)
}

// CommandHandler exposes the stateless turn endpoint. The kiosk
// frontend owns the snapshot round-trip: it sends the current order
// back with every utterance and stores whatever comes back.
type CommandHandler struct {
	proc Processor
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(proc Processor) *CommandHandler {
	return &CommandHandler{proc: proc}
}

// RegisterRoutes registers the endpoint on the given Chi router.
// Expected to be mounted at /api/process-command.
func (h *CommandHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Process)
}

type processCommandRequest struct {
	Message      string       `json:"message"`
	CurrentState *order.Order `json:"currentState"`
}

type processCommandResponse struct {
	Reply        string       `json:"reply"`
	CurrentOrder *order.Order `json:"currentOrder"`
}

// Process handles POST /api/process-command. An empty message is a
// client error rejected here; the interpreter never sees it.
func (h *CommandHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req processCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Message is required"})
		return
	}

	reply, next := h.proc.Process(req.Message, req.CurrentState)
	writeJSON(w, http.StatusOK, processCommandResponse{Reply: reply, CurrentOrder: next})
}
