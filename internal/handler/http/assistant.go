package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/estatehub/internal/assistant"
	"github.com/utafrali/estatehub/pkg/httputil"
)

// AssistantHandler answers chat messages.
type AssistantHandler struct {
	responder assistant.Responder
	logger    *slog.Logger
}

// NewAssistantHandler creates a new assistant HTTP handler.
func NewAssistantHandler(responder assistant.Responder, logger *slog.Logger) *AssistantHandler {
	return &AssistantHandler{responder: responder, logger: logger}
}

// ChatRequest is the body of POST /api/v1/assistant.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ChatResponse carries the assistant's answer.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat handles POST /api/v1/assistant
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	reply, err := h.responder.Reply(r.Context(), req.Message)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, ChatResponse{Reply: reply})
}
