package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/estatehub/internal/service"
	"github.com/utafrali/estatehub/pkg/httputil"
)

// AgentHandler serves the agent directory.
type AgentHandler struct {
	service *service.AgentService
	logger  *slog.Logger
}

// NewAgentHandler creates a new agent HTTP handler.
func NewAgentHandler(svc *service.AgentService, logger *slog.Logger) *AgentHandler {
	return &AgentHandler{service: svc, logger: logger}
}

// ListAgents handles GET /api/v1/agents
func (h *AgentHandler) ListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.service.ListAgents(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, agents)
}
