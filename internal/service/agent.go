package service

import (
	"context"
	"fmt"

	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/internal/repository"
)

// AgentService exposes the agent directory.
type AgentService struct {
	agents repository.AgentRepository
}

// NewAgentService creates a new agent service.
func NewAgentService(agents repository.AgentRepository) *AgentService {
	return &AgentService{agents: agents}
}

// ListAgents returns every agent, best rated first.
func (s *AgentService) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	agents, err := s.agents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return agents, nil
}
