package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/pkg/database"
)

// AgentRepository reads the agents reference table.
type AgentRepository struct {
	pool database.DBTX
}

// NewAgentRepository creates a new PostgreSQL-backed agent repository.
func NewAgentRepository(pool database.DBTX) *AgentRepository {
	return &AgentRepository{pool: pool}
}

// List returns all agents, best rated first.
func (r *AgentRepository) List(ctx context.Context) (_ []domain.Agent, err error) {
	query := `
		SELECT id, name, specialization, rating, properties_sold, image_url
		FROM agents
		ORDER BY rating DESC, name`

	ctx, end := database.TraceQuery(ctx, "ListAgents", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	agents := []domain.Agent{}
	for rows.Next() {
		var a domain.Agent
		if err = rows.Scan(&a.ID, &a.Name, &a.Specialization, &a.Rating, &a.PropertiesSold, &a.ImageURL); err != nil {
			return nil, fmt.Errorf("scan agent row: %w", err)
		}
		agents = append(agents, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agent rows: %w", err)
	}
	return agents, nil
}

// Insert adds an agent. Used by the seed tool.
func (r *AgentRepository) Insert(ctx context.Context, a *domain.Agent) error {
	query := `
		INSERT INTO agents (id, name, specialization, rating, properties_sold, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, a.ID, a.Name, a.Specialization, a.Rating, a.PropertiesSold, a.ImageURL); err != nil {
		return fmt.Errorf("insert agent: %w", err)
	}
	return nil
}
