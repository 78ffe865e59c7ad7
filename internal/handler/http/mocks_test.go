package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/internal/repository"
	"github.com/utafrali/estatehub/pkg/middleware"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// stubVerifier accepts "<user-id>-token" bearer tokens.
func stubVerifier(token string) (*middleware.Claims, error) {
	switch token {
	case "owner-token":
		return &middleware.Claims{UserID: ownerID}, nil
	case "stranger-token":
		return &middleware.Claims{UserID: strangerID}, nil
	}
	return nil, errors.New("bad token")
}

// =============================================================================
// Mock repositories
// =============================================================================

type mockPropertyRepo struct {
	mock.Mock
}

func (m *mockPropertyRepo) List(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Property), args.Int(1), args.Error(2)
}

func (m *mockPropertyRepo) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *mockPropertyRepo) ListFeatured(ctx context.Context, limit int) ([]domain.Property, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *mockPropertyRepo) ListByOwner(ctx context.Context, userID string) ([]domain.Property, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *mockPropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPropertyRepo) Update(ctx context.Context, p *domain.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPropertyRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockRatingRepo struct {
	mock.Mock
}

func (m *mockRatingRepo) Upsert(ctx context.Context, r *domain.Rating) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRatingRepo) ListValues(ctx context.Context, propertyID string) ([]int, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]int), args.Error(1)
}

func (m *mockRatingRepo) GetUserRating(ctx context.Context, propertyID, userID string) (int, error) {
	args := m.Called(ctx, propertyID, userID)
	return args.Int(0), args.Error(1)
}

type mockSavedRepo struct {
	mock.Mock
}

func (m *mockSavedRepo) Save(ctx context.Context, s *domain.SavedProperty) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSavedRepo) Remove(ctx context.Context, propertyID, userID string) error {
	return m.Called(ctx, propertyID, userID).Error(0)
}

func (m *mockSavedRepo) ListByUser(ctx context.Context, userID string) ([]domain.SavedPropertyDetail, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.SavedPropertyDetail), args.Error(1)
}

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockAppointmentRepo) ListByUser(ctx context.Context, userID string) ([]domain.AppointmentDetail, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.AppointmentDetail), args.Error(1)
}

type mockAgentRepo struct {
	mock.Mock
}

func (m *mockAgentRepo) List(ctx context.Context) ([]domain.Agent, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Agent), args.Error(1)
}

type stubLookup struct {
	body json.RawMessage
	err  error
}

func (s stubLookup) PropertyDetails(context.Context, string) (json.RawMessage, error) {
	return s.body, s.err
}
