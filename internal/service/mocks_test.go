package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/internal/repository"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// --- Mock Property Repository ---

type mockPropertyRepository struct {
	mock.Mock
}

func (m *mockPropertyRepository) List(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Property), args.Int(1), args.Error(2)
}

func (m *mockPropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *mockPropertyRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Property, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *mockPropertyRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Property, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *mockPropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPropertyRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- Mock Rating Repository ---

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) Upsert(ctx context.Context, r *domain.Rating) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRatingRepository) ListValues(ctx context.Context, propertyID string) ([]int, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *mockRatingRepository) GetUserRating(ctx context.Context, propertyID, userID string) (int, error) {
	args := m.Called(ctx, propertyID, userID)
	return args.Int(0), args.Error(1)
}

// --- Mock Saved Property Repository ---

type mockSavedRepository struct {
	mock.Mock
}

func (m *mockSavedRepository) Save(ctx context.Context, s *domain.SavedProperty) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSavedRepository) Remove(ctx context.Context, propertyID, userID string) error {
	return m.Called(ctx, propertyID, userID).Error(0)
}

func (m *mockSavedRepository) ListByUser(ctx context.Context, userID string) ([]domain.SavedPropertyDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedPropertyDetail), args.Error(1)
}

// --- Mock Appointment Repository ---

type mockAppointmentRepository struct {
	mock.Mock
}

func (m *mockAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockAppointmentRepository) ListByUser(ctx context.Context, userID string) ([]domain.AppointmentDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AppointmentDetail), args.Error(1)
}

// --- Mock Agent Repository ---

type mockAgentRepository struct {
	mock.Mock
}

func (m *mockAgentRepository) List(ctx context.Context) ([]domain.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agent), args.Error(1)
}

// --- Mock Featured Cache ---

type mockFeaturedCache struct {
	mock.Mock
}

func (m *mockFeaturedCache) Get(ctx context.Context) ([]domain.Property, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Property), args.Bool(1), args.Error(2)
}

func (m *mockFeaturedCache) Set(ctx context.Context, props []domain.Property) error {
	return m.Called(ctx, props).Error(0)
}

func (m *mockFeaturedCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
