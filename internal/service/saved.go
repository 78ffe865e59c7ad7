package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/internal/repository"
)

// SavedPropertyService manages a user's bookmarked listings.
type SavedPropertyService struct {
	props  repository.PropertyRepository
	saved  repository.SavedPropertyRepository
	logger *slog.Logger
}

// NewSavedPropertyService creates a new saved-property service.
func NewSavedPropertyService(props repository.PropertyRepository, saved repository.SavedPropertyRepository, logger *slog.Logger) *SavedPropertyService {
	return &SavedPropertyService{props: props, saved: saved, logger: logger}
}

// ListSaved returns the caller's bookmarks, most recent first.
func (s *SavedPropertyService) ListSaved(ctx context.Context, callerID string) ([]domain.SavedPropertyDetail, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	saved, err := s.saved.ListByUser(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list saved properties: %w", err)
	}
	return saved, nil
}

// SaveProperty bookmarks an existing property. Saving twice succeeds.
func (s *SavedPropertyService) SaveProperty(ctx context.Context, callerID, propertyID string) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	if err := checkID("property", propertyID); err != nil {
		return err
	}
	if _, err := s.props.GetByID(ctx, propertyID); err != nil {
		return fmt.Errorf("get property: %w", err)
	}

	err := s.saved.Save(ctx, &domain.SavedProperty{
		ID:         uuid.New().String(),
		PropertyID: propertyID,
		UserID:     callerID,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("save property: %w", err)
	}

	s.logger.InfoContext(ctx, "property saved", slog.String("property_id", propertyID))
	return nil
}

// UnsaveProperty removes a bookmark. Removing a missing bookmark succeeds.
func (s *SavedPropertyService) UnsaveProperty(ctx context.Context, callerID, propertyID string) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	if _, err := uuid.Parse(propertyID); err != nil {
		return nil
	}

	if err := s.saved.Remove(ctx, propertyID, callerID); err != nil {
		return fmt.Errorf("remove saved property: %w", err)
	}

	s.logger.InfoContext(ctx, "property unsaved", slog.String("property_id", propertyID))
	return nil
}
