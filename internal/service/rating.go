package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/internal/event"
	"github.com/utafrali/estatehub/internal/repository"
	apperrors "github.com/utafrali/estatehub/pkg/errors"
)

// RatingService records user ratings and recomputes property aggregates.
type RatingService struct {
	props    repository.PropertyRepository
	ratings  repository.RatingRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewRatingService creates a new rating service.
func NewRatingService(props repository.PropertyRepository, ratings repository.RatingRepository, producer *event.Producer, logger *slog.Logger) *RatingService {
	return &RatingService{props: props, ratings: ratings, producer: producer, logger: logger}
}

// RateProperty stores the caller's rating and returns the fresh aggregate
// computed from all of the property's ratings.
func (s *RatingService) RateProperty(ctx context.Context, callerID, propertyID string, rating int) (domain.RatingSummary, error) {
	if err := requireCaller(callerID); err != nil {
		return domain.RatingSummary{}, err
	}
	if !domain.IsValidRating(rating) {
		return domain.RatingSummary{}, apperrors.InvalidInput(
			fmt.Sprintf("rating must be an integer between %d and %d", domain.MinRating, domain.MaxRating))
	}
	if err := checkID("property", propertyID); err != nil {
		return domain.RatingSummary{}, err
	}
	if _, err := s.props.GetByID(ctx, propertyID); err != nil {
		return domain.RatingSummary{}, fmt.Errorf("get property: %w", err)
	}

	r := &domain.Rating{
		ID:         uuid.New().String(),
		PropertyID: propertyID,
		UserID:     callerID,
		Rating:     rating,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.ratings.Upsert(ctx, r); err != nil {
		return domain.RatingSummary{}, fmt.Errorf("save rating: %w", err)
	}

	values, err := s.ratings.ListValues(ctx, propertyID)
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("list property ratings: %w", err)
	}
	summary := domain.SummarizeRatings(values)

	if err := s.producer.PublishPropertyRated(ctx, r, summary); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish property.rated event",
			slog.String("property_id", propertyID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "property rated",
		slog.String("property_id", propertyID),
		slog.Int("rating", rating),
		slog.Int("rating_count", summary.RatingCount),
	)
	return summary, nil
}

// UserRating returns the caller's rating for a property, 0 when unrated.
func (s *RatingService) UserRating(ctx context.Context, callerID, propertyID string) (int, error) {
	if err := requireCaller(callerID); err != nil {
		return 0, err
	}
	if err := checkID("property", propertyID); err != nil {
		return 0, err
	}
	if _, err := s.props.GetByID(ctx, propertyID); err != nil {
		return 0, fmt.Errorf("get property: %w", err)
	}

	v, err := s.ratings.GetUserRating(ctx, propertyID, callerID)
	if err != nil {
		return 0, fmt.Errorf("get user rating: %w", err)
	}
	return v, nil
}
