package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/internal/event"
	"github.com/utafrali/estatehub/internal/repository"
	apperrors "github.com/utafrali/estatehub/pkg/errors"
	"github.com/utafrali/estatehub/pkg/validator"
)

// FeaturedLimit is the number of listings on the featured page.
const FeaturedLimit = 6

func init() {
	validator.RegisterStringRule("listing_type",
		"must be one of: "+strings.Join(domain.ValidListingTypes(), ", "), domain.IsValidListingType)
	validator.RegisterStringRule("property_status",
		"must be one of: "+strings.Join(domain.ValidStatuses(), ", "), domain.IsValidStatus)
}

// PropertyService implements listing queries and owner-gated mutations.
type PropertyService struct {
	props    repository.PropertyRepository
	ratings  repository.RatingRepository
	cache    repository.FeaturedCache
	producer *event.Producer
	logger   *slog.Logger
}

// NewPropertyService creates a new property service. cache may be nil.
func NewPropertyService(
	props repository.PropertyRepository,
	ratings repository.RatingRepository,
	cache repository.FeaturedCache,
	producer *event.Producer,
	logger *slog.Logger,
) *PropertyService {
	return &PropertyService{
		props:    props,
		ratings:  ratings,
		cache:    cache,
		producer: producer,
		logger:   logger,
	}
}

// CreatePropertyInput holds the fields a caller supplies for a new listing.
type CreatePropertyInput struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"required,max=10000"`
	Price        float64  `json:"price" validate:"gt=0"`
	Address      string   `json:"address" validate:"required,max=300"`
	City         string   `json:"city" validate:"required,max=100"`
	State        string   `json:"state" validate:"required,max=100"`
	ZipCode      string   `json:"zip_code" validate:"required,max=20"`
	Lat          *float64 `json:"lat" validate:"required,latitude"`
	Lng          *float64 `json:"lng" validate:"required,longitude"`
	Bedrooms     int      `json:"bedrooms" validate:"gt=0"`
	Bathrooms    float64  `json:"bathrooms" validate:"gt=0"`
	SquareFeet   int      `json:"square_feet" validate:"gt=0"`
	YearBuilt    *int     `json:"year_built,omitempty" validate:"omitempty,gt=0"`
	PropertyType string   `json:"property_type" validate:"required,max=50"`
	ListingType  string   `json:"listing_type" validate:"required,listing_type"`
	ImageURL     string   `json:"image_url" validate:"required,url"`
}

// UpdatePropertyInput is a partial update. Nil fields are left unchanged.
type UpdatePropertyInput struct {
	Title        *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,min=1,max=10000"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Address      *string  `json:"address,omitempty" validate:"omitempty,min=1,max=300"`
	City         *string  `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	State        *string  `json:"state,omitempty" validate:"omitempty,min=1,max=100"`
	ZipCode      *string  `json:"zip_code,omitempty" validate:"omitempty,min=1,max=20"`
	Lat          *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lng          *float64 `json:"lng,omitempty" validate:"omitempty,longitude"`
	Bedrooms     *int     `json:"bedrooms,omitempty" validate:"omitempty,gt=0"`
	Bathrooms    *float64 `json:"bathrooms,omitempty" validate:"omitempty,gt=0"`
	SquareFeet   *int     `json:"square_feet,omitempty" validate:"omitempty,gt=0"`
	YearBuilt    *int     `json:"year_built,omitempty" validate:"omitempty,gt=0"`
	PropertyType *string  `json:"property_type,omitempty" validate:"omitempty,min=1,max=50"`
	ListingType  *string  `json:"listing_type,omitempty" validate:"omitempty,listing_type"`
	ImageURL     *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Status       *string  `json:"status,omitempty" validate:"omitempty,property_status"`
}

// apply copies the non-nil fields of in onto p.
func (in *UpdatePropertyInput) apply(p *domain.Property) {
	setIf(&p.Title, in.Title)
	setIf(&p.Description, in.Description)
	setIf(&p.Price, in.Price)
	setIf(&p.Address, in.Address)
	setIf(&p.City, in.City)
	setIf(&p.State, in.State)
	setIf(&p.ZipCode, in.ZipCode)
	setIf(&p.Lat, in.Lat)
	setIf(&p.Lng, in.Lng)
	setIf(&p.Bedrooms, in.Bedrooms)
	setIf(&p.Bathrooms, in.Bathrooms)
	setIf(&p.SquareFeet, in.SquareFeet)
	setIf(&p.PropertyType, in.PropertyType)
	setIf(&p.ListingType, in.ListingType)
	setIf(&p.ImageURL, in.ImageURL)
	setIf(&p.Status, in.Status)
	if in.YearBuilt != nil {
		y := *in.YearBuilt
		p.YearBuilt = &y
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// requireCaller rejects anonymous calls.
func requireCaller(callerID string) error {
	if callerID == "" {
		return apperrors.Unauthorized("authentication required")
	}
	return nil
}

// checkID maps ids that cannot exist to a not-found error.
func checkID(resource, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NotFound(resource, id)
	}
	return nil
}

// ListProperties returns one page of listings matching filter.
func (s *PropertyService) ListProperties(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, int, error) {
	props, total, err := s.props.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	return props, total, nil
}

// GetProperty returns a property with its rating aggregate computed from
// every rating row.
func (s *PropertyService) GetProperty(ctx context.Context, id string) (*domain.PropertyDetail, error) {
	if err := checkID("property", id); err != nil {
		return nil, err
	}

	p, err := s.props.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}

	values, err := s.ratings.ListValues(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list property ratings: %w", err)
	}
	summary := domain.SummarizeRatings(values)

	return &domain.PropertyDetail{
		Property:    *p,
		AvgRating:   summary.AvgRating,
		RatingCount: summary.RatingCount,
	}, nil
}

// FeaturedProperties serves the featured listings cache-aside. Cache
// failures are logged and the database is used instead.
func (s *PropertyService) FeaturedProperties(ctx context.Context) ([]domain.Property, error) {
	if s.cache != nil {
		props, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "featured cache read failed", slog.String("error", err.Error()))
		} else if ok {
			return props, nil
		}
	}

	props, err := s.props.ListFeatured(ctx, FeaturedLimit)
	if err != nil {
		return nil, fmt.Errorf("list featured properties: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, props); err != nil {
			s.logger.WarnContext(ctx, "featured cache write failed", slog.String("error", err.Error()))
		}
	}
	return props, nil
}

// RefreshFeatured reloads the featured listings into the cache.
func (s *PropertyService) RefreshFeatured(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	props, err := s.props.ListFeatured(ctx, FeaturedLimit)
	if err != nil {
		return 0, fmt.Errorf("list featured properties: %w", err)
	}
	if err := s.cache.Set(ctx, props); err != nil {
		return 0, fmt.Errorf("store featured properties: %w", err)
	}
	return len(props), nil
}

// ListOwnProperties returns the caller's listings.
func (s *PropertyService) ListOwnProperties(ctx context.Context, callerID string) ([]domain.Property, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	props, err := s.props.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list owner properties: %w", err)
	}
	return props, nil
}

// CreateProperty creates a listing owned by the caller.
func (s *PropertyService) CreateProperty(ctx context.Context, callerID string, input *CreatePropertyInput) (*domain.Property, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	p := &domain.Property{
		ID:           uuid.New().String(),
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		ZipCode:      input.ZipCode,
		Lat:          *input.Lat,
		Lng:          *input.Lng,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		SquareFeet:   input.SquareFeet,
		YearBuilt:    input.YearBuilt,
		PropertyType: input.PropertyType,
		ListingType:  input.ListingType,
		ImageURL:     input.ImageURL,
		UserID:       callerID,
		Featured:     false,
		Status:       domain.PropertyStatusAvailable,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.props.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}

	if err := s.producer.PublishPropertyCreated(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish property.created event",
			slog.String("property_id", p.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "property created",
		slog.String("property_id", p.ID),
		slog.String("owner_id", callerID),
	)
	return p, nil
}

// loadOwned fetches a property and checks that callerID owns it.
func (s *PropertyService) loadOwned(ctx context.Context, callerID, id string) (*domain.Property, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := checkID("property", id); err != nil {
		return nil, err
	}

	p, err := s.props.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	if !p.OwnedBy(callerID) {
		return nil, apperrors.Forbidden("you do not own this property")
	}
	return p, nil
}

// UpdateProperty applies a partial update to a listing the caller owns.
func (s *PropertyService) UpdateProperty(ctx context.Context, callerID, id string, input *UpdatePropertyInput) (*domain.Property, error) {
	p, err := s.loadOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	input.apply(p)

	if err := s.props.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	s.invalidateFeatured(ctx, p)

	if err := s.producer.PublishPropertyUpdated(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish property.updated event",
			slog.String("property_id", p.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "property updated", slog.String("property_id", p.ID))
	return p, nil
}

// DeleteProperty removes a listing the caller owns along with its ratings,
// saves and appointments.
func (s *PropertyService) DeleteProperty(ctx context.Context, callerID, id string) error {
	p, err := s.loadOwned(ctx, callerID, id)
	if err != nil {
		return err
	}

	if err := s.props.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	s.invalidateFeatured(ctx, p)

	if err := s.producer.PublishPropertyDeleted(ctx, id, callerID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish property.deleted event",
			slog.String("property_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "property deleted", slog.String("property_id", id))
	return nil
}

func (s *PropertyService) invalidateFeatured(ctx context.Context, p *domain.Property) {
	if s.cache == nil || !p.Featured {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "featured cache invalidation failed",
			slog.String("property_id", p.ID),
			slog.String("error", err.Error()),
		)
	}
}
