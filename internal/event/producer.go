package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/utafrali/estatehub/internal/domain"
	pkgkafka "github.com/utafrali/estatehub/pkg/kafka"
	"github.com/utafrali/estatehub/pkg/logger"
)

// Aggregate types.
const (
	AggregateProperty    = "property"
	AggregateAppointment = "appointment"
)

// Source identifies events emitted by this service.
const Source = "estatehub"

// Topics for listing domain events.
var (
	TopicPropertyCreated      = pkgkafka.Topic(AggregateProperty, "created")
	TopicPropertyUpdated      = pkgkafka.Topic(AggregateProperty, "updated")
	TopicPropertyDeleted      = pkgkafka.Topic(AggregateProperty, "deleted")
	TopicPropertyRated        = pkgkafka.Topic(AggregateProperty, "rated")
	TopicAppointmentCreated   = pkgkafka.Topic(AggregateAppointment, "created")
	TopicAppointmentCancelled = pkgkafka.Topic(AggregateAppointment, "cancelled")
)

// Publisher writes an event to a topic. *pkgkafka.Producer implements it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// PropertyData is the payload for property.created and property.updated.
type PropertyData struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Price        float64 `json:"price"`
	PropertyType string  `json:"property_type"`
	ListingType  string  `json:"listing_type"`
	Status       string  `json:"status"`
	OwnerID      string  `json:"owner_id"`
}

// PropertyDeletedData is the payload for property.deleted.
type PropertyDeletedData struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

// PropertyRatedData is the payload for property.rated.
type PropertyRatedData struct {
	PropertyID  string  `json:"property_id"`
	UserID      string  `json:"user_id"`
	Rating      int     `json:"rating"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

// AppointmentData is the payload for appointment events.
type AppointmentData struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	UserID     string `json:"user_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

// Producer publishes listing domain events. A Producer built with a nil
// Publisher drops every event, which is how events are disabled.
type Producer struct {
	pub    Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(pub Publisher, logger *slog.Logger) *Producer {
	return &Producer{pub: pub, logger: logger}
}

// Enabled reports whether events are actually published.
func (p *Producer) Enabled() bool {
	return p != nil && p.pub != nil
}

func (p *Producer) publish(ctx context.Context, topic, aggregateType, aggregateID string, data any) error {
	if !p.Enabled() {
		return nil
	}

	ev, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		ev.WithCorrelationID(id)
	}

	if err := p.pub.Publish(ctx, topic, ev); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}

func propertyData(prop *domain.Property) PropertyData {
	return PropertyData{
		ID:           prop.ID,
		Title:        prop.Title,
		City:         prop.City,
		State:        prop.State,
		Price:        prop.Price,
		PropertyType: prop.PropertyType,
		ListingType:  prop.ListingType,
		Status:       prop.Status,
		OwnerID:      prop.UserID,
	}
}

// PublishPropertyCreated publishes a property.created event.
func (p *Producer) PublishPropertyCreated(ctx context.Context, prop *domain.Property) error {
	return p.publish(ctx, TopicPropertyCreated, AggregateProperty, prop.ID, propertyData(prop))
}

// PublishPropertyUpdated publishes a property.updated event.
func (p *Producer) PublishPropertyUpdated(ctx context.Context, prop *domain.Property) error {
	return p.publish(ctx, TopicPropertyUpdated, AggregateProperty, prop.ID, propertyData(prop))
}

// PublishPropertyDeleted publishes a property.deleted event.
func (p *Producer) PublishPropertyDeleted(ctx context.Context, id, ownerID string) error {
	return p.publish(ctx, TopicPropertyDeleted, AggregateProperty, id, PropertyDeletedData{ID: id, OwnerID: ownerID})
}

// PublishPropertyRated publishes a property.rated event carrying the fresh aggregate.
func (p *Producer) PublishPropertyRated(ctx context.Context, r *domain.Rating, summary domain.RatingSummary) error {
	return p.publish(ctx, TopicPropertyRated, AggregateProperty, r.PropertyID, PropertyRatedData{
		PropertyID:  r.PropertyID,
		UserID:      r.UserID,
		Rating:      r.Rating,
		AvgRating:   summary.AvgRating,
		RatingCount: summary.RatingCount,
	})
}

func appointmentData(a *domain.Appointment) AppointmentData {
	return AppointmentData{
		ID:         a.ID,
		PropertyID: a.PropertyID,
		UserID:     a.UserID,
		Date:       a.Date.UTC().Format(time.RFC3339),
		Status:     a.Status,
	}
}

// PublishAppointmentCreated publishes an appointment.created event.
func (p *Producer) PublishAppointmentCreated(ctx context.Context, a *domain.Appointment) error {
	return p.publish(ctx, TopicAppointmentCreated, AggregateAppointment, a.ID, appointmentData(a))
}

// PublishAppointmentCancelled publishes an appointment.cancelled event.
func (p *Producer) PublishAppointmentCancelled(ctx context.Context, a *domain.Appointment) error {
	return p.publish(ctx, TopicAppointmentCancelled, AggregateAppointment, a.ID, appointmentData(a))
}
