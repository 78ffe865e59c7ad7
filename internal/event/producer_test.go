package event

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/estatehub/internal/domain"
	pkgkafka "github.com/utafrali/estatehub/pkg/kafka"
	"github.com/utafrali/estatehub/pkg/logger"
)

type recordingPublisher struct {
	topics []string
	events []*pkgkafka.Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, topic string, ev *pkgkafka.Event) error {
	if r.err != nil {
		return r.err
	}
	r.topics = append(r.topics, topic)
	r.events = append(r.events, ev)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestProducer_DisabledDropsEvents(t *testing.T) {
	p := NewProducer(nil, testLogger())

	assert.False(t, p.Enabled())
	assert.NoError(t, p.PublishPropertyDeleted(context.Background(), "p-1", "user_1"))
}

func TestProducer_PublishPropertyCreated(t *testing.T) {
	pub := &recordingPublisher{}
	p := NewProducer(pub, testLogger())
	ctx := logger.WithCorrelationID(context.Background(), "corr-7")

	prop := &domain.Property{ID: "p-1", Title: "Cottage", City: "Boise", Price: 410000, UserID: "user_1", ListingType: "buy"}
	require.NoError(t, p.PublishPropertyCreated(ctx, prop))

	require.Len(t, pub.events, 1)
	assert.Equal(t, "estatehub.property.created", pub.topics[0])
	ev := pub.events[0]
	assert.Equal(t, "p-1", ev.AggregateID)
	assert.Equal(t, AggregateProperty, ev.AggregateType)
	assert.Equal(t, Source, ev.Source)
	assert.Equal(t, "corr-7", ev.CorrelationID)

	var data PropertyData
	require.NoError(t, json.Unmarshal(ev.Data, &data))
	assert.Equal(t, "user_1", data.OwnerID)
	assert.Equal(t, 410000.0, data.Price)
}

func TestProducer_PublishPropertyRated(t *testing.T) {
	pub := &recordingPublisher{}
	p := NewProducer(pub, testLogger())

	r := &domain.Rating{PropertyID: "p-3", UserID: "user_2", Rating: 5}
	require.NoError(t, p.PublishPropertyRated(context.Background(), r, domain.RatingSummary{AvgRating: 4.5, RatingCount: 2}))

	assert.Equal(t, TopicPropertyRated, pub.topics[0])
	assert.JSONEq(t, `{"property_id":"p-3","user_id":"user_2","rating":5,"avg_rating":4.5,"rating_count":2}`, string(pub.events[0].Data))
}

func TestProducer_PublishAppointmentCancelled(t *testing.T) {
	pub := &recordingPublisher{}
	p := NewProducer(pub, testLogger())

	a := &domain.Appointment{
		ID:         "a-1",
		PropertyID: "p-1",
		UserID:     "user_1",
		Date:       time.Date(2025, 7, 4, 15, 30, 0, 0, time.UTC),
		Status:     domain.AppointmentStatusCancelled,
	}
	require.NoError(t, p.PublishAppointmentCancelled(context.Background(), a))

	assert.Equal(t, "estatehub.appointment.cancelled", pub.topics[0])
	var data AppointmentData
	require.NoError(t, json.Unmarshal(pub.events[0].Data, &data))
	assert.Equal(t, "2025-07-04T15:30:00Z", data.Date)
}

func TestProducer_PublishError(t *testing.T) {
	p := NewProducer(&recordingPublisher{err: errors.New("broker down")}, testLogger())

	err := p.PublishAppointmentCreated(context.Background(), &domain.Appointment{ID: "a-2"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish estatehub.appointment.created event")
}
