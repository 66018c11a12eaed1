package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"time"

	"atrium/config"
	"atrium/infras/kafka"
	"atrium/infras/otel"
	"atrium/shared/constant"
	"atrium/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	TypeReservationRequested = "reservation.requested"
	TypeReservationApproved  = "reservation.approved"
	TypeReservationRejected  = "reservation.rejected"
	TypeReservationCancelled = "reservation.cancelled"
	TypeReservationCheckedIn = "reservation.checked_in"
	TypeReservationCompleted = "reservation.completed"
	TypeReservationNoShow    = "reservation.no_show"
)

// ReservationEvent is the lifecycle notification published to Kafka on every
// state change. Consumers drive notifications and reporting off this stream.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	SpaceID       string    `json:"space_id"`
	UserID        string    `json:"user_id"`
	Actor         string    `json:"actor"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishReservationEvent(ctx context.Context, event ReservationEvent)
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otl otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otl,
	}
}

// PublishReservationEvent sends the event asynchronously, best effort. Lifecycle
// transitions never fail because the broker is down.
func (p *publisherImpl) PublishReservationEvent(ctx context.Context, event ReservationEvent) {
	_, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".PublishReservationEvent")
	defer scope.End()

	if event.OccurredAt.IsZero() {
		event.OccurredAt = timezone.Now()
	}

	topic := p.cfg.Kafka.Topics.ReservationLifecycle

	go func() {
		c := context.WithoutCancel(ctx)

		err := p.client.SendMessages(c, topic, kafka.Message{
			Key:   event.ReservationID,
			Value: event,
		})
		if err != nil {
			log.Error().
				Err(err).
				Str("type", event.Type).
				Str("reservation_id", event.ReservationID).
				Msg("failed to publish reservation event")
		}
	}()
}
