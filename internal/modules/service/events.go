package service

import (
	"context"

	"github.com/Renishchandera/gameforge-ai/internal/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher is implemented by *mq.Publisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error
}

type IdeaPromotedMQ struct {
	IdeaID    uuid.UUID `json:"idea_id"`
	ProjectID uuid.UUID `json:"project_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
}

type ProjectStatusChangedMQ struct {
	ProjectID uuid.UUID `json:"project_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Status    string    `json:"status"`
}

type ProjectDeletedMQ struct {
	ProjectID uuid.UUID `json:"project_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
}

type eventSink struct {
	publisher EventPublisher
	cfg       *config.Config
	log       *zap.Logger
}

// emit never fails the caller; publish errors are only logged.
func (e eventSink) emit(ctx context.Context, routingKey string, body any) {
	if e.publisher == nil || e.cfg == nil || routingKey == "" {
		return
	}
	if err := e.publisher.PublishJSON(ctx, e.cfg.RabbitMQ.Exchange, routingKey, body); err != nil {
		e.log.Warn("failed to publish domain event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
