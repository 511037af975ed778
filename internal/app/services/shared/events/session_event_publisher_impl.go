package events

import (
	"context"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/app/models"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type amqpSessionEventPublisher struct {
	mu      sync.Mutex
	Channel *amqp091.Channel
	Queue   string
	Log     *zap.Logger
}

func NewAMQPSessionEventPublisher(rabbitMQConnection *amqp091.Connection, queue string, logger *zap.Logger) (contracts.SessionEventPublisher, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		return nil, err
	}

	return &amqpSessionEventPublisher{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}, nil
}

func (p *amqpSessionEventPublisher) Publish(ctx context.Context, event models.SessionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Headers: amqp091.Table{
			"message_type": "JSON",
		},
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	err = p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	p.mu.Unlock()
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}

	p.Log.Debug("amqpSessionEventPublisher.Publish succeeded",
		zap.String(constvars.LoggingEventTypeKey, string(event.Type)),
		zap.String(constvars.LoggingQueueKey, p.Queue),
	)
	return nil
}

type noopSessionEventPublisher struct{}

// NewNoopSessionEventPublisher is used when session events are disabled.
func NewNoopSessionEventPublisher() contracts.SessionEventPublisher {
	return noopSessionEventPublisher{}
}

func (noopSessionEventPublisher) Publish(context.Context, models.SessionEvent) error {
	return nil
}
