package rabbitmqrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"github.com/webstore/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/webstore/storefront/internal/dal/rabbitmq"
	"github.com/webstore/storefront/internal/service/models/notification"
	"github.com/webstore/storefront/internal/service/models/order"
	"github.com/webstore/storefront/internal/service/models/outbox"
)

// NotifierRabbitMQRepository publishes order confirmations to the
// notification queue. Messages that fail to publish are parked in the
// outbox for the retry worker.
type NotifierRabbitMQRepository struct {
	client     *rabbitmq.Client
	outboxRepo ioutboxrepo.IOutboxRepository
	queue      amqp.Queue
	maxRetries int
}

// NewNotifierRabbitMQRepository creates a new notifier repository and
// declares the confirmation queue.
func NewNotifierRabbitMQRepository(
	client *rabbitmq.Client,
	outboxRepo ioutboxrepo.IOutboxRepository,
) *NotifierRabbitMQRepository {
	queueName := viper.GetString("rabbitmq.order_confirmation_queue")
	if queueName == "" {
		queueName = "storefront.order.confirmation"
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	maxRetries := viper.GetInt("rabbitmq.outbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	return &NotifierRabbitMQRepository{
		client:     client,
		outboxRepo: outboxRepo,
		queue:      queue,
		maxRetries: maxRetries,
	}
}

// NotifyOrderPlaced hands a confirmation for the committed order to the
// delivery queue. A publish failure never propagates: the message is moved
// to the outbox and the error is reported for logging only.
func (r *NotifierRabbitMQRepository) NotifyOrderPlaced(ctx context.Context, o order.Order) error {
	payload, err := json.Marshal(confirmationFromOrder(o))
	if err != nil {
		return fmt.Errorf("failed to marshal order confirmation: %w", err)
	}

	err = r.client.Channel().Publish(
		"",
		r.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
	if err == nil {
		return nil
	}

	slog.WarnContext(ctx, "Failed to publish order confirmation, parking in outbox",
		"order_id", o.ID,
		"error", err,
	)

	now := time.Now()
	if outboxErr := r.outboxRepo.Insert(ctx, outbox.Message{
		QueueName:   r.queue.Name,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  r.maxRetries,
		LastError:   err.Error(),
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}); outboxErr != nil {
		return fmt.Errorf("failed to park confirmation in outbox: %w", outboxErr)
	}

	return nil
}

func confirmationFromOrder(o order.Order) notification.OrderConfirmation {
	lines := make([]notification.ConfirmationLine, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		line := notification.ConfirmationLine{
			Quantity: item.Quantity,
			Price:    item.Price.String(),
			Subtotal: item.Subtotal().String(),
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
		}
		lines = append(lines, line)
	}

	return notification.OrderConfirmation{
		MessageID:       uuid.NewString(),
		OrderID:         o.ID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		ShippingAddress: o.ShippingAddress,
		Total:           o.Total.String(),
		Lines:           lines,
		PlacedAt:        o.CreatedAt,
	}
}
