// Package service publishes domain events to RabbitMQ. Failures are logged and
// returned so callers can ignore them without interrupting the request.
package service

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/charityevents/events-api/internal/queue"
)

// RegistrationPublisher sends ParticipantRegisteredEvent messages to a
// durable queue over the default exchange. One connection per publish keeps
// it free of reconnect state.
type RegistrationPublisher struct {
	URL   string
	Queue string
	// DialTimeout caps the broker connect; the context deadline, when
	// sooner, wins.
	DialTimeout time.Duration
}

func NewRegistrationPublisher(url, queueName string) *RegistrationPublisher {
	if queueName == "" {
		queueName = queue.DefaultRegistrationQueue
	}
	return &RegistrationPublisher{URL: url, Queue: queueName, DialTimeout: queue.DefaultDialTimeout}
}

// dialTimeout returns how long a connect may take under ctx. ok is false
// when ctx has already expired.
func (p *RegistrationPublisher) dialTimeout(ctx context.Context) (time.Duration, bool) {
	timeout := p.DialTimeout
	if timeout <= 0 {
		timeout = queue.DefaultDialTimeout
	}
	if deadline, has := ctx.Deadline(); has {
		left := time.Until(deadline)
		if left <= 0 {
			return 0, false
		}
		if left < timeout {
			timeout = left
		}
	}
	return timeout, true
}

// PublishRegistration marks the message persistent.
func (p *RegistrationPublisher) PublishRegistration(ctx context.Context, event queue.ParticipantRegisteredEvent) error {
	timeout, ok := p.dialTimeout(ctx)
	if !ok {
		return ctx.Err()
	}
	conn, err := amqp.DialConfig(p.URL, queue.DialConfig(timeout))
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.Queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		log.Warn().Err(err).Str("queue", p.Queue).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		log.Warn().Err(err).Str("queue", p.Queue).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
