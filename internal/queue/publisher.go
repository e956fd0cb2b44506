package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/lab-desk/internal/config"
)

// Publisher sends OrderActivity messages to the configured queue.  Each
// call opens its own connection; publishing is rare and never on a hot
// path.
type Publisher struct {
	cfg config.QueueConfig
}

func NewPublisher(cfg config.QueueConfig) *Publisher {
	return &Publisher{cfg: cfg}
}

// Publish marshals ev and sends it as a persistent message.  Errors are
// logged and returned so the caller can choose to ignore them.  A
// disabled publisher drops the message.
func (p *Publisher) Publish(ctx context.Context, ev OrderActivity) error {
	if !p.cfg.Enabled {
		return nil
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	conn, err := amqp.Dial(p.cfg.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.cfg.QueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	err = ch.PublishWithContext(ctx, "", p.cfg.QueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
	}
	return err
}
