package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/lab-desk/internal/config"
)

const activityLogFile = "order-events.log"

// StartOrderEventsConsumer declares the order events queue and appends
// every message to <LogDir>/order-events.log.  It reconnects with
// exponential backoff and never returns, so run it in a goroutine.
func StartOrderEventsConsumer(cfg config.QueueConfig) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(cfg.URL)
		if err != nil {
			log.Printf("order-events-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(conn, cfg)
		_ = conn.Close()
		log.Printf("order-events-consumer: consume loop ended: %v; reconnecting", err)
		time.Sleep(2 * time.Second)
	}
}

func consumeLoop(conn *amqp.Connection, cfg config.QueueConfig) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("order-events-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(cfg.QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(cfg.LogDir, d.Body); err != nil {
			log.Printf("order-events-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // no requeue: a bad body would loop forever
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(dir string, body []byte) error {
	var ev OrderActivity
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.OrderID == 0 || ev.EventType == "" {
		return errors.New("missing lab_order_id or event_type")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, activityLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatLine(ev OrderActivity) string {
	line := fmt.Sprintf("[%s] Order activity | lab_order_id=%d | event=%s | source=%s",
		ev.OccurredAt, ev.OrderID, ev.EventType, ev.Source)
	if ev.EventID != "" {
		line += " | event_id=" + ev.EventID
	}
	if ev.PatientName != "" {
		line += fmt.Sprintf(" | patient=%q", ev.PatientName)
	}
	if ev.Note != "" {
		line += fmt.Sprintf(" | note=%q", ev.Note)
	}
	return line + "\n"
}
