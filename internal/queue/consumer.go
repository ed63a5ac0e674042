package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const eventLogFile = "facility.log"

// Consumer reads facility events from a durable queue and appends each
// one to <LogDir>/facility.log as a single line.
type Consumer struct {
	URL    string
	Queue  string
	LogDir string
	Logger *zap.Logger
}

// Run connects to the broker and consumes until ctx is cancelled.  Lost
// connections are retried with exponential backoff (1s doubling to 30s).
// Messages that cannot be handled are rejected without requeue so a bad
// payload cannot spin the loop.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Logger.Warn("event consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Logger.Warn("event consumer: consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Logger.Warn("event consumer: set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := HandleMessage(c.LogDir, d.Body); err != nil {
				c.Logger.Error("event consumer: handle message failed", zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one event and appends it to the log file in dir.
func HandleMessage(dir string, body []byte) error {
	var ev FacilityEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" {
		return errors.New("event without type")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, eventLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatEvent(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatEvent(ev FacilityEvent) string {
	switch ev.Type {
	case EventBedAllocated:
		return fmt.Sprintf("[%s] Bed allocated | event_id=%s | bed_id=%d | patient_id=%d\n",
			ev.OccurredAt, ev.ID, ev.BedID, ev.PatientID)
	case EventBedWaitlisted:
		return fmt.Sprintf("[%s] Patient waitlisted | event_id=%s | patient_id=%d\n",
			ev.OccurredAt, ev.ID, ev.PatientID)
	case EventBedReleased:
		return fmt.Sprintf("[%s] Bed released | event_id=%s | bed_id=%d\n",
			ev.OccurredAt, ev.ID, ev.BedID)
	case EventStaffDeleted:
		return fmt.Sprintf("[%s] Staff removed | event_id=%s | staff_id=%d\n",
			ev.OccurredAt, ev.ID, ev.StaffID)
	case EventBillSettled:
		return fmt.Sprintf("[%s] Bill settled | event_id=%s | patient_id=%d | amount=%.2f | method=%s\n",
			ev.OccurredAt, ev.ID, ev.PatientID, ev.Amount, ev.PaymentMethod)
	}
	return fmt.Sprintf("[%s] %s | event_id=%s\n", ev.OccurredAt, ev.Type, ev.ID)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
