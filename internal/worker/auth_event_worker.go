package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"sharespace/internal/model"
)

var errEmptyEvent = errors.New("auth event has no user or type")

// channelOpener is satisfied by *amqp.Connection.
type channelOpener interface {
	Channel() (*amqp.Channel, error)
}

type AuthEventStore interface {
	Create(ctx context.Context, event *model.AuthEvent) error
}

// AuthEventWorker drains the audit queue into the relational audit log.
type AuthEventWorker struct {
	conn      channelOpener
	store     AuthEventStore
	queueName string
	log       *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewAuthEventWorker(conn *amqp.Connection, store AuthEventStore, queueName string, log *zap.Logger) *AuthEventWorker {
	if log == nil {
		log = zap.NewNop()
	}
	w := &AuthEventWorker{
		store:     store,
		queueName: queueName,
		log:       log,
	}
	if conn != nil {
		w.conn = conn
	}
	return w
}

func (w *AuthEventWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}
	if w.conn == nil {
		return errors.New("auth event worker has no connection")
	}

	ch, err := w.conn.Channel()
	if err != nil {
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if _, err := ch.QueueDeclare(w.queueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	if err := ch.Qos(16, 0, false); err != nil {
		_ = ch.Close()
		return fmt.Errorf("set worker qos failed: %w", err)
	}

	deliveries, err := ch.Consume(w.queueName, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					w.log.Warn("auth event deliveries closed", zap.String("queue", w.queueName))
					return
				}

				if err := w.handle(workerCtx, d.Body); err != nil {
					w.log.Error("persist auth event failed", zap.Error(err))
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	w.log.Info("auth event worker started", zap.String("queue", w.queueName))
	return nil
}

func (w *AuthEventWorker) handle(ctx context.Context, body []byte) error {
	var event model.AuthEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode auth event failed: %w", err)
	}
	if event.UserID == "" || event.Type == "" {
		return errEmptyEvent
	}
	// the queue may redeliver; let the database assign the key
	event.ID = 0
	return w.store.Create(ctx, &event)
}

func (w *AuthEventWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
