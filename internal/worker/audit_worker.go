package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"varboard/internal/logger"
	"varboard/internal/model"
	"varboard/internal/platform/rabbitmq"
)

// AuditStore persists audit records. *repository.AuditRepository
// satisfies it.
type AuditStore interface {
	Create(record *model.AuditRecord) error
}

// AuditWorker consumes change events and stores them as audit records.
type AuditWorker struct {
	conn      *amqp.Connection
	store     AuditStore
	queueName string
	log       logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewAuditWorker(conn *amqp.Connection, store AuditStore, queueName string, log logger.Logger) *AuditWorker {
	return &AuditWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
		log:       log.WithComponent("worker.audit"),
	}
}

func (w *AuditWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(w.queueName, "varboard-audit", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

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
					return
				}
				if err := w.handle(d.Body); err != nil {
					w.log.WithError(err).Warnf("drop change event")
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	w.log.Infof("consuming %s", w.queueName)
	return nil
}

func (w *AuditWorker) handle(body []byte) error {
	var ev model.ChangeEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode change event failed: %w", err)
	}
	if ev.Entity == "" || ev.Action == "" {
		return fmt.Errorf("change event without entity or action")
	}
	return w.store.Create(model.NewAuditRecord(ev))
}

func (w *AuditWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
