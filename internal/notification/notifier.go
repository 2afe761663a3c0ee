package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/frahmantamala/hr-leave-management/internal/core/events"
)

// Job is one webhook delivery: a leave event serialized for the
// downstream HR system.
type Job struct {
	EventID   string
	EventType string
	Payload   interface{}
}

type Worker struct {
	ID         int
	WorkerPool chan chan Job
	JobChannel chan Job
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan Job, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Job),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, deliver func(Job)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("worker delivering notification", "worker_id", w.ID, "event_id", job.EventID)
				deliver(job)
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

type Config struct {
	Enabled      bool
	WebhookURL   string
	APIKey       string
	SendTimeout  time.Duration
	MaxWorkers   int
	JobQueueSize int
}

// Notifier delivers leave lifecycle events to an external webhook
// through a bounded worker pool. A full queue drops the notification
// rather than blocking the request path.
type Notifier struct {
	webhookURL  string
	apiKey      string
	sendTimeout time.Duration
	logger      *slog.Logger

	jobQueue   chan Job
	workerPool chan chan Job
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewNotifier(config Config, logger *slog.Logger) *Notifier {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 5
	}
	jobQueueSize := config.JobQueueSize
	if jobQueueSize <= 0 {
		jobQueueSize = 100
	}
	sendTimeout := config.SendTimeout
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}

	n := &Notifier{
		webhookURL:  config.WebhookURL,
		apiKey:      config.APIKey,
		sendTimeout: sendTimeout,
		logger:      logger,

		maxWorkers: maxWorkers,
		jobQueue:   make(chan Job, jobQueueSize),
		workerPool: make(chan chan Job, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	n.startWorkerPool()

	return n
}

func (n *Notifier) startWorkerPool() {
	n.once.Do(func() {
		for i := 0; i < n.maxWorkers; i++ {
			worker := NewWorker(i, n.workerPool, n.logger)
			worker.Start(n.ctx, &n.wg, n.deliver)
		}

		go n.dispatch()

		n.logger.Info("notification worker pool started",
			"max_workers", n.maxWorkers,
			"queue_size", cap(n.jobQueue))
	})
}

func (n *Notifier) dispatch() {
	n.wg.Add(1)
	defer n.wg.Done()

	for {
		select {
		case job := <-n.jobQueue:
			select {
			case jobChannel := <-n.workerPool:
				select {
				case jobChannel <- job:
				case <-n.ctx.Done():
					n.logger.Info("notification dispatcher shutting down")
					return
				}
			case <-n.ctx.Done():
				n.logger.Info("notification dispatcher shutting down")
				return
			}
		case <-n.ctx.Done():
			n.logger.Info("notification dispatcher shutting down")
			return
		}
	}
}

func (n *Notifier) Shutdown() {
	n.logger.Info("shutting down notifier")
	n.cancel()
	n.wg.Wait()
	n.logger.Info("notifier shutdown complete")
}

// RegisterSubscriptions wires the notifier to the leave lifecycle
// events on the bus.
func (n *Notifier) RegisterSubscriptions(bus *events.EventBus) {
	handler := func(ctx context.Context, event events.Event) error {
		return n.Enqueue(event)
	}

	bus.Subscribe(events.EventTypeLeaveRequested, handler)
	bus.Subscribe(events.EventTypeLeaveActioned, handler)
	bus.Subscribe(events.EventTypeLeaveWithdrawn, handler)
	bus.Subscribe(events.EventTypeLeaveConsumed, handler)
}

// Enqueue hands an event to the worker pool. A full queue is reported
// as an error but never blocks the caller.
func (n *Notifier) Enqueue(event events.Event) error {
	job := Job{
		EventID:   event.EventID(),
		EventType: event.EventType(),
		Payload:   event.Payload(),
	}

	select {
	case n.jobQueue <- job:
		n.logger.Debug("notification queued",
			"event_id", job.EventID,
			"event_type", job.EventType,
			"queue_length", len(n.jobQueue))
		return nil
	default:
		n.logger.Warn("notification queue full, dropping event",
			"event_id", job.EventID,
			"event_type", job.EventType,
			"queue_capacity", cap(n.jobQueue))
		return fmt.Errorf("notification queue full")
	}
}

func (n *Notifier) deliver(job Job) {
	body := map[string]interface{}{
		"event_id":   job.EventID,
		"event_type": job.EventType,
		"payload":    job.Payload,
		"sent_at":    time.Now().UTC(),
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		n.logger.Error("failed to marshal notification", "event_id", job.EventID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(n.ctx, n.sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		n.logger.Error("failed to create webhook request", "event_id", job.EventID, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("X-API-Key", n.apiKey)
	}

	client := &http.Client{Timeout: n.sendTimeout}
	resp, err := client.Do(req)
	if err != nil {
		n.logger.Error("webhook delivery failed",
			"event_id", job.EventID,
			"event_type", job.EventType,
			"error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		n.logger.Info("webhook delivered",
			"event_id", job.EventID,
			"event_type", job.EventType,
			"status_code", resp.StatusCode)
	} else {
		n.logger.Warn("webhook delivery rejected",
			"event_id", job.EventID,
			"event_type", job.EventType,
			"status_code", resp.StatusCode)
	}
}
