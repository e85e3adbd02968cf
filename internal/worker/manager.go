package worker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"likebar/internal/queue"
)

const (
	DefaultWorkerCount  = 2
	DefaultBatchSize    = 10
	DefaultBlockTimeout = 5 * time.Second
)

// Manager runs the goroutines that consume relayed realtime events from the
// stream and hand them to the Handler.
type Manager struct {
	consumer    queue.Consumer
	handler     *Handler
	workerCount int
	batchSize   int64
	blockTime   time.Duration

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

type ManagerConfig struct {
	WorkerCount  int
	BatchSize    int64
	BlockTimeout time.Duration
}

func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		WorkerCount:  DefaultWorkerCount,
		BatchSize:    DefaultBatchSize,
		BlockTimeout: DefaultBlockTimeout,
	}
}

func NewManager(consumer queue.Consumer, handler *Handler, cfg ManagerConfig) *Manager {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = DefaultWorkerCount
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = DefaultBlockTimeout
	}

	return &Manager{
		consumer:    consumer,
		handler:     handler,
		workerCount: cfg.WorkerCount,
		batchSize:   cfg.BatchSize,
		blockTime:   cfg.BlockTimeout,
	}
}

// Start spins up the worker goroutines. Call Stop to shut down.
func (m *Manager) Start(ctx context.Context) error {
	m.ctx, m.cancel = context.WithCancel(ctx)

	if err := m.consumer.EnsureGroup(m.ctx, queue.StreamRealtime, queue.ConsumerGroupRealtime); err != nil {
		return err
	}

	log.Printf("[Manager] starting %d workers for stream=%s group=%s",
		m.workerCount, queue.StreamRealtime, queue.ConsumerGroupRealtime)

	for i := 0; i < m.workerCount; i++ {
		workerID := i + 1
		m.wg.Add(1)
		go m.runWorker(workerID, fmt.Sprintf("worker-%d", workerID))
	}

	return nil
}

// Stop cancels the workers and blocks until they finish.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	log.Println("[Manager] all workers stopped")
}

func (m *Manager) runWorker(id int, consumerName string) {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		messages, err := m.consumer.Read(m.ctx, queue.StreamRealtime, queue.ConsumerGroupRealtime,
			consumerName, m.batchSize, m.blockTime)
		if err != nil {
			if m.ctx.Err() != nil {
				return
			}
			log.Printf("[Worker %d] read error: %v", id, err)
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range messages {
			if err := m.handler.Handle(m.ctx, msg.Event); err != nil {
				log.Printf("[Worker %d] handle %s: %v", id, msg.ID, err)
				// Fall through to ack anyway: realtime events are ephemeral
				// and a redelivery would arrive too late to matter.
			}
			if err := m.consumer.Ack(m.ctx, queue.StreamRealtime, queue.ConsumerGroupRealtime, msg.ID); err != nil {
				log.Printf("[Worker %d] ack %s: %v", id, msg.ID, err)
			}
		}
	}
}
