package kafka

import (
	"context"
	"pawstay/config"
	"pawstay/shared/observer"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	forwarderBuffer      = 256
	forwarderBatchSize   = 32
	forwarderSendTimeout = 5 * time.Second
)

// Forwarder copies every change published on the hub to the change topic.
type Forwarder struct {
	client      Client
	hub         observer.Hub
	topic       string
	enabled     bool
	queue       chan observer.Change
	unsubscribe func()
	wg          sync.WaitGroup
	mu          sync.RWMutex
	closed      bool
}

func NewForwarder(cfg *config.Config, client Client, hub observer.Hub) *Forwarder {
	return &Forwarder{
		client:  client,
		hub:     hub,
		topic:   cfg.Kafka.ChangeTopic,
		enabled: cfg.Kafka.Enable,
		queue:   make(chan observer.Change, forwarderBuffer),
	}
}

// Start subscribes to the hub and ships changes until ctx is done or Stop is called.
func (f *Forwarder) Start(ctx context.Context) {
	if !f.enabled {
		log.Info().Msg("Kafka change forwarding disabled")

		return
	}

	f.unsubscribe = f.hub.Subscribe(func(change observer.Change) {
		f.mu.RLock()
		defer f.mu.RUnlock()

		if f.closed {
			return
		}

		select {
		case f.queue <- change:
		default:
			log.Warn().Str("collection", change.Collection).Msg("change queue full, dropping change")
		}
	})

	f.wg.Add(1)

	go f.run(ctx)
}

func (f *Forwarder) Stop() {
	if f.unsubscribe == nil {
		return
	}

	f.unsubscribe()

	f.mu.Lock()
	if !f.closed {
		f.closed = true
		close(f.queue)
	}
	f.mu.Unlock()

	f.wg.Wait()
}

func (f *Forwarder) run(ctx context.Context) {
	defer f.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-f.queue:
			if !ok {
				return
			}

			f.send(ctx, f.drain(change))
		}
	}
}

func (f *Forwarder) drain(first observer.Change) []Message {
	batch := []Message{toMessage(first)}

	for len(batch) < forwarderBatchSize {
		select {
		case change, ok := <-f.queue:
			if !ok {
				return batch
			}

			batch = append(batch, toMessage(change))
		default:
			return batch
		}
	}

	return batch
}

func (f *Forwarder) send(ctx context.Context, batch []Message) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), forwarderSendTimeout)
	defer cancel()

	if err := f.client.SendMessages(ctx, f.topic, batch...); err != nil {
		log.Error().Err(err).Int("count", len(batch)).Msg("failed to forward changes")
	}
}

func toMessage(change observer.Change) Message {
	return Message{
		Key:   change.Collection,
		Value: change,
	}
}
