package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultQueueCapacity bounds each agent's inbound queue unless overridden
// with WithQueueCapacity.
const DefaultQueueCapacity = 512

// Broker routes Messages between registered agents. Each agent owns one FIFO
// inbound queue and a list of subscribers that additionally receive every
// message the agent sends. All publishes are recorded in per-conversation
// history, whether or not they were deliverable.
//
// Delivery is best effort: publishing to an unregistered receiver drops the
// message silently, and a full queue drops the newest message rather than
// blocking the publisher. Reliability beyond that belongs to the
// conversation-level protocol built on top.
type Broker struct {
	mu          sync.RWMutex
	queues      map[string]chan Message
	subscribers map[string][]string
	history     map[string][]Message
	queueCap    int
	logger      *slog.Logger
}

type BrokerOption func(*Broker)

// WithQueueCapacity sets the per-agent queue capacity.
func WithQueueCapacity(n int) BrokerOption {
	return func(b *Broker) {
		if n > 0 {
			b.queueCap = n
		}
	}
}

// WithLogger sets the logger used for dropped-message warnings.
func WithLogger(l *slog.Logger) BrokerOption {
	return func(b *Broker) {
		b.logger = l
	}
}

// NewBroker creates a new message broker.
func NewBroker(opts ...BrokerOption) *Broker {
	b := &Broker{
		queues:      make(map[string]chan Message),
		subscribers: make(map[string][]string),
		history:     make(map[string][]Message),
		queueCap:    DefaultQueueCapacity,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register creates the agent's queue and subscriber list. Registering an
// already-registered id is a no-op.
func (b *Broker) Register(agentID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.queues[agentID]; exists {
		return
	}
	b.queues[agentID] = make(chan Message, b.queueCap)
	b.subscribers[agentID] = nil
}

// Subscribe adds a fan-out edge: every message publisherID sends is also
// delivered to subscriberID. Duplicate edges are suppressed. The subscriber
// must already be registered, otherwise its deliveries would vanish into a
// queue that does not exist; an unknown publisher is ignored so that wiring
// order does not matter.
func (b *Broker) Subscribe(subscriberID, publisherID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.queues[subscriberID]; !ok {
		return fmt.Errorf("subscriber %s is not registered", subscriberID)
	}
	if _, ok := b.queues[publisherID]; !ok {
		b.logger.Debug("subscribe to unknown publisher ignored",
			"subscriber", subscriberID,
			"publisher", publisherID,
		)
		return nil
	}
	for _, id := range b.subscribers[publisherID] {
		if id == subscriberID {
			return nil
		}
	}
	b.subscribers[publisherID] = append(b.subscribers[publisherID], subscriberID)
	return nil
}

// Publish records msg in conversation history, enqueues it for the receiver
// if registered, and fans it out to the sender's subscribers, skipping the
// subscriber that already received it as the direct receiver. It never fails
// the caller and never blocks on a slow consumer.
func (b *Broker) Publish(msg Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.history[msg.ConversationID] = append(b.history[msg.ConversationID], msg)

	b.enqueue(msg.Receiver, msg)
	for _, sub := range b.subscribers[msg.Sender] {
		if sub != msg.Receiver {
			b.enqueue(sub, msg)
		}
	}
}

// enqueue delivers msg to one agent's queue. Unregistered agents and full
// queues drop the message. Caller holds b.mu.
func (b *Broker) enqueue(agentID string, msg Message) {
	ch, ok := b.queues[agentID]
	if !ok {
		return
	}
	select {
	case ch <- msg:
	default:
		b.logger.Warn("queue full, dropping message",
			"agent_id", agentID,
			"message_id", msg.ID,
			"message_type", string(msg.Type),
		)
	}
}

// Get blocks up to timeout for the next message on the agent's queue and
// reports whether one arrived. An unregistered id returns immediately.
// Absence is a normal outcome of polling, not an error.
func (b *Broker) Get(ctx context.Context, agentID string, timeout time.Duration) (Message, bool) {
	b.mu.RLock()
	ch, ok := b.queues[agentID]
	b.mu.RUnlock()
	if !ok {
		return Message{}, false
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg := <-ch:
		return msg, true
	case <-timer.C:
		return Message{}, false
	case <-ctx.Done():
		return Message{}, false
	}
}

// History returns a copy of the accumulated message sequence for a
// conversation, including messages that were never deliverable.
func (b *Broker) History(conversationID string) []Message {
	b.mu.RLock()
	defer b.mu.RUnlock()

	msgs := make([]Message, len(b.history[conversationID]))
	copy(msgs, b.history[conversationID])
	return msgs
}

// Reset drops all queues, subscriptions, and history.
func (b *Broker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queues = make(map[string]chan Message)
	b.subscribers = make(map[string][]string)
	b.history = make(map[string][]Message)
}
