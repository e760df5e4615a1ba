package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/vidscribe/vidscribe/pkg/messaging"
)

// DefaultPollTimeout bounds each blocking wait on the agent's inbound queue.
const DefaultPollTimeout = time.Second

// Agent is an independent worker with a broker identity and a blocking
// receive loop.
type Agent interface {
	ID() string
	// Run drains the agent's queue until ctx is cancelled.
	Run(ctx context.Context)
}

// runLoop is the shared receive loop: block for the next message, hand it to
// the handler, repeat. Handler failures are logged and the loop keeps
// polling; a single bad message never terminates the agent.
func runLoop(ctx context.Context, broker *messaging.Broker, id string, timeout time.Duration, logger *slog.Logger, handle func(context.Context, messaging.Message) error) {
	logger.Info("agent running", "agent_id", id)
	for {
		if ctx.Err() != nil {
			logger.Info("agent stopped", "agent_id", id)
			return
		}
		msg, ok := broker.Get(ctx, id, timeout)
		if !ok {
			continue
		}
		if err := handle(ctx, msg); err != nil {
			logger.Error("message handling failed",
				"agent_id", id,
				"message_id", msg.ID,
				"message_type", string(msg.Type),
				"error", err,
			)
		}
	}
}
