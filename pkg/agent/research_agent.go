package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vidscribe/vidscribe/pkg/messaging"
	"github.com/vidscribe/vidscribe/pkg/providers"
)

const researchSystemPrompt = `You are a Research Agent for YouTube videos. Your responsibilities include:
1. Research topics mentioned in the video
2. Find relevant information, facts, references, or context
3. Provide concise, accurate information to support the documentation
4. Focus on delivering high-quality, relevant information

Respond directly to research requests with clear, factual information.`

// ResearchAgent answers research requests with LLM-backed lookups.
type ResearchAgent struct {
	id      string
	broker  *messaging.Broker
	llm     providers.Completer
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewResearchAgent creates the agent and registers it with the broker.
func NewResearchAgent(id string, broker *messaging.Broker, llm providers.Completer, model string) *ResearchAgent {
	broker.Register(id)
	return &ResearchAgent{
		id:      id,
		broker:  broker,
		llm:     llm,
		model:   model,
		timeout: DefaultPollTimeout,
		logger:  slog.Default(),
	}
}

func (a *ResearchAgent) ID() string {
	return a.id
}

// SetPollTimeout overrides how long each queue wait blocks.
func (a *ResearchAgent) SetPollTimeout(d time.Duration) {
	a.timeout = d
}

// Run listens for research requests until ctx is cancelled.
func (a *ResearchAgent) Run(ctx context.Context) {
	runLoop(ctx, a.broker, a.id, a.timeout, a.logger, a.handleMessage)
}

func (a *ResearchAgent) handleMessage(ctx context.Context, msg messaging.Message) error {
	switch p := msg.Content.(type) {
	case RequestPayload:
		prompt := fmt.Sprintf("%s\n\nResearch request for YouTube video content: %s. Provide concise, factual information.", researchSystemPrompt, p.Text)
		findings, err := a.llm.Complete(ctx, a.model, prompt)
		if err != nil {
			return fmt.Errorf("research lookup: %w", err)
		}
		reply := messaging.NewReply(msg, a.id, ResearchResponsePayload{Text: findings})
		a.broker.Publish(reply)
		return nil
	default:
		a.logger.Debug("ignoring unhandled message",
			"agent_id", a.id,
			"message_type", string(msg.Type),
		)
		return nil
	}
}
