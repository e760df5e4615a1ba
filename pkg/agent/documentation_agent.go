package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vidscribe/vidscribe/pkg/language"
	"github.com/vidscribe/vidscribe/pkg/memory"
	"github.com/vidscribe/vidscribe/pkg/messaging"
	"github.com/vidscribe/vidscribe/pkg/providers"
)

const documentationSystemPrompt = `You are a Documentation Agent for YouTube video transcripts. Your responsibilities include:
1. Process YouTube video transcripts
2. Identify key points, topics, and main ideas
3. Organize content into a coherent and structured format
4. Create concise summaries
5. Request research information when necessary

Always maintain a professional tone and ensure your documentation is clear and organized.`

// memoryCapacity bounds the agent's context stream.
const memoryCapacity = 100

// SegmentInput is one transcript span handed to the documentation agent.
type SegmentInput struct {
	Text  string
	Start float64
}

// SegmentAnalysis is the per-segment output.
type SegmentAnalysis struct {
	Timestamp float64 `json:"timestamp"`
	Text      string  `json:"text"`
	Analysis  string  `json:"analysis"`
}

// DocumentationResult aggregates the per-segment analyses and the overall
// summary for one video.
type DocumentationResult struct {
	Segments       []SegmentAnalysis `json:"processed_segments"`
	Summary        string            `json:"summary"`
	ConversationID string            `json:"conversation_id"`
}

// note is the agent's record for one transcript timestamp.
type note struct {
	text           string
	analysis       string
	translatedText string
	language       language.Detection
}

// DocumentationAgent turns transcript segments into structured notes and a
// summary. It requests research over the broker and folds responses back
// into its notes.
type DocumentationAgent struct {
	id              string
	broker          *messaging.Broker
	llm             providers.Completer
	model           string
	researchAgentID string
	memory          *memory.Memory
	timeout         time.Duration
	logger          *slog.Logger

	mu             sync.Mutex
	conversationID string
	notes          map[float64]*note
}

// NewDocumentationAgent creates the agent and registers it with the broker.
// researchAgentID names the agent that answers its research requests.
func NewDocumentationAgent(id string, broker *messaging.Broker, llm providers.Completer, model, researchAgentID string) *DocumentationAgent {
	broker.Register(id)
	return &DocumentationAgent{
		id:              id,
		broker:          broker,
		llm:             llm,
		model:           model,
		researchAgentID: researchAgentID,
		memory:          memory.NewMemory(memoryCapacity),
		timeout:         DefaultPollTimeout,
		logger:          slog.Default(),
		notes:           make(map[float64]*note),
	}
}

func (a *DocumentationAgent) ID() string {
	return a.id
}

// SetPollTimeout overrides how long each queue wait blocks.
func (a *DocumentationAgent) SetPollTimeout(d time.Duration) {
	a.timeout = d
}

// StartProcessing begins a new video: clears notes and memory and returns a
// fresh conversation ID.
func (a *DocumentationAgent) StartProcessing() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.conversationID = messaging.NewConversationID()
	a.notes = make(map[float64]*note)
	a.memory.Reset()
	return a.conversationID
}

// ProcessTranscript analyzes each segment and generates a summary.
func (a *DocumentationAgent) ProcessTranscript(ctx context.Context, segments []SegmentInput, conversationID string) (*DocumentationResult, error) {
	if conversationID == "" {
		conversationID = a.StartProcessing()
	}
	a.mu.Lock()
	a.conversationID = conversationID
	a.mu.Unlock()

	analyses := make([]SegmentAnalysis, 0, len(segments))
	for _, seg := range segments {
		analysis, err := a.processSegment(ctx, seg)
		if err != nil {
			return nil, fmt.Errorf("segment at %.1fs: %w", seg.Start, err)
		}
		analyses = append(analyses, analysis)
	}

	summary, err := a.GenerateSummary(ctx)
	if err != nil {
		return nil, err
	}

	return &DocumentationResult{
		Segments:       analyses,
		Summary:        summary,
		ConversationID: conversationID,
	}, nil
}

func (a *DocumentationAgent) processSegment(ctx context.Context, seg SegmentInput) (SegmentAnalysis, error) {
	prompt := fmt.Sprintf("%s\n\nProcess this video transcript segment at timestamp %.1fs: %s", documentationSystemPrompt, seg.Start, seg.Text)
	analysis, err := a.llm.Complete(ctx, a.model, prompt)
	if err != nil {
		return SegmentAnalysis{}, err
	}

	a.mu.Lock()
	a.notes[seg.Start] = &note{text: seg.Text, analysis: analysis}
	a.mu.Unlock()
	a.memory.Store(fmt.Sprintf("%.1f: %s", seg.Start, seg.Text))

	return SegmentAnalysis{
		Timestamp: seg.Start,
		Text:      seg.Text,
		Analysis:  analysis,
	}, nil
}

// GenerateSummary condenses the accumulated notes into a summary.
func (a *DocumentationAgent) GenerateSummary(ctx context.Context) (string, error) {
	a.mu.Lock()
	if len(a.notes) == 0 {
		a.mu.Unlock()
		return "No video data available to summarize.", nil
	}
	timestamps := make([]float64, 0, len(a.notes))
	for ts := range a.notes {
		timestamps = append(timestamps, ts)
	}
	sort.Float64s(timestamps)
	var sb strings.Builder
	for _, ts := range timestamps {
		fmt.Fprintf(&sb, "%.1f: %s\n", ts, a.notes[ts].text)
	}
	a.mu.Unlock()

	prompt := fmt.Sprintf("%s\n\nGenerate a concise summary of this YouTube video, including key points and topics:\n%s", documentationSystemPrompt, sb.String())
	return a.llm.Complete(ctx, a.model, prompt)
}

// RequestResearch asks the research agent for additional context on a topic.
func (a *DocumentationAgent) RequestResearch(topic, conversationID string) {
	msg := messaging.New(a.id, a.researchAgentID, conversationID, RequestPayload{Text: topic})
	a.broker.Publish(msg)
}

// Run listens for research and translation responses until ctx is cancelled.
func (a *DocumentationAgent) Run(ctx context.Context) {
	runLoop(ctx, a.broker, a.id, a.timeout, a.logger, a.handleMessage)
}

func (a *DocumentationAgent) handleMessage(ctx context.Context, msg messaging.Message) error {
	switch p := msg.Content.(type) {
	case ResearchResponsePayload:
		return a.incorporateResearch(ctx, msg, p)
	case TranslationResponsePayload:
		a.annotateTranslation(p)
		return nil
	default:
		a.logger.Debug("ignoring unhandled message",
			"agent_id", a.id,
			"message_type", string(msg.Type),
		)
		return nil
	}
}

func (a *DocumentationAgent) incorporateResearch(ctx context.Context, msg messaging.Message, p ResearchResponsePayload) error {
	prompt := fmt.Sprintf("%s\n\nIncorporate this research information into video analysis: %s", documentationSystemPrompt, p.Text)
	if _, err := a.llm.Complete(ctx, a.model, prompt); err != nil {
		return fmt.Errorf("incorporating research: %w", err)
	}
	a.memory.Store("research: " + p.Text)

	ack := messaging.NewReply(msg, a.id, AcknowledgmentPayload{
		Text: "Research information incorporated into video analysis.",
	})
	a.broker.Publish(ack)
	return nil
}

// annotateTranslation attaches translation details to the note whose text
// matches the translated span's original.
func (a *DocumentationAgent) annotateTranslation(p TranslationResponsePayload) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, n := range a.notes {
		if n.text == p.OriginalText {
			n.translatedText = p.FinalText
			n.language = p.Language
			return
		}
	}
}
