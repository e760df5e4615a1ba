package agent

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vidscribe/vidscribe/pkg/language"
	"github.com/vidscribe/vidscribe/pkg/messaging"
	"github.com/vidscribe/vidscribe/pkg/translation"
)

// mockCompleter implements providers.Completer for testing.
type mockCompleter struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (m *mockCompleter) Complete(ctx context.Context, model string, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	return m.response, m.err
}

func (m *mockCompleter) set(response string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = response
	m.err = err
}

func (m *mockCompleter) allPrompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

type stubDetector struct {
	det language.Detection
}

func (s stubDetector) Detect(string) language.Detection { return s.det }

type stubRouter struct {
	res translation.Result
}

func (s stubRouter) Translate(context.Context, string, language.Detection) translation.Result {
	return s.res
}

func englishDetection() language.Detection {
	return language.Detection{
		Language: "English",
		Code:     "en-IN",
		Languages: []language.Candidate{
			{Language: "English", Code: "en-IN", Confidence: 0.95},
		},
	}
}

func hindiDetection() language.Detection {
	return language.Detection{
		Language: "Hindi", Code: "hi-IN", IsIndian: true,
		Languages: []language.Candidate{
			{Language: "Hindi", Code: "hi-IN", IsIndian: true, Confidence: 0.9},
		},
	}
}

func TestTranslationAgentProcessText(t *testing.T) {
	ctx := context.Background()

	t.Run("translated text becomes final text", func(t *testing.T) {
		broker := messaging.NewBroker()
		a := NewTranslationAgent("translator", broker,
			stubDetector{det: hindiDetection()},
			stubRouter{res: translation.Result{TranslatedText: "hello", Provider: translation.ProviderSarvam}},
		)

		got := a.ProcessText(ctx, "namaste", "conv-1")
		if got.FinalText != "hello" {
			t.Errorf("FinalText = %q, want %q", got.FinalText, "hello")
		}
		if got.OriginalText != "namaste" || got.ConversationID != "conv-1" {
			t.Errorf("unexpected outcome: %+v", got)
		}
	})

	t.Run("backend failure keeps original text", func(t *testing.T) {
		broker := messaging.NewBroker()
		a := NewTranslationAgent("translator", broker,
			stubDetector{det: hindiDetection()},
			stubRouter{res: translation.Result{Error: "Sarvam API key not set", Provider: translation.ProviderSarvam}},
		)

		got := a.ProcessText(ctx, "namaste", "conv-1")
		if got.FinalText != "namaste" {
			t.Errorf("FinalText = %q, want the original text", got.FinalText)
		}
		if !got.Translation.Failed() {
			t.Error("outcome should carry the backend error")
		}
	})

	t.Run("missing conversation id is generated", func(t *testing.T) {
		broker := messaging.NewBroker()
		a := NewTranslationAgent("translator", broker,
			stubDetector{det: englishDetection()},
			stubRouter{res: translation.Result{TranslatedText: "text", Provider: translation.ProviderNone}},
		)

		got := a.ProcessText(ctx, "text", "")
		if got.ConversationID == "" {
			t.Error("expected a generated conversation id")
		}
	})
}

func TestTranslationAgentOverBroker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := messaging.NewBroker()
	broker.Register("doc_agent")

	a := NewTranslationAgent("translation_agent", broker,
		stubDetector{det: hindiDetection()},
		stubRouter{res: translation.Result{TranslatedText: "hello", Provider: translation.ProviderSarvam}},
	)
	go a.Run(ctx)

	req := messaging.New("doc_agent", "translation_agent", "conv-1", TranslationRequestPayload{Text: "namaste"})
	broker.Publish(req)

	reply, ok := broker.Get(ctx, "doc_agent", 2*time.Second)
	if !ok {
		t.Fatal("no translation response received")
	}
	if reply.Type != messaging.KindTranslationResponse {
		t.Errorf("reply.Type = %q, want %q", reply.Type, messaging.KindTranslationResponse)
	}
	if reply.ReplyTo != req.ID {
		t.Errorf("reply.ReplyTo = %q, want %q", reply.ReplyTo, req.ID)
	}
	payload, ok := reply.Content.(TranslationResponsePayload)
	if !ok {
		t.Fatalf("unexpected payload %T", reply.Content)
	}
	if payload.FinalText != "hello" || payload.OriginalText != "namaste" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestResearchAgentOverBroker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := messaging.NewBroker()
	broker.Register("doc_agent")

	llm := &mockCompleter{response: "research findings"}
	a := NewResearchAgent("research_agent", broker, llm, "gpt-4o-mini")
	go a.Run(ctx)

	req := messaging.New("doc_agent", "research_agent", "conv-1", RequestPayload{Text: "quantum computing"})
	broker.Publish(req)

	reply, ok := broker.Get(ctx, "doc_agent", 2*time.Second)
	if !ok {
		t.Fatal("no research response received")
	}
	if reply.Type != messaging.KindResearchResponse {
		t.Errorf("reply.Type = %q, want %q", reply.Type, messaging.KindResearchResponse)
	}
	payload := reply.Content.(ResearchResponsePayload)
	if payload.Text != "research findings" {
		t.Errorf("payload.Text = %q", payload.Text)
	}
	if prompts := llm.allPrompts(); len(prompts) != 1 || !strings.Contains(prompts[0], "quantum computing") {
		t.Errorf("unexpected prompts: %v", prompts)
	}
}

func TestResearchAgentSurvivesLLMFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := messaging.NewBroker()
	broker.Register("doc_agent")

	llm := &mockCompleter{}
	llm.set("", errors.New("backend down"))
	a := NewResearchAgent("research_agent", broker, llm, "gpt-4o-mini")
	go a.Run(ctx)

	broker.Publish(messaging.New("doc_agent", "research_agent", "conv-1", RequestPayload{Text: "first"}))
	if msg, ok := broker.Get(ctx, "doc_agent", 200*time.Millisecond); ok {
		t.Fatalf("expected no reply after LLM failure, got %+v", msg)
	}

	// The loop must keep polling: a later request succeeds.
	llm.set("recovered", nil)
	broker.Publish(messaging.New("doc_agent", "research_agent", "conv-1", RequestPayload{Text: "second"}))
	reply, ok := broker.Get(ctx, "doc_agent", 2*time.Second)
	if !ok {
		t.Fatal("agent stopped processing after a handler failure")
	}
	if reply.Content.(ResearchResponsePayload).Text != "recovered" {
		t.Errorf("unexpected reply: %+v", reply.Content)
	}
}

func TestDocumentationAgent(t *testing.T) {
	ctx := context.Background()

	t.Run("process transcript and summarize", func(t *testing.T) {
		broker := messaging.NewBroker()
		llm := &mockCompleter{response: "analysis"}
		a := NewDocumentationAgent("doc_agent", broker, llm, "gpt-4o-mini", "research_agent")

		segments := []SegmentInput{
			{Text: "intro to the topic", Start: 0},
			{Text: "deeper discussion", Start: 12.5},
		}
		result, err := a.ProcessTranscript(ctx, segments, "conv-1")
		if err != nil {
			t.Fatalf("ProcessTranscript failed: %v", err)
		}
		if len(result.Segments) != 2 {
			t.Fatalf("got %d segments, want 2", len(result.Segments))
		}
		if result.Segments[1].Timestamp != 12.5 || result.Segments[1].Analysis != "analysis" {
			t.Errorf("unexpected segment analysis: %+v", result.Segments[1])
		}
		if result.Summary != "analysis" {
			t.Errorf("summary = %q", result.Summary)
		}
		if result.ConversationID != "conv-1" {
			t.Errorf("conversation id = %q", result.ConversationID)
		}
		// Two segment prompts plus one summary prompt.
		if len(llm.prompts) != 3 {
			t.Errorf("llm called %d times, want 3", len(llm.prompts))
		}
		if !strings.Contains(llm.prompts[2], "intro to the topic") {
			t.Errorf("summary prompt missing notes: %q", llm.prompts[2])
		}
	})

	t.Run("empty transcript summary", func(t *testing.T) {
		broker := messaging.NewBroker()
		a := NewDocumentationAgent("doc_agent", broker, &mockCompleter{}, "gpt-4o-mini", "research_agent")

		summary, err := a.GenerateSummary(ctx)
		if err != nil {
			t.Fatalf("GenerateSummary failed: %v", err)
		}
		if summary != "No video data available to summarize." {
			t.Errorf("summary = %q", summary)
		}
	})

	t.Run("research response produces acknowledgment", func(t *testing.T) {
		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		broker := messaging.NewBroker()
		broker.Register("research_agent")

		llm := &mockCompleter{response: "incorporated"}
		a := NewDocumentationAgent("doc_agent", broker, llm, "gpt-4o-mini", "research_agent")
		go a.Run(runCtx)

		broker.Publish(messaging.New("research_agent", "doc_agent", "conv-1", ResearchResponsePayload{Text: "facts"}))

		ack, ok := broker.Get(runCtx, "research_agent", 2*time.Second)
		if !ok {
			t.Fatal("no acknowledgment received")
		}
		if ack.Type != messaging.KindAcknowledgment {
			t.Errorf("ack.Type = %q, want %q", ack.Type, messaging.KindAcknowledgment)
		}
	})

	t.Run("translation response annotates matching note", func(t *testing.T) {
		broker := messaging.NewBroker()
		llm := &mockCompleter{response: "analysis"}
		a := NewDocumentationAgent("doc_agent", broker, llm, "gpt-4o-mini", "research_agent")

		if _, err := a.ProcessTranscript(ctx, []SegmentInput{{Text: "namaste duniya", Start: 3}}, "conv-1"); err != nil {
			t.Fatalf("ProcessTranscript failed: %v", err)
		}

		if err := a.handleMessage(ctx, messaging.New("translation_agent", "doc_agent", "conv-1", TranslationResponsePayload{
			OriginalText: "namaste duniya",
			FinalText:    "hello world",
			Language:     hindiDetection(),
		})); err != nil {
			t.Fatalf("handleMessage failed: %v", err)
		}

		a.mu.Lock()
		n := a.notes[3]
		a.mu.Unlock()
		if n == nil || n.translatedText != "hello world" {
			t.Errorf("note not annotated: %+v", n)
		}
	})

	t.Run("request research publishes to research agent", func(t *testing.T) {
		broker := messaging.NewBroker()
		broker.Register("research_agent")
		a := NewDocumentationAgent("doc_agent", broker, &mockCompleter{}, "gpt-4o-mini", "research_agent")

		a.RequestResearch("black holes", "conv-1")

		msg, ok := broker.Get(ctx, "research_agent", time.Second)
		if !ok {
			t.Fatal("research agent received nothing")
		}
		if msg.Type != messaging.KindRequest {
			t.Errorf("msg.Type = %q, want %q", msg.Type, messaging.KindRequest)
		}
		if msg.Content.(RequestPayload).Text != "black holes" {
			t.Errorf("unexpected payload: %+v", msg.Content)
		}
	})
}
