package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/vidscribe/vidscribe/pkg/language"
	"github.com/vidscribe/vidscribe/pkg/messaging"
	"github.com/vidscribe/vidscribe/pkg/translation"
)

// Detector classifies a text span's language(s).
type Detector interface {
	Detect(text string) language.Detection
}

// Translator routes a detected text span to a translation backend.
type Translator interface {
	Translate(ctx context.Context, text string, det language.Detection) translation.Result
}

// TranslationOutcome is the full result of processing one text span:
// detection, routing, and the text the rest of the pipeline should use.
type TranslationOutcome struct {
	OriginalText   string             `json:"original_text"`
	Language       language.Detection `json:"language"`
	Translation    translation.Result `json:"translation"`
	FinalText      string             `json:"final_text"`
	ConversationID string             `json:"conversation_id"`
}

// TranslationAgent detects languages and translates text spans on request.
type TranslationAgent struct {
	id       string
	broker   *messaging.Broker
	detector Detector
	router   Translator
	timeout  time.Duration
	logger   *slog.Logger
}

// NewTranslationAgent creates the agent and registers it with the broker.
func NewTranslationAgent(id string, broker *messaging.Broker, detector Detector, router Translator) *TranslationAgent {
	broker.Register(id)
	return &TranslationAgent{
		id:       id,
		broker:   broker,
		detector: detector,
		router:   router,
		timeout:  DefaultPollTimeout,
		logger:   slog.Default(),
	}
}

func (a *TranslationAgent) ID() string {
	return a.id
}

// SetPollTimeout overrides how long each queue wait blocks.
func (a *TranslationAgent) SetPollTimeout(d time.Duration) {
	a.timeout = d
}

// ProcessText detects the language of text and translates it if the routing
// decision calls for it. Backend failures leave the original text in place;
// the error travels inside the outcome's Translation field.
func (a *TranslationAgent) ProcessText(ctx context.Context, text, conversationID string) TranslationOutcome {
	if conversationID == "" {
		conversationID = messaging.NewConversationID()
	}

	det := a.detector.Detect(text)
	res := a.router.Translate(ctx, text, det)

	final := res.TranslatedText
	if res.Failed() || final == "" {
		final = text
	}
	if res.Failed() {
		a.logger.Warn("translation failed, keeping original text",
			"provider", res.Provider,
			"error", res.Error,
		)
	}

	return TranslationOutcome{
		OriginalText:   text,
		Language:       det,
		Translation:    res,
		FinalText:      final,
		ConversationID: conversationID,
	}
}

// Run listens for translation requests until ctx is cancelled.
func (a *TranslationAgent) Run(ctx context.Context) {
	runLoop(ctx, a.broker, a.id, a.timeout, a.logger, a.handleMessage)
}

func (a *TranslationAgent) handleMessage(ctx context.Context, msg messaging.Message) error {
	switch p := msg.Content.(type) {
	case TranslationRequestPayload:
		outcome := a.ProcessText(ctx, p.Text, msg.ConversationID)
		reply := messaging.NewReply(msg, a.id, TranslationResponsePayload{
			OriginalText: outcome.OriginalText,
			FinalText:    outcome.FinalText,
			Language:     outcome.Language,
			Translation:  outcome.Translation,
		})
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
