package agent

import (
	"github.com/vidscribe/vidscribe/pkg/language"
	"github.com/vidscribe/vidscribe/pkg/messaging"
	"github.com/vidscribe/vidscribe/pkg/translation"
)

// Typed payloads for the message kinds exchanged between the pipeline
// agents. One concrete type per kind keeps producers and consumers on a
// compile-time contract; handlers type-switch with an explicit default for
// kinds they do not consume.

// RequestPayload asks the research agent to look into a topic.
type RequestPayload struct {
	Text string
}

func (RequestPayload) Kind() messaging.Kind { return messaging.KindRequest }

// ResearchResponsePayload carries research findings back to the requester.
type ResearchResponsePayload struct {
	Text string
}

func (ResearchResponsePayload) Kind() messaging.Kind { return messaging.KindResearchResponse }

// TranslationRequestPayload asks the translation agent to process a text
// span.
type TranslationRequestPayload struct {
	Text string
}

func (TranslationRequestPayload) Kind() messaging.Kind { return messaging.KindTranslationRequest }

// TranslationResponsePayload reports the outcome of detection plus routing
// for one text span.
type TranslationResponsePayload struct {
	OriginalText string
	FinalText    string
	Language     language.Detection
	Translation  translation.Result
}

func (TranslationResponsePayload) Kind() messaging.Kind { return messaging.KindTranslationResponse }

// AcknowledgmentPayload confirms that a response was incorporated.
type AcknowledgmentPayload struct {
	Text string
}

func (AcknowledgmentPayload) Kind() messaging.Kind { return messaging.KindAcknowledgment }

// NotificationPayload is a one-way informational message.
type NotificationPayload struct {
	Text string
}

func (NotificationPayload) Kind() messaging.Kind { return messaging.KindNotification }
