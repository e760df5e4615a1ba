package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Kind tags the protocol-level type of a Message. The broker never interprets
// it; consumers type-switch on the Payload and the Kind travels along so that
// conversation history and logs stay readable.
type Kind string

const (
	KindRequest             Kind = "request"
	KindResponse            Kind = "response"
	KindNotification        Kind = "notification"
	KindResearchResponse    Kind = "research_response"
	KindTranslationRequest  Kind = "translation_request"
	KindTranslationResponse Kind = "translation_response"
	KindAcknowledgment      Kind = "acknowledgment"
)

// Payload is the typed content of a Message. Each message kind has exactly one
// concrete payload type, declared by the package that produces it, so senders
// and receivers share a compile-time contract instead of an open map.
type Payload interface {
	Kind() Kind
}

// Message is an immutable unit of communication between two named agents,
// scoped to a conversation. A reply is always a new Message.
type Message struct {
	ID             string
	Timestamp      time.Time
	Sender         string            // agent ID of the sender
	Receiver       string            // agent ID of the intended receiver
	Type           Kind              // derived from Content.Kind()
	Content        Payload           // typed payload for this kind
	ReplyTo        string            // ID of the message this one answers, if any
	ConversationID string            // groups a logical exchange
	Metadata       map[string]string // optional free-form side channel
}

// New creates a Message with a fresh ID and timestamp. The message type is
// taken from the payload.
func New(sender, receiver, conversationID string, content Payload) Message {
	return Message{
		ID:             uuid.New().String(),
		Timestamp:      time.Now(),
		Sender:         sender,
		Receiver:       receiver,
		Type:           content.Kind(),
		Content:        content,
		ConversationID: conversationID,
	}
}

// NewReply creates a Message answering parent: it is addressed to the parent's
// sender, carries the parent's conversation ID, and records the causal link in
// ReplyTo.
func NewReply(parent Message, sender string, content Payload) Message {
	msg := New(sender, parent.Sender, parent.ConversationID, content)
	msg.ReplyTo = parent.ID
	return msg
}

// NewConversationID returns a fresh conversation grouping key.
func NewConversationID() string {
	return uuid.New().String()
}
