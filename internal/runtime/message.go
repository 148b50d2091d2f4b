package runtime

import (
	idspkg "github.com/drblury/msgmux/internal/runtime/ids"
	metadatapkg "github.com/drblury/msgmux/internal/runtime/metadata"
)

// MetadataKeyCorrelationID carries a correlation identifier across dispatches.
const MetadataKeyCorrelationID = "correlation_id"

// Message is the envelope handed to Dispatch. The payload is opaque to the
// registry; only the Type field participates in handler resolution. Messages
// are treated as immutable after construction: the dispatcher never writes to
// them, and handlers that need derived metadata should clone it first.
type Message struct {
	// UUID uniquely identifies the message. NewMessage assigns a ULID.
	UUID string

	// Type is the tag used to resolve a handler.
	Type string

	// Payload is the opaque message body.
	Payload []byte

	// Metadata holds the headers attached to the message.
	Metadata metadatapkg.Metadata
}

// NewMessage constructs a message with a fresh ULID and empty metadata.
func NewMessage(messageType string, payload []byte) *Message {
	return &Message{
		UUID:     idspkg.CreateULID(),
		Type:     messageType,
		Payload:  payload,
		Metadata: metadatapkg.Metadata{},
	}
}

// NewMessageWithMetadata constructs a message carrying a copy of the supplied
// metadata, so later changes to the caller's map do not leak into the message.
func NewMessageWithMetadata(messageType string, payload []byte, md metadatapkg.Metadata) *Message {
	msg := NewMessage(messageType, payload)
	msg.Metadata = md.Clone()
	return msg
}

// CorrelationID returns the correlation ID from metadata, if present.
func (m *Message) CorrelationID() string {
	return m.Metadata.Get(MetadataKeyCorrelationID)
}

// Copy returns a new message with the same type and payload, a cloned
// metadata map, and a fresh UUID.
func (m *Message) Copy() *Message {
	payload := make([]byte, len(m.Payload))
	copy(payload, m.Payload)

	cloned := NewMessage(m.Type, payload)
	cloned.Metadata = m.Metadata.Clone()
	return cloned
}
