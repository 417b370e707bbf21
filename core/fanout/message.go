package fanout

// MessageType discriminates the merged output protocol.
type MessageType string

const (
	// TypeChunk carries incremental content from one producer.
	TypeChunk MessageType = "persona_chunk"

	// TypePersonaComplete signals that one producer finished successfully.
	TypePersonaComplete MessageType = "persona_complete"

	// TypeError signals that one producer failed; its siblings continue.
	TypeError MessageType = "error"

	// TypeComplete is the aggregate terminal message, written exactly once
	// after every producer has settled. It carries no persona key.
	TypeComplete MessageType = "complete"
)

// Message is one frame of the merged output stream. The zero Persona is
// only valid for the aggregate TypeComplete message.
type Message struct {
	Persona   string      `json:"persona,omitempty"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content,omitempty"`
	LatencyMs int64       `json:"latencyMs,omitempty"`
}
