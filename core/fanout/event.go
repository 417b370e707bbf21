package fanout

// Usage is the token accounting attached to a producer's successful
// completion. It is forwarded to the configured UsageRecorder exactly once
// per producer.
type Usage struct {
	PromptTokens     int    `json:"promptTokens"`
	CompletionTokens int    `json:"completionTokens"`
	Model            string `json:"modelIdentifier,omitempty"`
}

// Event is a single item yielded by a Producer. Exactly one variant is set:
// Text carries incremental content, Done signals successful completion with
// usage accounting, Err signals failure. Done and Err are terminal; a
// producer must not be asked for further events after either.
type Event struct {
	Text string
	Done *Usage
	Err  error
}

// TextEvent returns a content chunk event.
func TextEvent(content string) Event {
	return Event{Text: content}
}

// DoneEvent returns a terminal completion event carrying usage accounting.
func DoneEvent(u Usage) Event {
	return Event{Done: &u}
}

// ErrorEvent returns a terminal failure event.
func ErrorEvent(err error) Event {
	return Event{Err: err}
}

// terminal reports whether the event ends its producer's stream.
func (e Event) terminal() bool {
	return e.Done != nil || e.Err != nil
}
