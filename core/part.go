package core

// Part is a polymorphic segment of role-based content. Concrete part types
// implement the unexported isPart marker, keeping the set closed.
type Part interface{ isPart() }

// TextPart is a plain text content segment.
type TextPart struct {
	Text     string         // Plain UTF-8 text
	Metadata map[string]any // Optional producer-provided metadata
}

func (TextPart) isPart() {}

// DataPart is a structured data segment (e.g. a JSON object map).
type DataPart struct {
	Data     map[string]any
	Metadata map[string]any
}

func (DataPart) isPart() {}

// FunctionCall is a tool invocation requested by the model. Arguments holds
// the serialized JSON argument payload exactly as the provider produced it;
// parsing and validation happen at execution time so a malformed payload
// becomes a tool-level error instead of a crash.
type FunctionCall struct {
	ID        string `json:"id,omitempty"`        // Correlation id, generated when the provider omits one
	Name      string `json:"name"`                // Registered tool name
	Arguments string `json:"arguments,omitempty"` // Serialized JSON argument object
}

// FunctionCallPart wraps a FunctionCall as a content part.
type FunctionCallPart struct {
	FunctionCall FunctionCall
	Metadata     map[string]any
}

func (FunctionCallPart) isPart() {}

// FunctionResponse is the outcome of a single tool invocation. A failed
// invocation populates Error and leaves Response empty; the pair is fed back
// to the model as data so the conversation can self-correct.
type FunctionResponse struct {
	ID       string `json:"id,omitempty"`       // Matches the originating FunctionCall ID
	Name     string `json:"name"`               // Tool name, echoed from the request
	Response any    `json:"response,omitempty"` // Successful result (any JSON-serializable shape)
	Error    string `json:"error,omitempty"`    // Populated on failure
}

// Failed reports whether this response carries an error payload.
func (r FunctionResponse) Failed() bool { return r.Error != "" }

// FunctionResponsePart wraps a FunctionResponse as a content part.
type FunctionResponsePart struct {
	FunctionResponse FunctionResponse
	Metadata         map[string]any
}

func (FunctionResponsePart) isPart() {}

// Content holds a conversation role plus ordered heterogeneous parts.
// Roles used by the runtime: "user", "assistant", "tool".
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Text concatenates all text parts in order, ignoring other part kinds.
func (c Content) Text() string {
	var out string
	for _, p := range c.Parts {
		if tp, ok := p.(TextPart); ok {
			out += tp.Text
		}
	}
	return out
}

// FunctionCalls returns the function call parts in their original order.
func (c Content) FunctionCalls() []FunctionCall {
	var calls []FunctionCall
	for _, p := range c.Parts {
		if fc, ok := p.(FunctionCallPart); ok {
			calls = append(calls, fc.FunctionCall)
		}
	}
	return calls
}

// FunctionResponses returns the function response parts in their original order.
func (c Content) FunctionResponses() []FunctionResponse {
	var responses []FunctionResponse
	for _, p := range c.Parts {
		if fr, ok := p.(FunctionResponsePart); ok {
			responses = append(responses, fr.FunctionResponse)
		}
	}
	return responses
}

// NewUserMessage builds a user-role content with a single text part.
func NewUserMessage(text string) Content {
	return Content{Role: "user", Parts: []Part{TextPart{Text: text}}}
}

// NewAssistantMessage builds an assistant-role content with a single text part.
func NewAssistantMessage(text string) Content {
	return Content{Role: "assistant", Parts: []Part{TextPart{Text: text}}}
}

// NewToolResults builds a tool-role content carrying one response part per
// completed invocation, preserving the given order.
func NewToolResults(responses []FunctionResponse) Content {
	parts := make([]Part, 0, len(responses))
	for _, r := range responses {
		parts = append(parts, FunctionResponsePart{FunctionResponse: r})
	}
	return Content{Role: "tool", Parts: parts}
}
