// Package core defines the conversation state and content model shared by the
// gateway, tool and agent packages: role-based messages composed of text,
// function call and function response parts, plus the append-only Conversation
// that an agent loop drives to completion.
package core

import "github.com/google/uuid"

// Conversation is the ordered message history of one agent session. It is
// append-only for the duration of a run; Reset starts a fresh session while
// the owning agent keeps its tools and system prompt.
//
// A Conversation is not safe for concurrent mutation. The agent loop is the
// single writer; concurrent runs against the same conversation are unsupported.
type Conversation struct {
	messages []Content
}

// NewConversation returns an empty conversation.
func NewConversation() *Conversation { return &Conversation{} }

// Append adds messages to the end of the history.
func (c *Conversation) Append(messages ...Content) {
	c.messages = append(c.messages, messages...)
}

// Messages returns a snapshot copy of the history for safe iteration and for
// handing to a gateway. Part values are shared; callers must not mutate them.
func (c *Conversation) Messages() []Content {
	out := make([]Content, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the history.
func (c *Conversation) Len() int { return len(c.messages) }

// Reset clears the history so the next run starts a fresh session. Prior
// messages are discarded, never leaked into the next gateway call.
func (c *Conversation) Reset() { c.messages = nil }

// LastText returns the concatenated text of the most recent message, or ""
// for an empty conversation.
func (c *Conversation) LastText() string {
	if len(c.messages) == 0 {
		return ""
	}
	return c.messages[len(c.messages)-1].Text()
}

// NewID generates a unique identifier used to correlate function calls with
// their responses when a provider does not supply one.
func NewID() string { return uuid.NewString() }
