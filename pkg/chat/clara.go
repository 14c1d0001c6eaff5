// Package chat is Clara, a small rule-based companion that answers with a
// fixed set of supportive replies.
package chat

import (
	"strings"
	"sync"
)

// Name is how replies are attributed.
const Name = "Clara"

// DefaultReply is used when no rule matches.
const DefaultReply = "I'm here to listen. Tell me how you're feeling."

// Rule maps any of its keywords to a reply. Keywords match as substrings of
// the lower-cased message.
type Rule struct {
	Keywords []string
	Reply    string
}

// DefaultRules are evaluated in order; the first match wins.
func DefaultRules() []Rule {
	return []Rule{{
		Keywords: []string{"hello", "hi"},
		Reply:    "Hello! How are you feeling today?",
	}, {
		Keywords: []string{"sad", "depressed"},
		Reply:    "I'm sorry you're feeling sad. Take a slow breath with me.",
	}, {
		Keywords: []string{"stress", "anx"},
		Reply:    "Let's try a quick breathing exercise — breathe in for 4, out for 4.",
	}, {
		Keywords: []string{"help"},
		Reply:    "You can try journaling for a minute, or try the 5-minute meditation.",
	}}
}

// Message is one line of a conversation.
type Message struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// DefaultMaxHistory bounds the transcript kept by New.
const DefaultMaxHistory = 200

// Companion answers messages and keeps the transcript. Send and Transcript
// are safe for concurrent use.
type Companion struct {
	Rules []Rule
	// MaxHistory caps the transcript; the oldest messages are dropped
	// first. Zero keeps everything.
	MaxHistory int

	mu      sync.Mutex
	history []Message
}

// New returns a companion using DefaultRules.
func New() *Companion {
	return &Companion{Rules: DefaultRules(), MaxHistory: DefaultMaxHistory}
}

// Reply returns the answer for text without recording it. ok is false for
// blank input, which gets no answer.
func (c *Companion) Reply(text string) (reply string, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, r := range c.Rules {
		for _, k := range r.Keywords {
			if strings.Contains(lower, k) {
				return r.Reply, true
			}
		}
	}
	return DefaultReply, true
}

// Send records the user's message and Clara's answer.
func (c *Companion) Send(text string) (string, bool) {
	reply, ok := c.Reply(text)
	if !ok {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history,
		Message{From: "You", Text: strings.TrimSpace(text)},
		Message{From: Name, Text: reply},
	)
	if c.MaxHistory > 0 && len(c.history) > c.MaxHistory {
		c.history = append([]Message(nil), c.history[len(c.history)-c.MaxHistory:]...)
	}
	return reply, true
}

// Transcript returns a copy of the conversation so far, oldest first.
func (c *Companion) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.history...)
}
