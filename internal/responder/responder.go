// Package responder maps free text to the canned chat replies.
package responder

import "strings"

// DefaultReply is returned for any text without an exact trigger match.
const DefaultReply = "I'm here to support you. Could you tell me more about how you're feeling?"

var replies = map[string]string{
	"hello":  "Hello! How can I help you today?",
	"help":   "I'm here to listen. You can:\n- Start a diagnosis\n- Try relaxation exercises\n- Request music recommendations\n- Find local hospitals",
	"stress": "Let's try a quick breathing exercise! Check the relaxation panel →",
	"sad":    "I'm sorry to hear that. Would you like to try the 5-4-3-2-1 grounding exercise?",
}

// Resolve returns the canned reply for text. Matching is an exact lookup on
// the lower-cased input; surrounding whitespace is not ignored.
func Resolve(text string) string {
	if r, ok := Lookup(text); ok {
		return r
	}
	return DefaultReply
}

// Lookup is like Resolve but reports whether a trigger matched.
func Lookup(text string) (string, bool) {
	r, ok := replies[strings.ToLower(text)]
	return r, ok
}

// Triggers returns the trigger words in a stable order.
func Triggers() []string {
	return []string{"hello", "help", "stress", "sad"}
}
