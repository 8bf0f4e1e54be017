package conversation

import "time"

// Sender identifies who wrote a transcript message.
type Sender string

const (
	SenderBot   Sender = "🤖 Bot"
	SenderUser  Sender = "You"
	SenderGuide Sender = "Guide"
)

// TypingText is shown in place of a bot reply until it is resolved.
const TypingText = "🤖 Bot is typing..."

// Message is a single transcript line.
type Message struct {
	ID     int
	Sender Sender
	Text   string
	Typing bool
	At     time.Time
}

// Transcript is the ordered log of chat messages shown to the user.
type Transcript struct {
	messages []Message
	nextID   int
	now      func() time.Time
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{now: time.Now}
}

// Append adds a finished message and returns its id.
func (t *Transcript) Append(sender Sender, text string) int {
	t.nextID++
	t.messages = append(t.messages, Message{
		ID:     t.nextID,
		Sender: sender,
		Text:   text,
		At:     t.now(),
	})
	return t.nextID
}

// BeginTyping adds a typing placeholder for a bot reply and returns its id.
func (t *Transcript) BeginTyping() int {
	t.nextID++
	t.messages = append(t.messages, Message{
		ID:     t.nextID,
		Sender: SenderBot,
		Typing: true,
		At:     t.now(),
	})
	return t.nextID
}

// Resolve replaces the typing placeholder with the given id by the final
// bot text. It returns false if no pending placeholder has that id.
func (t *Transcript) Resolve(id int, text string) bool {
	for i := range t.messages {
		m := &t.messages[i]
		if m.ID != id || !m.Typing {
			continue
		}
		m.Typing = false
		m.Text = text
		m.At = t.now()
		return true
	}
	return false
}

// Messages returns a copy of all messages in order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages, placeholders included.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Pending returns the number of unresolved typing placeholders.
func (t *Transcript) Pending() int {
	n := 0
	for _, m := range t.messages {
		if m.Typing {
			n++
		}
	}
	return n
}
