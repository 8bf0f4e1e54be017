// Package companion produces LLM replies for chat text the keyword
// responder does not recognise.
package companion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/soulsupport/internal/conversation"
	"github.com/abhisek/soulsupport/internal/llm"
)

// Concern is the model's read of how worrying a message is.
type Concern string

const (
	ConcernNone     Concern = "none"
	ConcernElevated Concern = "elevated"
	ConcernCrisis   Concern = "crisis"
)

// Reply is a validated companion answer.
type Reply struct {
	Text    string
	Concern Concern
}

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// History caps how many prior transcript messages are sent.
	History int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 300, Temperature: 0.6, History: 6}
}

// Companion wraps a provider with the listener persona.
type Companion struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Companion.
func New(provider llm.Provider, cfg Config) *Companion {
	return &Companion{provider: provider, cfg: cfg}
}

// Context is what the companion knows beyond the chat itself.
type Context struct {
	// Band is the most recent assessment band, empty if none was taken.
	Band string
	// Score and MaxScore describe that assessment.
	Score    int
	MaxScore int
}

// Reply asks the model to answer text, given the recent transcript.
// Typing placeholders and guide steps are not sent.
func (c *Companion) Reply(ctx context.Context, history []conversation.Message, info Context, text string) (Reply, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeCompanion)

	system, err := buildSystemPrompt(info)
	if err != nil {
		return Reply{}, fmt.Errorf("build companion prompt: %w", err)
	}

	req := llm.Request{
		System:      system,
		Messages:    append(historyMessages(history, c.cfg.History), llm.Message{Role: llm.RoleUser, Content: text}),
		Schema:      ReplySchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return Reply{}, fmt.Errorf("companion reply: %w", err)
	}

	var out struct {
		Reply   string  `json:"reply"`
		Concern Concern `json:"concern"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Reply{}, fmt.Errorf("parse companion reply: %w", err)
	}
	out.Reply = strings.TrimSpace(out.Reply)
	if out.Reply == "" {
		return Reply{}, fmt.Errorf("companion reply is empty")
	}
	return Reply{Text: out.Reply, Concern: out.Concern}, nil
}

// historyMessages maps the last n bot and user transcript entries onto
// LLM turns. The model never sees more than n entries.
func historyMessages(history []conversation.Message, n int) []llm.Message {
	var msgs []llm.Message
	for _, m := range history {
		if m.Typing {
			continue
		}
		switch m.Sender {
		case conversation.SenderUser:
			msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: m.Text})
		case conversation.SenderBot:
			msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: m.Text})
		}
	}
	if n >= 0 && len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	// Providers expect the conversation to open with a user turn.
	for len(msgs) > 0 && msgs[0].Role != llm.RoleUser {
		msgs = msgs[1:]
	}
	return msgs
}

var systemTemplate = template.Must(template.New("companion").Parse(`You are SoulSupport, a gentle digital friend for mental wellness talking with one person in a terminal chat.

Guidelines:
- Listen, reflect feelings back and offer one small, concrete coping idea when it fits.
- Never diagnose, prescribe medication or claim to be a therapist.
- Suggest the built-in tools by name when useful: "Start Diagnosis", "Instant Calm", "4-7-8 Breathing", "Music Therapy", "Find Hospitals".
- Set concern to "crisis" if the person mentions self-harm, suicide or being in danger; "elevated" for persistent hopelessness; otherwise "none".
{{if .Band}}
The person's latest self-assessment scored {{.Score}}/{{.MaxScore}} ({{.Band}} symptoms).{{end}}`))

func buildSystemPrompt(info Context) (string, error) {
	var buf bytes.Buffer
	if err := systemTemplate.Execute(&buf, info); err != nil {
		return "", err
	}
	return buf.String(), nil
}
