// Package chat is the root screen: the conversation transcript, the text
// input and the side action menu.
package chat

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soulsupport/internal/companion"
	"github.com/abhisek/soulsupport/internal/conversation"
	"github.com/abhisek/soulsupport/internal/diagnosis"
	"github.com/abhisek/soulsupport/internal/exercise"
	"github.com/abhisek/soulsupport/internal/screen"
	"github.com/abhisek/soulsupport/internal/screens/savereport"
	"github.com/abhisek/soulsupport/internal/speech"
	"github.com/abhisek/soulsupport/internal/store"
	"github.com/abhisek/soulsupport/internal/ui/components"
	"github.com/abhisek/soulsupport/internal/ui/layout"
)

// WelcomeText is the first bot message of every chat.
const WelcomeText = "Welcome to SoulSupport – A digital friend for mental wellness 🤖\nHow can I assist you today?"

// NoDataText is shown when a report is requested before any answer.
const NoDataText = "⚠️ No assessment data available!"

// Deps are the collaborators of the chat screen. Nil fields disable the
// matching feature.
type Deps struct {
	EventRepo store.EventRepo
	Companion *companion.Companion
	Listener  *speech.Listener
	Sequencer *exercise.Sequencer

	// TypingDelay is how long "Bot is typing..." shows before a reply.
	TypingDelay time.Duration

	// ReportPath prefills the save-report screen.
	ReportPath string

	// OpenURL opens a link in the default browser.
	OpenURL func(url string) error

	// CompanionTimeout bounds one companion reply.
	CompanionTimeout time.Duration
}

type focus int

const (
	focusInput focus = iota
	focusMenu
)

// ChatScreen implements screen.Screen for the conversation.
type ChatScreen struct {
	deps       Deps
	state      *conversation.State
	transcript *conversation.Transcript
	flow       *diagnosis.Flow
	sequencer  *exercise.Sequencer
	input      components.TextInput
	menu       components.Menu
	focus      focus
	compact    bool

	// sessionID identifies the running or last assessment.
	sessionID string
	// result is the last completed assessment, drawn as a chart.
	result *diagnosis.Result
	// runs maps running exercise tickets to their names.
	runs map[exercise.Ticket]string
	// scroll is how many lines the transcript is scrolled up.
	scroll int
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.StatusProvider = (*ChatScreen)(nil)

// New creates the chat screen.
func New(deps Deps) *ChatScreen {
	if deps.Sequencer == nil {
		deps.Sequencer = exercise.NewSequencer()
	}
	if deps.ReportPath == "" {
		deps.ReportPath = "mental_health_report.pdf"
	}
	if deps.CompanionTimeout <= 0 {
		deps.CompanionTimeout = 30 * time.Second
	}

	state := conversation.NewState()
	c := &ChatScreen{
		deps:       deps,
		state:      state,
		transcript: conversation.NewTranscript(),
		flow:       diagnosis.NewFlow(state),
		sequencer:  deps.Sequencer,
		input:      components.NewTextInput("Type a message or /help...", 500),
		runs:       make(map[exercise.Ticket]string),
	}
	c.menu = components.NewMenu(c.menuItems())
	return c
}

func (c *ChatScreen) Init() tea.Cmd {
	return tea.Batch(c.input.Init(), c.welcome())
}

func (c *ChatScreen) welcome() tea.Cmd {
	return c.say(WelcomeText)
}

func (c *ChatScreen) Title() string {
	return "Chat"
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	if c.focus == focusMenu {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Tab", Description: "Chat"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Tab", Description: "Actions"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Status summarises background activity for the header.
func (c *ChatScreen) Status() string {
	switch {
	case c.deps.Listener != nil && c.deps.Listener.Listening():
		return "🎤 listening"
	case c.flow.Active():
		return fmtQuestion(c.state.QuestionIndex+1, diagnosis.QuestionCount())
	case len(c.runs) > 0:
		return fmtRuns(len(c.runs))
	}
	return ""
}

// Transcript exposes the conversation log.
func (c *ChatScreen) Transcript() *conversation.Transcript {
	return c.transcript
}

// State exposes the assessment state.
func (c *ChatScreen) State() *conversation.State {
	return c.state
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.compact = layout.IsCompactWidth(msg.Width)
		return c, nil

	case typingDoneMsg:
		c.transcript.Resolve(msg.ID, msg.Text)
		c.scroll = 0
		return c, nil

	case companionReplyMsg:
		return c, c.handleCompanionReply(msg)

	case leadInDoneMsg:
		return c, c.runExercise(msg.Name)

	case exercise.StepMsg:
		c.transcript.Append(conversation.SenderGuide, msg.Text)
		c.scroll = 0
		return c, c.sequencer.Advance(msg)

	case exercise.DoneMsg:
		c.transcript.Append(conversation.SenderGuide, msg.Text)
		c.scroll = 0
		delete(c.runs, msg.Ticket)
		return c, c.recordExercise(msg.Ticket, msg.Name, store.ExerciseCompleted)

	case speech.ResultMsg:
		return c, c.handleSpeech(msg)

	case browserOpenedMsg:
		c.handleBrowserOpened(msg)
		return c, nil

	case savereport.SavedMsg:
		c.handleSaved(msg)
		return c, nil

	case tea.KeyMsg:
		return c, c.handleKey(msg)
	}

	if c.focus == focusInput {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}
	return c, nil
}

func (c *ChatScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		c.toggleFocus()
		return nil
	case "pgup":
		c.scroll += 5
		return nil
	case "pgdown":
		c.scroll = max(c.scroll-5, 0)
		return nil
	}

	if c.focus == focusMenu {
		if msg.String() == "esc" {
			c.toggleFocus()
			return nil
		}
		var cmd tea.Cmd
		c.menu, cmd = c.menu.Update(msg)
		return cmd
	}

	if msg.String() == "enter" {
		text := c.input.Value()
		c.input.Reset()
		return c.submit(text)
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *ChatScreen) toggleFocus() {
	if c.focus == focusInput {
		c.focus = focusMenu
		c.menu.Focused = true
		c.input.Blur()
		return
	}
	c.focus = focusInput
	c.menu.Focused = false
	c.input.Focus()
}
