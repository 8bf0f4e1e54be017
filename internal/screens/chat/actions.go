package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/soulsupport/internal/companion"
	"github.com/abhisek/soulsupport/internal/conversation"
	"github.com/abhisek/soulsupport/internal/diagnosis"
	"github.com/abhisek/soulsupport/internal/exercise"
	"github.com/abhisek/soulsupport/internal/report"
	"github.com/abhisek/soulsupport/internal/resources"
	"github.com/abhisek/soulsupport/internal/responder"
	"github.com/abhisek/soulsupport/internal/router"
	"github.com/abhisek/soulsupport/internal/screens/history"
	"github.com/abhisek/soulsupport/internal/screens/savereport"
	"github.com/abhisek/soulsupport/internal/speech"
	"github.com/abhisek/soulsupport/internal/store"
	"github.com/abhisek/soulsupport/internal/ui/components"
)

// submit handles a line from the input field. Empty input is ignored.
func (c *ChatScreen) submit(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	prior := c.transcript.Messages()
	c.transcript.Append(conversation.SenderUser, text)
	c.scroll = 0

	if strings.HasPrefix(text, "/") {
		return c.command(text)
	}
	if c.flow.Active() {
		return c.answer(text)
	}
	return c.reply(text, prior)
}

// say shows the typing indicator and resolves it after the typing delay.
func (c *ChatScreen) say(text string) tea.Cmd {
	id := c.transcript.BeginTyping()
	msg := typingDoneMsg{ID: id, Text: text}
	if c.deps.TypingDelay <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(c.deps.TypingDelay, func(time.Time) tea.Msg { return msg })
}

// notify posts a bot message without the typing indicator.
func (c *ChatScreen) notify(text string) {
	c.transcript.Append(conversation.SenderBot, text)
	c.scroll = 0
}

// reply answers free text: known triggers first, then the companion if
// one is configured, else the default reply. prior is the transcript
// before text was posted; the companion adds text as the final turn.
func (c *ChatScreen) reply(text string, prior []conversation.Message) tea.Cmd {
	if r, ok := responder.Lookup(text); ok || c.deps.Companion == nil {
		if !ok {
			r = responder.DefaultReply
		}
		return c.say(r)
	}

	id := c.transcript.BeginTyping()
	info := c.companionContext()
	comp, timeout, delay := c.deps.Companion, c.deps.CompanionTimeout, c.deps.TypingDelay

	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		r, err := comp.Reply(ctx, prior, info, text)
		if wait := delay - time.Since(start); wait > 0 {
			time.Sleep(wait)
		}
		return companionReplyMsg{ID: id, Reply: r, Err: err}
	}
}

func (c *ChatScreen) companionContext() companion.Context {
	if c.result == nil {
		return companion.Context{}
	}
	return companion.Context{
		Band:     string(c.result.Band),
		Score:    c.result.Total,
		MaxScore: diagnosis.MaxScore(),
	}
}

func (c *ChatScreen) handleCompanionReply(msg companionReplyMsg) tea.Cmd {
	if msg.Err != nil {
		slog.Warn("companion reply failed, using default reply", "err", msg.Err)
		c.transcript.Resolve(msg.ID, responder.DefaultReply)
		return nil
	}
	c.transcript.Resolve(msg.ID, msg.Reply.Text)
	c.scroll = 0
	if msg.Reply.Concern == companion.ConcernCrisis {
		return c.say(resources.HospitalListing())
	}
	return nil
}

// startDiagnosis begins a fresh assessment. A running one is abandoned and
// its partial answers are recorded as incomplete.
func (c *ChatScreen) startDiagnosis() tea.Cmd {
	var cmds []tea.Cmd
	if c.flow.Active() && c.state.HasAnswers() {
		cmds = append(cmds, c.recordAssessment(c.sessionID, c.state.Answers(), false))
	}

	c.sessionID = uuid.NewString()
	q := c.flow.Start()
	cmds = append(cmds, c.say(q.Prompt))
	return tea.Batch(cmds...)
}

// answer feeds text to the running assessment.
func (c *ChatScreen) answer(text string) tea.Cmd {
	step, err := c.flow.Submit(text)
	if err != nil {
		return c.say(diagnosis.Reprompt(err))
	}
	if !step.Done() {
		return c.say(step.Next.Prompt)
	}

	res := step.Result
	c.result = res
	var cmds []tea.Cmd
	if res.ReferToHospital {
		cmds = append(cmds, c.say(resources.HospitalListing()))
	}
	cmds = append(cmds,
		c.say(res.Message()),
		c.recordAssessment(c.sessionID, res.Answers, true),
	)
	return tea.Batch(cmds...)
}

// startExercise announces a named exercise and starts it after the lead-in.
func (c *ChatScreen) startExercise(name string) tea.Cmd {
	if _, ok := exercise.Get(name); !ok {
		c.notify(fmt.Sprintf("⚠️ Unknown exercise: %s", name))
		return nil
	}
	return tea.Batch(
		c.say(fmt.Sprintf("Starting %s...", name)),
		tea.Tick(exercise.LeadIn, func(time.Time) tea.Msg { return leadInDoneMsg{Name: name} }),
	)
}

// runExercise hands the steps of name to the sequencer.
func (c *ChatScreen) runExercise(name string) tea.Cmd {
	ex, ok := exercise.Get(name)
	if !ok {
		return nil
	}
	ticket, cmd := c.sequencer.Start(name, ex.Steps)
	c.runs[ticket] = name
	return tea.Batch(cmd, c.recordExercise(ticket, name, store.ExerciseStarted))
}

// stopExercises cancels every running exercise.
func (c *ChatScreen) stopExercises() tea.Cmd {
	if len(c.runs) == 0 {
		c.notify("No exercise is running.")
		return nil
	}

	var cmds []tea.Cmd
	for ticket, name := range c.runs {
		if c.sequencer.Stop(ticket) {
			cmds = append(cmds, c.recordExercise(ticket, name, store.ExerciseStopped))
		}
	}
	n := len(c.runs)
	clear(c.runs)
	c.notify(fmt.Sprintf("⏹️ Stopped %s.", plural(n, "exercise")))
	return tea.Batch(cmds...)
}

func (c *ChatScreen) showHospitals() tea.Cmd {
	return c.say(resources.HospitalListing())
}

// recommendMusic lists the tracks and opens the first one.
func (c *ChatScreen) recommendMusic() tea.Cmd {
	cmd := c.say(resources.MusicListing())
	tracks := resources.Tracks()
	open := c.deps.OpenURL
	if open == nil || len(tracks) == 0 {
		return cmd
	}
	url := tracks[0].URL
	return tea.Batch(cmd, func() tea.Msg {
		return browserOpenedMsg{URL: url, Err: open(url)}
	})
}

func (c *ChatScreen) handleBrowserOpened(msg browserOpenedMsg) {
	if msg.Err != nil {
		slog.Warn("failed to open browser", "url", msg.URL, "err", msg.Err)
	}
}

// speak starts a speech capture.
func (c *ChatScreen) speak() tea.Cmd {
	if c.deps.Listener == nil {
		c.notify(speech.Message(errors.New("speech input is not configured")))
		return nil
	}
	cmd, err := c.deps.Listener.Start(context.Background())
	if err != nil {
		c.notify(speech.Message(err))
		return nil
	}
	c.notify(speech.ListeningText)
	return cmd
}

// handleSpeech puts a transcript in the input field and echoes it.
func (c *ChatScreen) handleSpeech(msg speech.ResultMsg) tea.Cmd {
	if msg.Err != nil {
		c.notify(speech.Message(msg.Err))
		return nil
	}
	c.input.SetValue(msg.Text)
	c.transcript.Append(conversation.SenderUser, msg.Text)
	c.scroll = 0
	return nil
}

// viewReport opens the save screen for the recorded answers.
func (c *ChatScreen) viewReport() tea.Cmd {
	in, err := report.FromAnswers(c.state.Answers(), time.Now())
	if errors.Is(err, report.ErrNoData) {
		c.notify(NoDataText)
		return nil
	}
	if err != nil {
		c.notify(fmt.Sprintf("⚠️ Error: %v", err))
		return nil
	}
	s := savereport.New(in, c.deps.ReportPath, c.sessionID, c.deps.EventRepo)
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (c *ChatScreen) handleSaved(msg savereport.SavedMsg) {
	switch {
	case msg.Err == nil:
		c.notify(fmt.Sprintf("✅ Report saved: %s", msg.Path))
	case errors.Is(msg.Err, report.ErrNoData):
		c.notify(NoDataText)
	default:
		c.notify(fmt.Sprintf("⚠️ Error: %v", msg.Err))
	}
}

func (c *ChatScreen) showHistory() tea.Cmd {
	if c.deps.EventRepo == nil {
		c.notify("History is not available without a database.")
		return nil
	}
	s := history.New(c.deps.EventRepo, c.deps.ReportPath)
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (c *ChatScreen) recordAssessment(sessionID string, answers []int, complete bool) tea.Cmd {
	repo := c.deps.EventRepo
	if repo == nil || len(answers) == 0 {
		return nil
	}
	total := 0
	for _, a := range answers {
		total += a
	}
	data := store.AssessmentEventData{
		SessionID: sessionID,
		Answers:   answers,
		Total:     total,
		Band:      string(diagnosis.Classify(total)),
		Complete:  complete,
	}
	return func() tea.Msg {
		if err := repo.AppendAssessment(context.Background(), data); err != nil {
			slog.Warn("failed to record assessment", "session", sessionID, "err", err)
		}
		return nil
	}
}

func (c *ChatScreen) recordExercise(ticket exercise.Ticket, name, action string) tea.Cmd {
	repo := c.deps.EventRepo
	if repo == nil {
		return nil
	}
	data := store.ExerciseEventData{Ticket: int64(ticket), Name: name, Action: action}
	return func() tea.Msg {
		if err := repo.AppendExerciseEvent(context.Background(), data); err != nil {
			slog.Warn("failed to record exercise event", "exercise", name, "err", err)
		}
		return nil
	}
}

// menuItems builds the side panel actions.
func (c *ChatScreen) menuItems() []components.MenuItem {
	items := []components.MenuItem{
		{Label: "Start Diagnosis", Action: c.startDiagnosis},
		{Label: "View Report", Action: c.viewReport},
		{Label: "Music Therapy", Action: c.recommendMusic},
		{Label: "Find Hospitals", Action: c.showHospitals},
		{Label: "🎤 Speak", Action: c.speak, Disabled: c.deps.Listener == nil},
	}
	for _, name := range exercise.Names() {
		items = append(items, components.MenuItem{
			Label:  name,
			Action: func() tea.Cmd { return c.startExercise(name) },
		})
	}
	items = append(items,
		components.MenuItem{Label: "💆 Instant Calm", Action: c.instantCalm},
		components.MenuItem{Label: "Stop Exercises", Action: c.stopExercises},
		components.MenuItem{Label: "History", Action: c.showHistory, Disabled: c.deps.EventRepo == nil},
		components.MenuItem{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }},
	)
	return items
}

// instantCalm runs the quick sequence without the lead-in.
func (c *ChatScreen) instantCalm() tea.Cmd {
	return c.runExercise(exercise.InstantCalm().Name)
}

// commandHelp lists the slash commands.
const commandHelp = `Commands:
/diagnose      start the self-assessment
/report        save a PDF report
/music         healing music
/hospitals     nearby mental-health hospitals
/speak         speak instead of typing
/exercise <n>  start exercise 1-3
/calm          instant calm
/stop          stop running exercises
/history       past assessments
/quit          exit`

// command runs a slash command.
func (c *ChatScreen) command(text string) tea.Cmd {
	fields := strings.Fields(text)
	switch fields[0] {
	case "/diagnose":
		return c.startDiagnosis()
	case "/report":
		return c.viewReport()
	case "/music":
		return c.recommendMusic()
	case "/hospitals":
		return c.showHospitals()
	case "/speak":
		return c.speak()
	case "/exercise":
		return c.exerciseCommand(fields[1:])
	case "/calm":
		return c.instantCalm()
	case "/stop":
		return c.stopExercises()
	case "/history":
		return c.showHistory()
	case "/quit", "/exit":
		return tea.Quit
	case "/help":
		c.notify(commandHelp)
		return nil
	}
	c.notify(fmt.Sprintf("Unknown command %s. Type /help for the list.", fields[0]))
	return nil
}

func (c *ChatScreen) exerciseCommand(args []string) tea.Cmd {
	names := exercise.Names()
	if len(args) == 1 {
		if n, err := strconv.Atoi(args[0]); err == nil && n >= 1 && n <= len(names) {
			return c.startExercise(names[n-1])
		}
	}

	var b strings.Builder
	b.WriteString("Usage: /exercise <n>")
	for i, name := range names {
		fmt.Fprintf(&b, "\n%d. %s", i+1, name)
	}
	c.notify(b.String())
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func fmtQuestion(n, total int) string {
	return fmt.Sprintf("Q %d/%d", n, total)
}

func fmtRuns(n int) string {
	return "🧘 " + plural(n, "exercise")
}
