package chat

import (
	"github.com/abhisek/soulsupport/internal/companion"
)

// typingDoneMsg resolves a typing placeholder with its final text.
type typingDoneMsg struct {
	ID   int
	Text string
}

// companionReplyMsg carries a companion answer for a typing placeholder.
type companionReplyMsg struct {
	ID    int
	Reply companion.Reply
	Err   error
}

// leadInDoneMsg fires when the pause before a named exercise ends.
type leadInDoneMsg struct {
	Name string
}

// browserOpenedMsg reports the outcome of opening a music URL.
type browserOpenedMsg struct {
	URL string
	Err error
}
