package sessionkit

import (
	"fmt"
	"strconv"
	"strings"
)

// Sequence counts sessions per client and events per session. Its wire form
// is "<session>-<event>", e.g. "2-14" for the fourteenth event of the second
// session.
type Sequence struct {
	// Session is incremented each time a new session identifier is minted.
	Session int

	// Event is incremented on every tracker call and resets to 1 when a new
	// session begins.
	Event int
}

// String renders the wire form.
func (s Sequence) String() string {
	return fmt.Sprintf("%d-%d", s.Session, s.Event)
}

// IsZero reports whether the sequence is unset.
func (s Sequence) IsZero() bool {
	return s.Session == 0 && s.Event == 0
}

// ParseSequence parses the "<session>-<event>" wire form.
func ParseSequence(s string) (Sequence, error) {
	sess, ev, ok := strings.Cut(s, "-")
	if !ok {
		return Sequence{}, fmt.Errorf("sequence %q: missing separator", s)
	}

	sn, err := strconv.Atoi(sess)
	if err != nil {
		return Sequence{}, fmt.Errorf("sequence %q: session number: %w", s, err)
	}
	en, err := strconv.Atoi(ev)
	if err != nil {
		return Sequence{}, fmt.Errorf("sequence %q: event number: %w", s, err)
	}
	return Sequence{Session: sn, Event: en}, nil
}

// next derives the follow-on counter. A missing or unparseable prior
// sequence defaults to 1-1; a new session advances the session number and
// resets the event number; otherwise only the event number advances.
func (s Sequence) next(known, newSession bool) Sequence {
	if !known {
		return Sequence{Session: 1, Event: 1}
	}
	if newSession {
		return Sequence{Session: s.Session + 1, Event: 1}
	}
	return Sequence{Session: s.Session, Event: s.Event + 1}
}
