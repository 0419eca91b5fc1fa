package domain

import "time"

type Turn struct {
	Message   string
	Response  string
	CreatedAt time.Time
}

// Transcript appends turns in the order their sends were issued. A send takes
// a ticket up front; its turn is held back until every earlier ticket has
// either committed or been released.
type Transcript struct {
	turns    []Turn
	next     uint64
	commit   uint64
	resolved map[uint64]*Turn
}

func NewTranscript(history []Turn) *Transcript {
	return &Transcript{
		turns:    append([]Turn(nil), history...),
		resolved: map[uint64]*Turn{},
	}
}

func (t *Transcript) Issue() uint64 {
	ticket := t.next
	t.next++
	return ticket
}

// Complete files the turn for ticket and commits whatever is now in order.
func (t *Transcript) Complete(ticket uint64, turn Turn) {
	t.resolved[ticket] = &turn
	t.drain()
}

// Release gives up ticket without appending anything.
func (t *Transcript) Release(ticket uint64) {
	t.resolved[ticket] = nil
	t.drain()
}

func (t *Transcript) drain() {
	for {
		turn, ok := t.resolved[t.commit]
		if !ok {
			return
		}
		delete(t.resolved, t.commit)
		t.commit++
		if turn != nil {
			t.turns = append(t.turns, *turn)
		}
	}
}

// Pending counts issued sends not yet committed or released.
func (t *Transcript) Pending() int {
	return int(t.next - t.commit)
}

func (t *Transcript) Turns() []Turn {
	return append([]Turn(nil), t.turns...)
}

func (t *Transcript) Len() int { return len(t.turns) }

// Analysis is a document summary returned by the file analyzer.
type Analysis struct {
	Filename string
	Text     string
}
