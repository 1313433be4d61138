package domain

import "time"

// Message is a single board post. Author is the creator's Name, denormalized.
type Message struct {
	ID       string
	Title    string
	Author   string
	Body     string
	Color    string
	Private  bool
	Reviewed bool
	Created  time.Time
}

// VisibleOnBoard reports whether the message may appear on the public board.
func (m Message) VisibleOnBoard() bool {
	return !m.Private && m.Reviewed
}
