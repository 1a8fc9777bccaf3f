// Package dialog routes one inbound event to exactly one handler, using the
// event content and the caller's current session as the predicate.
package dialog

import (
	"context"

	tele "gopkg.in/telebot.v4"
)

// Kind classifies an inbound event.
type Kind int

const (
	KindCommand Kind = iota + 1
	KindText
	KindContact
	KindFile
	KindCallback
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindText:
		return "text"
	case KindContact:
		return "contact"
	case KindFile:
		return "file"
	case KindCallback:
		return "callback"
	}
	return "unknown"
}

// File is an uploaded audio or document referenced by its platform id.
type File struct {
	ID    string
	Size  int64
	Name  string
	Title string
}

// Event is one inbound update reduced to what the handlers need.
type Event struct {
	Kind   Kind
	UserID int64
	ChatID int64

	// Command is the verb without the leading slash; Args is the rest of the line.
	Command string
	Args    string

	Text  string
	Phone string
	File  *File
	// Data is the raw inline button payload.
	Data string
}

// Reply is an outbound text message.
type Reply struct {
	Text     string
	Markup   *tele.ReplyMarkup
	Markdown bool
}

// Responder delivers replies for the event being handled.
type Responder interface {
	// Send queues a message to the caller's chat.
	Send(ctx context.Context, r Reply) error
	// Edit replaces the message carrying the tapped inline button, or sends a new one.
	Edit(ctx context.Context, r Reply) error
	// Ack answers an inline button tap; it is a no-op for other events.
	Ack(ctx context.Context, text string) error
	// SendFile delivers a stored file to the caller and reports the outcome.
	SendFile(ctx context.Context, fileID, title string) error
	// Relay sends text to another chat and reports the outcome.
	Relay(ctx context.Context, chatID int64, text string) error
}
