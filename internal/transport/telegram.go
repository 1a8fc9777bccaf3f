// Package transport adapts Telegram updates to dialog events and carries the
// replies back through the shared send queue.
package transport

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tghelpers "github.com/m3rciful/contentbot/core/telegram/helpers"
	tgrouter "github.com/m3rciful/contentbot/core/telegram/router"
	"github.com/m3rciful/contentbot/internal/dialog"

	tele "gopkg.in/telebot.v4"
)

// Dispatcher runs one event through the route table.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev dialog.Event, out dialog.Responder) (string, error)
}

// Adapter is the single Telegram handler in front of the dialog router.
type Adapter struct {
	router Dispatcher
}

// New wraps router.
func New(router Dispatcher) *Adapter {
	return &Adapter{router: router}
}

// Handle converts the update, dispatches it and writes the summary line.
// Failures have already been answered by the router, so the error is only logged.
func (a *Adapter) Handle(c tele.Context) error {
	start := time.Now()
	ctx := tghelpers.BuildContext(c)

	ev, ok := EventFrom(c)
	if !ok {
		tgrouter.Observe(c, "", start, nil, slog.String("kind", "ignored"))
		return nil
	}

	out := &responder{c: c}
	route, err := a.router.Dispatch(ctx, ev, out)
	if ev.Kind == dialog.KindCallback && !out.acked {
		_ = out.Ack(ctx, "")
	}
	tgrouter.Observe(c, route, start, err, slog.String("kind", ev.Kind.String()))
	return nil
}

// EventFrom reduces c to a dialog event. ok is false for updates the bot
// does not understand, such as stickers or updates without a sender.
func EventFrom(c tele.Context) (dialog.Event, bool) {
	sender := c.Sender()
	if sender == nil {
		return dialog.Event{}, false
	}
	ev := dialog.Event{UserID: sender.ID, ChatID: sender.ID}
	if chat := c.Chat(); chat != nil {
		ev.ChatID = chat.ID
	}

	if cb := c.Callback(); cb != nil {
		ev.Kind = dialog.KindCallback
		ev.Data = strings.TrimPrefix(cb.Data, "\f")
		return ev, true
	}

	msg := c.Message()
	if msg == nil {
		return dialog.Event{}, false
	}
	switch {
	case msg.Contact != nil:
		ev.Kind = dialog.KindContact
		// A forwarded card for someone else is treated as an empty contact.
		if msg.Contact.UserID == 0 || msg.Contact.UserID == sender.ID {
			ev.Phone = msg.Contact.PhoneNumber
		}
	case msg.Audio != nil:
		a := msg.Audio
		ev.Kind = dialog.KindFile
		ev.File = &dialog.File{ID: a.FileID, Size: a.FileSize, Name: a.FileName, Title: firstNonEmpty(a.Title, a.FileName)}
	case msg.Document != nil:
		d := msg.Document
		ev.Kind = dialog.KindFile
		ev.File = &dialog.File{ID: d.FileID, Size: d.FileSize, Name: d.FileName, Title: firstNonEmpty(d.Caption, d.FileName)}
	case strings.HasPrefix(msg.Text, "/"):
		ev.Kind = dialog.KindCommand
		ev.Command, ev.Args = splitCommand(msg.Text)
		ev.Text = msg.Text
	case msg.Text != "":
		ev.Kind = dialog.KindText
		ev.Text = msg.Text
	default:
		return dialog.Event{}, false
	}
	return ev, true
}

// splitCommand turns "/send@bot 42 hi" into ("send", "42 hi").
func splitCommand(text string) (string, string) {
	head, rest, _ := strings.Cut(strings.TrimSpace(text), " ")
	head = strings.TrimPrefix(head, "/")
	if at := strings.IndexByte(head, '@'); at >= 0 {
		head = head[:at]
	}
	return strings.ToLower(head), strings.TrimSpace(rest)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

type responder struct {
	c     tele.Context
	acked bool
}

func (r *responder) Send(_ context.Context, rep dialog.Reply) error {
	if rep.Markdown {
		return tghelpers.SendMD(r.c, rep.Text, rep.Markup)
	}
	return tghelpers.SendText(r.c, rep.Text, &tele.SendOptions{ReplyMarkup: rep.Markup})
}

func (r *responder) Edit(ctx context.Context, rep dialog.Reply) error {
	if rep.Markdown {
		return tghelpers.EditOrSendMD(r.c, rep.Text, rep.Markup)
	}
	return tghelpers.Enqueue(ctx, tghelpers.ChatKey(r.c), "edit.text", "editMessageText", func() error {
		return r.c.EditOrSend(rep.Text, &tele.SendOptions{ReplyMarkup: rep.Markup})
	})
}

func (r *responder) Ack(_ context.Context, text string) error {
	if r.c.Callback() == nil || r.acked {
		return nil
	}
	r.acked = true
	return r.c.Respond(&tele.CallbackResponse{Text: text})
}

func (r *responder) SendFile(ctx context.Context, fileID, title string) error {
	doc := &tele.Document{File: tele.File{FileID: fileID}, Caption: title}
	return tghelpers.Wait(ctx, tghelpers.ChatKey(r.c), "send.file", "sendDocument", func() error {
		return r.c.Send(doc)
	})
}

func (r *responder) Relay(ctx context.Context, chatID int64, text string) error {
	return tghelpers.Wait(ctx, chatID, "relay.text", "sendMessage", func() error {
		_, err := r.c.Bot().Send(tele.ChatID(chatID), text)
		return err
	})
}
