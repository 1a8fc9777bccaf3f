package transport

import (
	"context"
	"testing"

	"github.com/m3rciful/contentbot/internal/dialog"

	tele "gopkg.in/telebot.v4"
)

func newContext(t *testing.T, u tele.Update) tele.Context {
	t.Helper()
	bot, err := tele.NewBot(tele.Settings{Offline: true})
	if err != nil {
		t.Fatalf("bot: %v", err)
	}
	return bot.NewContext(u)
}

func message(m *tele.Message) tele.Update {
	if m.Sender == nil {
		m.Sender = &tele.User{ID: 7}
	}
	if m.Chat == nil {
		m.Chat = &tele.Chat{ID: 70}
	}
	return tele.Update{Message: m}
}

func TestEventFromMessages(t *testing.T) {
	cases := []struct {
		name string
		msg  *tele.Message
		want dialog.Event
	}{
		{
			name: "command",
			msg:  &tele.Message{Text: "/Send@content_bot  42 hello"},
			want: dialog.Event{Kind: dialog.KindCommand, Command: "send", Args: "42 hello", Text: "/Send@content_bot  42 hello"},
		},
		{
			name: "text",
			msg:  &tele.Message{Text: "تهران"},
			want: dialog.Event{Kind: dialog.KindText, Text: "تهران"},
		},
		{
			name: "own contact",
			msg:  &tele.Message{Contact: &tele.Contact{PhoneNumber: "+989121234567", UserID: 7}},
			want: dialog.Event{Kind: dialog.KindContact, Phone: "+989121234567"},
		},
		{
			name: "foreign contact",
			msg:  &tele.Message{Contact: &tele.Contact{PhoneNumber: "+989121234567", UserID: 8}},
			want: dialog.Event{Kind: dialog.KindContact},
		},
	}
	for _, tc := range cases {
		ev, ok := EventFrom(newContext(t, message(tc.msg)))
		if !ok {
			t.Fatalf("%s: not converted", tc.name)
		}
		tc.want.UserID, tc.want.ChatID = 7, 70
		if ev.File != nil || ev != tc.want {
			t.Fatalf("%s: event = %+v, want %+v", tc.name, ev, tc.want)
		}
	}
}

func TestEventFromFiles(t *testing.T) {
	audio := &tele.Audio{File: tele.File{FileID: "aud", FileSize: 2048}, Title: "Night Song", FileName: "night.mp3"}
	ev, ok := EventFrom(newContext(t, message(&tele.Message{Audio: audio})))
	if !ok || ev.Kind != dialog.KindFile || ev.File == nil {
		t.Fatalf("audio event = %+v ok=%v", ev, ok)
	}
	if *ev.File != (dialog.File{ID: "aud", Size: 2048, Name: "night.mp3", Title: "Night Song"}) {
		t.Fatalf("audio file = %+v", *ev.File)
	}

	doc := &tele.Document{File: tele.File{FileID: "doc"}, FileName: "track.mp3"}
	ev, _ = EventFrom(newContext(t, message(&tele.Message{Document: doc})))
	if ev.File == nil || ev.File.ID != "doc" || ev.File.Title != "track.mp3" {
		t.Fatalf("document event = %+v", ev)
	}
}

func TestEventFromCallbackAndIgnored(t *testing.T) {
	cb := &tele.Callback{
		Sender:  &tele.User{ID: 9},
		Data:    "\fuser_list_2_",
		Message: &tele.Message{Chat: &tele.Chat{ID: 90}},
	}
	ev, ok := EventFrom(newContext(t, tele.Update{Callback: cb}))
	if !ok || ev.Kind != dialog.KindCallback || ev.Data != "user_list_2_" || ev.UserID != 9 || ev.ChatID != 90 {
		t.Fatalf("callback event = %+v ok=%v", ev, ok)
	}

	if _, ok := EventFrom(newContext(t, message(&tele.Message{Sticker: &tele.Sticker{}}))); ok {
		t.Fatalf("sticker converted")
	}
	if _, ok := EventFrom(newContext(t, tele.Update{Message: &tele.Message{Text: "hi"}})); ok {
		t.Fatalf("update without sender converted")
	}
}

type recordingDispatcher struct {
	events []dialog.Event
}

func (d *recordingDispatcher) Dispatch(_ context.Context, ev dialog.Event, _ dialog.Responder) (string, error) {
	d.events = append(d.events, ev)
	return "cmd.help", nil
}

func TestHandleDispatchesConvertedEvents(t *testing.T) {
	d := &recordingDispatcher{}
	a := New(d)

	if err := a.Handle(newContext(t, message(&tele.Message{Text: "/help"}))); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if err := a.Handle(newContext(t, message(&tele.Message{Sticker: &tele.Sticker{}}))); err != nil {
		t.Fatalf("handle sticker: %v", err)
	}
	if len(d.events) != 1 || d.events[0].Command != "help" {
		t.Fatalf("dispatched = %+v", d.events)
	}
}

func TestSplitCommand(t *testing.T) {
	cmd, args := splitCommand("/start")
	if cmd != "start" || args != "" {
		t.Fatalf("splitCommand = %q %q", cmd, args)
	}
}
