package keyboard

import tele "gopkg.in/telebot.v4"

// InlineBtn is an inline button carrying a raw callback payload.
type InlineBtn struct {
	Text string
	Data string
}

// RemoveKeyboard returns a markup that hides the keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// ReplyButtons builds a resized reply keyboard from rows of captions.
func ReplyButtons(rows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	keyboard := make([]tele.Row, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tele.Btn, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, markup.Text(label))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}

// ContactRequest builds a one-time keyboard whose single button shares the user's phone number.
func ContactRequest(label string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	markup.Reply(markup.Row(markup.Contact(label)))
	return markup
}

// InlineButtonsRows builds an inline keyboard from rows of InlineBtn.
// Payloads are sent as-is so the bot routes them through OnCallback.
func InlineButtonsRows(rows ...[]InlineBtn) *tele.ReplyMarkup {
	inline := make([][]tele.InlineButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			r[j] = tele.InlineButton{Text: btn.Text, Data: btn.Data}
		}
		inline = append(inline, r)
	}
	return &tele.ReplyMarkup{InlineKeyboard: inline}
}

// InlineButtonsNPerRow splits a flat list of buttons into rows with up to n buttons per row.
func InlineButtonsNPerRow(buttons []InlineBtn, n int) *tele.ReplyMarkup {
	return InlineButtonsRows(Chunk(buttons, n)...)
}

// Chunk splits items into rows of at most n elements; n <= 1 yields one item per row.
func Chunk[T any](items []T, n int) [][]T {
	if n < 1 {
		n = 1
	}
	rows := make([][]T, 0, (len(items)+n-1)/n)
	for i := 0; i < len(items); i += n {
		rows = append(rows, items[i:min(i+n, len(items))])
	}
	return rows
}
