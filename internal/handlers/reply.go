package handlers

import (
	"context"

	"github.com/m3rciful/contentbot/internal/dialog"
	tele "gopkg.in/telebot.v4"
)

func send(ctx context.Context, req *dialog.Request, text string, markup *tele.ReplyMarkup) error {
	return req.Out.Send(ctx, dialog.Reply{Text: text, Markup: markup})
}

func sendMD(ctx context.Context, req *dialog.Request, text string, markup *tele.ReplyMarkup) error {
	return req.Out.Send(ctx, dialog.Reply{Text: text, Markup: markup, Markdown: true})
}

func sendWith(ctx context.Context, req *dialog.Request, r dialog.Reply) error {
	return req.Out.Send(ctx, r)
}

func editMD(ctx context.Context, req *dialog.Request, text string, markup *tele.ReplyMarkup) error {
	return req.Out.Edit(ctx, dialog.Reply{Text: text, Markup: markup, Markdown: true})
}
