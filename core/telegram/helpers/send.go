package helpers

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/m3rciful/contentbot/core/logger"
	"github.com/m3rciful/contentbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by helper functions.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

// ChatKey returns the id that orders outbound calls for the current update.
func ChatKey(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if user := c.Sender(); user != nil {
		return user.ID
	}
	return 0
}

func fallback(ctx context.Context, action, endpoint string, err error, run func() error) error {
	if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
		logger.Warn(ctx, "tg.sender", "queue.fallback",
			slog.String("action", action),
			slog.String("endpoint", endpoint),
			logger.Err(err),
		)
		return run()
	}
	return err
}

// Enqueue runs the call on the dispatcher lane of key without waiting.
// Without a dispatcher, or when the queue rejects the job, it runs inline.
func Enqueue(ctx context.Context, key int64, action, endpoint string, run func() error) error {
	disp := globalDispatcher.Load()
	if disp == nil {
		return run()
	}
	if err := disp.Enqueue(ctx, key, action, endpoint, run); err != nil {
		return fallback(ctx, action, endpoint, err, run)
	}
	return nil
}

// Wait runs the call on the dispatcher lane of key and returns its error.
func Wait(ctx context.Context, key int64, action, endpoint string, run func() error) error {
	disp := globalDispatcher.Load()
	if disp == nil {
		return run()
	}
	if err := disp.Do(ctx, key, action, endpoint, run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			return fallback(ctx, action, endpoint, err, run)
		}
		return err
	}
	return nil
}

// SendText queues text (no parse mode) to the current chat.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	return Enqueue(BuildContext(c), ChatKey(c), "send.text", "sendMessage", func() error {
		if len(opts) > 0 && opts[0] != nil {
			return c.Send(text, opts[0])
		}
		return c.Send(text)
	})
}

// SendMD queues a Markdown message with optional reply markup.
func SendMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return SendText(c, text, &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: rm})
}

// EditOrSendMD edits the callback message (Markdown) or sends a new one when editing is impossible.
func EditOrSendMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return Enqueue(BuildContext(c), ChatKey(c), "edit.text", "editMessageText", func() error {
		return c.EditOrSend(text, &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: rm})
	})
}
