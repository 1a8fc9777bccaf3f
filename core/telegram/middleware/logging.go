package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/contentbot/core/logger"
	tghelpers "github.com/m3rciful/contentbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

var (
	recentMu     sync.Mutex
	recentUpdate = make(map[int]time.Time)
	keepFor      = 10 * time.Second
)

// alreadyLogged reports whether updateID was seen within keepFor.
func alreadyLogged(updateID int) bool {
	now := time.Now()
	recentMu.Lock()
	defer recentMu.Unlock()
	for id, ts := range recentUpdate {
		if now.Sub(ts) > keepFor {
			delete(recentUpdate, id)
		}
	}
	if _, ok := recentUpdate[updateID]; ok {
		return true
	}
	recentUpdate[updateID] = now
	return false
}

// LoggerMiddleware sets the rid for the update and logs a sampled receipt line.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		var chatID, userID int64
		chat, user := c.Chat(), c.Sender()
		if chat != nil {
			chatID = chat.ID
		}
		if user != nil {
			userID = user.ID
		}
		rid := logger.BuildRID(upd.ID, chatID, userID)
		c.Set("rid", rid)

		ctx := logger.WithRID(logger.Background(), rid)
		ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
		ctx = logger.WithLogger(ctx, logger.Component("tg"))
		tghelpers.StoreContext(c, ctx)

		if logger.ShouldSampleDebug() && !alreadyLogged(upd.ID) {
			attrs := []slog.Attr{slog.String("status", "ok")}
			if chat != nil {
				attrs = append(attrs, slog.String("chat_type", string(chat.Type)))
			}
			if user != nil {
				attrs = append(attrs,
					slog.String("username", logger.SanitizeLimit(user.Username, 64)),
					slog.String("lang", user.LanguageCode),
				)
			}
			switch {
			case upd.Callback != nil:
				attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(upd.Callback.Data, 128)))
			case upd.Message != nil && upd.Message.Contact != nil:
				attrs = append(attrs, slog.String("payload", "<contact>"))
			case upd.Message != nil:
				attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(upd.Message.Text, 256)))
			}
			logger.LogEvent(ctx, logger.Component("tg"), slog.LevelDebug, "update.received", attrs...)
		}

		return next(c)
	}
}
