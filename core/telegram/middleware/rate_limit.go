package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/contentbot/core/logger"
	tghelpers "github.com/m3rciful/contentbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// RateLimitOptions configures behaviour of the rate limit middleware.
type RateLimitOptions struct {
	Interval  time.Duration
	Exclude   map[string]struct{}
	OnLimited tele.HandlerFunc
}

// RateLimitMiddleware drops updates arriving from the same user faster than Interval.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	var (
		mu       sync.Mutex
		lastSeen = make(map[int64]time.Time)
	)
	allow := func(userID int64, now time.Time) bool {
		mu.Lock()
		defer mu.Unlock()
		for id, ts := range lastSeen {
			if now.Sub(ts) > 10*opts.Interval {
				delete(lastSeen, id)
			}
		}
		if last, ok := lastSeen[userID]; ok && now.Sub(last) < opts.Interval {
			return false
		}
		lastSeen[userID] = now
		return true
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Interval <= 0 {
				return next(c)
			}
			kind := "message"
			if c.Callback() != nil {
				kind = "callback"
			}
			if _, skip := opts.Exclude[kind]; skip {
				return next(c)
			}
			if allow(user.ID, time.Now()) {
				return next(c)
			}
			logger.Warn(tghelpers.BuildContext(c), "tg", "tg.rate_limit",
				slog.Int64("user_id", user.ID),
				slog.String("kind", kind),
			)
			if opts.OnLimited != nil {
				return opts.OnLimited(c)
			}
			return nil
		}
	}
}
