package middleware

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

type userLock struct {
	mu   sync.Mutex
	refs int
}

// SerializePerUser processes at most one update per sender at a time.
// Updates from different senders still run concurrently.
func SerializePerUser() tele.MiddlewareFunc {
	var (
		mu    sync.Mutex
		locks = make(map[int64]*userLock)
	)
	acquire := func(id int64) *userLock {
		mu.Lock()
		l, ok := locks[id]
		if !ok {
			l = &userLock{}
			locks[id] = l
		}
		l.refs++
		mu.Unlock()
		l.mu.Lock()
		return l
	}
	release := func(id int64, l *userLock) {
		l.mu.Unlock()
		mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(locks, id)
		}
		mu.Unlock()
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}
			l := acquire(user.ID)
			defer release(user.ID, l)
			return next(c)
		}
	}
}
