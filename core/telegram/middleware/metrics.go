package middleware

import tele "gopkg.in/telebot.v4"

const (
	keyMessages = "messages"
	keyKeyboard = "kb"
)

// countingContext counts replies sent while handling one update.
type countingContext struct{ tele.Context }

func (m countingContext) count(opts []interface{}) {
	n, _ := m.Get(keyMessages).(int)
	m.Set(keyMessages, n+1)
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				m.Set(keyKeyboard, true)
			}
		case *tele.ReplyMarkup:
			if v != nil {
				m.Set(keyKeyboard, true)
			}
		}
	}
}

func (m countingContext) Send(what interface{}, opts ...interface{}) error {
	err := m.Context.Send(what, opts...)
	if err == nil {
		m.count(opts)
	}
	return err
}

func (m countingContext) Edit(what interface{}, opts ...interface{}) error {
	err := m.Context.Edit(what, opts...)
	if err == nil {
		m.count(opts)
	}
	return err
}

func (m countingContext) EditOrSend(what interface{}, opts ...interface{}) error {
	err := m.Context.EditOrSend(what, opts...)
	if err == nil {
		m.count(opts)
	}
	return err
}

// MessageMetricsMiddleware counts replies and keyboard usage for the handler summary line.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set(keyMessages, 0)
		c.Set(keyKeyboard, false)
		return next(countingContext{Context: c})
	}
}

// GetCounters reads message count and keyboard presence flags from context.
func GetCounters(c tele.Context) (int, bool) {
	msgs, _ := c.Get(keyMessages).(int)
	kb, _ := c.Get(keyKeyboard).(bool)
	return msgs, kb
}
