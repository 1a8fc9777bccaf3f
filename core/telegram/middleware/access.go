package middleware

import tele "gopkg.in/telebot.v4"

// OwnerOptions identifies the operator account and how strangers are answered.
type OwnerOptions struct {
	OwnerID  int64
	OnReject tele.HandlerFunc
}

// OwnerOnly lets only the configured owner reach next. With no owner configured
// every caller is rejected.
func OwnerOnly(opts OwnerOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if opts.OwnerID == 0 || sender == nil || sender.ID != opts.OwnerID {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
