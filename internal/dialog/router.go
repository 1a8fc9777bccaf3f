package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/m3rciful/contentbot/core/logger"
	"github.com/m3rciful/contentbot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/contentbot/core/telegram/helpers"
	"github.com/m3rciful/contentbot/internal/session"
	"github.com/m3rciful/contentbot/internal/storage"
)

// ErrDuplicateCaption is returned when two routes claim the same menu caption.
var ErrDuplicateCaption = errors.New("dialog: duplicate caption")

// Tier orders route evaluation; lower tiers are tried first.
type Tier int

const (
	TierCommand Tier = iota
	TierContact
	TierRegistration
	TierCaption
	TierUpload
	TierInput
	TierCallback
	TierFallback
)

// Capability is what a caller must hold to reach a route.
type Capability int

const (
	Anyone Capability = iota
	Admin
)

// Handler processes one event.
type Handler func(ctx context.Context, req *Request) error

// Route binds a predicate (or an exact caption) to a handler.
type Route struct {
	Name    string
	Tier    Tier
	Caption string
	Match   func(*Request) bool
	Require Capability
	Handle  Handler
}

// Request carries everything a handler needs for one event.
type Request struct {
	Event   Event
	Session *session.Session
	// Payload is the decoded inline button payload; PayloadOK reports whether decoding succeeded.
	Payload   callbacks.Payload
	PayloadOK bool
	// Caller is the verified admin record on Admin routes, nil elsewhere.
	Caller *storage.User
	Out    Responder
}

// SessionSource loads the caller's session.
type SessionSource interface {
	Current(ctx context.Context, userID int64) (*session.Session, error)
}

// UserLookup resolves callers for the admin guard.
type UserLookup interface {
	GetUserByTelegramID(ctx context.Context, id int64) (*storage.User, error)
}

// Options configures a Router.
type Options struct {
	Sessions SessionSource
	Users    UserLookup
	Codec    *callbacks.Codec

	// DeniedText answers callers without the required capability.
	DeniedText string
	// FailureText answers events whose handling failed.
	FailureText string
}

// Router evaluates routes in tier order; the first match wins.
type Router struct {
	tiers    [][]Route
	captions map[string]Route
	opts     Options
}

// New validates routes and builds a Router.
func New(routes []Route, opts Options) (*Router, error) {
	if opts.Sessions == nil || opts.Users == nil {
		return nil, fmt.Errorf("dialog: sessions and users are required")
	}
	r := &Router{
		tiers:    make([][]Route, TierFallback+1),
		captions: make(map[string]Route),
		opts:     opts,
	}
	sorted := append([]Route(nil), routes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tier < sorted[j].Tier })

	for _, rt := range sorted {
		switch {
		case rt.Name == "" || rt.Handle == nil:
			return nil, fmt.Errorf("dialog: route %q is missing a name or handler", rt.Name)
		case rt.Tier < TierCommand || rt.Tier > TierFallback:
			return nil, fmt.Errorf("dialog: route %q has unknown tier %d", rt.Name, rt.Tier)
		case rt.Tier == TierCaption:
			if rt.Caption == "" || rt.Match != nil {
				return nil, fmt.Errorf("dialog: caption route %q needs exactly a caption", rt.Name)
			}
			if prev, dup := r.captions[rt.Caption]; dup {
				return nil, fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateCaption, rt.Caption, prev.Name, rt.Name)
			}
			r.captions[rt.Caption] = rt
		default:
			if rt.Match == nil || rt.Caption != "" {
				return nil, fmt.Errorf("dialog: route %q needs a predicate", rt.Name)
			}
			r.tiers[rt.Tier] = append(r.tiers[rt.Tier], rt)
		}
	}
	return r, nil
}

// Captions returns the number of caption routes.
func (r *Router) Captions() int { return len(r.captions) }

func (r *Router) match(req *Request) (Route, bool) {
	for tier := TierCommand; tier <= TierFallback; tier++ {
		if tier == TierCaption {
			if req.Event.Kind == KindText {
				if rt, ok := r.captions[req.Event.Text]; ok {
					return rt, true
				}
			}
			continue
		}
		for _, rt := range r.tiers[tier] {
			if rt.Match(req) {
				return rt, true
			}
		}
	}
	return Route{}, false
}

// Dispatch handles ev and returns the name of the route that ran.
// Handler failures are answered with FailureText and returned for the summary log.
func (r *Router) Dispatch(ctx context.Context, ev Event, out Responder) (string, error) {
	ctx = logger.WithLogger(ctx, logger.Component("dialog"))

	sess, err := r.opts.Sessions.Current(ctx, ev.UserID)
	if err != nil {
		logger.Error(ctx, "dialog", "session.load.failed",
			slog.Int64("user_id", ev.UserID),
			logger.Err(err),
		)
		r.fail(ctx, ev, out)
		return "session", err
	}

	req := &Request{Event: ev, Session: sess, Out: out}
	if ev.Kind == KindCallback && r.opts.Codec != nil {
		p, perr := r.opts.Codec.Parse(ev.Data)
		req.Payload, req.PayloadOK = p, perr == nil
	}

	rt, ok := r.match(req)
	if !ok {
		logger.Debug(ctx, "dialog", "route.none",
			slog.String("kind", ev.Kind.String()),
		)
		return "", nil
	}
	ctx = logger.WithHandler(ctx, rt.Name)

	if rt.Require == Admin {
		caller, allowed, err := r.authorize(ctx, ev.UserID)
		if err != nil {
			logger.Error(ctx, "dialog", "guard.lookup.failed", logger.Err(err))
			r.fail(ctx, ev, out)
			return rt.Name, err
		}
		if !allowed {
			logger.Warn(ctx, "dialog", "guard.denied",
				slog.Int64("user_id", ev.UserID),
				slog.String("route", rt.Name),
			)
			r.deny(ctx, ev, out)
			return rt.Name, nil
		}
		req.Caller = caller
	}

	if err := rt.Handle(ctx, req); err != nil {
		logger.Error(ctx, "dialog", "handler.failed",
			slog.String("route", rt.Name),
			logger.Err(err),
		)
		r.fail(ctx, ev, out)
		return rt.Name, err
	}
	return rt.Name, nil
}

func (r *Router) authorize(ctx context.Context, userID int64) (*storage.User, bool, error) {
	u, err := tghelpers.CurrentUser[*storage.User](ctx, r.opts.Users, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if u == nil || !u.IsActive || !u.IsAdmin() {
		return nil, false, nil
	}
	return u, true, nil
}

func (r *Router) deny(ctx context.Context, ev Event, out Responder) {
	r.notify(ctx, ev, out, r.opts.DeniedText)
}

func (r *Router) fail(ctx context.Context, ev Event, out Responder) {
	r.notify(ctx, ev, out, r.opts.FailureText)
}

func (r *Router) notify(ctx context.Context, ev Event, out Responder, text string) {
	if text == "" || out == nil {
		return
	}
	var err error
	if ev.Kind == KindCallback {
		err = out.Ack(ctx, text)
	} else {
		err = out.Send(ctx, Reply{Text: text})
	}
	if err != nil {
		logger.Warn(ctx, "dialog", "notify.failed", logger.Err(err))
	}
}
