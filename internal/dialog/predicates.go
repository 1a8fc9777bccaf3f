package dialog

import (
	"strings"

	"github.com/m3rciful/contentbot/internal/session"
)

// Command matches /name.
func Command(name string) func(*Request) bool {
	name = strings.TrimPrefix(strings.ToLower(name), "/")
	return func(r *Request) bool {
		return r.Event.Kind == KindCommand && r.Event.Command == name
	}
}

// Is matches events of the given kind.
func Is(kind Kind) func(*Request) bool {
	return func(r *Request) bool { return r.Event.Kind == kind }
}

// AtRegistrationStep matches text while the caller's registration waits at step.
func AtRegistrationStep(step session.Step) func(*Request) bool {
	return func(r *Request) bool {
		return r.Event.Kind == KindText && r.Session.AtRegistrationStep(step)
	}
}

// Awaiting matches an event of kind while the caller's admin action waits at step.
func Awaiting(kind Kind, action session.Action, step session.Step) func(*Request) bool {
	return func(r *Request) bool {
		return r.Event.Kind == kind && r.Session.Awaiting(action, step)
	}
}

// OnCallback matches inline button taps whose payload decodes to family.
func OnCallback(family string) func(*Request) bool {
	return func(r *Request) bool {
		return r.Event.Kind == KindCallback && r.PayloadOK && r.Payload.Family == family
	}
}

// Always matches every event.
func Always(*Request) bool { return true }
