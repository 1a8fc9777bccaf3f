// Package session tracks where each user is inside a multi-step dialog.
// A session is either a registration in progress or an admin action in
// progress; it is stored as JSON through a state.Store and expires after a TTL.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/m3rciful/contentbot/core/logger"
	"github.com/m3rciful/contentbot/core/telegram/state"
)

// ErrNoSession is returned when an update needs a session of a kind the user does not have.
var ErrNoSession = errors.New("session: no matching session")

// Kind tags the session variant.
type Kind string

const (
	KindRegistration Kind = "registration"
	KindAdmin        Kind = "admin"
)

// Step names one position inside a wizard.
type Step string

// Registration steps, in order.
const (
	StepPhone     Step = "phone"
	StepFirstName Step = "first_name"
	StepLastName  Step = "last_name"
	StepProvince  Step = "province"
)

// Admin action steps.
const (
	StepMusic   Step = "music"
	StepText    Step = "text"
	StepInput   Step = "input"
	StepMessage Step = "message"
)

// Action names an admin workflow.
type Action string

const (
	ActionAddMusic    Action = "add_music"
	ActionAddText     Action = "add_text"
	ActionAddAdmin    Action = "add_admin"
	ActionSearchUsers Action = "search_users"
	ActionSendMessage Action = "send_message"
)

// InitialStep is the step an action starts at.
func InitialStep(a Action) Step {
	switch a {
	case ActionAddMusic:
		return StepMusic
	case ActionAddText:
		return StepText
	case ActionSendMessage:
		return StepMessage
	default:
		return StepInput
	}
}

// Registration holds the fields collected so far by the registration wizard.
type Registration struct {
	Step      Step   `json:"step"`
	Phone     string `json:"phone,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// AdminAction holds the state of one admin workflow.
type AdminAction struct {
	Action       Action `json:"action"`
	Step         Step   `json:"step"`
	Category     string `json:"category,omitempty"`
	FileRef      string `json:"file_ref,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
	FileTitle    string `json:"file_title,omitempty"`
	TargetUserID int64  `json:"target_user_id,omitempty"`
	SearchField  string `json:"search_field,omitempty"`
}

// Session is the tagged union persisted per user. Exactly one of
// Registration and Admin is set, matching Kind.
type Session struct {
	Kind         Kind          `json:"kind"`
	Registration *Registration `json:"registration,omitempty"`
	Admin        *AdminAction  `json:"admin,omitempty"`
}

// AtRegistrationStep reports whether s is a registration waiting at step.
func (s *Session) AtRegistrationStep(step Step) bool {
	return s != nil && s.Kind == KindRegistration && s.Registration != nil && s.Registration.Step == step
}

// Awaiting reports whether s is the given admin action waiting at step.
func (s *Session) Awaiting(action Action, step Step) bool {
	return s != nil && s.Kind == KindAdmin && s.Admin != nil && s.Admin.Action == action && s.Admin.Step == step
}

func (s *Session) valid() bool {
	switch s.Kind {
	case KindRegistration:
		return s.Registration != nil && s.Admin == nil
	case KindAdmin:
		return s.Admin != nil && s.Registration == nil
	}
	return false
}

// Manager provides typed access to sessions kept in a state.Store.
type Manager struct {
	store state.Store
	ttl   time.Duration
}

// NewManager returns a Manager saving sessions with the given TTL.
func NewManager(store state.Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{store: store, ttl: ttl}
}

// Current returns the live session of userID, or nil when there is none.
// A payload that cannot be decoded is cleared and reported as absent.
func (m *Manager) Current(ctx context.Context, userID int64) (*Session, error) {
	data, ok, err := m.store.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("session: load: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil || !s.valid() {
		logger.Warn(ctx, "service.sessions", "session.discard",
			slog.Int64("user_id", userID),
			slog.String("reason", "undecodable"),
		)
		if err := m.store.Clear(ctx, userID); err != nil {
			return nil, fmt.Errorf("session: clear undecodable: %w", err)
		}
		return nil, nil
	}
	return &s, nil
}

func (m *Manager) save(ctx context.Context, userID int64, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := m.store.Save(ctx, userID, data, m.ttl); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	logger.Debug(ctx, "service.sessions", "session.save",
		slog.Int64("user_id", userID),
		slog.String("kind", string(s.Kind)),
		slog.String("step", string(s.step())),
	)
	return nil
}

func (s *Session) step() Step {
	switch {
	case s.Registration != nil:
		return s.Registration.Step
	case s.Admin != nil:
		return s.Admin.Step
	}
	return ""
}

// Clear removes any session of userID.
func (m *Manager) Clear(ctx context.Context, userID int64) error {
	if err := m.store.Clear(ctx, userID); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}
