package session

import "context"

// StartAction replaces any session of userID with action at its first step.
func (m *Manager) StartAction(ctx context.Context, userID int64, action Action, category string) error {
	return m.save(ctx, userID, &Session{
		Kind: KindAdmin,
		Admin: &AdminAction{
			Action:   action,
			Step:     InitialStep(action),
			Category: category,
		},
	})
}

// UpdateAction applies mutate to the admin action in progress.
// It returns ErrNoSession when userID has no admin session.
func (m *Manager) UpdateAction(ctx context.Context, userID int64, mutate func(*AdminAction)) error {
	s, err := m.Current(ctx, userID)
	if err != nil {
		return err
	}
	if s == nil || s.Kind != KindAdmin {
		return ErrNoSession
	}
	action := s.Admin.Action
	mutate(s.Admin)
	s.Admin.Action = action
	return m.save(ctx, userID, s)
}

// EndAction ends the admin action.
func (m *Manager) EndAction(ctx context.Context, userID int64) error {
	return m.Clear(ctx, userID)
}
