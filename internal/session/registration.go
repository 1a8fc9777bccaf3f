package session

import "context"

// StartRegistration replaces any session of userID with a registration at the phone step.
func (m *Manager) StartRegistration(ctx context.Context, userID int64) error {
	return m.save(ctx, userID, &Session{
		Kind:         KindRegistration,
		Registration: &Registration{Step: StepPhone},
	})
}

// AdvanceRegistration applies mutate to the collected fields and moves to next.
// Without a registration in progress a new one is started.
func (m *Manager) AdvanceRegistration(ctx context.Context, userID int64, next Step, mutate func(*Registration)) error {
	reg, err := m.registration(ctx, userID)
	if err != nil {
		return err
	}
	if mutate != nil {
		mutate(reg)
	}
	reg.Step = next
	return m.save(ctx, userID, &Session{Kind: KindRegistration, Registration: reg})
}

// CollectRegistration applies mutate to the collected fields without changing the step.
func (m *Manager) CollectRegistration(ctx context.Context, userID int64, mutate func(*Registration)) error {
	reg, err := m.registration(ctx, userID)
	if err != nil {
		return err
	}
	step := reg.Step
	if mutate != nil {
		mutate(reg)
	}
	reg.Step = step
	return m.save(ctx, userID, &Session{Kind: KindRegistration, Registration: reg})
}

// FinishRegistration ends the wizard.
func (m *Manager) FinishRegistration(ctx context.Context, userID int64) error {
	return m.Clear(ctx, userID)
}

func (m *Manager) registration(ctx context.Context, userID int64) (*Registration, error) {
	s, err := m.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.Kind != KindRegistration {
		return &Registration{Step: StepPhone}, nil
	}
	return s.Registration, nil
}
