package handlers

import (
	"context"
	"log/slog"

	"github.com/m3rciful/contentbot/core/logger"
	"github.com/m3rciful/contentbot/core/telegram/keyboard"
	"github.com/m3rciful/contentbot/internal/dialog"
	"github.com/m3rciful/contentbot/internal/session"
	"github.com/m3rciful/contentbot/internal/storage"
	"github.com/m3rciful/contentbot/internal/ui"
	"github.com/m3rciful/contentbot/internal/validate"
)

// registerPhone accepts a shared contact or a typed number.
func (h *Handlers) registerPhone(ctx context.Context, req *dialog.Request) error {
	raw := req.Event.Text
	if req.Event.Kind == dialog.KindContact {
		raw = req.Event.Phone
	}
	phone, err := validate.Phone(raw)
	if err != nil {
		return send(ctx, req, ui.MsgInvalidPhone, ui.PhoneRequest())
	}
	if err := h.sessions.AdvanceRegistration(ctx, req.Event.UserID, session.StepFirstName, func(r *session.Registration) {
		r.Phone = phone
	}); err != nil {
		return err
	}
	return send(ctx, req, ui.MsgAskFirstName, keyboard.RemoveKeyboard())
}

func (h *Handlers) registerFirstName(ctx context.Context, req *dialog.Request) error {
	name, err := validate.Name(req.Event.Text)
	if err != nil {
		return send(ctx, req, ui.MsgInvalidName, nil)
	}
	if err := h.sessions.AdvanceRegistration(ctx, req.Event.UserID, session.StepLastName, func(r *session.Registration) {
		r.FirstName = name
	}); err != nil {
		return err
	}
	return send(ctx, req, ui.MsgAskLastName, nil)
}

func (h *Handlers) registerLastName(ctx context.Context, req *dialog.Request) error {
	name, err := validate.Name(req.Event.Text)
	if err != nil {
		return send(ctx, req, ui.MsgInvalidName, nil)
	}
	if err := h.sessions.AdvanceRegistration(ctx, req.Event.UserID, session.StepProvince, func(r *session.Registration) {
		r.LastName = name
	}); err != nil {
		return err
	}
	return send(ctx, req, ui.MsgAskProvince, ui.ProvinceKeyboard())
}

// registerProvince completes the wizard: the user is stored before the
// session is cleared, so a failed write leaves the user at this step.
func (h *Handlers) registerProvince(ctx context.Context, req *dialog.Request) error {
	province, city, err := validate.Province(req.Event.Text)
	if err != nil {
		return send(ctx, req, ui.MsgInvalidProv, ui.ProvinceKeyboard())
	}
	reg := req.Session.Registration
	u, err := h.store.CreateUser(ctx, storage.NewUser{
		ExternalID: req.Event.UserID,
		Phone:      reg.Phone,
		FirstName:  reg.FirstName,
		LastName:   reg.LastName,
		Province:   province,
		City:       city,
	})
	if err != nil {
		return err
	}
	if err := h.sessions.FinishRegistration(ctx, req.Event.UserID); err != nil {
		return err
	}
	logger.Info(ctx, "service.users", "registration.complete",
		slog.Int64("user_id", u.ExternalID),
		slog.String("province", province),
	)
	markup := ui.MainMenu(h.categories)
	if u.IsAdmin() {
		markup = ui.AdminChoice()
	}
	return send(ctx, req, ui.RegistrationComplete(u), markup)
}
