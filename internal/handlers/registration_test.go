package handlers_test

import (
	"testing"

	"github.com/m3rciful/contentbot/internal/dialog"
	"github.com/m3rciful/contentbot/internal/session"
	"github.com/m3rciful/contentbot/internal/storage"
	"github.com/m3rciful/contentbot/internal/ui"
)

func TestRegistrationWizard(t *testing.T) {
	h := newHarness(t)

	route, out := h.command(100, "start", "")
	if route != "cmd.start" || out.lastText() != ui.MsgAskPhone {
		t.Fatalf("start: route=%s text=%q", route, out.lastText())
	}
	if !h.session(100).AtRegistrationStep(session.StepPhone) {
		t.Fatalf("session after start = %+v", h.session(100))
	}

	route, out = h.dispatch(dialog.Event{Kind: dialog.KindContact, UserID: 100, Phone: "+98 912 345 6789"})
	if route != "registration.contact" || out.lastText() != ui.MsgAskFirstName {
		t.Fatalf("contact: route=%s text=%q", route, out.lastText())
	}
	if _, out = h.text(100, "علی"); out.lastText() != ui.MsgAskLastName {
		t.Fatalf("first name reply = %q", out.lastText())
	}
	if _, out = h.text(100, "رضایی"); out.lastText() != ui.MsgAskProvince {
		t.Fatalf("last name reply = %q", out.lastText())
	}
	route, _ = h.text(100, "اصفهان")
	if route != "registration.province" {
		t.Fatalf("province route = %s", route)
	}

	u := h.user(100)
	if u.Phone != "09123456789" || u.FirstName != "علی" || u.LastName != "رضایی" ||
		u.Province != "اصفهان" || u.City != "اصفهان" || u.Role != storage.RoleUser || !u.IsActive {
		t.Fatalf("user = %+v", u)
	}
	if s := h.session(100); s != nil {
		t.Fatalf("session left behind: %+v", s)
	}
}

func TestRegistrationRejectsInvalidNameAndRetries(t *testing.T) {
	h := newHarness(t)
	h.command(200, "start", "")
	h.text(200, "09121234567")

	route, out := h.text(200, "Ali2")
	if route != "registration.first_name" || out.lastText() != ui.MsgInvalidName {
		t.Fatalf("invalid name: route=%s text=%q", route, out.lastText())
	}
	if !h.session(200).AtRegistrationStep(session.StepFirstName) {
		t.Fatalf("step moved: %+v", h.session(200).Registration)
	}

	if _, out = h.text(200, "Ali"); out.lastText() != ui.MsgAskLastName {
		t.Fatalf("retry reply = %q", out.lastText())
	}
	if s := h.session(200); s.Registration.FirstName != "Ali" {
		t.Fatalf("registration = %+v", s.Registration)
	}
}

func TestRegistrationRejectsUnknownProvince(t *testing.T) {
	h := newHarness(t)
	h.command(300, "start", "")
	h.text(300, "09121234567")
	h.text(300, "Sara")
	h.text(300, "Karimi")

	_, out := h.text(300, "Atlantis")
	if out.lastText() != ui.MsgInvalidProv {
		t.Fatalf("reply = %q", out.lastText())
	}
	if _, err := h.store.GetUserByTelegramID(h.ctx, 300); err != storage.ErrNotFound {
		t.Fatalf("user stored before valid province: %v", err)
	}
}

func TestStartForRegisteredUsers(t *testing.T) {
	h := newHarness(t)
	h.register(10, "Ali", "Rezaei", "تهران", storage.RoleUser)
	h.register(11, "Mina", "Ahmadi", "تهران", storage.RoleAdmin)
	h.register(12, "Reza", "Moradi", "قم", storage.RoleUser)
	if _, err := h.store.BanUser(h.ctx, 12); err != nil {
		t.Fatalf("ban: %v", err)
	}

	if _, out := h.command(10, "start", ""); out.lastText() != ui.MsgWelcomeBack {
		t.Fatalf("user start = %q", out.lastText())
	}
	if _, out := h.command(11, "start", ""); out.lastText() != ui.MsgWelcome {
		t.Fatalf("admin start = %q", out.lastText())
	}
	if _, out := h.command(12, "start", ""); out.lastText() != ui.MsgDeactivated {
		t.Fatalf("banned start = %q", out.lastText())
	}
	if s := h.session(12); s != nil {
		t.Fatalf("banned user got a session: %+v", s)
	}
}

func TestUnregisteredTextFallsBack(t *testing.T) {
	h := newHarness(t)
	route, out := h.text(400, "hello")
	if route != "fallback" || out.lastText() != ui.MsgRegisterFirst {
		t.Fatalf("route=%s text=%q", route, out.lastText())
	}
}

func TestCancelClearsSession(t *testing.T) {
	h := newHarness(t)
	h.command(500, "start", "")
	if _, out := h.command(500, "cancel", ""); out.lastText() != ui.MsgCancelled {
		t.Fatalf("cancel = %q", out.lastText())
	}
	if s := h.session(500); s != nil {
		t.Fatalf("session = %+v", s)
	}
	if _, out := h.command(500, "cancel", ""); out.lastText() != ui.MsgNothingToCancel {
		t.Fatalf("second cancel = %q", out.lastText())
	}
}

func (h *harness) completeRegistration(id int64, phone dialog.Event) {
	h.t.Helper()
	h.command(id, "start", "")
	phone.UserID = id
	if _, out := h.dispatch(phone); out.lastText() != ui.MsgAskFirstName {
		h.t.Fatalf("phone for %d rejected: %q", id, out.lastText())
	}
	h.text(id, "Sara")
	h.text(id, "Karimi")
	h.text(id, "قم")
}

func TestContactAndTypedPhoneAreStoredAlike(t *testing.T) {
	h := newHarness(t)
	h.register(1, "Owner", "Boss", "تهران", storage.RoleSuperAdmin)
	h.completeRegistration(400, dialog.Event{Kind: dialog.KindContact, Phone: "+98 912 345 6789"})
	h.completeRegistration(401, dialog.Event{Kind: dialog.KindText, Text: "0912 345 6789"})

	contact, typed := h.user(400).Phone, h.user(401).Phone
	if contact != "09123456789" || typed != contact {
		t.Fatalf("stored phones: contact=%q typed=%q", contact, typed)
	}

	for _, term := range []string{"0912345", "+989123456789"} {
		h.callback(1, ui.SearchByData(storage.SearchPhone))
		_, out := h.text(1, term)
		if len(out.sent) != 1 {
			t.Fatalf("search %q replies = %+v", term, out.sent)
		}
		found := map[string]bool{}
		for _, d := range detailButtons(out.sent[0].Markup) {
			found[d] = true
		}
		if len(found) != 2 || !found["user_detail_400"] || !found["user_detail_401"] {
			t.Fatalf("search %q found %v", term, found)
		}
	}
}
