package handlers

import (
	"context"
	"fmt"

	"github.com/m3rciful/contentbot/internal/dialog"
	"github.com/m3rciful/contentbot/internal/session"
	"github.com/m3rciful/contentbot/internal/ui"
)

// Routes returns the full route table. Category captions are generated
// from the active categories, so the store must be seeded first.
func (h *Handlers) Routes(ctx context.Context) ([]dialog.Route, error) {
	cats, err := h.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("handlers: load categories: %w", err)
	}
	h.categories = cats

	routes := []dialog.Route{
		{Name: "cmd.start", Tier: dialog.TierCommand, Match: dialog.Command("start"), Handle: h.start},
		{Name: "cmd.help", Tier: dialog.TierCommand, Match: dialog.Command("help"), Handle: h.help},
		{Name: "cmd.myid", Tier: dialog.TierCommand, Match: dialog.Command("myid"), Handle: h.myID},
		{Name: "cmd.makeadmin", Tier: dialog.TierCommand, Match: dialog.Command("makeadmin"), Handle: h.makeAdmin},
		{Name: "cmd.send", Tier: dialog.TierCommand, Match: dialog.Command("send"), Require: dialog.Admin, Handle: h.sendCommand},
		{Name: "cmd.cancel", Tier: dialog.TierCommand, Match: dialog.Command("cancel"), Handle: h.cancel},

		{Name: "registration.contact", Tier: dialog.TierContact, Match: contactAtPhoneStep, Handle: h.registerPhone},

		{Name: "registration.phone", Tier: dialog.TierRegistration, Match: dialog.AtRegistrationStep(session.StepPhone), Handle: h.registerPhone},
		{Name: "registration.first_name", Tier: dialog.TierRegistration, Match: dialog.AtRegistrationStep(session.StepFirstName), Handle: h.registerFirstName},
		{Name: "registration.last_name", Tier: dialog.TierRegistration, Match: dialog.AtRegistrationStep(session.StepLastName), Handle: h.registerLastName},
		{Name: "registration.province", Tier: dialog.TierRegistration, Match: dialog.AtRegistrationStep(session.StepProvince), Handle: h.registerProvince},

		caption("menu.home", ui.BtnHome, dialog.Anyone, h.goHome),
		caption("menu.back", ui.BtnBack, dialog.Anyone, h.goBack),
		caption("menu.contact_us", ui.BtnContactUs, dialog.Anyone, h.text(ui.MsgContactInfo)),
		caption("menu.about_us", ui.BtnAboutUs, dialog.Anyone, h.text(ui.MsgAbout)),
		caption("menu.user_panel", ui.BtnUserPanel, dialog.Anyone, h.userPanel),
		caption("menu.user_side", ui.BtnUserSide, dialog.Anyone, h.userPanel),
		caption("panel.guide", ui.BtnGuide, dialog.Anyone, h.guide),
		caption("panel.settings", ui.BtnSettings, dialog.Anyone, h.settings),
		caption("panel.my_info", ui.BtnMyInfo, dialog.Anyone, h.myInfo),
		caption("panel.my_stats", ui.BtnMyStats, dialog.Anyone, h.myStats),

		caption("admin.welcome", ui.BtnWelcome, dialog.Admin, h.adminWelcome),
		caption("admin.panel", ui.BtnAdminPanel, dialog.Admin, h.adminPanel),
		caption("admin.stats", ui.BtnGeneralStats, dialog.Admin, h.generalStats),
		caption("admin.user_management", ui.BtnUserManagement, dialog.Admin, h.userManagement),
		caption("admin.user_list", ui.BtnUserList, dialog.Admin, h.userList),
		caption("admin.search_users", ui.BtnSearchUsers, dialog.Admin, h.searchMenu),
		caption("admin.add_admin", ui.BtnAddAdmin, dialog.Admin, h.addAdminPrompt),
		caption("admin.content_management", ui.BtnContentManagement, dialog.Admin, h.contentManagement),

		{Name: "admin.upload_music", Tier: dialog.TierUpload, Match: dialog.Awaiting(dialog.KindFile, session.ActionAddMusic, session.StepMusic), Require: dialog.Admin, Handle: h.receiveMusic},

		{Name: "admin.music_expected", Tier: dialog.TierInput, Match: dialog.Awaiting(dialog.KindText, session.ActionAddMusic, session.StepMusic), Require: dialog.Admin, Handle: h.text(ui.MsgAskMusicAgain)},
		{Name: "admin.music_text", Tier: dialog.TierInput, Match: dialog.Awaiting(dialog.KindText, session.ActionAddMusic, session.StepText), Require: dialog.Admin, Handle: h.receiveMusicText},
		{Name: "admin.add_text", Tier: dialog.TierInput, Match: dialog.Awaiting(dialog.KindText, session.ActionAddText, session.StepText), Require: dialog.Admin, Handle: h.receiveText},
		{Name: "admin.add_admin_input", Tier: dialog.TierInput, Match: dialog.Awaiting(dialog.KindText, session.ActionAddAdmin, session.StepInput), Require: dialog.Admin, Handle: h.addAdmin},
		{Name: "admin.search_input", Tier: dialog.TierInput, Match: dialog.Awaiting(dialog.KindText, session.ActionSearchUsers, session.StepInput), Require: dialog.Admin, Handle: h.searchInput},
		{Name: "admin.message_input", Tier: dialog.TierInput, Match: dialog.Awaiting(dialog.KindText, session.ActionSendMessage, session.StepMessage), Require: dialog.Admin, Handle: h.relayMessage},

		onCallback("cb.user_list", ui.CbUserList, h.userListPage),
		onCallback("cb.user_list_info", ui.CbUserListInfo, h.pageIndicator),
		onCallback("cb.user_detail", ui.CbUserDetail, h.userDetail),
		onCallback("cb.ban_user", ui.CbBanUser, h.banUser),
		onCallback("cb.unban_user", ui.CbUnbanUser, h.unbanUser),
		onCallback("cb.make_admin", ui.CbMakeAdmin, h.makeAdminCallback),
		onCallback("cb.make_user", ui.CbMakeUser, h.makeUserCallback),
		onCallback("cb.user_stats", ui.CbUserStats, h.userStats),
		onCallback("cb.message_user", ui.CbMessageUser, h.messageUser),
		onCallback("cb.user_search", ui.CbUserSearch, h.searchMenuCallback),
		onCallback("cb.search_by", ui.CbSearchBy, h.searchBy),

		{Name: "fallback.callback", Tier: dialog.TierFallback, Match: dialog.Is(dialog.KindCallback), Handle: h.unsupported},
		{Name: "fallback", Tier: dialog.TierFallback, Match: dialog.Always, Handle: h.text(ui.MsgRegisterFirst)},
	}

	for _, c := range cats {
		routes = append(routes,
			caption("browse."+c.Name, ui.BrowseCaption(c), dialog.Anyone, h.browse(c)),
			caption("admin.add_music."+c.Name, ui.AddMusicCaption(c), dialog.Admin, h.startAddMusic(c)),
			caption("admin.add_text."+c.Name, ui.AddTextCaption(c), dialog.Admin, h.startAddText(c)),
		)
	}
	return routes, nil
}

func caption(name, text string, require dialog.Capability, handle dialog.Handler) dialog.Route {
	return dialog.Route{Name: name, Tier: dialog.TierCaption, Caption: text, Require: require, Handle: handle}
}

func onCallback(name, family string, handle dialog.Handler) dialog.Route {
	return dialog.Route{Name: name, Tier: dialog.TierCallback, Match: dialog.OnCallback(family), Require: dialog.Admin, Handle: handle}
}

func contactAtPhoneStep(r *dialog.Request) bool {
	return r.Event.Kind == dialog.KindContact && r.Session.AtRegistrationStep(session.StepPhone)
}

// text answers with fixed copy.
func (h *Handlers) text(msg string) dialog.Handler {
	return func(ctx context.Context, req *dialog.Request) error {
		return send(ctx, req, msg, nil)
	}
}

func (h *Handlers) unsupported(ctx context.Context, req *dialog.Request) error {
	return req.Out.Ack(ctx, ui.MsgUnsupported)
}
