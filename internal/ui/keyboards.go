package ui

import (
	"fmt"

	"github.com/m3rciful/contentbot/core/telegram/keyboard"
	"github.com/m3rciful/contentbot/internal/storage"
	"github.com/m3rciful/contentbot/internal/validate"
	tele "gopkg.in/telebot.v4"
)

func browseRows(cats []storage.Category) [][]string {
	captions := make([]string, len(cats))
	for i, c := range cats {
		captions[i] = BrowseCaption(c)
	}
	return keyboard.Chunk(captions, 2)
}

// PhoneRequest asks the user to share their contact.
func PhoneRequest() *tele.ReplyMarkup {
	return keyboard.ContactRequest(BtnSendContact)
}

// ProvinceKeyboard lists provinces two per row.
func ProvinceKeyboard() *tele.ReplyMarkup {
	markup := keyboard.ReplyButtons(keyboard.Chunk(validate.Provinces, 2)...)
	markup.OneTimeKeyboard = true
	return markup
}

// MainMenu is the registered user's home keyboard.
func MainMenu(cats []storage.Category) *tele.ReplyMarkup {
	rows := [][]string{{BtnHome}}
	rows = append(rows, browseRows(cats)...)
	rows = append(rows, []string{BtnContactUs, BtnAboutUs}, []string{BtnUserPanel})
	return keyboard.ReplyButtons(rows...)
}

// UserPanel extends the main menu with account buttons.
func UserPanel(cats []storage.Category) *tele.ReplyMarkup {
	rows := [][]string{{BtnHome}}
	rows = append(rows, browseRows(cats)...)
	rows = append(rows,
		[]string{BtnContactUs, BtnAboutUs},
		[]string{BtnGuide, BtnSettings},
		[]string{BtnMyInfo, BtnMyStats},
		[]string{BtnBack},
	)
	return keyboard.ReplyButtons(rows...)
}

// AdminChoice lets an admin pick between the admin and user panels.
func AdminChoice() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{BtnWelcome},
		[]string{BtnAdminPanel, BtnUserSide},
		[]string{BtnGeneralStats},
	)
}

// AdminPanel is the admin's home keyboard.
func AdminPanel() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{BtnHome},
		[]string{BtnUserManagement},
		[]string{BtnUserList, BtnAddAdmin},
		[]string{BtnContentManagement},
		[]string{BtnGeneralStats},
		[]string{BtnBack},
	)
}

// UserManagement groups the roster actions.
func UserManagement() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{BtnUserList, BtnSearchUsers},
		[]string{BtnAddAdmin},
		[]string{BtnBack},
	)
}

// ContentManagement offers one browse row and one add row per category.
func ContentManagement(cats []storage.Category) *tele.ReplyMarkup {
	rows := [][]string{{BtnHome}}
	for _, c := range cats {
		rows = append(rows,
			[]string{BrowseCaption(c)},
			[]string{AddMusicCaption(c), AddTextCaption(c)},
		)
	}
	rows = append(rows, []string{BtnBack})
	return keyboard.ReplyButtons(rows...)
}

// UserListKeyboard is the inline roster page: one button per user, pagination,
// then search and refresh.
func UserListKeyboard(page *storage.UserPage, fragment string) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(page.Users)+2)
	for i := range page.Users {
		u := &page.Users[i]
		label := fmt.Sprintf("🔮 %s %s | %s", roleEmoji(u.Role), u.FullName(), u.Province)
		rows = append(rows, []keyboard.InlineBtn{{Text: label, Data: UserData(CbUserDetail, u.ExternalID)}})
	}
	if page.Pages > 1 {
		var nav []keyboard.InlineBtn
		if page.Page > 1 {
			nav = append(nav, keyboard.InlineBtn{Text: "⬅️ قبلی", Data: UserListData(page.Page-1, fragment)})
		}
		nav = append(nav, keyboard.InlineBtn{Text: fmt.Sprintf("📄 %d/%d", page.Page, page.Pages), Data: CbUserListInfo})
		if page.Page < page.Pages {
			nav = append(nav, keyboard.InlineBtn{Text: "بعدی ➡️", Data: UserListData(page.Page+1, fragment)})
		}
		rows = append(rows, nav)
	}
	rows = append(rows, []keyboard.InlineBtn{
		{Text: "🔍 جستجو", Data: CbUserSearch},
		{Text: "🔄 بروزرسانی", Data: UserListData(page.Page, fragment)},
	})
	return keyboard.InlineButtonsRows(rows...)
}

// UserDetailKeyboard offers the management actions that apply to u.
func UserDetailKeyboard(u *storage.User) *tele.ReplyMarkup {
	var rows [][]keyboard.InlineBtn
	if u.Role != storage.RoleSuperAdmin {
		if u.IsActive {
			rows = append(rows, []keyboard.InlineBtn{{Text: "🚫 بن کردن", Data: UserData(CbBanUser, u.ExternalID)}})
		} else {
			rows = append(rows, []keyboard.InlineBtn{{Text: "✅ آزاد کردن", Data: UserData(CbUnbanUser, u.ExternalID)}})
		}
	}
	switch u.Role {
	case storage.RoleUser:
		rows = append(rows, []keyboard.InlineBtn{{Text: "🛡️ تبدیل به ادمین", Data: UserData(CbMakeAdmin, u.ExternalID)}})
	case storage.RoleAdmin:
		rows = append(rows, []keyboard.InlineBtn{{Text: "👤 تبدیل به کاربر", Data: UserData(CbMakeUser, u.ExternalID)}})
	}
	rows = append(rows,
		[]keyboard.InlineBtn{
			{Text: "📊 آمار کاربر", Data: UserData(CbUserStats, u.ExternalID)},
			{Text: "💬 پیام به کاربر", Data: UserData(CbMessageUser, u.ExternalID)},
		},
		[]keyboard.InlineBtn{{Text: "🔙 بازگشت به لیست", Data: UserListData(1, "")}},
	)
	return keyboard.InlineButtonsRows(rows...)
}

// SearchKeyboard picks the field to search by.
func SearchKeyboard() *tele.ReplyMarkup {
	markup := keyboard.InlineButtonsNPerRow([]keyboard.InlineBtn{
		{Text: "🔍 جستجو بر اساس نام", Data: SearchByData(storage.SearchName)},
		{Text: "📞 جستجو بر اساس شماره", Data: SearchByData(storage.SearchPhone)},
		{Text: "🗺️ جستجو بر اساس استان", Data: SearchByData(storage.SearchProvince)},
		{Text: "👑 جستجو بر اساس نقش", Data: SearchByData(storage.SearchRole)},
	}, 2)
	markup.InlineKeyboard = append(markup.InlineKeyboard, []tele.InlineButton{
		{Text: BtnBack, Data: UserListData(1, "")},
	})
	return markup
}
