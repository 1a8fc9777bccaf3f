// Package ui holds the bot's captions, keyboards, message copy and inline
// button payloads.
package ui

import "github.com/m3rciful/contentbot/internal/storage"

// Reply keyboard captions. Each caption routes to exactly one handler.
const (
	BtnHome        = "🏠 صفحه اصلی"
	BtnContactUs   = "📞 ارتباط با ما"
	BtnAboutUs     = "ℹ️ درباره ما"
	BtnUserPanel   = "👤 پنل کاربری"
	BtnGuide       = "📋 راهنما"
	BtnSettings    = "⚙️ تنظیمات"
	BtnMyInfo      = "👤 اطلاعات من"
	BtnMyStats     = "📊 آمار من"
	BtnBack        = "🔙 بازگشت"
	BtnSendContact = "ارسال شماره تلفن"

	BtnWelcome           = "👋 خوش آمدید"
	BtnAdminPanel        = "👑 پنل ادمین"
	BtnUserSide          = "👤 پنل کاربر"
	BtnGeneralStats      = "📊 آمار کلی"
	BtnUserManagement    = "👥 مدیریت کاربران"
	BtnUserList          = "📋 لیست کاربران"
	BtnSearchUsers       = "🔍 جستجوی کاربران"
	BtnAddAdmin          = "➕ افزودن ادمین"
	BtnContentManagement = "📁 مدیریت محتوا"
)

var browseCaptions = map[string]string{
	storage.CategoryTopTracks:       "🔥 پر بازدید ترین ترک ها",
	storage.CategoryEconomicPackage: "💰 پکیج اقتصادی",
	storage.CategoryVIPPackage:      "👑 پکیج مگاهیت VIP",
}

// BrowseCaption is the main menu button that lists category c.
func BrowseCaption(c storage.Category) string {
	if caption, ok := browseCaptions[c.Name]; ok {
		return caption
	}
	return "📂 " + c.DisplayName
}

// AddMusicCaption is the content management button that starts an upload into c.
func AddMusicCaption(c storage.Category) string {
	return "🎵 افزودن موزیک به " + c.DisplayName
}

// AddTextCaption is the content management button that starts a text entry into c.
func AddTextCaption(c storage.Category) string {
	return "📝 افزودن متن به " + c.DisplayName
}
