package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/m3rciful/contentbot/core/telegram/format"
	"github.com/m3rciful/contentbot/internal/storage"
)

const unknown = "نامشخص"

// Fixed copy.
const (
	MsgAskPhone        = "سلام! 😊 لطفا شماره تلفن خود را ارسال کنید. 📱"
	MsgAskFirstName    = "شماره تلفن دریافت شد! ✅ حالا لطفا نام خود را وارد کنید. 👤"
	MsgAskLastName     = "نام دریافت شد! 👍 حالا لطفا نام خانوادگی خود را وارد کنید."
	MsgAskProvince     = "نام خانوادگی دریافت شد! 👏 حالا لطفا استان خود را انتخاب کنید. 🗺️"
	MsgInvalidPhone    = "شماره تلفن نامعتبر است. لطفا یک شماره معتبر ارسال کنید. ❌"
	MsgInvalidName     = "نام وارد شده نامعتبر است. لطفا فقط از حروف استفاده کنید. ❌"
	MsgInvalidProv     = "لطفا استان خود را از لیست انتخاب کنید. ❌"
	MsgRegisterFirst   = "لطفا از دستور /start استفاده کنید تا ثبت نام کنید. 🤖"
	MsgDeactivated     = "حساب کاربری شما غیرفعال شده است. برای اطلاعات بیشتر با پشتیبانی تماس بگیرید. 🚫"
	MsgDenied          = "شما دسترسی لازم را ندارید. ❌"
	MsgError           = "خطایی رخ داده است. ❌"
	MsgUnsupported     = "این عملیات پشتیبانی نمی‌شود. ❌"
	MsgCancelled       = "عملیات لغو شد. ✅"
	MsgNothingToCancel = "عملیاتی در جریان نیست."

	MsgHomeUser       = "🏠 صفحه اصلی\n\nبه تکست بخر خوش آمدید!"
	MsgHomeAdmin      = "🏠 صفحه اصلی\n\nبه پنل مدیریت خوش آمدید!"
	MsgBackUser       = "🔙 بازگشت به صفحه اصلی\n\nبه تکست بخر خوش آمدید!"
	MsgBackAdmin      = "🔙 بازگشت به صفحه اصلی\n\nبه پنل مدیریت خوش آمدید!"
	MsgWelcome        = "👋 خوش آمدید!\n\nلطفا پنل مورد نظر خود را انتخاب کنید."
	MsgWelcomeBack    = "خوش آمدید! 🎉 لطفا یکی از گزینه‌های زیر را انتخاب کنید."
	MsgAdminPanel     = "👑 پنل ادمین\n\nبه پنل مدیریت خوش آمدید! لطفا بخش مورد نظر را انتخاب کنید."
	MsgUserPanel      = "👤 پنل کاربری\n\nبه پنل کاربری خوش آمدید! لطفا گزینه مورد نظر را انتخاب کنید."
	MsgUserManagement = "👥 مدیریت کاربران\n\nلطفا عملیات مورد نظر را انتخاب کنید:"
	MsgContentMgmt    = "📁 مدیریت محتوا\n\nلطفا دسته‌بندی مورد نظر را انتخاب کنید:"
	MsgSearchMenu     = "🔍 جستجوی کاربران\n\nلطفا نوع جستجو را انتخاب کنید:"

	MsgContactInfo = "برای ارتباط با ما:\nشماره تلفن: ۰۹۱۲۳۴۵۶۷۸۹\nایمیل: info@example.com\nسایت: www.example.com"
	MsgAbout       = `ℹ️ درباره تکست بخر

تکست بخر معتبرترین پلتفرم ترانه، ملودی و تنظیم آهنگسازی در ایران است.

🎯 ویژگی‌های ما:
• سابقه کاری درخشان ۱۰ ساله
• همکاری با اکثر خوانندگان مطرح کشور
• کیفیت بالای محتوا
• پشتیبانی حرفه‌ای

📞 برای اطلاعات بیشتر با ما تماس بگیرید.`
	MsgSettings = `⚙️ تنظیمات کاربری

🔧 تنظیمات موجود:
• 📱 تغییر شماره تلفن
• 🗺️ تغییر استان
• 🏙️ تغییر شهر
• 🔔 تنظیمات اعلانات

برای تغییر هر یک از این موارد، لطفا با پشتیبانی تماس بگیرید.`
	MsgGuide = `📋 راهنمای استفاده از تکست بخر

🎵 محتوای موزیک:
• 🔥 پر بازدید ترین ترک ها: محبوب‌ترین آهنگ‌ها
• 💰 پکیج اقتصادی: آهنگ‌های با قیمت مناسب
• 👑 پکیج مگاهیت VIP: آهنگ‌های ویژه و لوکس

👤 خدمات کاربری:
• 📞 ارتباط با ما: تماس با پشتیبانی
• ℹ️ درباره ما: اطلاعات بیشتر درباره تکست بخر
• 📋 راهنما: همین پیام
• ⚙️ تنظیمات: تنظیمات حساب کاربری

🔐 حساب کاربری:
• 👤 اطلاعات من: نمایش اطلاعات شخصی
• 📊 آمار من: آمار استفاده از ربات

💡 نکات مهم:
• برای دسترسی به محتوا ابتدا ثبت نام کنید
• از دستور /start برای شروع استفاده کنید
• در صورت مشکل با پشتیبانی تماس بگیرید`
	MsgHelp = `🤖 دستورات ربات:

/start شروع و ثبت نام
/myid نمایش شناسه کاربری
/cancel لغو عملیات در جریان
/help همین راهنما

👑 دستورات ادمین:
/send [user_id] ارسال پیام به کاربر`

	MsgAddAdminPrompt = "🛡️ افزودن ادمین جدید\n\n" +
		"لطفا شناسه عددی کاربر را برای افزودن به عنوان ادمین وارد کنید.\n\n" +
		"⚠️ توجه: کاربر باید ابتدا در ربات ثبت نام کرده باشد.\n" +
		"🔢 شناسه کاربری را وارد کنید:"
	MsgInvalidUserID   = "❌ شناسه کاربری باید عدد باشد."
	MsgSendUsage       = "💬 ارسال پیام به کاربر\n\nاستفاده: `/send [user_id]`\n\nمثال: `/send 77126477`\n\n💡 ابتدا شناسه کاربری را با دستور /myid دریافت کنید."
	MsgEmptyMessage    = "❌ پیام نمی‌تواند خالی باشد."
	MsgMessagePrompted = "حالا پیام خود را ارسال کنید"
	MsgOwnerPromoted   = "شما به عنوان ادمین اصلی اضافه شدید. ✅"

	MsgAskMusic      = "لطفا فایل موزیک را ارسال کنید. 🎵"
	MsgAskMusicAgain = "لطفا فایل موزیک ارسال کنید."
	MsgAskText       = "لطفا متن اولیه را وارد کنید. 📝"
	MsgMusicReceived = "موزیک دریافت شد. حالا لطفا متن اولیه را وارد کنید. 📝"
	MsgInvalidText   = "متن باید بین ۵ تا ۱۰۰۰ کاراکتر باشد. لطفا دوباره تلاش کنید. ❌"
	MsgMusicSaved    = "موزیک و متن اولیه ذخیره شد. ✅"
	MsgTextSaved     = "متن اولیه ذخیره شد. ✅"

	ToastBanned       = "کاربر بن شد. 🚫"
	ToastUnbanned     = "کاربر آزاد شد. ✅"
	ToastMadeAdmin    = "کاربر به ادمین تبدیل شد. 🛡️"
	ToastMadeUser     = "کاربر به کاربر عادی تبدیل شد. 👤"
	ToastNoChange     = "تغییری اعمال نشد. ℹ️"
	ToastUserNotFound = "کاربر یافت نشد. ❌"
)

// TimeLayout renders timestamps in messages.
const TimeLayout = "2006/01/02 15:04"

var roleLabels = map[storage.Role]string{
	storage.RoleSuperAdmin: "👑 ادمین اصلی",
	storage.RoleAdmin:      "🛡️ ادمین",
	storage.RoleUser:       "👤 کاربر عادی",
}

// RoleLabel renders a role for humans.
func RoleLabel(r storage.Role) string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return roleLabels[storage.RoleUser]
}

func roleEmoji(r storage.Role) string {
	switch r {
	case storage.RoleSuperAdmin:
		return "👑"
	case storage.RoleAdmin:
		return "🛡️"
	}
	return "👤"
}

func status(active bool) string {
	if active {
		return "✅ فعال"
	}
	return "🚫 غیرفعال"
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknown
	}
	return s
}

// Profile summarizes a user's own record.
func Profile(u *storage.User) string {
	return fmt.Sprintf("📋 اطلاعات کاربر:\n📞 شماره: %s\n👤 نام: %s\n👨‍👩‍👧‍👦 نام خانوادگی: %s\n🗺️ استان: %s\n🏙️ شهر: %s\n👑 نقش: %s",
		orUnknown(u.Phone), orUnknown(u.FirstName), orUnknown(u.LastName),
		orUnknown(u.Province), orUnknown(u.City), RoleLabel(u.Role))
}

// RegistrationComplete confirms a finished registration.
func RegistrationComplete(u *storage.User) string {
	return "ثبت نام شما با موفقیت انجام شد! 🎉\n\n" + Profile(u)
}

// MyStats reports the caller's membership.
func MyStats(u *storage.User, now time.Time) string {
	days := int(now.Sub(u.Created()).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return fmt.Sprintf("📊 آمار من\n\n📅 عضو از: %s\n⏳ مدت عضویت: %d روز\n👑 نقش: %s\n📊 وضعیت: %s",
		u.Created().Format(TimeLayout), days, RoleLabel(u.Role), status(u.IsActive))
}

// MyID reports the caller's id, with profile details when registered. Markdown.
func MyID(id int64, u *storage.User) string {
	if u == nil {
		return fmt.Sprintf("🆔 شناسه کاربری شما: `%d`\n\n⚠️ شما هنوز در سیستم ثبت نام نکرده‌اید.\nلطفا ابتدا با دستور /start ثبت نام کنید.", id)
	}
	return fmt.Sprintf("🆔 شناسه کاربری شما:\n\n`%d`\n\n👤 نام: %s\n👑 نقش: %s\n📅 تاریخ ثبت نام: %s\n\n💡 این شناسه برای افزودن شما به عنوان ادمین استفاده می‌شود.",
		id, format.EscapeMarkdown(u.FullName()), RoleLabel(u.Role), u.Created().Format(TimeLayout))
}

// UserListHeader introduces a roster page. Markdown.
func UserListHeader(page *storage.UserPage, term string) string {
	if page.Total == 0 {
		if term != "" {
			return fmt.Sprintf("🔍 هیچ کاربری با '%s' یافت نشد.", format.EscapeMarkdown(term))
		}
		return "🔍 هیچ کاربری یافت نشد."
	}
	var b strings.Builder
	b.WriteString("👥 لیست کاربران\n")
	fmt.Fprintf(&b, "📊 کل کاربران: %d نفر\n", page.Total)
	fmt.Fprintf(&b, "📄 صفحه %d از %d\n", page.Page, page.Pages)
	if term != "" {
		fmt.Fprintf(&b, "🔍 جستجو: '%s'\n", format.EscapeMarkdown(term))
	}
	b.WriteString("\n🔮 برای مشاهده جزئیات هر کاربر، روی دکمه مربوطه کلیک کنید:")
	return b.String()
}

// UserDetail renders the full record shown to admins. Markdown.
func UserDetail(u *storage.User) string {
	var b strings.Builder
	b.WriteString("🔮 اطلاعات کامل کاربر\n")
	b.WriteString(strings.Repeat("=", 30) + "\n\n")
	fmt.Fprintf(&b, "🆔 شناسه کاربری: `%d`\n", u.ExternalID)
	fmt.Fprintf(&b, "👤 نام: %s\n", format.EscapeMarkdown(orUnknown(u.FirstName)))
	fmt.Fprintf(&b, "👨‍👩‍👧‍👦 نام خانوادگی: %s\n", format.EscapeMarkdown(orUnknown(u.LastName)))
	fmt.Fprintf(&b, "📞 شماره تلفن: %s\n", orUnknown(u.Phone))
	fmt.Fprintf(&b, "🗺️ استان: %s\n", orUnknown(u.Province))
	fmt.Fprintf(&b, "🏙️ شهر: %s\n", orUnknown(u.City))
	fmt.Fprintf(&b, "👑 نقش: %s\n", RoleLabel(u.Role))
	fmt.Fprintf(&b, "📊 وضعیت: %s\n", status(u.IsActive))
	fmt.Fprintf(&b, "📅 تاریخ ثبت نام: %s", u.Created().Format(TimeLayout))
	return b.String()
}

// UserStats is the admin's view of one member's activity.
func UserStats(u *storage.User) string {
	return fmt.Sprintf("📊 آمار کاربر\n%s\n\n👤 نام: %s\n📅 عضو از: %s\n🔄 آخرین بروزرسانی: %s\n📊 وضعیت: %s",
		strings.Repeat("=", 20), orUnknown(u.FullName()),
		u.Created().Format(TimeLayout), time.Unix(u.UpdatedAt, 0).Format(TimeLayout), status(u.IsActive))
}

// SearchPrompt asks for the term of a field scoped search.
func SearchPrompt(field storage.SearchField) string {
	var prompt string
	switch field {
	case storage.SearchName:
		prompt = "لطفا نام یا نام خانوادگی کاربر را وارد کنید:"
	case storage.SearchPhone:
		prompt = "لطفا شماره تلفن کاربر را وارد کنید:"
	case storage.SearchProvince:
		prompt = "لطفا نام استان را وارد کنید:"
	case storage.SearchRole:
		prompt = "لطفا نقش کاربر را وارد کنید (user, admin, super_admin):"
	default:
		prompt = "لطفا عبارت جستجو را وارد کنید:"
	}
	return "🔍 جستجوی کاربران\n\n" + prompt
}

// Listing renders the text summary of one category.
func Listing(displayName string, l *storage.Listing) string {
	if len(l.Texts) == 0 && len(l.Music) == 0 {
		return fmt.Sprintf("هیچ محتوایی در دسته %s موجود نیست.", displayName)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📋 %s:\n\n", displayName)
	if len(l.Texts) > 0 {
		b.WriteString("📝 متون:\n")
		for i, item := range l.Texts {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item.Content)
		}
		b.WriteString("\n")
	}
	if len(l.Music) > 0 {
		b.WriteString("🎵 موزیک‌ها:\n")
		for i, item := range l.Music {
			title := format.DerefString(item.Title, "")
			if title == "" {
				title = fmt.Sprintf("موزیک %d", i+1)
			}
			fmt.Fprintf(&b, "%d. %s%s\n", i+1, title, fileSize(format.DerefInt64(item.FileSize, 0)))
		}
	}
	return strings.TrimSpace(b.String())
}

// fileSize renders a size suffix in megabytes; unknown sizes render nothing.
func fileSize(n int64) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf(" (%.1f MB)", float64(n)/(1<<20))
}

// GeneralStats summarizes users and content for admins.
func GeneralStats(st storage.UserStats, counts []storage.CategoryCount, now time.Time) string {
	var b strings.Builder
	b.WriteString("📊 آمار کلی سیستم\n\n👥 کاربران:\n")
	fmt.Fprintf(&b, "• کل کاربران: %d نفر\n", st.Total)
	fmt.Fprintf(&b, "• کاربران فعال: %d نفر\n", st.Active)
	fmt.Fprintf(&b, "• ادمین‌ها: %d نفر\n\n", st.Admins)
	b.WriteString("📁 محتوا:\n")
	for _, c := range counts {
		fmt.Fprintf(&b, "• %s: %d متن، %d موزیک\n", c.DisplayName, c.Texts, c.Music)
	}
	fmt.Fprintf(&b, "\n🔄 آخرین بروزرسانی: %s", now.Format(TimeLayout))
	return b.String()
}

// AddMusicPrompt opens an upload into a category.
func AddMusicPrompt(c storage.Category) string {
	return fmt.Sprintf("🎵 افزودن موزیک به %s\n\n%s", c.DisplayName, MsgAskMusic)
}

// AddTextPrompt opens a text entry into a category.
func AddTextPrompt(c storage.Category) string {
	return fmt.Sprintf("📝 افزودن متن به %s\n\n%s", c.DisplayName, MsgAskText)
}

// AdminNotRegistered rejects an add admin target without a record.
func AdminNotRegistered(id int64) string {
	return fmt.Sprintf("❌ کاربر با شناسه %d در سیستم ثبت نام نکرده است.\n\nلطفا ابتدا کاربر را با دستور /start ثبت نام کنید، سپس دوباره تلاش کنید.", id)
}

// AlreadyAdmin rejects promoting an existing admin.
func AlreadyAdmin(id int64, r storage.Role) string {
	role := "ادمین"
	if r == storage.RoleSuperAdmin {
		role = "ادمین اصلی"
	}
	return fmt.Sprintf("⚠️ کاربر با شناسه %d قبلاً به عنوان %s تعریف شده است.", id, role)
}

// AdminAdded confirms a promotion.
func AdminAdded(u *storage.User) string {
	return fmt.Sprintf("✅ کاربر %s (شناسه: %d) با موفقیت به عنوان ادمین اضافه شد.\n\n🛡️ این کاربر اکنون دسترسی کامل به پنل ادمین دارد.",
		orUnknown(u.FullName()), u.ExternalID)
}

// TargetNotFound rejects a relay to an unknown user.
func TargetNotFound(id int64) string {
	return fmt.Sprintf("❌ کاربر با شناسه %d در سیستم یافت نشد.\n\nلطفا ابتدا کاربر را با دستور /start ثبت نام کنید.", id)
}

// ComposeMessage asks the admin for the relay body.
func ComposeMessage(target *storage.User) string {
	return fmt.Sprintf("💬 ارسال پیام به کاربر\n\n👤 گیرنده: %s\n🆔 شناسه: %d\n📞 شماره: %s\n\nلطفا پیام خود را ارسال کنید:",
		orUnknown(target.FullName()), target.ExternalID, orUnknown(target.Phone))
}

// RelayEnvelope wraps an admin's message for delivery to a user.
func RelayEnvelope(sender *storage.User, body string, at time.Time) string {
	name := "ادمین"
	if sender != nil && sender.FullName() != "" {
		name = sender.FullName()
	}
	return fmt.Sprintf("📨 پیام از ادمین\n\n👤 فرستنده: %s\n📅 تاریخ: %s\n\n💬 پیام:\n%s\n\n📞 برای پاسخ، با ادمین تماس بگیرید.",
		name, at.Format(TimeLayout), body)
}

// RelaySent confirms delivery to the admin.
func RelaySent(target *storage.User, body string) string {
	return fmt.Sprintf("✅ پیام با موفقیت ارسال شد!\n\n👤 گیرنده: %s\n🆔 شناسه: %d\n📞 شماره: %s\n\n💬 پیام ارسالی:\n%s",
		orUnknown(target.FullName()), target.ExternalID, orUnknown(target.Phone), body)
}

// RelayFailed reports a delivery failure to the admin.
func RelayFailed(id int64) string {
	return fmt.Sprintf("❌ خطا در ارسال پیام به کاربر %d.\n\nممکن است کاربر ربات را بلاک کرده باشد یا از ربات خارج شده باشد.", id)
}
