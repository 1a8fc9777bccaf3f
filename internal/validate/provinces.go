package validate

// Provinces lists the selectable provinces in keyboard order.
var Provinces = []string{
	"تهران", "اصفهان", "خراسان رضوی", "فارس", "مازندران", "گیلان",
	"آذربایجان شرقی", "آذربایجان غربی", "کرمان", "سیستان و بلوچستان",
	"هرمزگان", "بوشهر", "چهارمحال و بختیاری", "یزد", "سمنان", "گلستان",
	"اردبیل", "زنجان", "قزوین", "البرز", "قم", "مرکزی", "همدان",
	"کردستان", "کرمانشاه", "لرستان", "ایلام", "خوزستان", "کهگیلویه و بویراحمد",
}

var capitals = map[string]string{
	"تهران":               "تهران",
	"اصفهان":              "اصفهان",
	"خراسان رضوی":         "مشهد",
	"فارس":                "شیراز",
	"مازندران":            "ساری",
	"گیلان":               "رشت",
	"آذربایجان شرقی":      "تبریز",
	"آذربایجان غربی":      "ارومیه",
	"کرمان":               "کرمان",
	"سیستان و بلوچستان":   "زاهدان",
	"هرمزگان":             "بندرعباس",
	"بوشهر":               "بوشهر",
	"چهارمحال و بختیاری":  "شهرکرد",
	"یزد":                 "یزد",
	"سمنان":               "سمنان",
	"گلستان":              "گرگان",
	"اردبیل":              "اردبیل",
	"زنجان":               "زنجان",
	"قزوین":               "قزوین",
	"البرز":               "کرج",
	"قم":                  "قم",
	"مرکزی":               "اراک",
	"همدان":               "همدان",
	"کردستان":             "سنندج",
	"کرمانشاه":            "کرمانشاه",
	"لرستان":              "خرم آباد",
	"ایلام":               "ایلام",
	"خوزستان":             "اهواز",
	"کهگیلویه و بویراحمد": "یاسوج",
}

// Province checks raw against the province list and returns the province
// with its capital city.
func Province(raw string) (province, city string, err error) {
	p := Collapse(raw)
	c, ok := capitals[p]
	if !ok {
		return "", "", ErrProvince
	}
	return p, c, nil
}
