package validate

import (
	"errors"
	"testing"
)

func TestPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		err  error
	}{
		{"09121234567", "09121234567", nil},
		{"+98 912 123 4567", "09121234567", nil},
		{"989121234567", "09121234567", nil},
		{"00989121234567", "09121234567", nil},
		{"9121234567", "09121234567", nil},
		{"۰۹۱۲۱۲۳۴۵۶۷", "09121234567", nil},
		{"0912-123-45", "", ErrPhone},
		{"02112345678", "", ErrPhone},
		{"hello", "", ErrPhone},
		{"091212345678", "", ErrPhone},
	}
	for _, tc := range cases {
		got, err := Phone(tc.in)
		if !errors.Is(err, tc.err) || got != tc.want {
			t.Fatalf("Phone(%q) = %q, %v; want %q, %v", tc.in, got, err, tc.want, tc.err)
		}
	}
}

func TestPhoneFormsAgree(t *testing.T) {
	forms := []string{"+989123456789", "0912 345 6789", "۰۹۱۲۳۴۵۶۷۸۹", "9123456789", "0098-912-345-6789"}
	for _, in := range forms {
		if got, err := Phone(in); err != nil || got != "09123456789" {
			t.Fatalf("Phone(%q) = %q, %v", in, got, err)
		}
	}
}

func TestName(t *testing.T) {
	valid := map[string]string{
		"  علی  ":        "علی",
		"محمد   رضا":     "محمد رضا",
		"John":           "John",
		"نیلوفر\u200cها": "نیلوفر\u200cها",
	}
	for in, want := range valid {
		got, err := Name(in)
		if err != nil || got != want {
			t.Fatalf("Name(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	for _, in := range []string{"", "ع", "Ali2", "علی۲", "a.b", "😀😀"} {
		if _, err := Name(in); !errors.Is(err, ErrName) {
			t.Fatalf("Name(%q) err = %v, want ErrName", in, err)
		}
	}
}

func TestProvince(t *testing.T) {
	if len(Provinces) != len(capitals) {
		t.Fatalf("province list (%d) and capital table (%d) differ", len(Provinces), len(capitals))
	}
	for _, p := range Provinces {
		if _, _, err := Province(p); err != nil {
			t.Fatalf("Province(%q): %v", p, err)
		}
	}
	p, c, err := Province(" خراسان  رضوی ")
	if err != nil || p != "خراسان رضوی" || c != "مشهد" {
		t.Fatalf("Province = %q %q %v", p, c, err)
	}
	if _, _, err := Province("آتلانتیس"); !errors.Is(err, ErrProvince) {
		t.Fatalf("unknown province err = %v", err)
	}
}

func TestUserIDAndContent(t *testing.T) {
	if id, err := UserID(" 42 "); err != nil || id != 42 {
		t.Fatalf("UserID = %d, %v", id, err)
	}
	for _, in := range []string{"0", "-5", "abc", ""} {
		if _, err := UserID(in); !errors.Is(err, ErrUserID) {
			t.Fatalf("UserID(%q) err = %v", in, err)
		}
	}
	if _, err := ContentText("abcd"); !errors.Is(err, ErrContent) {
		t.Fatalf("short content accepted")
	}
	if got, err := ContentText("  سلام دنیا  "); err != nil || got != "سلام دنیا" {
		t.Fatalf("ContentText = %q, %v", got, err)
	}
}
