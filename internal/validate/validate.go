// Package validate normalizes and checks user input collected by the dialogs.
package validate

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrPhone    = errors.New("validate: invalid phone number")
	ErrName     = errors.New("validate: invalid name")
	ErrProvince = errors.New("validate: unknown province")
	ErrUserID   = errors.New("validate: invalid user id")
	ErrContent  = errors.New("validate: content text length out of range")
)

// Content text bounds, in runes.
const (
	ContentMinRunes = 5
	ContentMaxRunes = 1000
)

// Phone reduces raw to the canonical 11-digit local form 09XXXXXXXXX. It
// accepts Persian and Arabic digits, separators, and a 98 or 0098 country
// prefix, so a shared contact and a typed number store the same value.
func Phone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if d, ok := persianDigit(r); ok {
			b.WriteRune(d)
		}
	}
	digits := strings.TrimPrefix(b.String(), "00")
	digits = strings.TrimPrefix(digits, "98")
	if strings.HasPrefix(digits, "9") {
		digits = "0" + digits
	}
	if len(digits) != 11 || !strings.HasPrefix(digits, "09") {
		return "", ErrPhone
	}
	return digits, nil
}

func persianDigit(r rune) (rune, bool) {
	switch {
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰'), true
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠'), true
	}
	return 0, false
}

// Collapse trims s and folds every whitespace run into one space.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Name accepts Persian or Arabic script letters, Latin letters, spaces and
// the zero-width (non-)joiners, at least two runes after trimming.
func Name(raw string) (string, error) {
	name := Collapse(raw)
	if utf8.RuneCountInString(name) < 2 {
		return "", ErrName
	}
	for _, r := range name {
		if !nameRune(r) {
			return "", ErrName
		}
	}
	return name, nil
}

func nameRune(r rune) bool {
	switch {
	case r == ' ', r == '\u200c', r == '\u200d':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case arabicScript(r):
		return unicode.IsLetter(r) || unicode.Is(unicode.Mn, r)
	}
	return false
}

func arabicScript(r rune) bool {
	return (r >= 0x0600 && r <= 0x06FF) ||
		(r >= 0x0750 && r <= 0x077F) ||
		(r >= 0x08A0 && r <= 0x08FF) ||
		(r >= 0xFB50 && r <= 0xFDFF) ||
		(r >= 0xFE70 && r <= 0xFEFF)
}

// UserID parses a positive numeric account id.
func UserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrUserID
	}
	return id, nil
}

// ContentText trims s and checks its length in runes.
func ContentText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(text)
	if n < ContentMinRunes || n > ContentMaxRunes {
		return "", ErrContent
	}
	return text, nil
}
