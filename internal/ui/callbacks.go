package ui

import (
	"strconv"
	"strings"

	"github.com/m3rciful/contentbot/core/telegram/callbacks"
	"github.com/m3rciful/contentbot/internal/storage"
)

// Inline button families.
const (
	CbUserList     = "user_list"
	CbUserListInfo = "user_list_info"
	CbUserDetail   = "user_detail"
	CbBanUser      = "ban_user"
	CbUnbanUser    = "unban_user"
	CbMakeAdmin    = "make_admin"
	CbMakeUser     = "make_user"
	CbUserStats    = "user_stats"
	CbMessageUser  = "message_user"
	CbUserSearch   = "user_search"
	CbSearchBy     = "search_by"
)

// Families lists every inline button family the bot answers.
var Families = []string{
	CbUserList, CbUserListInfo, CbUserDetail,
	CbBanUser, CbUnbanUser, CbMakeAdmin, CbMakeUser,
	CbUserStats, CbMessageUser, CbUserSearch, CbSearchBy,
}

// NewCodec returns a callback codec for Families.
func NewCodec() (*callbacks.Codec, error) {
	return callbacks.NewCodec(Families...)
}

// SearchFields are the attributes offered by the search keyboard.
var SearchFields = []storage.SearchField{
	storage.SearchName, storage.SearchPhone, storage.SearchProvince, storage.SearchRole,
}

// UserListData encodes a roster page button. The search fragment is carried
// verbatim as the last token.
func UserListData(page int, fragment string) string {
	return callbacks.Encode(CbUserList, strconv.Itoa(page), fragment)
}

// ParseUserList decodes the page and search fragment of a roster payload.
// A missing or malformed page yields page 1.
func ParseUserList(p callbacks.Payload) (page int, fragment string) {
	parts := p.Split(2)
	page = 1
	if len(parts) > 0 {
		if n, err := strconv.Atoi(parts[0]); err == nil && n > 0 {
			page = n
		}
	}
	if len(parts) > 1 {
		fragment = parts[1]
	}
	return page, fragment
}

// UserData encodes a per-user action button.
func UserData(family string, externalID int64) string {
	return callbacks.Encode(family, strconv.FormatInt(externalID, 10))
}

// SearchByData encodes a search field selector.
func SearchByData(field storage.SearchField) string {
	return callbacks.Encode(CbSearchBy, string(field))
}

// ParseSearchField returns the field named by a search_by payload.
func ParseSearchField(p callbacks.Payload) (storage.SearchField, bool) {
	for _, f := range SearchFields {
		if p.Args == string(f) {
			return f, true
		}
	}
	return storage.SearchAny, false
}

// SearchFragment packs a field scoped search term for a roster payload.
func SearchFragment(field storage.SearchField, term string) string {
	if field != storage.SearchAny {
		return string(field) + ":" + term
	}
	if strings.HasPrefix(term, ":") || hasFieldPrefix(term) {
		return ":" + term
	}
	return term
}

// ParseSearchFragment splits a fragment built by SearchFragment. A leading
// ":" marks a field-less term that would otherwise read as a field prefix.
func ParseSearchFragment(fragment string) (storage.SearchField, string) {
	if rest, ok := strings.CutPrefix(fragment, ":"); ok {
		return storage.SearchAny, rest
	}
	for _, f := range SearchFields {
		if rest, ok := strings.CutPrefix(fragment, string(f)+":"); ok {
			return f, rest
		}
	}
	return storage.SearchAny, fragment
}

func hasFieldPrefix(term string) bool {
	for _, f := range SearchFields {
		if strings.HasPrefix(term, string(f)+":") {
			return true
		}
	}
	return false
}
