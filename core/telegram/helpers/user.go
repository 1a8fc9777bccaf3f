package helpers

import "context"

// CurrentUser resolves a Telegram user ID to a domain entity through any
// lookup exposing GetUserByTelegramID.
func CurrentUser[T any](
	ctx context.Context,
	lookup interface {
		GetUserByTelegramID(context.Context, int64) (T, error)
	},
	tgID int64,
) (T, error) {
	var zero T
	if lookup == nil || tgID == 0 {
		return zero, nil
	}
	return lookup.GetUserByTelegramID(ctx, tgID)
}
