package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m3rciful/contentbot/core/logger"
)

const userColumns = `id, external_user_id, phone, first_name, last_name, province, city,
	role, is_active, created_at, updated_at`

// CreateUser inserts the user or refreshes the profile fields of an existing
// record with the same external id. Role and active flag of an existing
// record are left as they are.
func (s *Store) CreateUser(ctx context.Context, in NewUser) (*User, error) {
	now := s.unix()
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO users (external_user_id, phone, first_name, last_name, province, city, role, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, TRUE, ?, ?)
		ON CONFLICT (external_user_id) DO UPDATE SET
			phone = excluded.phone,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			province = excluded.province,
			city = excluded.city,
			updated_at = excluded.updated_at`),
		in.ExternalID, in.Phone, in.FirstName, in.LastName, in.Province, in.City, string(RoleUser), now, now,
	)
	if err != nil {
		logger.SVCUsers.Error("user upsert failed",
			slog.String("event", "user.create"),
			slog.Int64("user_id", in.ExternalID),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("storage: create user: %w", err)
	}
	logger.SVCUsers.Info("user registered",
		slog.String("event", "user.create"),
		slog.Int64("user_id", in.ExternalID),
		slog.String("province", in.Province),
	)
	return s.GetUserByTelegramID(ctx, in.ExternalID)
}

// GetUserByTelegramID returns the user with the given platform id, active or not.
func (s *Store) GetUserByTelegramID(ctx context.Context, externalID int64) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, s.q(`SELECT `+userColumns+` FROM users WHERE external_user_id = ?`), externalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get user: %w", err)
	}
	return &u, nil
}

// UpdateUserRole sets the role of an active user. It reports the number of
// rows changed: 0 when the user is missing, inactive, already has role, or
// is a super admin.
func (s *Store) UpdateUserRole(ctx context.Context, externalID int64, role Role) (int64, error) {
	if !role.Valid() || role == RoleSuperAdmin {
		return 0, fmt.Errorf("storage: update role: invalid role %q", role)
	}
	return s.exec(ctx, "user.role", externalID, `
		UPDATE users SET role = ?, updated_at = ?
		WHERE external_user_id = ? AND is_active = TRUE AND role <> ? AND role <> 'super_admin'`,
		string(role), s.unix(), externalID, string(role),
	)
}

// PromoteSuperAdmin grants the top role to an existing user.
func (s *Store) PromoteSuperAdmin(ctx context.Context, externalID int64) (int64, error) {
	return s.exec(ctx, "user.promote", externalID, `
		UPDATE users SET role = 'super_admin', is_active = TRUE, updated_at = ?
		WHERE external_user_id = ? AND (role <> 'super_admin' OR is_active = FALSE)`,
		s.unix(), externalID,
	)
}

// BanUser deactivates a user. Super admins are never deactivated.
func (s *Store) BanUser(ctx context.Context, externalID int64) (int64, error) {
	return s.exec(ctx, "user.ban", externalID, `
		UPDATE users SET is_active = FALSE, updated_at = ?
		WHERE external_user_id = ? AND is_active = TRUE AND role <> 'super_admin'`,
		s.unix(), externalID,
	)
}

// UnbanUser reactivates a deactivated user.
func (s *Store) UnbanUser(ctx context.Context, externalID int64) (int64, error) {
	return s.exec(ctx, "user.unban", externalID, `
		UPDATE users SET is_active = TRUE, updated_at = ?
		WHERE external_user_id = ? AND is_active = FALSE`,
		s.unix(), externalID,
	)
}

func (s *Store) exec(ctx context.Context, event string, externalID int64, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.q(query), args...)
	if err != nil {
		logger.SVCUsers.Error("user update failed",
			slog.String("event", event),
			slog.Int64("target_id", externalID),
			slog.String("err", err.Error()),
		)
		return 0, fmt.Errorf("storage: %s: %w", event, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: %s: rows affected: %w", event, err)
	}
	logger.SVCUsers.Info("user updated",
		slog.String("event", event),
		slog.Int64("target_id", externalID),
		slog.Int64("rows", n),
	)
	return n, nil
}

// SearchField narrows a roster search to one attribute.
type SearchField string

const (
	SearchAny      SearchField = ""
	SearchName     SearchField = "name"
	SearchPhone    SearchField = "phone"
	SearchProvince SearchField = "province"
	SearchRole     SearchField = "role"
)

// UserQuery selects a page of active users. An empty Search lists everyone.
// SearchAny matches the term against name, phone and province.
type UserQuery struct {
	Search  string
	Field   SearchField
	Page    int
	PerPage int
}

// UserPage is one page of the roster. Pages is 0 when nothing matched.
type UserPage struct {
	Users []User
	Total int64
	Page  int
	Pages int
}

func (q UserQuery) where() (string, []any) {
	clause := "is_active = TRUE"
	term := strings.TrimSpace(q.Search)
	if term == "" {
		return clause, nil
	}
	if q.Field == SearchRole {
		return clause + " AND role = ?", []any{strings.ToLower(term)}
	}

	const like = "LOWER(%s) LIKE LOWER(?) ESCAPE '\\'"
	var cols []string
	switch q.Field {
	case SearchName:
		cols = []string{"first_name", "last_name", "first_name || ' ' || last_name"}
	case SearchPhone:
		cols = []string{"phone"}
	case SearchProvince:
		cols = []string{"province"}
	default:
		cols = []string{"first_name", "last_name", "phone", "province"}
	}
	parts := make([]string, len(cols))
	args := make([]any, len(cols))
	pattern := containsPattern(term)
	for i, c := range cols {
		parts[i] = fmt.Sprintf(like, c)
		args[i] = pattern
	}
	return clause + " AND (" + strings.Join(parts, " OR ") + ")", args
}

// ListUsers returns one page of active users, newest first. Page is clamped
// to the valid range.
func (s *Store) ListUsers(ctx context.Context, q UserQuery) (*UserPage, error) {
	if q.PerPage <= 0 {
		q.PerPage = 10
	}
	where, args := q.where()

	var total int64
	if err := s.db.GetContext(ctx, &total, s.q(`SELECT COUNT(*) FROM users WHERE `+where), args...); err != nil {
		return nil, fmt.Errorf("storage: count users: %w", err)
	}
	pages := int((total + int64(q.PerPage) - 1) / int64(q.PerPage))
	page := q.Page
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}

	users := []User{}
	if total > 0 {
		query := `SELECT ` + userColumns + ` FROM users WHERE ` + where +
			` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
		if err := s.db.SelectContext(ctx, &users, s.q(query), append(args, q.PerPage, (page-1)*q.PerPage)...); err != nil {
			return nil, fmt.Errorf("storage: list users: %w", err)
		}
	}
	return &UserPage{Users: users, Total: total, Page: page, Pages: pages}, nil
}

// Stats counts all, active and administrative users.
func (s *Store) Stats(ctx context.Context) (UserStats, error) {
	var st UserStats
	err := s.db.GetContext(ctx, &st, `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN is_active AND role IN ('admin', 'super_admin') THEN 1 ELSE 0 END), 0) AS admins
		FROM users`)
	if err != nil {
		return UserStats{}, fmt.Errorf("storage: user stats: %w", err)
	}
	return st, nil
}
