package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/m3rciful/contentbot/core/logger"
)

// Category names seeded on startup.
const (
	CategoryTopTracks       = "top_tracks"
	CategoryEconomicPackage = "economic_package"
	CategoryVIPPackage      = "vip_package"
)

// DefaultCategories is the fixed tier list, in menu order.
var DefaultCategories = []Category{
	{Name: CategoryTopTracks, DisplayName: "پر بازدید ترین ترک ها 🔥", Description: "محبوب ترین ترک ها"},
	{Name: CategoryEconomicPackage, DisplayName: "پکیج اقتصادی 💰", Description: "پکیج های مقرون به صرفه"},
	{Name: CategoryVIPPackage, DisplayName: "پکیج مگاهیت VIP 👑", Description: "پکیج های ویژه"},
}

// SeedCategories inserts the default categories that do not exist yet.
func (s *Store) SeedCategories(ctx context.Context) error {
	now := s.unix()
	for _, c := range DefaultCategories {
		_, err := s.db.ExecContext(ctx, s.q(`
			INSERT INTO content_categories (name, display_name, description, is_active, created_at)
			VALUES (?, ?, ?, TRUE, ?)
			ON CONFLICT (name) DO NOTHING`),
			c.Name, c.DisplayName, c.Description, now,
		)
		if err != nil {
			return fmt.Errorf("storage: seed category %s: %w", c.Name, err)
		}
	}
	return nil
}

// ListCategories returns active categories in creation order.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, name, display_name, description, is_active, created_at
		FROM content_categories WHERE is_active = TRUE ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("storage: list categories: %w", err)
	}
	return out, nil
}

// CategoryByName looks up a category by its stable name.
func (s *Store) CategoryByName(ctx context.Context, name string) (*Category, error) {
	var c Category
	err := s.db.GetContext(ctx, &c, s.q(`
		SELECT id, name, display_name, description, is_active, created_at
		FROM content_categories WHERE name = ?`), name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get category: %w", err)
	}
	return &c, nil
}

// AddContent appends one item and returns its id.
func (s *Store) AddContent(ctx context.Context, in NewContent) (int64, error) {
	if in.Type != ContentText && in.Type != ContentMusic {
		return 0, fmt.Errorf("storage: add content: invalid type %q", in.Type)
	}
	now := s.unix()
	var id int64
	err := s.db.GetContext(ctx, &id, s.q(`
		INSERT INTO content_items
			(category_id, type, content, title, description, file_reference, file_size, created_by, created_at, updated_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE)
		RETURNING id`),
		in.CategoryID, string(in.Type), in.Content, in.Title, in.Description, in.FileReference, in.FileSize, in.CreatedBy, now, now,
	)
	if err != nil {
		logger.SVCContent.Error("content insert failed",
			slog.String("event", "content.add"),
			slog.Int64("category_id", in.CategoryID),
			slog.String("type", string(in.Type)),
			slog.String("err", err.Error()),
		)
		return 0, fmt.Errorf("storage: add content: %w", err)
	}
	logger.SVCContent.Info("content added",
		slog.String("event", "content.add"),
		slog.Int64("category_id", in.CategoryID),
		slog.String("type", string(in.Type)),
		slog.Int64("content_id", id),
	)
	return id, nil
}

// ContentByCategory returns the active items of a category, newest first.
func (s *Store) ContentByCategory(ctx context.Context, categoryID int64) (*Listing, error) {
	var items []ContentItem
	err := s.db.SelectContext(ctx, &items, s.q(`
		SELECT id, category_id, type, content, title, description, file_reference, file_size,
			created_by, created_at, updated_at, is_active
		FROM content_items
		WHERE category_id = ? AND is_active = TRUE
		ORDER BY created_at DESC, id DESC`), categoryID)
	if err != nil {
		return nil, fmt.Errorf("storage: list content: %w", err)
	}
	out := &Listing{}
	for _, it := range items {
		switch it.Type {
		case ContentText:
			out.Texts = append(out.Texts, it)
		case ContentMusic:
			out.Music = append(out.Music, it)
		}
	}
	return out, nil
}

// ContentCounts reports active item counts for every active category.
func (s *Store) ContentCounts(ctx context.Context) ([]CategoryCount, error) {
	var out []CategoryCount
	err := s.db.SelectContext(ctx, &out, `
		SELECT
			c.name,
			c.display_name,
			COALESCE(SUM(CASE WHEN i.type = 'text' THEN 1 ELSE 0 END), 0) AS texts,
			COALESCE(SUM(CASE WHEN i.type = 'music' THEN 1 ELSE 0 END), 0) AS music
		FROM content_categories c
		LEFT JOIN content_items i ON i.category_id = c.id AND i.is_active = TRUE
		WHERE c.is_active = TRUE
		GROUP BY c.id, c.name, c.display_name
		ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("storage: content counts: %w", err)
	}
	return out, nil
}
