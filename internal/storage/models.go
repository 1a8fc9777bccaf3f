package storage

import (
	"strings"
	"time"
)

// Role is the privilege level of a user.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User is a registered account, keyed by the messaging platform id.
type User struct {
	ID         int64  `db:"id"`
	ExternalID int64  `db:"external_user_id"`
	Phone      string `db:"phone"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	Province   string `db:"province"`
	City       string `db:"city"`
	Role       Role   `db:"role"`
	IsActive   bool   `db:"is_active"`
	CreatedAt  int64  `db:"created_at"`
	UpdatedAt  int64  `db:"updated_at"`
}

// IsAdmin reports whether the user holds an administrative role.
func (u *User) IsAdmin() bool {
	return u != nil && (u.Role == RoleAdmin || u.Role == RoleSuperAdmin)
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Created returns the registration time.
func (u *User) Created() time.Time { return time.Unix(u.CreatedAt, 0) }

// NewUser carries the fields collected by the registration wizard.
type NewUser struct {
	ExternalID int64
	Phone      string
	FirstName  string
	LastName   string
	Province   string
	City       string
}

// Category is a content tier.
type Category struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	DisplayName string `db:"display_name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	CreatedAt   int64  `db:"created_at"`
}

// ContentType tells which payload fields of a ContentItem are meaningful.
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentMusic ContentType = "music"
)

// ContentItem is one published entry. Text items use Content; music items
// use FileReference, FileSize and Title.
type ContentItem struct {
	ID            int64       `db:"id"`
	CategoryID    int64       `db:"category_id"`
	Type          ContentType `db:"type"`
	Content       string      `db:"content"`
	Title         *string     `db:"title"`
	Description   *string     `db:"description"`
	FileReference *string     `db:"file_reference"`
	FileSize      *int64      `db:"file_size"`
	CreatedBy     *int64      `db:"created_by"`
	CreatedAt     int64       `db:"created_at"`
	UpdatedAt     int64       `db:"updated_at"`
	IsActive      bool        `db:"is_active"`
}

// NewContent describes an item to insert.
type NewContent struct {
	CategoryID    int64
	Type          ContentType
	Content       string
	Title         *string
	Description   *string
	FileReference *string
	FileSize      *int64
	CreatedBy     *int64
}

// Listing is the active content of one category split by type, newest first.
type Listing struct {
	Texts []ContentItem
	Music []ContentItem
}

// UserStats summarizes the roster.
type UserStats struct {
	Total  int64 `db:"total"`
	Active int64 `db:"active"`
	Admins int64 `db:"admins"`
}

// CategoryCount is the number of active items per type in one category.
type CategoryCount struct {
	Name        string `db:"name"`
	DisplayName string `db:"display_name"`
	Texts       int64  `db:"texts"`
	Music       int64  `db:"music"`
}
