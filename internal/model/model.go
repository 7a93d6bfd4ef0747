// Package model defines domain entities used by services and repositories.
package model

import "time"

// User represents a registered account. PasswordHash is a bcrypt hash and
// is never exposed through the API.
type User struct {
	ID           int64
	Username     string // unique
	Email        string // unique
	PasswordHash string
	CreatedAt    time.Time
}

// Session links a bearer token to a user. Only the SHA-512 hash of the
// token is persisted; the raw token exists outside transit exactly once,
// at creation.
type Session struct {
	ID        int64
	UserID    int64
	TokenHash string
	CreatedAt time.Time
}

// NewSession is returned on session creation and is the only place the raw
// token surfaces.
type NewSession struct {
	ID    int64
	Token string
}

// ShoppingList is identified externally by PublicID, an opaque random
// URL-safe string that prevents enumeration of internal ids.
type ShoppingList struct {
	ID          int64
	PublicID    string
	Name        string
	Description string
}

// ShoppingListItem is a single entry of a list.
type ShoppingListItem struct {
	Name    string
	Checked bool
}

// ShoppingListWithItems is a list together with its items, reassembled
// from the flat join rows.
type ShoppingListWithItems struct {
	ShoppingList
	Items []ShoppingListItem
}
