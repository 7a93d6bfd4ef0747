package repository

import (
	"context"

	"github.com/antonsk/shoplist/internal/model"
)

// ShoppingListRepository provides ownership-scoped access to shopping
// lists and their items. Ownership is enforced inside the queries via the
// mapping table, never by filtering after the fact.
type ShoppingListRepository interface {
	// Create inserts the list row and its ownership mapping in a single
	// transaction.
	Create(ctx context.Context, ownerID int64, publicID, name, description string) (*model.ShoppingList, error)
	// Delete removes a list owned by ownerID. Zero affected rows surface
	// as errs.ErrNotFound; not-found and not-owned are indistinguishable.
	Delete(ctx context.Context, publicID string, ownerID int64) error
	// GetByPublicID loads a list with its items. When ownerID is non-nil
	// the lookup is restricted to lists owned by that user. Absence is
	// reported as (nil, nil), not as an error.
	GetByPublicID(ctx context.Context, publicID string, ownerID *int64) (*model.ShoppingListWithItems, error)
	// ListWithItemsByUser loads all lists owned by userID with their
	// items, in first-seen order of the underlying rows.
	ListWithItemsByUser(ctx context.Context, userID int64) ([]model.ShoppingListWithItems, error)
	// InsertItem appends an unchecked item to the list with internal id
	// listID. Callers are responsible for authorization.
	InsertItem(ctx context.Context, listID int64, name string) error
}
