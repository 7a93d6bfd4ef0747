package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/antonsk/shoplist/internal/crypto"
	"github.com/antonsk/shoplist/internal/errs"
	"github.com/antonsk/shoplist/internal/failable"
	"github.com/antonsk/shoplist/internal/model"
	"github.com/antonsk/shoplist/internal/repository"
)

const msgListNotFound = "Shopping list not found"

// ListService provides ownership-scoped shopping-list operations.
type ListService interface {
	// Create makes a new list owned by ownerID under a fresh public id.
	Create(ctx context.Context, ownerID int64, name, description string) failable.Failable[model.ShoppingList]
	// Delete removes an owned list; not-found and not-owned report the
	// same failure.
	Delete(ctx context.Context, publicID string, ownerID int64) failable.Failable[struct{}]
	// ByPublicID loads a list with items. Absence is a successful nil,
	// distinct from an internal failure. A nil ownerID serves unscoped
	// lookups (shared read-only views).
	ByPublicID(ctx context.Context, publicID string, ownerID *int64) failable.Failable[*model.ShoppingListWithItems]
	// ForUser loads all lists owned by userID with their items.
	ForUser(ctx context.Context, userID int64) failable.Failable[[]model.ShoppingListWithItems]
	// AddItem appends an item after re-resolving the list by public id
	// and owner, so unauthorized callers learn nothing beyond "not found".
	AddItem(ctx context.Context, publicID string, ownerID int64, name string) failable.Failable[struct{}]
}

type ListServiceImpl struct {
	lists repository.ShoppingListRepository
	log   *zap.Logger
}

// NewListService constructs ListService.
func NewListService(lists repository.ShoppingListRepository, log *zap.Logger) *ListServiceImpl {
	return &ListServiceImpl{lists: lists, log: log}
}

// Create generates an opaque public id and inserts the list together with
// its ownership mapping.
func (s *ListServiceImpl) Create(ctx context.Context, ownerID int64, name, description string) failable.Failable[model.ShoppingList] {
	publicID, err := crypto.NewToken()
	if err != nil {
		s.log.Error("generate public id", zap.Error(err))
		return failable.FailCause[model.ShoppingList](msgInternalError, err)
	}

	sl, err := s.lists.Create(ctx, ownerID, publicID, name, description)
	if err != nil {
		s.log.Error("create shopping list", zap.Error(err))
		return failable.FailCause[model.ShoppingList](msgInternalError, err)
	}
	return failable.Ok(*sl)
}

// Delete removes a list scoped to its owner.
func (s *ListServiceImpl) Delete(ctx context.Context, publicID string, ownerID int64) failable.Failable[struct{}] {
	err := s.lists.Delete(ctx, publicID, ownerID)
	if errors.Is(err, errs.ErrNotFound) {
		return failable.Fail[struct{}]("Shopping list not deleted")
	}
	if err != nil {
		s.log.Error("delete shopping list", zap.Error(err))
		return failable.FailCause[struct{}](msgInternalError, err)
	}
	return failable.Ok(struct{}{})
}

// ByPublicID loads a list with its items; nil value means no such list.
func (s *ListServiceImpl) ByPublicID(ctx context.Context, publicID string, ownerID *int64) failable.Failable[*model.ShoppingListWithItems] {
	sl, err := s.lists.GetByPublicID(ctx, publicID, ownerID)
	if err != nil {
		s.log.Error("get shopping list", zap.Error(err))
		return failable.FailCause[*model.ShoppingListWithItems](msgInternalError, err)
	}
	return failable.Ok(sl)
}

// ForUser loads all lists owned by a user with their items.
func (s *ListServiceImpl) ForUser(ctx context.Context, userID int64) failable.Failable[[]model.ShoppingListWithItems] {
	lists, err := s.lists.ListWithItemsByUser(ctx, userID)
	if err != nil {
		s.log.Error("list shopping lists", zap.Error(err))
		return failable.FailCause[[]model.ShoppingListWithItems](msgInternalError, err)
	}
	return failable.Ok(lists)
}

// AddItem re-resolves the list by public id and owner before inserting,
// so the authorization check and the insert target agree.
func (s *ListServiceImpl) AddItem(ctx context.Context, publicID string, ownerID int64, name string) failable.Failable[struct{}] {
	sl, err := s.lists.GetByPublicID(ctx, publicID, &ownerID)
	if err != nil {
		s.log.Error("resolve shopping list", zap.Error(err))
		return failable.FailCause[struct{}](msgInternalError, err)
	}
	if sl == nil {
		return failable.Fail[struct{}](msgListNotFound)
	}

	if err := s.lists.InsertItem(ctx, sl.ID, name); err != nil {
		s.log.Error("insert item", zap.Error(err))
		return failable.FailCause[struct{}](msgInternalError, err)
	}
	return failable.Ok(struct{}{})
}
