package postgres

import (
	"context"

	"github.com/antonsk/shoplist/internal/errs"
	"github.com/antonsk/shoplist/internal/model"
	"github.com/jackc/pgx/v5"
)

// ListRepo implements ShoppingListRepository using PostgreSQL.
type ListRepo struct{ db *DB }

// NewListRepo constructs a shopping-list repository.
func NewListRepo(db *DB) *ListRepo { return &ListRepo{db: db} }

// Create inserts the list row and the ownership mapping atomically. Two
// simultaneous creations can never leave an orphaned list behind.
func (r *ListRepo) Create(ctx context.Context, ownerID int64, publicID, name, description string) (out *model.ShoppingList, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
			out = nil
		}
	}()

	const insertList = `
INSERT INTO shopping_lists (public_id, name, description)
VALUES ($1, $2, $3)
RETURNING id, public_id, name, description`
	var sl model.ShoppingList
	row := tx.QueryRow(ctx, insertList, publicID, name, description)
	if err = row.Scan(&sl.ID, &sl.PublicID, &sl.Name, &sl.Description); err != nil {
		return nil, err
	}

	const insertMapping = `
INSERT INTO user_shopping_list_mappings (user_id, shopping_list_id)
VALUES ($1, $2)`
	if _, err = tx.Exec(ctx, insertMapping, ownerID, sl.ID); err != nil {
		return nil, err
	}

	return &sl, nil
}

// Delete removes a list only where the ownership mapping matches ownerID.
func (r *ListRepo) Delete(ctx context.Context, publicID string, ownerID int64) error {
	const q = `
DELETE FROM shopping_lists
USING user_shopping_list_mappings AS uslm
WHERE shopping_lists.id = uslm.shopping_list_id
  AND shopping_lists.public_id = $1
  AND uslm.user_id = $2`
	tag, err := r.db.Pool.Exec(ctx, q, publicID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// listRow is one flat row of the list-to-items left join. Item columns are
// nullable: a list without items still yields one row.
type listRow struct {
	id          int64
	publicID    string
	name        string
	description string
	itemName    *string
	itemChecked *bool
}

// GetByPublicID selects a list with its items by public id. A non-nil
// ownerID restricts the lookup through the ownership mapping; nil serves
// unscoped lookups such as shared read-only views.
func (r *ListRepo) GetByPublicID(ctx context.Context, publicID string, ownerID *int64) (*model.ShoppingListWithItems, error) {
	const scoped = `
SELECT sl.id, sl.public_id, sl.name, sl.description, sli.name, sli.checked
FROM shopping_lists AS sl
LEFT JOIN shopping_list_items AS sli ON sl.id = sli.shopping_list_id
INNER JOIN user_shopping_list_mappings AS uslm ON sl.id = uslm.shopping_list_id
WHERE sl.public_id = $1 AND uslm.user_id = $2`
	const unscoped = `
SELECT sl.id, sl.public_id, sl.name, sl.description, sli.name, sli.checked
FROM shopping_lists AS sl
LEFT JOIN shopping_list_items AS sli ON sl.id = sli.shopping_list_id
WHERE sl.public_id = $1`

	var (
		rows pgx.Rows
		err  error
	)
	if ownerID != nil {
		rows, err = r.db.Pool.Query(ctx, scoped, publicID, *ownerID)
	} else {
		rows, err = r.db.Pool.Query(ctx, unscoped, publicID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out *model.ShoppingListWithItems
	for rows.Next() {
		var lr listRow
		if err := rows.Scan(&lr.id, &lr.publicID, &lr.name, &lr.description, &lr.itemName, &lr.itemChecked); err != nil {
			return nil, err
		}
		if out == nil {
			out = &model.ShoppingListWithItems{
				ShoppingList: model.ShoppingList{
					ID:          lr.id,
					PublicID:    lr.publicID,
					Name:        lr.name,
					Description: lr.description,
				},
				Items: []model.ShoppingListItem{},
			}
		}
		if item, ok := lr.item(); ok {
			out.Items = append(out.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// No rows means no such list (or not owned): a successful absence.
	return out, nil
}

// ListWithItemsByUser selects all lists owned by userID with their items,
// regrouping the flat join rows into one entry per list in first-seen order.
func (r *ListRepo) ListWithItemsByUser(ctx context.Context, userID int64) ([]model.ShoppingListWithItems, error) {
	const q = `
SELECT sl.id, sl.public_id, sl.name, sl.description, sli.name, sli.checked
FROM shopping_lists AS sl
LEFT JOIN shopping_list_items AS sli ON sl.id = sli.shopping_list_id
INNER JOIN user_shopping_list_mappings AS uslm ON sl.id = uslm.shopping_list_id
WHERE uslm.user_id = $1`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []model.ShoppingListWithItems{}
	index := map[int64]int{}
	for rows.Next() {
		var lr listRow
		if err := rows.Scan(&lr.id, &lr.publicID, &lr.name, &lr.description, &lr.itemName, &lr.itemChecked); err != nil {
			return nil, err
		}
		i, seen := index[lr.id]
		if !seen {
			i = len(lists)
			index[lr.id] = i
			lists = append(lists, model.ShoppingListWithItems{
				ShoppingList: model.ShoppingList{
					ID:          lr.id,
					PublicID:    lr.publicID,
					Name:        lr.name,
					Description: lr.description,
				},
				Items: []model.ShoppingListItem{},
			})
		}
		if item, ok := lr.item(); ok {
			lists[i].Items = append(lists[i].Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lists, nil
}

// InsertItem appends an unchecked item to a list.
func (r *ListRepo) InsertItem(ctx context.Context, listID int64, name string) error {
	const q = `
INSERT INTO shopping_list_items (shopping_list_id, name, checked)
VALUES ($1, $2, false)`
	_, err := r.db.Pool.Exec(ctx, q, listID, name)
	return err
}

// item converts the nullable join columns into an item. Lists with no
// items produce one placeholder row with null item fields; those are
// dropped here.
func (lr listRow) item() (model.ShoppingListItem, bool) {
	if lr.itemName == nil || *lr.itemName == "" {
		return model.ShoppingListItem{}, false
	}
	checked := false
	if lr.itemChecked != nil {
		checked = *lr.itemChecked
	}
	return model.ShoppingListItem{Name: *lr.itemName, Checked: checked}, true
}
