package store

import (
	"context"

	"github.com/cesargomez89/mekkompis/internal/domain"
)

const shoppingColumns = `id, job_id, item_name, COALESCE(quantity, 1) AS quantity, COALESCE(purchased, 0) AS purchased, created_at`

func (db *DB) ListShoppingItemsByJob(ctx context.Context, jobID int64) ([]domain.ShoppingItem, error) {
	query := `SELECT ` + shoppingColumns + ` FROM shopping_items WHERE job_id = ? ORDER BY created_at ASC, id ASC`

	items := []domain.ShoppingItem{}
	err := db.SelectContext(ctx, &items, query, jobID)
	return items, err
}

func (db *DB) GetShoppingItem(ctx context.Context, id int64) (*domain.ShoppingItem, error) {
	item := &domain.ShoppingItem{}
	err := db.GetContext(ctx, item, `SELECT `+shoppingColumns+` FROM shopping_items WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "shopping item")
	}
	return item, nil
}

func (db *DB) CreateShoppingItem(ctx context.Context, item *domain.ShoppingItem) (int64, error) {
	query := `INSERT INTO shopping_items (job_id, item_name, quantity, purchased)
		VALUES (:job_id, :item_name, :quantity, :purchased)`

	res, err := db.NamedExecContext(ctx, query, item)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateShoppingItem writes name and quantity; the purchased flag is left alone.
func (db *DB) UpdateShoppingItem(ctx context.Context, item *domain.ShoppingItem) error {
	query := `UPDATE shopping_items SET item_name = :item_name, quantity = :quantity WHERE id = :id`

	res, err := db.NamedExecContext(ctx, query, item)
	if err != nil {
		return err
	}
	return checkAffected(res, "shopping item")
}

func (db *DB) ToggleShoppingItemPurchased(ctx context.Context, id int64) (domain.Flag, error) {
	query := `UPDATE shopping_items SET purchased = 1 - COALESCE(purchased, 0) WHERE id = ? RETURNING purchased`

	var purchased domain.Flag
	if err := db.QueryRowxContext(ctx, query, id).Scan(&purchased); err != nil {
		return false, notFound(err, "shopping item")
	}
	return purchased, nil
}

func (db *DB) DeleteShoppingItem(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM shopping_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "shopping item")
}
