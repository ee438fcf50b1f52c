package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/quicksave/internal/model"
)

// MaxContentBytes is the hard ceiling for a single item's content.
const MaxContentBytes = 50 << 20 // 50 MiB

// SaveItem inserts a new item for the given user. Items are append-only;
// there is no update or delete path.
//
// A note with empty or whitespace-only content and any content over
// MaxContentBytes are rejected with a ValidationError. A userID that does
// not reference an existing user is rejected with ErrUserNotFound (foreign
// keys are not enforced by the database, see internal/db).
func SaveItem(ctx context.Context, db *sql.DB, userID int64, itemType string, content []byte) (*model.Item, error) {
	if itemType == model.TypeNote && strings.TrimSpace(string(content)) == "" {
		return nil, Validationf("note content cannot be empty")
	}
	if int64(len(content)) > MaxContentBytes {
		return nil, Validationf("content exceeds the %dMB size limit", MaxContentBytes>>20)
	}

	var exists int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE id = ?`, userID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking item owner: %w", err)
	}
	if exists == 0 {
		return nil, ErrUserNotFound
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (user_id, type, content) VALUES (?, ?, ?)`,
		userID, itemType, content,
	)
	if err != nil {
		return nil, fmt.Errorf("saving item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if no such item exists.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, type, content, created_at FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.UserID, &item.Type, &item.Content, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// CountItemsForUser returns the number of items owned by a user id,
// including items whose owner has since been deleted.
func CountItemsForUser(ctx context.Context, db *sql.DB, userID int64) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return count, nil
}
