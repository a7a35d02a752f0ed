// Package entries provides the server-side entry service and its
// PostgreSQL-backed repository.
package entries

import (
	"context"
	"fmt"

	"github.com/kalajat/archive/internal/dbx"
	"github.com/kalajat/archive/internal/models"
)

// PostgresRepository implements entry storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new entry row. The id is assigned by the service layer
// before the call; the seq column provides the arrival-order tiebreak.
func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query := `
		INSERT INTO entries (id, victim_name, content, category, ts, analysis, user_id, user_name, user_email, user_photo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.VictimName, entry.Content, string(entry.Category), entry.Timestamp,
		entry.Analysis, entry.UserID, entry.UserName, entry.UserEmail, entry.UserPhoto,
	).Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

// Delete removes the row if present. Zero rows affected is not an error:
// delete is idempotent by contract.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// List returns the full feed, newest first; equal timestamps keep arrival
// order.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Entry, error) {
	query := `
		SELECT id, victim_name, content, category, ts, analysis, user_id, user_name, user_email, user_photo
		FROM entries
		ORDER BY ts DESC, seq DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := make([]models.Entry, 0)
	for rows.Next() {
		var item models.Entry
		var category string
		if err := rows.Scan(
			&item.ID, &item.VictimName, &item.Content, &category, &item.Timestamp,
			&item.Analysis, &item.UserID, &item.UserName, &item.UserEmail, &item.UserPhoto,
		); err != nil {
			return nil, err
		}
		item.Category = models.Category(category)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
