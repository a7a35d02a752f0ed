package entries

import (
	"context"

	"github.com/kalajat/archive/internal/models"
)

// Repository describes entry persistence on the server side.
type Repository interface {
	// Create inserts the entry and returns it.
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)

	// Delete removes the entry by id. An absent id is a no-op.
	Delete(ctx context.Context, id string) error

	// List returns all entries ordered by timestamp descending; ties keep
	// insertion order.
	List(ctx context.Context) ([]models.Entry, error)
}
