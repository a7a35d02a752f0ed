// Package db owns the server database connection and hands out
// repositories bound to it.
package db

import (
	"context"
	"database/sql"

	"github.com/kalajat/archive/internal/server/entries"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Entries() entries.Repository
	Close() error
}
