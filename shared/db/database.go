package db

import (
	"database/sql"
)

// Database is a connectable handle to the backing store.
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
}
