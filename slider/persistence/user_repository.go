package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dfryer1193/goslider/shared/db"
	"github.com/dfryer1193/goslider/slider/domain"
	"github.com/oklog/ulid/v2"
)

var _ domain.UserRepository = (*SQLiteUserRepository)(nil)

// SQLiteUserRepository implements domain.UserRepository using SQLite
type SQLiteUserRepository struct {
	db *sql.DB
}

func NewUserRepository(sqlDB *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{
		db: sqlDB,
	}
}

const insertUserQuery = `
	INSERT INTO users (id, login, password_hash, role, created_at)
	VALUES (?, ?, ?, ?, ?)
`

// CreateUser inserts a user, assigning an ID and creation time when unset.
func (r *SQLiteUserRepository) CreateUser(ctx context.Context, u *domain.User) error {
	if u == nil {
		return fmt.Errorf("user cannot be nil")
	}
	if u.Login == "" {
		return fmt.Errorf("user login cannot be empty")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("invalid role %q", u.Role)
	}

	if u.ID == "" {
		u.ID = ulid.Make().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, insertUserQuery,
		u.ID,
		u.Login,
		u.PasswordHash,
		string(u.Role),
		u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

const selectUserQuery = `
	SELECT id, login, password_hash, role, created_at
	FROM users
`

// GetUser retrieves a user by ID
func (r *SQLiteUserRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return r.getUser(ctx, selectUserQuery+" WHERE id = ?", id)
}

// GetUserByLogin retrieves a user by login name
func (r *SQLiteUserRepository) GetUserByLogin(ctx context.Context, login string) (*domain.User, error) {
	return r.getUser(ctx, selectUserQuery+" WHERE login = ?", login)
}

func (r *SQLiteUserRepository) getUser(ctx context.Context, query string, arg string) (*domain.User, error) {
	if arg == "" {
		return nil, fmt.Errorf("user lookup key cannot be empty")
	}

	var (
		u         domain.User
		role      string
		createdAt sql.NullTime
	)
	err := db.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Login,
		&u.PasswordHash,
		&role,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.Role = domain.Role(role)
	if createdAt.Valid {
		u.CreatedAt = createdAt.Time
	}
	return &u, nil
}
