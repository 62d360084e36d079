package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleEditor        Role = "editor"
	RoleAuthor        Role = "author"
	RoleContributor   Role = "contributor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleEditor, RoleAuthor, RoleContributor:
		return true
	}
	return false
}

// EditsOthers reports whether the role may edit content authored by someone else.
func (r Role) EditsOthers() bool {
	return r == RoleAdministrator || r == RoleEditor
}

type User struct {
	ID           string
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Role   Role
}

// CanEdit reports whether p may edit a record authored by authorID.
func (p Principal) CanEdit(authorID string) bool {
	if p.UserID == "" || !p.Role.Valid() {
		return false
	}
	return p.Role.EditsOthers() || p.UserID == authorID
}

type UserRepository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByLogin(ctx context.Context, login string) (*User, error)
}
