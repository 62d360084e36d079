package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dfryer1193/goslider/shared/auth"
	"github.com/dfryer1193/goslider/slider/domain"
	"github.com/rs/zerolog/log"
)

// ErrBadCredentials is returned for an unknown login or a wrong password.
var ErrBadCredentials = errors.New("bad credentials")

// UserService manages admin accounts.
type UserService struct {
	repo domain.UserRepository
}

func NewUserService(repo domain.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// AddUser creates an account with a bcrypt-hashed password.
func (s *UserService) AddUser(ctx context.Context, login, password string, role domain.Role) (*domain.User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, fmt.Errorf("%w: login cannot be empty", domain.ErrInvalidInput)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	user := &domain.User{Login: login, PasswordHash: hash, Role: role}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", login, err)
	}

	log.Info().Str("userID", user.ID).Str("login", login).Str("role", string(role)).Msg("Created user")
	return user, nil
}

// Authenticate returns the user whose login and password match.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.repo.GetUserByLogin(ctx, strings.TrimSpace(login))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return user, nil
}
