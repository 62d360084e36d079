package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/dfryer1193/goslider/slider/domain"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	u := &domain.User{Login: "editor", PasswordHash: "hash", Role: domain.RoleEditor}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if u.ID == "" {
		t.Fatal("CreateUser did not assign an ID")
	}

	byID, err := repo.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if byID.Login != "editor" || byID.Role != domain.RoleEditor {
		t.Errorf("GetUser = %+v", byID)
	}

	byLogin, err := repo.GetUserByLogin(ctx, "editor")
	if err != nil {
		t.Fatalf("GetUserByLogin failed: %v", err)
	}
	if byLogin.ID != u.ID {
		t.Errorf("GetUserByLogin ID = %q, want %q", byLogin.ID, u.ID)
	}
}

func TestUserRepository_DuplicateLogin(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.CreateUser(ctx, &domain.User{Login: "a", PasswordHash: "h", Role: domain.RoleAuthor}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := repo.CreateUser(ctx, &domain.User{Login: "a", PasswordHash: "h", Role: domain.RoleAuthor}); err == nil {
		t.Error("expected error for duplicate login")
	}
}

func TestUserRepository_Validation(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name string
		user *domain.User
	}{
		{name: "nil", user: nil},
		{name: "no login", user: &domain.User{Role: domain.RoleEditor}},
		{name: "bad role", user: &domain.User{Login: "x", Role: "root"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repo.CreateUser(ctx, tt.user); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestUserRepository_Missing(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	if _, err := repo.GetUserByLogin(context.Background(), "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("GetUserByLogin error = %v, want ErrUserNotFound", err)
	}
}
