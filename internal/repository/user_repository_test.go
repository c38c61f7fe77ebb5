package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/taskhub/taskhub-backend/internal/domain"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "not-a-real-hash",
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	byID, err := repo.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if byID.Email != user.Email {
		t.Errorf("expected email %q, got %q", user.Email, byID.Email)
	}
	if byID.Verified() {
		t.Error("expected a fresh account to be unverified")
	}

	byEmail, err := repo.FindByEmail(user.Email)
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("expected id %q, got %q", user.ID, byEmail.ID)
	}
}

func TestUserRepository_EmailExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)

	exists, err := repo.EmailExists("nobody@example.com")
	if err != nil {
		t.Fatalf("EmailExists() error = %v", err)
	}
	if exists {
		t.Error("expected unknown email to not exist")
	}

	user := &domain.User{ID: uuid.New().String(), Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	exists, err = repo.EmailExists(user.Email)
	if err != nil {
		t.Fatalf("EmailExists() error = %v", err)
	}
	if !exists {
		t.Error("expected seeded email to exist")
	}
}

func TestUserRepository_UpdateVerifiedAt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)

	user := &domain.User{ID: uuid.New().String(), Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	now := time.Now()
	user.EmailVerifiedAt = &now
	if err := repo.Update(user); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := repo.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if !found.Verified() {
		t.Error("expected user to be verified after update")
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)

	if _, err := repo.FindByID(uuid.New().String()); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByEmail("nobody@example.com"); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
