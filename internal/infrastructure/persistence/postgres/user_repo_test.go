package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	authDomain "stock-watch/internal/domain/auth"
)

func TestUserRepo_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewUserRepo(db)

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "display_name", "password_hash"}).
			AddRow("u-1", "reg@example.com", "Reg", "hash")
		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs("reg@example.com").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(context.Background(), "reg@example.com")
		if err != nil {
			t.Fatalf("FindByEmail failed: %v", err)
		}
		if u.ID != "u-1" || u.Name != "Reg" || u.PasswordHash != "hash" {
			t.Errorf("unexpected user: %+v", u)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "display_name", "password_hash"}))

		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
		if !errors.Is(err, authDomain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserRepo_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewUserRepo(db)
	u := authDomain.User{ID: "u-9", Email: "new@example.com", Name: "New", PasswordHash: "hash"}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Email, u.Name, u.PasswordHash).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Save(context.Background(), u); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}
