package memory

import (
	"context"
	"errors"
	"testing"

	authDomain "stock-watch/internal/domain/auth"
)

func TestStore_Vault(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if _, ok, err := s.Get(ctx, "authToken"); err != nil || ok {
		t.Fatalf("expected empty store miss, got ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "authToken", "tok-1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, ok, err := s.Get(ctx, "authToken")
	if err != nil || !ok || val != "tok-1" {
		t.Fatalf("expected tok-1, got %q ok=%v err=%v", val, ok, err)
	}

	// 覆寫
	if err := s.Set(ctx, "authToken", "tok-2"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if val, _, _ := s.Get(ctx, "authToken"); val != "tok-2" {
		t.Errorf("expected overwrite, got %q", val)
	}

	if err := s.Delete(ctx, "authToken"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "authToken"); ok {
		t.Error("expected key gone after delete")
	}

	// 刪除不存在的鍵不報錯
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStore_Users(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if _, err := s.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, authDomain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	u := authDomain.User{ID: "u-1", Email: "reg@example.com", Name: "Reg", PasswordHash: "hash"}
	if err := s.Save(ctx, u); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.FindByEmail(ctx, "reg@example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if got != u {
		t.Errorf("expected %+v, got %+v", u, got)
	}
}
