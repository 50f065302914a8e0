package usermock

import (
	"context"
	"testing"

	domain "genesis-lending/internal/domain/user"
)

func TestRepo_DefaultsAndForwarding(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if err := m.Create(ctx, &domain.User{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if _, err := m.GetByEmail(ctx, "a@b.c"); err != context.Canceled {
		t.Fatalf("GetByEmail default: want context.Canceled, got %v", err)
	}
	if _, err := m.GetByIDForUpdate(ctx, 1); err != context.Canceled {
		t.Fatalf("GetByIDForUpdate default: want context.Canceled, got %v", err)
	}

	want := &domain.User{ID: 7, UserID: "abc"}
	m.GetByUserIDFn = func(_ context.Context, userID string) (*domain.User, error) {
		if userID != "abc" {
			t.Fatalf("userID mismatch: %s", userID)
		}
		return want, nil
	}
	got, err := m.GetByUserID(ctx, "abc")
	if err != nil || got != want {
		t.Fatalf("GetByUserID = %v, %v", got, err)
	}
}
