package memory

import (
	"context"
	"testing"

	"github.com/lumenweb/siteapi/internal/app/domain/message"
	"github.com/lumenweb/siteapi/internal/app/domain/user"
)

func TestCreateAssignsIdentity(t *testing.T) {
	store := New()
	ctx := context.Background()

	u, err := store.CreateUser(ctx, user.User{Username: "alice", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == "" || u.CreatedAt.IsZero() {
		t.Fatalf("identity not assigned: %+v", u)
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 || users[0].ID != u.ID {
		t.Fatalf("unexpected listing: %+v", users)
	}
}

func TestListReturnsCopy(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.CreateMessage(ctx, message.Message{Name: "n", Email: "e", Message: "hi"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, _ := store.ListMessages(ctx)
	first[0].Message = "mutated"

	second, _ := store.ListMessages(ctx)
	if second[0].Message != "hi" {
		t.Fatal("listing exposed internal slice")
	}
}
