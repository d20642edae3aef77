package messages

import (
	"context"
	"errors"
	"testing"

	"github.com/lumenweb/siteapi/internal/app/storage/memory"
)

func TestSubmit(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	created, err := svc.Submit(ctx, "Carol", "c@x.com", "hello there")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("identity not assigned: %+v", created)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 || all[0].Message != "hello there" {
		t.Fatalf("unexpected listing: %+v", all)
	}
}

func TestSubmitRequiresAllFields(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	cases := [][3]string{
		{"", "c@x.com", "hi"},
		{"Carol", "", "hi"},
		{"Carol", "c@x.com", ""},
	}
	for _, c := range cases {
		if _, err := svc.Submit(ctx, c[0], c[1], c[2]); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields for %v, got %v", c, err)
		}
	}
}
