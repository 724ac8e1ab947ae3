package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shelfworks/bookintake/internal/core/domain"
)

func TestAlreadyProcessedRequiresBothOutputs(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want bool
	}{
		{"both present", []string{"inbox/cover.jpg", "inbox/metadata.json", "inbox/book.pdf"}, true},
		{"cover only", []string{"inbox/cover.jpg", "inbox/book.pdf"}, false},
		{"metadata only", []string{"inbox/metadata.json"}, false},
		{"empty folder", nil, false},
		{"outputs nested in subfolder", []string{
			"inbox/book.pdf",
			"inbox/PDF/lead_gen_101/cover.jpg",
			"inbox/PDF/lead_gen_101/metadata.json",
		}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newStoreFake()
			for _, key := range tc.keys {
				store.put(key, []byte("x"))
			}
			guard := NewIdempotencyGuard(store)

			got, err := guard.AlreadyProcessed(context.Background(), "inbox")
			if err != nil {
				t.Fatalf("AlreadyProcessed() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("AlreadyProcessed() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAlreadyProcessedEmptyFolderIsFalse(t *testing.T) {
	guard := NewIdempotencyGuard(newStoreFake())
	got, err := guard.AlreadyProcessed(context.Background(), "")
	if err != nil || got {
		t.Fatalf("AlreadyProcessed(\"\") = (%v, %v), want (false, nil)", got, err)
	}
}

func TestAlreadyProcessedWrapsListFailure(t *testing.T) {
	store := newStoreFake()
	store.listErr = errors.New("boom")
	guard := NewIdempotencyGuard(store)

	_, err := guard.AlreadyProcessed(context.Background(), "inbox")
	if !domain.IsKind(err, domain.ErrStorage) {
		t.Fatalf("expected storage error kind, got %v", err)
	}
}
