package credstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "creds.json")
	return NewFileStore(path), path
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, _ := newTestFileStore(t)
	ctx := context.Background()

	rec := Record{
		ID:    "7",
		Name:  "Jordan",
		Email: "jordan@example.com",
		Role:  "ROLE_STUDENT",
		Token: "tok-123",
	}

	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected a record, got nil")
	}
	if *got != rec {
		t.Errorf("loaded record %+v, want %+v", *got, rec)
	}
}

func TestFileStoreLoadAbsent(t *testing.T) {
	store, _ := newTestFileStore(t)

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load of absent file should not error, got: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil record, got %+v", got)
	}
}

func TestFileStoreClearRemovesEverything(t *testing.T) {
	store, path := newTestFileStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, Record{Token: "t", Email: "e", Role: "ROLE_ADMIN"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected credential file to be gone after clear")
	}

	got, err := store.Load(ctx)
	if err != nil || got != nil {
		t.Errorf("expected empty store after clear, got rec=%+v err=%v", got, err)
	}
}

func TestFileStoreClearWhenEmpty(t *testing.T) {
	store, _ := newTestFileStore(t)

	if err := store.Clear(context.Background()); err != nil {
		t.Errorf("clearing an empty store should succeed, got: %v", err)
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	store, _ := newTestFileStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, Record{Email: "old@example.com", Token: "old"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save(ctx, Record{Email: "new@example.com", Token: "new"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Email != "new@example.com" || got.Token != "new" {
		t.Errorf("expected the newer record, got %+v", got)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if got, _ := store.Load(ctx); got != nil {
		t.Fatalf("fresh store should be empty, got %+v", got)
	}

	rec := Record{Email: "a@b.c", Token: "tok"}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, _ := store.Load(ctx)
	if got == nil || *got != rec {
		t.Errorf("loaded %+v, want %+v", got, rec)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if got, _ := store.Load(ctx); got != nil {
		t.Errorf("expected empty store after clear, got %+v", got)
	}
}
