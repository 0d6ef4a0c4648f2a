package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/zhihang-app/zhihang/internal/user"
)

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteUserRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.Get(ctx, "user_0000000001"); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty table, got %v", err)
	}

	if err := db.Put(ctx, "user_0000000001", testUser("Wang Lei")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := db.Get(ctx, "user_0000000001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Profile.Name != "Wang Lei" || got.Knowledge["Programming"] != 4.5 {
		t.Errorf("round trip lost data: %+v", got)
	}

	// Put on an existing id overwrites the document.
	updated := testUser("Wang Lei")
	updated.TotalCredits = 12
	if err := db.Put(ctx, "user_0000000001", updated); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, err = db.Get(ctx, "user_0000000001")
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if got.TotalCredits != 12 {
		t.Errorf("overwrite not applied: %+v", got)
	}
}

func TestSQLiteDelete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Put(ctx, "user_0000000001", testUser("Wang Lei")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := db.Delete(ctx, "user_0000000001"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := db.Delete(ctx, "user_0000000001"); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("second delete should report ErrNotFound, got %v", err)
	}
}

func TestSQLiteAll(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	names := map[string]string{
		"user_0000000001": "Wang Lei",
		"user_0000000002": "Li Hua",
		"user_0000000003": "Zhang Wei",
	}
	for id, name := range names {
		if err := db.Put(ctx, id, testUser(name)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	all, err := db.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("All returned %d records, want 3", len(all))
	}
}
