package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zhihang-app/zhihang/internal/catalog"
	"github.com/zhihang-app/zhihang/internal/user"
)

func testUser(name string) *user.Record {
	return &user.Record{
		Profile:   user.Profile{Name: name, School: "School of Computing", Major: "Software Engineering"},
		Knowledge: map[string]float64{"Programming": 4.5},
		Skills:    map[string]float64{},
	}
}

func TestFileStoreUserRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if _, err := fs.Get(ctx, "user_0000000001"); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty store, got %v", err)
	}

	if err := fs.Put(ctx, "user_0000000001", testUser("Wang Lei")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := fs.Get(ctx, "user_0000000001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Profile.Name != "Wang Lei" || got.Knowledge["Programming"] != 4.5 {
		t.Errorf("round trip lost data: %+v", got)
	}

	if err := fs.Put(ctx, "user_0000000002", testUser("Li Hua")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	all, err := fs.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("All returned %d records, want 2", len(all))
	}

	if err := fs.Delete(ctx, "user_0000000001"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := fs.Delete(ctx, "user_0000000001"); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("second delete should report ErrNotFound, got %v", err)
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := fs.Put(ctx, "user_0000000001", testUser("Wang Lei")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.Get(ctx, "user_0000000001")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Profile.Name != "Wang Lei" {
		t.Errorf("data lost across reopen: %+v", got)
	}
}

func TestFileStoreMissingCatalogIsEmpty(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	doc, err := fs.Load(ctx, catalog.KindCourses)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Colleges) != 0 {
		t.Errorf("missing catalog file should yield an empty document: %+v", doc)
	}

	reqs, err := fs.Requirements(ctx)
	if err != nil {
		t.Fatalf("Requirements: %v", err)
	}
	if len(reqs.Colleges) != 0 {
		t.Errorf("missing requirements file should yield an empty document: %+v", reqs)
	}
}

func TestFileStoreLoadsCatalogFiles(t *testing.T) {
	dir := t.TempDir()
	courses := `{"colleges":[{"name":"School of Computing","majors":[{"name":"Software Engineering","courses":[{"name":"Data Structures","credits":4,"category":"Major Core","standard_semester":2}]}]}]}`
	if err := os.WriteFile(filepath.Join(dir, "courses.json"), []byte(courses), 0o644); err != nil {
		t.Fatal(err)
	}

	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	doc, err := fs.Load(context.Background(), catalog.KindCourses)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	idx := catalog.BuildIndex(doc, "", "")
	entry, ok := idx.Lookup("Data Structures")
	if !ok || entry.Credits != 4 || entry.StandardSemester != 2 {
		t.Errorf("parsed entry wrong: %+v ok=%v", entry, ok)
	}
}

func TestFileStoreCorruptCatalogIsError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tags.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := fs.Tags(context.Background()); err == nil {
		t.Error("corrupt catalog file should be an error, not an empty document")
	}
}

func TestFileStoreUnknownKind(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := fs.Load(context.Background(), catalog.Kind("syllabi")); err == nil {
		t.Error("unknown catalog kind should be rejected")
	}
}
