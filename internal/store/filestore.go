// Package store provides the persistence implementations behind the
// user.Repository and catalog.Source contracts: a flat-JSON-document file
// store and a SQLite-backed user document store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/zhihang-app/zhihang/internal/catalog"
	"github.com/zhihang-app/zhihang/internal/user"
)

// Catalog document file names, matching the original on-disk layout.
const (
	coursesFile      = "courses.json"
	researchFile     = "research.json"
	competitionsFile = "contests.json"
	requirementsFile = "course_requirement.json"
	tagsFile         = "tags.json"
	usersFile        = "users.json"
)

// FileStore persists user records as one JSON document (users.json) and
// reads catalog documents from sibling JSON files. Writes replace the
// whole users document via a temp-file rename. A store-wide mutex
// serializes read-modify-write cycles; the single-writer-per-record
// contract holds as long as one process owns the directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore opens (creating if needed) a file store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get implements user.Repository.
func (s *FileStore) Get(_ context.Context, id string) (*user.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.readUsers()
	if err != nil {
		return nil, err
	}
	rec, ok := users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return rec, nil
}

// Put implements user.Repository.
func (s *FileStore) Put(_ context.Context, id string, rec *user.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.readUsers()
	if err != nil {
		return err
	}
	users[id] = rec
	return s.writeUsers(users)
}

// Delete implements user.Repository.
func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.readUsers()
	if err != nil {
		return err
	}
	if _, ok := users[id]; !ok {
		return user.ErrNotFound
	}
	delete(users, id)
	return s.writeUsers(users)
}

// All implements user.Repository.
func (s *FileStore) All(_ context.Context) (map[string]*user.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readUsers()
}

// Load implements catalog.Source. A missing catalog file yields an empty
// document; a file that fails to parse is an error.
func (s *FileStore) Load(_ context.Context, kind catalog.Kind) (*catalog.Document, error) {
	var name string
	switch kind {
	case catalog.KindCourses:
		name = coursesFile
	case catalog.KindResearch:
		name = researchFile
	case catalog.KindCompetitions:
		name = competitionsFile
	default:
		return nil, fmt.Errorf("unknown catalog kind %q", kind)
	}
	doc := &catalog.Document{}
	if err := s.readJSON(name, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Requirements implements catalog.Source.
func (s *FileStore) Requirements(_ context.Context) (*catalog.RequirementsDocument, error) {
	doc := &catalog.RequirementsDocument{}
	if err := s.readJSON(requirementsFile, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Tags implements catalog.Source.
func (s *FileStore) Tags(_ context.Context) (*catalog.TagsDocument, error) {
	doc := &catalog.TagsDocument{}
	if err := s.readJSON(tagsFile, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *FileStore) readUsers() (map[string]*user.Record, error) {
	users := make(map[string]*user.Record)
	if err := s.readJSON(usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *FileStore) writeUsers(users map[string]*user.Record) error {
	path := filepath.Join(s.dir, usersFile)
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", usersFile, err)
	}

	// Write to a temp file and rename so a crash mid-write never leaves a
	// truncated users document behind.
	tmp, err := os.CreateTemp(s.dir, usersFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", usersFile, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", usersFile, err)
	}
	return nil
}

// readJSON decodes the named document into v. A missing file leaves v at
// its zero value.
func (s *FileStore) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
