package finances

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFileStore_Missing(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "none.json"))
	if _, err := s.Load(); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want fs.ErrNotExist", err)
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"cuentas": [`), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileStore(path).Load()
	var corrupt *CorruptStoreError
	if !errors.As(err, &corrupt) {
		t.Fatalf("Load() error = %v, want a *CorruptStoreError", err)
	}
	if corrupt.Source != path {
		t.Errorf("CorruptStoreError.Source = %q, want %q", corrupt.Source, path)
	}
}

func TestFileStore_SaveLoad(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	want := DefaultDocument()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	// saving replaces the whole content
	want.Accounts = want.Accounts[:1]
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err = s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Accounts) != 1 {
		t.Errorf("Load() got %d accounts after overwrite, want 1", len(got.Accounts))
	}
}

func TestFileStore_DefaultPath(t *testing.T) {
	if got := NewFileStore("").Path; got != DefaultDataFile {
		t.Errorf("NewFileStore(\"\").Path = %q, want %q", got, DefaultDataFile)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(nil)
	if _, err := s.Load(); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("empty Load() error = %v, want fs.ErrNotExist", err)
	}

	doc := DefaultDocument()
	if err := s.Save(doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	// the store keeps its own copy
	doc.Accounts[0].Name = "changed"
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Accounts[0].Name != "Cash" {
		t.Errorf("stored account name = %q, want %q", got.Accounts[0].Name, "Cash")
	}

	s.Err = errors.New("disk full")
	if err := s.Save(Document{}); !errors.Is(err, s.Err) {
		t.Errorf("Save() error = %v, want %v", err, s.Err)
	}
	if s.Saves != 1 {
		t.Errorf("Saves = %d, want 1", s.Saves)
	}
}
