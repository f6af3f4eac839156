package finances

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultDataFile is the name of the JSON document used by default.
const DefaultDataFile = "finanzas_data.json"

// Store persists a whole Document at once.
//
// Load returns an error matching fs.ErrNotExist when there is nothing stored
// yet, and a *CorruptStoreError when what is stored cannot be decoded.
// Save always replaces everything that was stored before.
type Store interface {
	Load() (Document, error)
	Save(Document) error
}

// FileStore stores the document as a JSON file.
//
// The file is rewritten in place on each save: a crash in the middle of a
// write can leave a corrupt file behind.
type FileStore struct {
	Path string
}

// NewFileStore returns a store for the JSON file at path.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultDataFile
	}
	return &FileStore{Path: path}
}

func (s *FileStore) Load() (Document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Document{}, fmt.Errorf("could not read %q: %w", s.Path, err)
	}
	doc, err := DecodeDocument(bytes.NewReader(data))
	if err != nil {
		var corrupt *CorruptStoreError
		if errors.As(err, &corrupt) {
			corrupt.Source = s.Path
		}
		return Document{}, err
	}
	return doc, nil
}

func (s *FileStore) Save(doc Document) error {
	var b bytes.Buffer
	if err := EncodeDocument(&b, doc); err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, b.Bytes(), 0644); err != nil {
		return fmt.Errorf("could not write %q: %w", s.Path, err)
	}
	return nil
}

// MemoryStore keeps the last saved document in memory.
type MemoryStore struct {
	doc   *Document
	Saves int // number of successful saves
	// Err, when set, is returned by Save instead of saving.
	Err error
}

// NewMemoryStore returns a store holding doc, or an empty store if doc is nil.
func NewMemoryStore(doc *Document) *MemoryStore {
	s := &MemoryStore{}
	if doc != nil {
		d := doc.Clone()
		s.doc = &d
	}
	return s
}

func (s *MemoryStore) Load() (Document, error) {
	if s.doc == nil {
		return Document{}, fmt.Errorf("memory store is empty: %w", fs.ErrNotExist)
	}
	return s.doc.Clone(), nil
}

func (s *MemoryStore) Save(doc Document) error {
	if s.Err != nil {
		return s.Err
	}
	d := doc.Clone()
	s.doc = &d
	s.Saves++
	return nil
}

// Document returns the last saved document, if any.
func (s *MemoryStore) Document() (Document, bool) {
	if s.doc == nil {
		return Document{}, false
	}
	return s.doc.Clone(), true
}
