package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// Every Save rewrites the whole document through a temp file and a rename;
// there is no locking, so concurrent writers race and the last rename wins.

// FileName is the backing file inside the data directory.
const FileName = "shopping_lists.json"

// Store persists a Collection as one JSON array in a single file.
type Store struct {
	path string
}

// New returns a store backed by FileName inside dir.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

// NewAt returns a store backed by the file at path.
func NewAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads and parses the backing file.
func (s *Store) Load() (model.Collection, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("jsonstore: nothing saved yet", "path", s.path)
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	text, err := decodeText(b)
	if err != nil {
		slog.Warn("jsonstore: undecodable file", "path", s.path, "err", err)
		return nil, &store.CorruptError{Path: s.path, Err: err}
	}
	var lists model.Collection
	if err := json.Unmarshal(text, &lists); err != nil {
		slog.Warn("jsonstore: corrupt JSON", "path", s.path, "err", err)
		return nil, &store.CorruptError{Path: s.path, Err: fmt.Errorf("json unmarshal: %w", err)}
	}
	slog.Debug("jsonstore: loaded", "path", s.path, "lists", len(lists))
	return lists.Normalize(), nil
}

// Save serializes lists and replaces the backing file.
func (s *Store) Save(lists model.Collection) error {
	b, err := json.MarshalIndent(lists.Clone().Normalize(), "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := writeAtomic(s.path, b); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	slog.Debug("jsonstore: saved", "path", s.path, "lists", len(lists), "bytes", len(b))
	return nil
}

// decodeText turns the raw file into UTF-8. A UTF-8 or UTF-16 byte order
// mark selects the matching decoder; without one the bytes pass through and
// must already be valid UTF-8.
func decodeText(b []byte) ([]byte, error) {
	dec := unicode.BOMOverride(encoding.Nop.NewDecoder())
	out, _, err := transform.Bytes(dec, b)
	if err != nil {
		return nil, fmt.Errorf("decode text: %w", err)
	}
	if !utf8.Valid(out) {
		return nil, errors.New("decode text: invalid UTF-8")
	}
	return out, nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

var _ store.Store = (*Store)(nil)
