package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/mwalimu/darasa/core"
	"github.com/mwalimu/darasa/core/classroom"
)

// Store persists the whole classroom document as one JSON file.
type Store struct {
	path   string
	logger core.Logger
	mutex  sync.Mutex
}

var _ classroom.Store = (*Store)(nil)

func New(path string, logger core.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load returns the persisted classrooms. A missing file means nothing was
// written yet; an unparsable file is recovered as an empty store and left
// untouched on disk, never rewritten or surfaced as an error.
func (s *Store) Load() ([]classroom.Classroom, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []classroom.Classroom{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", s.path)
	}

	var rooms []classroom.Classroom
	if err := json.Unmarshal(data, &rooms); err != nil {
		s.logger.Warn("classroom document is unreadable, starting fresh", err)
		return []classroom.Classroom{}, nil
	}
	if rooms == nil {
		rooms = []classroom.Classroom{}
	}
	return rooms, nil
}

// Save replaces the stored document. The new document is written to a
// temporary file in the same directory and renamed over the target, so
// readers only ever observe a complete document.
func (s *Store) Save(rooms []classroom.Classroom) error {
	data, err := json.MarshalIndent(rooms, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding classroom document")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return errors.Wrap(err, "creating temp document")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "writing temp document")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "closing temp document")
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "chmod temp document")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "replacing %s", s.path)
	}
	return nil
}
