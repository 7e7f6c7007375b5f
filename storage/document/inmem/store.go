package inmemstore

import (
	"encoding/json"
	"sync"

	"github.com/mwalimu/darasa/core/classroom"
)

// Store is a single-slot in-memory document store. The document is kept
// serialized so every Load returns an independent copy, matching the
// snapshot isolation of the real backends.
type Store struct {
	mutex sync.RWMutex
	doc   []byte
}

var _ classroom.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) Load() ([]classroom.Classroom, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.doc == nil {
		return []classroom.Classroom{}, nil
	}
	var rooms []classroom.Classroom
	if err := json.Unmarshal(s.doc, &rooms); err != nil {
		return []classroom.Classroom{}, nil
	}
	return rooms, nil
}

func (s *Store) Save(rooms []classroom.Classroom) error {
	doc, err := json.Marshal(rooms)
	if err != nil {
		return err
	}
	s.mutex.Lock()
	s.doc = doc
	s.mutex.Unlock()
	return nil
}
