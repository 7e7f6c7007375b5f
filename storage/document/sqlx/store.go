package sqlxstore

import (
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/mwalimu/darasa/core"
	"github.com/mwalimu/darasa/core/classroom"
)

// Store persists the whole classroom document as one jsonb row in the
// `document` table, under a single well-known key per deployment. The row is
// upserted wholesale; there is no compare-and-swap, the later writer wins.
type Store struct {
	db     *sqlx.DB
	key    string
	logger core.Logger
}

var _ classroom.Store = (*Store)(nil)

func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", conf.Database.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}
	return db, nil
}

func New(db *sqlx.DB, key string, logger core.Logger) *Store {
	return &Store{db: db, key: key, logger: logger}
}

func (s *Store) Load() ([]classroom.Classroom, error) {
	var body []byte
	err := s.db.Get(&body, "SELECT body FROM document WHERE key = $1", s.key)
	if err == sql.ErrNoRows {
		return []classroom.Classroom{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "loading document %q", s.key)
	}

	var rooms []classroom.Classroom
	if err := json.Unmarshal(body, &rooms); err != nil {
		// recover as empty; the stored row is left as is
		s.logger.Warn("classroom document is unreadable, starting fresh", err)
		return []classroom.Classroom{}, nil
	}
	if rooms == nil {
		rooms = []classroom.Classroom{}
	}
	return rooms, nil
}

func (s *Store) Save(rooms []classroom.Classroom) error {
	body, err := json.Marshal(rooms)
	if err != nil {
		return errors.Wrap(err, "encoding classroom document")
	}
	_, err = s.db.Exec(
		`INSERT INTO document (key, body, saved_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, saved_at = EXCLUDED.saved_at`,
		s.key, body,
	)
	return errors.Wrapf(err, "saving document %q", s.key)
}
