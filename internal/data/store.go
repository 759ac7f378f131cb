package data

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"sync/atomic"

	"maternal-vitals/internal/logger"
	"maternal-vitals/internal/model"

	"github.com/sirupsen/logrus"
)

// Store holds the current dataset snapshot.
//
// Readers get the published slice without locking. Writers never touch a
// published record: Update copies the records it changes, builds a new slice
// and swaps it in, so a reader always sees either the old or the new cycle in
// full.
type Store struct {
	mu      sync.Mutex // serializes writers
	columns []string
	snap    atomic.Pointer[[]model.Record]
}

// NewStore wraps records without copying them. The caller must not mutate them
// afterwards.
func NewStore(columns []string, records []model.Record) *Store {
	s := &Store{columns: columns}
	if records == nil {
		records = []model.Record{}
	}
	s.snap.Store(&records)
	return s
}

// Load reads the tabular source at path into a new Store. Failures are logged
// and produce an empty store; the server keeps running and answers 404.
func Load(path string) *Store {
	log := logger.WithFields(logrus.Fields{"component": "store", "path": path})

	t, err := ReadTable(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			abs, _ := filepath.Abs(path)
			log.WithField("abs_path", abs).Warn("Data source not found, starting with an empty dataset")
		} else {
			log.WithError(err).Error("Failed to load data source, starting with an empty dataset")
		}
		return NewStore(nil, nil)
	}

	log.WithField("records", len(t.Records)).Info("Loaded records")
	return NewStore(t.Columns, t.Records)
}

// All returns the current snapshot. The returned records are shared and must
// be treated as read-only.
func (s *Store) All() []model.Record {
	return *s.snap.Load()
}

func (s *Store) Len() int {
	return len(*s.snap.Load())
}

// Columns returns the source header order.
func (s *Store) Columns() []string {
	return s.columns
}

// Update merges fields into the records at the given indices and publishes the
// result as a new snapshot. Indices outside the dataset are ignored. It reports
// whether anything changed.
func (s *Store) Update(updates map[int]model.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := *s.snap.Load()
	next := make([]model.Record, len(cur))
	copy(next, cur)

	changed := false
	for idx, fields := range updates {
		if idx < 0 || idx >= len(next) {
			continue
		}
		rec := next[idx].Clone()
		for k, v := range fields {
			rec[k] = v
		}
		next[idx] = rec
		changed = true
	}
	if changed {
		s.snap.Store(&next)
	}
	return changed
}
