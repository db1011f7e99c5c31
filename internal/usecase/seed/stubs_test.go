package seed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"pressroom/internal/domain/entity"
)

/* ───── text source ───── */

// stubSource cycles through a fixed sequence so generated values are predictable.
type stubSource struct {
	n        int
	title    string
	notReady error
}

func (s *stubSource) IntRange(min, max int) int {
	s.n++
	return min + s.n%(max-min+1)
}

func (s *stubSource) FirstNameMale() string { return "John" }
func (s *stubSource) LastName() string      { return "Smith" }
func (s *stubSource) Sentence() string      { return "A short sentence." }
func (s *stubSource) Paragraph() string     { return "A paragraph. With two sentences." }

func (s *stubSource) Title() string {
	if s.title == "unset" {
		return ""
	}
	if s.title != "" {
		return s.title
	}
	return "Quick brown fox"
}

func (s *stubSource) Ready() error { return s.notReady }

/* ───── store ───── */

// memStore is an in-memory SeedStore. With fk set it rejects dangling
// references on insert and refuses to truncate referenced tables.
type memStore struct {
	mu    sync.Mutex
	fk    bool
	rows  map[entity.Type]map[int64]entity.Record
	seq   map[entity.Type]int64
	calls []string

	truncateErr map[entity.Type]error
	insertErrAt map[entity.Type]int // 1-based insert ordinal that fails
	inserts     map[entity.Type]int
}

func newMemStore(fk bool) *memStore {
	return &memStore{
		fk:          fk,
		rows:        make(map[entity.Type]map[int64]entity.Record),
		seq:         make(map[entity.Type]int64),
		truncateErr: make(map[entity.Type]error),
		insertErrAt: make(map[entity.Type]int),
		inserts:     make(map[entity.Type]int),
	}
}

func (m *memStore) Truncate(_ context.Context, t entity.Type) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "truncate "+t.String())

	if err := m.truncateErr[t]; err != nil {
		return err
	}
	if m.fk && m.referenced(t) {
		return fmt.Errorf("%w: %s is referenced", entity.ErrStorageWriteFailed, t)
	}
	delete(m.rows, t)
	m.seq[t] = 0
	return nil
}

func (m *memStore) Insert(_ context.Context, rec entity.Record) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := rec.EntityType()
	m.calls = append(m.calls, "insert "+t.String())
	m.inserts[t]++

	if at := m.insertErrAt[t]; at > 0 && m.inserts[t] == at {
		return 0, errors.New("connection reset by peer")
	}
	if m.fk {
		if err := m.checkRefs(rec); err != nil {
			return 0, err
		}
	}
	if m.rows[t] == nil {
		m.rows[t] = make(map[int64]entity.Record)
	}
	m.seq[t]++
	m.rows[t][m.seq[t]] = rec
	return m.seq[t], nil
}

func (m *memStore) IDs(_ context.Context, t entity.Type) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.rows[t]))
	for id := range m.rows[t] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *memStore) count(t entity.Type) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows[t])
}

func (m *memStore) records(t entity.Type) []entity.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.rows[t]))
	for id := range m.rows[t] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]entity.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.rows[t][id])
	}
	return out
}

func (m *memStore) callLog() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strings.Join(compact(m.calls), ", ")
}

func (m *memStore) referenced(t entity.Type) bool {
	for _, rec := range m.rows[entity.TypeArticle] {
		if t == entity.TypePeople && m.exists(entity.TypePeople, rec.(entity.Article).AuthorID) {
			return true
		}
	}
	for _, rec := range m.rows[entity.TypeComment] {
		c := rec.(entity.Comment)
		if t == entity.TypePeople && m.exists(entity.TypePeople, c.AuthorID) {
			return true
		}
		if t == entity.TypeArticle && m.exists(entity.TypeArticle, c.ArticleID) {
			return true
		}
	}
	return false
}

func (m *memStore) checkRefs(rec entity.Record) error {
	switch r := rec.(type) {
	case entity.Article:
		if !m.exists(entity.TypePeople, r.AuthorID) {
			return fmt.Errorf("%w: people %d does not exist", entity.ErrStorageWriteFailed, r.AuthorID)
		}
	case entity.Comment:
		if !m.exists(entity.TypeArticle, r.ArticleID) {
			return fmt.Errorf("%w: articles %d does not exist", entity.ErrStorageWriteFailed, r.ArticleID)
		}
		if !m.exists(entity.TypePeople, r.AuthorID) {
			return fmt.Errorf("%w: people %d does not exist", entity.ErrStorageWriteFailed, r.AuthorID)
		}
	}
	return nil
}

func (m *memStore) exists(t entity.Type, id int64) bool {
	_, ok := m.rows[t][id]
	return ok
}

// compact collapses runs of identical calls into "call xN".
func compact(calls []string) []string {
	var out []string
	for i := 0; i < len(calls); {
		j := i
		for j < len(calls) && calls[j] == calls[i] {
			j++
		}
		if n := j - i; n > 1 {
			out = append(out, fmt.Sprintf("%s x%d", calls[i], n))
		} else {
			out = append(out, calls[i])
		}
		i = j
	}
	return out
}

// noListStore hides IDs so the service cannot preload references.
type noListStore struct{ m *memStore }

func (s noListStore) Truncate(ctx context.Context, t entity.Type) error { return s.m.Truncate(ctx, t) }
func (s noListStore) Insert(ctx context.Context, rec entity.Record) (int64, error) {
	return s.m.Insert(ctx, rec)
}
