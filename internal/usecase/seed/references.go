package seed

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"pressroom/internal/domain/entity"
	"pressroom/internal/repository"
)

// ReferenceMode selects how foreign-key columns are filled.
type ReferenceMode string

const (
	// ReferencesRandom fills reference columns with a random digit 0-9 and
	// does not check that the referenced row exists.
	ReferencesRandom ReferenceMode = "random"

	// ReferencesLinked fills reference columns with ids that exist in storage.
	ReferencesLinked ReferenceMode = "linked"
)

// ParseReferenceMode resolves a mode name. The empty string means ReferencesRandom.
func ParseReferenceMode(s string) (ReferenceMode, error) {
	switch ReferenceMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ReferencesRandom:
		return ReferencesRandom, nil
	case ReferencesLinked:
		return ReferencesLinked, nil
	}
	return "", fmt.Errorf("unknown reference mode %q", s)
}

// randomDigits picks a digit 0-9 for every reference.
type randomDigits struct {
	src TextSource
}

func (r randomDigits) Pick(entity.Type) (int64, error) {
	return int64(r.src.IntRange(0, 9)), nil
}

// linkedPool picks among ids known to exist for the referenced type.
// Ids inserted during a run are remembered; truncated types start over empty.
type linkedPool struct {
	mu  sync.Mutex
	src TextSource
	ids map[entity.Type][]int64
}

func newLinkedPool(src TextSource) *linkedPool {
	return &linkedPool{src: src, ids: make(map[entity.Type][]int64)}
}

func (p *linkedPool) Pick(t entity.Type) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ids := p.ids[t]
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrMissingReferences, t)
	}
	return ids[p.src.IntRange(0, len(ids)-1)], nil
}

func (p *linkedPool) remember(t entity.Type, id int64) {
	p.mu.Lock()
	p.ids[t] = append(p.ids[t], id)
	p.mu.Unlock()
}

// reset tracks t with no ids, so preload will not consult storage for it.
func (p *linkedPool) reset(t entity.Type) {
	p.mu.Lock()
	p.ids[t] = []int64{}
	p.mu.Unlock()
}

func (p *linkedPool) size(t entity.Type) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ids[t])
}

func (p *linkedPool) has(t entity.Type) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.ids[t]
	return ok
}

// preload loads the stored ids of t unless the pool already tracks it.
// Stores that cannot list ids leave the pool unchanged.
func (p *linkedPool) preload(ctx context.Context, store any, t entity.Type) error {
	if p.has(t) {
		return nil
	}
	lister, ok := store.(repository.IDLister)
	if !ok {
		return nil
	}
	ids, err := lister.IDs(ctx, t)
	if err != nil {
		return fmt.Errorf("list %s ids: %w", t, err)
	}
	p.mu.Lock()
	p.ids[t] = ids
	p.mu.Unlock()
	return nil
}

// ReferencedTypes returns the types whose ids a record of t stores, in the order its factory picks them.
func ReferencedTypes(t entity.Type) []entity.Type {
	switch t {
	case entity.TypeArticle:
		return []entity.Type{entity.TypePeople}
	case entity.TypeComment:
		return []entity.Type{entity.TypeArticle, entity.TypePeople}
	}
	return nil
}
