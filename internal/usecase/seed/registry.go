package seed

import (
	"fmt"

	"pressroom/internal/domain/entity"
)

// TextSource produces the random values factories are built from.
type TextSource interface {
	IntRange(min, max int) int
	FirstNameMale() string
	LastName() string
	Title() string
	Sentence() string
	Paragraph() string
}

// readier is implemented by sources that can report they are not initialized.
type readier interface {
	Ready() error
}

type validator interface {
	Validate() error
}

// ReferencePicker supplies the id stored in a foreign-key column.
type ReferencePicker interface {
	Pick(t entity.Type) (int64, error)
}

// Factory builds one randomized record.
type Factory func(src TextSource, refs ReferencePicker) (entity.Record, error)

// Registry maps entity types to their factories. It is built once at startup
// and owned by the Service; there is no package-level registry.
type Registry struct {
	src       TextSource
	factories map[entity.Type]Factory
}

// NewRegistry returns an empty registry drawing values from src.
func NewRegistry(src TextSource) *Registry {
	return &Registry{
		src:       src,
		factories: make(map[entity.Type]Factory, 3),
	}
}

// NewDefaultRegistry returns a registry with the people, article and comment factories.
func NewDefaultRegistry(src TextSource) *Registry {
	r := NewRegistry(src)
	r.factories[entity.TypePeople] = PeopleFactory
	r.factories[entity.TypeArticle] = ArticleFactory
	r.factories[entity.TypeComment] = CommentFactory
	return r
}

// Register binds f to t, replacing any previous factory.
func (r *Registry) Register(t entity.Type, f Factory) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", entity.ErrInvalidEntityType, t)
	}
	if f == nil {
		return fmt.Errorf("register %s: nil factory", t)
	}
	r.factories[t] = f
	return nil
}

// Has reports whether a factory is registered for t.
func (r *Registry) Has(t entity.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// Types returns the registered types in dependency order.
func (r *Registry) Types() []entity.Type {
	out := make([]entity.Type, 0, len(r.factories))
	for _, t := range entity.DependencyOrder() {
		if r.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// Source returns the text source factories draw from.
func (r *Registry) Source() TextSource { return r.src }

// Generate produces one record of type t. A nil refs picks random digits.
func (r *Registry) Generate(t entity.Type, refs ReferencePicker) (entity.Record, error) {
	f, ok := r.factories[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidEntityType, t)
	}
	if err := r.ready(); err != nil {
		return nil, err
	}
	if refs == nil {
		refs = randomDigits{src: r.src}
	}

	rec, err := f(r.src, refs)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", t, err)
	}
	if v, ok := rec.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", entity.ErrGeneratorUnavailable, t, err)
		}
	}
	return rec, nil
}

func (r *Registry) ready() error {
	if r.src == nil {
		return entity.ErrGeneratorUnavailable
	}
	if rd, ok := r.src.(readier); ok {
		if err := rd.Ready(); err != nil {
			return fmt.Errorf("%w: %w", entity.ErrGeneratorUnavailable, err)
		}
	}
	return nil
}
