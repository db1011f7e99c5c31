// Package fakedata adapts gofakeit to the text source consumed by the seed factories.
package fakedata

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"pressroom/internal/domain/entity"
)

// Generator produces random names, numbers and lorem text.
// A Generator built with the same non-zero seed yields the same sequence.
type Generator struct {
	faker *gofakeit.Faker
}

// New returns a Generator seeded with seed. A zero seed draws a random one.
func New(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Ready reports ErrGeneratorUnavailable when the generator has no randomness source.
func (g *Generator) Ready() error {
	if g == nil || g.faker == nil || g.faker.Rand == nil {
		return entity.ErrGeneratorUnavailable
	}
	return nil
}

// IntRange returns a random integer in [min, max].
func (g *Generator) IntRange(min, max int) int {
	return g.faker.IntRange(min, max)
}

// FirstNameMale returns a random male first name.
func (g *Generator) FirstNameMale() string {
	return g.faker.RandomString(maleFirstNames)
}

// LastName returns a random surname.
func (g *Generator) LastName() string {
	return g.faker.LastName()
}

// Title returns a short headline of three to six words without a trailing period.
func (g *Generator) Title() string {
	s := g.faker.Sentence(g.faker.IntRange(3, 6))
	return strings.TrimSuffix(s, ".")
}

// Sentence returns a single sentence of six to twelve words.
func (g *Generator) Sentence() string {
	return g.faker.Sentence(g.faker.IntRange(6, 12))
}

// Paragraph returns one paragraph of three sentences.
func (g *Generator) Paragraph() string {
	return g.faker.Paragraph(1, 3, g.faker.IntRange(6, 12), " ")
}
