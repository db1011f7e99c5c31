package seed

import (
	"fmt"
	"sort"

	"pressroom/internal/domain/entity"
)

// DefaultCount is the number of rows seeded per entity type when none is given.
const DefaultCount = 10

// Step asks for Count rows of Type.
type Step struct {
	Type  entity.Type `yaml:"type"`
	Count int         `yaml:"count"`
}

// Plan lists the entity types a run seeds.
type Plan struct {
	Steps []Step `yaml:"entities"`
}

// DefaultPlan seeds DefaultCount people, articles and comments.
func DefaultPlan() Plan {
	return UniformPlan(DefaultCount, entity.DependencyOrder()...)
}

// UniformPlan seeds count rows of each of types.
func UniformPlan(count int, types ...entity.Type) Plan {
	steps := make([]Step, 0, len(types))
	for _, t := range types {
		steps = append(steps, Step{Type: t, Count: count})
	}
	return Plan{Steps: steps}
}

// Validate checks every step names a known type at most once with a
// non-negative count.
func (p Plan) Validate() error {
	seen := make(map[entity.Type]bool, len(p.Steps))
	for _, s := range p.Steps {
		if !s.Type.Valid() {
			return &StepError{Type: s.Type, Phase: PhaseValidate, Err: fmt.Errorf("%w: %q", entity.ErrInvalidEntityType, s.Type)}
		}
		if s.Count < 0 {
			return &StepError{Type: s.Type, Phase: PhaseValidate, Err: ErrInvalidCount}
		}
		if seen[s.Type] {
			return &StepError{Type: s.Type, Phase: PhaseValidate, Err: ErrDuplicateStep}
		}
		seen[s.Type] = true
	}
	return nil
}

// Ordered returns the steps sorted so that referenced types come first.
func (p Plan) Ordered() []Step {
	rank := make(map[entity.Type]int)
	for i, t := range entity.DependencyOrder() {
		rank[t] = i
	}
	out := make([]Step, len(p.Steps))
	copy(out, p.Steps)
	sort.SliceStable(out, func(i, j int) bool {
		return rank[out[i].Type] < rank[out[j].Type]
	})
	return out
}
