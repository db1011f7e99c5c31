package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"pressroom/internal/domain/entity"
	"pressroom/internal/usecase/seed"
)

type planFile struct {
	Entities []planEntry `yaml:"entities"`
}

type planEntry struct {
	Type  string `yaml:"type"`
	Count *int   `yaml:"count"`
}

// LoadPlanFile reads a YAML seed plan:
//
//	entities:
//	  - type: people
//	    count: 10
//	  - type: articles
//
// Types accept singular and plural names. A missing count means seed.DefaultCount.
func LoadPlanFile(path string) (seed.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return seed.Plan{}, fmt.Errorf("read plan file: %w", err)
	}
	plan, err := ParsePlan(data)
	if err != nil {
		return seed.Plan{}, fmt.Errorf("plan file %s: %w", path, err)
	}
	return plan, nil
}

// ParsePlan decodes and validates a YAML seed plan.
func ParsePlan(data []byte) (seed.Plan, error) {
	var pf planFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
		return seed.Plan{}, fmt.Errorf("decode yaml: %w", err)
	}
	if len(pf.Entities) == 0 {
		return seed.Plan{}, errors.New("plan lists no entities")
	}

	plan := seed.Plan{Steps: make([]seed.Step, 0, len(pf.Entities))}
	for _, e := range pf.Entities {
		t, err := entity.ParseType(e.Type)
		if err != nil {
			return seed.Plan{}, err
		}
		count := seed.DefaultCount
		if e.Count != nil {
			count = *e.Count
		}
		plan.Steps = append(plan.Steps, seed.Step{Type: t, Count: count})
	}

	if err := plan.Validate(); err != nil {
		return seed.Plan{}, err
	}
	return plan, nil
}
