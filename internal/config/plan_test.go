package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/domain/entity"
	"pressroom/internal/usecase/seed"
)

func TestParsePlan(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    seed.Plan
		wantErr error
	}{
		{
			name: "full plan",
			yaml: `
entities:
  - type: people
    count: 5
  - type: article
    count: 3
  - type: Comments
    count: 0
`,
			want: seed.Plan{Steps: []seed.Step{
				{Type: entity.TypePeople, Count: 5},
				{Type: entity.TypeArticle, Count: 3},
				{Type: entity.TypeComment, Count: 0},
			}},
		},
		{
			name: "missing count uses default",
			yaml: "entities:\n  - type: people\n",
			want: seed.Plan{Steps: []seed.Step{{Type: entity.TypePeople, Count: seed.DefaultCount}}},
		},
		{
			name:    "unknown type",
			yaml:    "entities:\n  - type: users\n",
			wantErr: entity.ErrInvalidEntityType,
		},
		{
			name:    "duplicate type",
			yaml:    "entities:\n  - type: people\n  - type: person\n",
			wantErr: seed.ErrDuplicateStep,
		},
		{
			name:    "negative count",
			yaml:    "entities:\n  - type: people\n    count: -2\n",
			wantErr: seed.ErrInvalidCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePlan([]byte(tt.yaml))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePlan_Rejects(t *testing.T) {
	for name, doc := range map[string]string{
		"empty document": "",
		"no entities":    "entities: []\n",
		"unknown field":  "entities:\n  - type: people\n    amount: 3\n",
		"not yaml":       "entities: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePlan([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadPlanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entities:\n  - type: comments\n    count: 2\n  - type: people\n    count: 1\n"), 0o600))

	plan, err := LoadPlanFile(path)
	require.NoError(t, err)
	assert.Equal(t, []seed.Step{
		{Type: entity.TypePeople, Count: 1},
		{Type: entity.TypeComment, Count: 2},
	}, plan.Ordered())

	cfg := SeedConfig{PlanFile: path}
	fromCfg, err := cfg.Plan()
	require.NoError(t, err)
	assert.Equal(t, plan, fromCfg)

	_, err = LoadPlanFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
