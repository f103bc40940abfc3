package repositories

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"relief-dispatch-service/internal/domain"
	"sort"
	"strings"
)

// Scenario files are "<name>.json" documents in a single directory.
type JSONScenarioRepository struct {
	Dir string
}

func NewJSONScenarioRepository(dir string) *JSONScenarioRepository {
	return &JSONScenarioRepository{Dir: dir}
}

// Return every scenario in the directory, ordered by name.
func (r *JSONScenarioRepository) ListScenarios(ctx context.Context) ([]domain.ScenarioInfo, error) {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: read dir %q: %w", r.Dir, err)
	}

	out := make([]domain.ScenarioInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("list scenarios: %w", err)
		}

		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		s, err := LoadScenarioFile(filepath.Join(r.Dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("list scenarios: %w", err)
		}
		out = append(out, domain.ScenarioInfo{Name: name, Locations: len(s.Locations), Roads: len(s.Roads)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *JSONScenarioRepository) GetScenario(ctx context.Context, name string) (*domain.Scenario, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("get scenario %q: %w", name, domain.ErrScenarioNotFound)
	}

	s, err := LoadScenarioFile(filepath.Join(r.Dir, name+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("get scenario %q: %w", name, domain.ErrScenarioNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get scenario %q: %w", name, err)
	}
	return s, nil
}

// LoadScenarioFile reads one scenario document. Missing required fields
// are rejected; everything else is left to Validate.
func LoadScenarioFile(path string) (*domain.Scenario, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: read %q: %w", path, err)
	}

	s, err := domain.DecodeScenario(bytes)
	if err != nil {
		return nil, fmt.Errorf("load scenario: parse %q: %w", path, err)
	}
	return s, nil
}
