package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"relief-dispatch-service/internal/domain"
	"strings"
	"sync"
)

// MemoryPlanRepository holds plans for the life of the process. Records are
// kept encoded, like the other stores, so callers never share maps or slices
// with what was saved.
type MemoryPlanRepository struct {
	mu    sync.RWMutex
	plans map[string][]byte
}

func NewMemoryPlanRepository() *MemoryPlanRepository {
	return &MemoryPlanRepository{plans: make(map[string][]byte)}
}

func (m *MemoryPlanRepository) SavePlan(_ context.Context, plan *domain.PlanRecord) error {
	if plan == nil || strings.TrimSpace(plan.ID) == "" {
		return errors.New("insert plan: plan id must not be empty")
	}
	record, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("insert plan %s: encode: %w", plan.ID, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[plan.ID] = record
	return nil
}

func (m *MemoryPlanRepository) GetPlan(_ context.Context, id string) (*domain.PlanRecord, error) {
	m.mu.RLock()
	record, ok := m.plans[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("get plan %s: %w", id, domain.ErrPlanNotFound)
	}

	var plan domain.PlanRecord
	if err := json.Unmarshal(record, &plan); err != nil {
		return nil, fmt.Errorf("get plan %s: decode: %w", id, err)
	}
	return &plan, nil
}
