package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"relief-dispatch-service/internal/domain"
	"strings"
	"time"
)

// SQLite-backed plan store. Each plan is kept as one JSON document.
type SqlitePlanRepository struct {
	DB *sql.DB
}

func NewSqlitePlanRepository(db *sql.DB) *SqlitePlanRepository {
	return &SqlitePlanRepository{DB: db}
}

func (s *SqlitePlanRepository) SavePlan(ctx context.Context, plan *domain.PlanRecord) error {
	if s.DB == nil {
		return errors.New("plan store: db is nil")
	}
	if plan == nil || strings.TrimSpace(plan.ID) == "" {
		return errors.New("insert plan: plan id must not be empty")
	}

	record, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("insert plan %s: encode: %w", plan.ID, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO plans (
		plan_id,
		scenario,
		created_at,
		complete,
		record
	)
	VALUES (?, ?, ?, ?, ?);
	`, plan.ID, plan.Scenario, plan.CreatedAt.UTC().Format(time.RFC3339Nano), plan.Report.Complete, string(record))
	if err != nil {
		return fmt.Errorf("insert plan %s: %w", plan.ID, err)
	}

	return nil
}

func (s *SqlitePlanRepository) GetPlan(ctx context.Context, id string) (*domain.PlanRecord, error) {
	if s.DB == nil {
		return nil, errors.New("plan store: db is nil")
	}

	var record string
	err := s.DB.QueryRowContext(ctx, `SELECT record FROM plans WHERE plan_id = ?;`, id).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan %s: %w", id, domain.ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: query plans table: %w", id, err)
	}

	var plan domain.PlanRecord
	if err := json.Unmarshal([]byte(record), &plan); err != nil {
		return nil, fmt.Errorf("get plan %s: decode: %w", id, err)
	}
	return &plan, nil
}
