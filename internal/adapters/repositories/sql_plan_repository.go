package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"relief-dispatch-service/internal/domain"
	"relief-dispatch-service/internal/platform/obs"
	"strings"
)

// SQLPlanRepository is a Postgres-backed plan store (pgx stdlib driver).
type SQLPlanRepository struct {
	DB *sql.DB
}

func NewSQLPlanRepository(db *sql.DB) *SQLPlanRepository {
	return &SQLPlanRepository{DB: db}
}

// Store a plan, replacing any plan with the same id.
func (s *SQLPlanRepository) SavePlan(ctx context.Context, plan *domain.PlanRecord) (err error) {
	defer obs.Time(ctx, "plan.sql.SavePlan")(&err)

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

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert plan: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO plans (plan_id, scenario, created_at, complete, record)
	VALUES ($1, $2, $3, $4, $5::jsonb)
	ON CONFLICT (plan_id) DO UPDATE
	SET scenario = EXCLUDED.scenario,
		created_at = EXCLUDED.created_at,
		complete = EXCLUDED.complete,
		record = EXCLUDED.record;
	`, plan.ID, plan.Scenario, plan.CreatedAt.UTC(), plan.Report.Complete, string(record)); err != nil {
		return fmt.Errorf("insert plan %s: %w", plan.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert plan commit: %w", err)
	}

	return nil
}

func (s *SQLPlanRepository) GetPlan(ctx context.Context, id string) (_ *domain.PlanRecord, err error) {
	defer obs.Time(ctx, "plan.sql.GetPlan")(&err)

	if s.DB == nil {
		return nil, errors.New("plan store: db is nil")
	}

	var record []byte
	err = s.DB.QueryRowContext(ctx, `SELECT record FROM plans WHERE plan_id = $1;`, id).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan %s: %w", id, domain.ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: query plans table: %w", id, err)
	}

	var plan domain.PlanRecord
	if err := json.Unmarshal(record, &plan); err != nil {
		return nil, fmt.Errorf("get plan %s: decode: %w", id, err)
	}
	return &plan, nil
}
