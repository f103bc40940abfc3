package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"relief-dispatch-service/internal/domain"
	"relief-dispatch-service/internal/platform/obs"
)

// SQLite-backed implementation of the ScenarioRepository port.
type SqliteScenarioRepository struct{ DB *sql.DB }

func NewSqliteScenarioRepository(db *sql.DB) *SqliteScenarioRepository {
	return &SqliteScenarioRepository{DB: db}
}

// Return all stored scenarios with their record counts.
func (s *SqliteScenarioRepository) ListScenarios(ctx context.Context) ([]domain.ScenarioInfo, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite scenario repository: DB is nil")
	}

	query := `
	SELECT
		s.name,
		(SELECT COUNT(*) FROM locations l WHERE l.scenario = s.name),
		(SELECT COUNT(*) FROM roads r WHERE r.scenario = s.name)
	FROM scenarios s
	ORDER BY s.name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: query scenarios table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ScenarioInfo, 0, 8)
	for rows.Next() {
		var info domain.ScenarioInfo
		if err := rows.Scan(&info.Name, &info.Locations, &info.Roads); err != nil {
			return nil, fmt.Errorf("list scenarios: scan row: %w", err)
		}
		out = append(out, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scenarios: row iteration: %w", err)
	}

	return out, nil
}

// Load one scenario with locations ordered by id and roads in insertion order.
func (s *SqliteScenarioRepository) GetScenario(ctx context.Context, name string) (_ *domain.Scenario, err error) {
	defer obs.Time(ctx, "scenario.sqlite.GetScenario")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite scenario repository: DB is nil")
	}

	var (
		sc    domain.Scenario
		depot sql.NullInt64
	)
	err = s.DB.QueryRowContext(ctx,
		`SELECT title, trucks, truck_capacity, depot_id FROM scenarios WHERE name = ?;`, name,
	).Scan(&sc.Meta.Name, &sc.Meta.Trucks, &sc.Meta.TruckCapacity, &depot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get scenario %q: %w", name, domain.ErrScenarioNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get scenario %q: query scenarios table: %w", name, err)
	}
	if depot.Valid {
		id := int(depot.Int64)
		sc.Meta.DepotID = &id
	}

	locRows, err := s.DB.QueryContext(ctx, `
	SELECT
		id,
		name,
		latitude,
		longitude,
		demand
	FROM locations
	WHERE scenario = ?
	ORDER BY id;
	`, name)
	if err != nil {
		return nil, fmt.Errorf("get scenario %q: query locations table: %w", name, err)
	}
	defer locRows.Close()

	for locRows.Next() {
		var l domain.Location
		if err := locRows.Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.Demand); err != nil {
			return nil, fmt.Errorf("get scenario %q: scan location: %w", name, err)
		}
		sc.Locations = append(sc.Locations, l)
	}
	if err := locRows.Err(); err != nil {
		return nil, fmt.Errorf("get scenario %q: location iteration: %w", name, err)
	}

	roadRows, err := s.DB.QueryContext(ctx, `
	SELECT
		from_id,
		to_id,
		travel_time_minutes,
		blocked
	FROM roads
	WHERE scenario = ?
	ORDER BY seq;
	`, name)
	if err != nil {
		return nil, fmt.Errorf("get scenario %q: query roads table: %w", name, err)
	}
	defer roadRows.Close()

	for roadRows.Next() {
		var r domain.Road
		if err := roadRows.Scan(&r.From, &r.To, &r.TravelTime, &r.Blocked); err != nil {
			return nil, fmt.Errorf("get scenario %q: scan road: %w", name, err)
		}
		sc.Roads = append(sc.Roads, r)
	}
	if err := roadRows.Err(); err != nil {
		return nil, fmt.Errorf("get scenario %q: road iteration: %w", name, err)
	}

	return &sc, nil
}
