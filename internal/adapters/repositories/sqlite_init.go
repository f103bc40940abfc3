package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"relief-dispatch-service/internal/domain"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createScenariosQuery := `
	CREATE TABLE IF NOT EXISTS scenarios (
		name TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		trucks INTEGER NOT NULL,
		truck_capacity INTEGER NOT NULL,
		depot_id INTEGER
	);
	`

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		scenario TEXT NOT NULL REFERENCES scenarios(name) ON DELETE CASCADE,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		demand INTEGER NOT NULL,
		PRIMARY KEY (scenario, id)
	);
	`

	createRoadsQuery := `
	CREATE TABLE IF NOT EXISTS roads (
		scenario TEXT NOT NULL REFERENCES scenarios(name) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		from_id INTEGER NOT NULL,
		to_id INTEGER NOT NULL,
		travel_time_minutes REAL NOT NULL,
		blocked INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (scenario, seq)
	);
	`

	createPlansQuery := `
	CREATE TABLE IF NOT EXISTS plans (
		plan_id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		created_at TEXT NOT NULL,
		complete INTEGER NOT NULL,
		record TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_plans_scenario_created
	ON plans(scenario, created_at);
	`

	return execSchema(db, createScenariosQuery, createLocationsQuery, createRoadsQuery, createPlansQuery, createIndexQuery)
}

// Initialize the Postgres plan store schema.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createPlansQuery := `
	CREATE TABLE IF NOT EXISTS plans (
		plan_id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		complete BOOLEAN NOT NULL,
		record JSONB NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_plans_scenario_created
	ON plans(scenario, created_at);
	`

	return execSchema(db, createPlansQuery, createIndexQuery)
}

func execSchema(db *sql.DB, statements ...string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with one scenario read from a JSON file. An existing
// scenario with the same name is replaced.
func SeedFromJSON(db *sql.DB, name string, jsonPath string) error {
	s, err := LoadScenarioFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed scenario: %w", err)
	}
	return SaveScenario(db, name, s)
}

// SaveScenario validates and stores a scenario under name.
func SaveScenario(db *sql.DB, name string, s *domain.Scenario) error {
	if db == nil {
		return errors.New("save scenario: DB is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("save scenario: name cannot be empty")
	}

	if err := s.Validate(); err != nil {
		return fmt.Errorf("save scenario %q: %w", name, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("save scenario: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		`DELETE FROM roads WHERE scenario = ?;`,
		`DELETE FROM locations WHERE scenario = ?;`,
		`DELETE FROM scenarios WHERE name = ?;`,
	} {
		if _, err := tx.Exec(q, name); err != nil {
			return fmt.Errorf("save scenario: clear %q: %w", name, err)
		}
	}

	var depot any
	if s.Meta.DepotID != nil {
		depot = *s.Meta.DepotID
	}
	if _, err := tx.Exec(
		`INSERT INTO scenarios (name, title, trucks, truck_capacity, depot_id) VALUES (?, ?, ?, ?, ?);`,
		name, s.Meta.Name, s.Meta.Trucks, s.Meta.TruckCapacity, depot,
	); err != nil {
		return fmt.Errorf("save scenario: insert scenario %q: %w", name, err)
	}

	locStmt, err := tx.Prepare(`
	INSERT INTO locations (
		scenario,
		id,
		name,
		latitude,
		longitude,
		demand
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save scenario: prepare location insert: %w", err)
	}
	defer locStmt.Close()

	for _, l := range s.Locations {
		if _, err := locStmt.Exec(name, l.ID, l.Name, l.Latitude, l.Longitude, l.Demand); err != nil {
			return fmt.Errorf("save scenario: insert location id=%d: %w", l.ID, err)
		}
	}

	roadStmt, err := tx.Prepare(`
	INSERT INTO roads (
		scenario,
		seq,
		from_id,
		to_id,
		travel_time_minutes,
		blocked
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save scenario: prepare road insert: %w", err)
	}
	defer roadStmt.Close()

	for i, r := range s.Roads {
		if _, err := roadStmt.Exec(name, i, r.From, r.To, r.TravelTime, r.Blocked); err != nil {
			return fmt.Errorf("save scenario: insert road #%d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save scenario: commit tx: %w", err)
	}

	return nil
}
