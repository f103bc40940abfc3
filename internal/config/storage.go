package config

import "fmt"

// Scenario sources.
const (
	ScenariosJSON   = "json"
	ScenariosSQLite = "sqlite"
)

// Plan stores.
const (
	PlansMemory   = "memory"
	PlansSQLite   = "sqlite"
	PlansPostgres = "postgres"
	PlansRedis    = "redis"
)

type StorageConfig struct {
	// Scenarios selects where scenarios are read from: "json" or "sqlite".
	Scenarios    string `json:"scenarios"`
	ScenariosDir string `json:"scenarios_dir"`
	SQLitePath   string `json:"sqlite_path"`
	// Plans selects the plan store: "memory", "sqlite", "postgres" or "redis".
	Plans          string `json:"plans"`
	PostgresURL    string `json:"postgres_url"`
	RedisURL       string `json:"redis_url"`
	PlanTTLSeconds int    `json:"plan_ttl_seconds"`
}

func (c *StorageConfig) SetDefaults() {
	if c.Scenarios == "" {
		c.Scenarios = ScenariosJSON
	}
	if c.ScenariosDir == "" {
		c.ScenariosDir = "data/scenarios"
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "data/app.db"
	}
	if c.Plans == "" {
		c.Plans = PlansMemory
	}
}

func (c StorageConfig) Validate() error {
	switch c.Scenarios {
	case ScenariosJSON, ScenariosSQLite:
	default:
		return fmt.Errorf("unknown scenario source %s", c.Scenarios)
	}
	switch c.Plans {
	case PlansMemory, PlansSQLite:
	case PlansPostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("postgres_url is required for the postgres plan store")
		}
	case PlansRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis_url is required for the redis plan store")
		}
	default:
		return fmt.Errorf("unknown plan store %s", c.Plans)
	}
	if c.PlanTTLSeconds < 0 {
		return fmt.Errorf("plan_ttl_seconds must not be negative")
	}
	return nil
}

// UsesSQLite reports whether any store needs the SQLite database.
func (c StorageConfig) UsesSQLite() bool {
	return c.Scenarios == ScenariosSQLite || c.Plans == PlansSQLite
}
