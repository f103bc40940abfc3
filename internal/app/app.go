// Package app assembles configured adapters behind the service ports.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"relief-dispatch-service/internal/adapters/cache"
	"relief-dispatch-service/internal/adapters/repositories"
	"relief-dispatch-service/internal/config"
	"relief-dispatch-service/internal/domain"
	"relief-dispatch-service/internal/platform/db"
	"relief-dispatch-service/internal/ports"
	"relief-dispatch-service/internal/services"
	"time"

	"github.com/rs/zerolog"
)

// Stores holds the scenario source and plan store chosen by configuration.
type Stores struct {
	Scenarios ports.ScenarioRepository
	Plans     ports.PlanRepository

	closers []func() error
}

// OpenStores opens every backend the storage section asks for and prepares
// schemas. Callers must Close the result.
func OpenStores(ctx context.Context, cfg config.StorageConfig) (_ *Stores, err error) {
	log := zerolog.Ctx(ctx)
	s := &Stores{}
	defer func() {
		if err != nil {
			_ = s.Close()
		}
	}()

	var sqlite *sql.DB
	if cfg.UsesSQLite() {
		sqlite, err = db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, sqlite.Close)
		if err := repositories.InitSchema(sqlite); err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite ready")
	}

	switch cfg.Scenarios {
	case config.ScenariosSQLite:
		s.Scenarios = repositories.NewSqliteScenarioRepository(sqlite)
	default:
		s.Scenarios = repositories.NewJSONScenarioRepository(cfg.ScenariosDir)
	}

	switch cfg.Plans {
	case config.PlansSQLite:
		s.Plans = repositories.NewSqlitePlanRepository(sqlite)
	case config.PlansPostgres:
		pg, err := db.Open(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pg.Close)
		if err := repositories.InitPostgresSchema(pg); err != nil {
			return nil, err
		}
		s.Plans = repositories.NewSQLPlanRepository(pg)
	case config.PlansRedis:
		rdb, err := repositories.NewRedisPlanRepository(cfg.RedisURL, time.Duration(cfg.PlanTTLSeconds)*time.Second)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, rdb.Close)
		if err := rdb.Ping(ctx); err != nil {
			return nil, fmt.Errorf("open stores: redis ping: %w", err)
		}
		s.Plans = rdb
	default:
		s.Plans = repositories.NewMemoryPlanRepository()
	}

	log.Info().Str("scenarios", cfg.Scenarios).Str("plans", cfg.Plans).Msg("stores opened")
	return s, nil
}

func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	s.closers = nil
	return errors.Join(errs...)
}

// NewPlanner builds a planner whose path searches are memoised per plan.
func NewPlanner(cfg config.PlannerConfig, stores *Stores, recorder ports.DispatchRecorder) *services.Planner {
	p := &services.Planner{
		NewPathFinder: func(g *domain.Graph) ports.PathFinder {
			return cache.NewPathCache(services.NewGraphPathFinder(g))
		},
		WarmPaths:     cfg.WarmPaths,
		WarmWorkers:   cfg.WarmWorkers,
		VehiclePrefix: cfg.VehicleLabelPrefix,
	}
	if stores != nil {
		p.Scenarios = stores.Scenarios
		p.Plans = stores.Plans
	}
	if recorder != nil {
		p.Recorder = recorder
	}
	return p
}
