package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"relief-dispatch-service/internal/domain"
	"relief-dispatch-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const planKeyPrefix = "plan:"

// RedisPlanRepository keeps plans as JSON strings with an optional expiry.
type RedisPlanRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisPlanRepository connects using a redis:// URL. A zero ttl keeps plans forever.
func NewRedisPlanRepository(url string, ttl time.Duration) (*RedisPlanRepository, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis plan store: parse url: %w", err)
	}
	return NewRedisPlanRepositoryWithClient(redis.NewClient(opt), ttl), nil
}

func NewRedisPlanRepositoryWithClient(rdb *redis.Client, ttl time.Duration) *RedisPlanRepository {
	return &RedisPlanRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisPlanRepository) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisPlanRepository) Close() error { return r.rdb.Close() }

func (r *RedisPlanRepository) SavePlan(ctx context.Context, plan *domain.PlanRecord) (err error) {
	defer obs.Time(ctx, "plan.redis.SavePlan")(&err)

	if plan == nil || strings.TrimSpace(plan.ID) == "" {
		return errors.New("insert plan: plan id must not be empty")
	}
	record, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("insert plan %s: encode: %w", plan.ID, err)
	}
	if err := r.rdb.Set(ctx, planKeyPrefix+plan.ID, record, r.ttl).Err(); err != nil {
		return fmt.Errorf("insert plan %s: %w", plan.ID, err)
	}
	return nil
}

func (r *RedisPlanRepository) GetPlan(ctx context.Context, id string) (_ *domain.PlanRecord, err error) {
	defer obs.Time(ctx, "plan.redis.GetPlan")(&err)

	record, err := r.rdb.Get(ctx, planKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get plan %s: %w", id, domain.ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: %w", id, err)
	}

	var plan domain.PlanRecord
	if err := json.Unmarshal(record, &plan); err != nil {
		return nil, fmt.Errorf("get plan %s: decode: %w", id, err)
	}
	return &plan, nil
}
