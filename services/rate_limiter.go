package services

import (
	"context"
	"log"
	"sync"
	"time"

	"moviedetectives/models"

	"github.com/redis/go-redis/v9"
)

// CounterStore persists the rate counter across restarts. Load is called
// once at construction, Save on every reset and increment.
type CounterStore interface {
	Load(ctx context.Context) (count int, lastReset time.Time, err error)
	Save(ctx context.Context, count int, lastReset time.Time) error
}

// RateLimiter enforces the daily quiz ceiling. The counter resets exactly
// once when the wall-clock date advances past the last reset date. There is
// no rollback: a session start that is later abandoned still counts.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	count     int
	lastReset time.Time
	store     CounterStore
	now       func() time.Time
}

func NewRateLimiter(limit int, store CounterStore) *RateLimiter {
	rl := &RateLimiter{
		limit:     limit,
		lastReset: time.Now(),
		store:     store,
		now:       time.Now,
	}

	if store != nil {
		count, lastReset, err := store.Load(context.Background())
		if err != nil {
			log.Printf("Failed to load rate counter, starting fresh: %v", err)
		} else if !lastReset.IsZero() {
			rl.count = count
			rl.lastReset = lastReset
		}
	}

	return rl
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CheckAndIncrement reports whether another quiz session may start and, if
// so, counts it. The date check and the increment run under one lock so two
// concurrent requests can never both slip past the ceiling.
func (rl *RateLimiter) CheckAndIncrement(ctx context.Context) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if !sameDate(now, rl.lastReset) && now.After(rl.lastReset) {
		rl.count = 0
		rl.lastReset = now
		rl.persist(ctx)
	}

	if rl.count >= rl.limit {
		return false
	}

	rl.count++
	rl.persist(ctx)
	return true
}

// persist is called with the lock held. Store failures are logged, not
// fatal: the in-memory counter remains the authority for this process.
func (rl *RateLimiter) persist(ctx context.Context) {
	if rl.store == nil {
		return
	}
	if err := rl.store.Save(ctx, rl.count, rl.lastReset); err != nil {
		log.Printf("Failed to persist rate counter: %v", err)
	}
}

// Status returns the read-only limit view.
func (rl *RateLimiter) Status() models.LimitResponse {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	return models.LimitResponse{
		DailyLimit:    rl.limit,
		QuizCount:     rl.count,
		LastResetTime: rl.lastReset,
		LastResetDate: rl.lastReset.Format("2006-01-02"),
		CurrentDate:   now.Format("2006-01-02"),
	}
}

const (
	rateCountKey     = "quiz:rate:count"
	rateLastResetKey = "quiz:rate:last_reset"
)

// RedisCounterStore keeps the rate counter in redis so the quota survives
// process restarts.
type RedisCounterStore struct {
	client *redis.Client
}

func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func (s *RedisCounterStore) Load(ctx context.Context) (int, time.Time, error) {
	count, err := s.client.Get(ctx, rateCountKey).Int()
	if err == redis.Nil {
		return 0, time.Time{}, nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}

	lastResetStr, err := s.client.Get(ctx, rateLastResetKey).Result()
	if err == redis.Nil {
		return 0, time.Time{}, nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}

	lastReset, err := time.Parse(time.RFC3339, lastResetStr)
	if err != nil {
		return 0, time.Time{}, err
	}

	return count, lastReset, nil
}

func (s *RedisCounterStore) Save(ctx context.Context, count int, lastReset time.Time) error {
	pipe := s.client.Pipeline()
	pipe.Set(ctx, rateCountKey, count, 0)
	pipe.Set(ctx, rateLastResetKey, lastReset.Format(time.RFC3339), 0)
	_, err := pipe.Exec(ctx)
	return err
}
