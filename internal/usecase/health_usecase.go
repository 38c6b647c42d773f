package usecase

import (
	"context"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Status          string    `json:"status"`
	DatabaseHealthy bool      `json:"database_healthy"`
	RedisHealthy    bool      `json:"redis_healthy"`
	RedisEnabled    bool      `json:"redis_enabled"`
	ServerTime      time.Time `json:"server_time"`
}

type HealthUsecase interface {
	GetStatus(ctx context.Context) HealthStatus
}

type Health struct {
	db    Pinger
	redis Pinger
	now   func() time.Time
}

// NewHealthUsecase accepts a nil redis when caching is disabled.
func NewHealthUsecase(db Pinger, redis Pinger) *Health {
	return &Health{db: db, redis: redis, now: time.Now}
}

// GetStatus reports "ok" when the database answers. Redis is optional, so its
// failure only degrades the status.
func (u *Health) GetStatus(ctx context.Context) HealthStatus {
	st := HealthStatus{ServerTime: u.now().UTC()}

	if u.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := u.db.Ping(pingCtx)
		cancel()
		st.DatabaseHealthy = err == nil
	}

	if u.redis != nil {
		st.RedisEnabled = true
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := u.redis.Ping(pingCtx)
		cancel()
		st.RedisHealthy = err == nil
	}

	switch {
	case !st.DatabaseHealthy:
		st.Status = "unavailable"
	case st.RedisEnabled && !st.RedisHealthy:
		st.Status = "degraded"
	default:
		st.Status = "ok"
	}
	return st
}
