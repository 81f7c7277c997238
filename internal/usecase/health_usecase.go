package usecase

import (
	"context"
	"interview-experience-backend/pkg/logger"
	"time"
)

// Pinger is implemented by both store connections.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	store Pinger
}

func NewHealthUsecase(store Pinger) HealthUsecase {
	return &healthUsecase{store: store}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	// The cause may name hosts or credentials, so it is only logged.
	if err := u.store.Ping(ctx); err != nil {
		logger.Log.Error("Health check failed", "error", err)
		return map[string]string{"status": "degraded", "database": "unreachable"}, false
	}
	return map[string]string{"status": "ok", "database": "ok"}, true
}
