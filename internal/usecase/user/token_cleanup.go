package user

import (
	"context"
	"time"

	domainUser "hamrah-bazaar/internal/domain/user"
	"hamrah-bazaar/internal/logger"

	"go.uber.org/zap"
)

// TokenCleanup periodically deletes expired refresh tokens so the table
// does not grow without bound.
type TokenCleanup struct {
	refreshTokenRepo domainUser.RefreshTokenRepository
	interval         time.Duration
}

func NewTokenCleanup(refreshTokenRepo domainUser.RefreshTokenRepository, interval time.Duration) *TokenCleanup {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TokenCleanup{
		refreshTokenRepo: refreshTokenRepo,
		interval:         interval,
	}
}

// Run blocks until ctx is cancelled, sweeping on every tick.
func (c *TokenCleanup) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token cleanup stopped", zap.String("event", "token_cleanup_stopped"))
			return
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

func (c *TokenCleanup) sweep(ctx context.Context) {
	if err := c.refreshTokenRepo.DeleteExpired(ctx, 0); err != nil {
		logger.Error("Failed to delete expired refresh tokens", zap.Error(err))
		return
	}
	logger.Debug("Expired refresh tokens swept", zap.String("event", "token_cleanup_sweep"))
}
