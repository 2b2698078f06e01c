package workers

import (
	"context"
	"time"

	"github.com/baliestri/calliope/internal/logger"
	"github.com/baliestri/calliope/internal/service"
	"github.com/baliestri/calliope/internal/store"
)

// refreshTokenSweeper periodically clears refresh tokens whose expiry has
// passed, so stale sessions do not linger in storage between renewals.
type refreshTokenSweeper struct {
	users    store.UserRepository
	interval time.Duration
	clock    service.Clock

	stop chan struct{}
	done chan struct{}

	logger *logger.Logger
}

func newRefreshTokenSweeper(users store.UserRepository, interval time.Duration, clock service.Clock, log *logger.Logger) *refreshTokenSweeper {
	return &refreshTokenSweeper{
		users:    users,
		interval: interval,
		clock:    clock,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		logger:   log,
	}
}

func (s *refreshTokenSweeper) Run() {
	go s.loop()
}

func (s *refreshTokenSweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *refreshTokenSweeper) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *refreshTokenSweeper) sweep() {
	cleared, err := s.users.ClearExpiredRefreshTokens(context.Background(), s.clock.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("sweeping expired refresh tokens")
		return
	}

	if cleared > 0 {
		s.logger.Info().Int64("cleared", cleared).Msg("expired refresh tokens removed")
	}
}
