package workers

import (
	"github.com/baliestri/calliope/internal/config"
	"github.com/baliestri/calliope/internal/logger"
	"github.com/baliestri/calliope/internal/service"
	"github.com/baliestri/calliope/internal/store"
)

type Workers struct {
	workers []Worker
}

func NewWorkers(repositories *store.Repositories, cfg config.WorkersConfig, log *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newRefreshTokenSweeper(repositories.UserRepository, cfg.SweepInterval, service.NewSystemClock(), log),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop terminates workers in reverse start order and waits for each one.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
