package workers

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/baliestri/calliope/internal/logger"
	"github.com/baliestri/calliope/internal/mock"
	"github.com/baliestri/calliope/internal/service"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run and Stop were called.
type mockWorker struct {
	runCount  int
	stopCount int
}

func (m *mockWorker) Run()  { m.runCount++ }
func (m *mockWorker) Stop() { m.stopCount++ }

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Run()
}

func TestWorkers_Stop_ReverseOrder(t *testing.T) {
	order := []int{}

	newOrderWorker := func(id int) Worker {
		return &orderWorker{id: id, order: &order}
	}

	ws := &Workers{workers: []Worker{
		newOrderWorker(1),
		newOrderWorker(2),
		newOrderWorker(3),
	}}
	ws.Stop()

	expected := []int{3, 2, 1}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%d, got %d", i, v, order[i])
		}
	}
}

func TestWorkers_Stop_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2}}
	ws.Stop()

	for i, w := range []*mockWorker{w1, w2} {
		if w.stopCount != 1 {
			t.Errorf("worker[%d]: expected stopCount=1, got %d", i, w.stopCount)
		}
	}
}

// orderWorker is a helper that appends its ID to a shared slice on Stop.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Run()  {}
func (o *orderWorker) Stop() { *o.order = append(*o.order, o.id) }

func TestRefreshTokenSweeper_SweepsOnInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	calls := make(chan time.Time, 8)

	repo := mock.NewMockUserRepository(ctrl)
	repo.EXPECT().
		ClearExpiredRefreshTokens(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, now time.Time) (int64, error) {
			// non-blocking so a slow test reader cannot wedge the loop
			select {
			case calls <- now:
			default:
			}
			return 2, nil
		}).
		AnyTimes()

	sweeper := newRefreshTokenSweeper(repo, 5*time.Millisecond, service.NewSystemClock(), logger.Nop())

	sweeper.Run()
	defer sweeper.Stop()

	select {
	case now := <-calls:
		if now.IsZero() {
			t.Error("expected a non-zero sweep timestamp")
		}
	case <-time.After(time.Second):
		t.Fatal("sweeper never invoked ClearExpiredRefreshTokens")
	}
}

func TestRefreshTokenSweeper_StopTerminatesLoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	repo.EXPECT().
		ClearExpiredRefreshTokens(gomock.Any(), gomock.Any()).
		Return(int64(0), nil).
		AnyTimes()

	sweeper := newRefreshTokenSweeper(repo, time.Hour, service.NewSystemClock(), logger.Nop())

	sweeper.Run()

	stopped := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after loop shutdown")
	}
}
