package status

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"relink/internal/logging"
	"relink/internal/services"
)

// Snapshot is the aggregated status of all monitored services at one point
// in time. Field names are wire names and must not change.
type Snapshot struct {
	Barrier services.Status `json:"barrier"`
	SSH     services.Status `json:"ssh"`
	SMB     services.Status `json:"smb"`
}

// Aggregator fans out over the registered checkers and assembles a combined
// snapshot. Checkers run concurrently; each is isolated so a fault in one
// degrades that service alone.
type Aggregator struct {
	checkers []services.Checker
	logger   *slog.Logger
}

// NewAggregator constructs an aggregator over the given checkers.
func NewAggregator(logger *slog.Logger, checkers ...services.Checker) *Aggregator {
	return &Aggregator{
		checkers: checkers,
		logger:   logging.NewComponentLogger(logger, "aggregator"),
	}
}

// Snapshot polls every checker once and returns the combined view. Services
// without a registered checker report down.
func (a *Aggregator) Snapshot(ctx context.Context) Snapshot {
	results := make(map[services.Identity]services.Status, len(a.checkers))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, checker := range a.checkers {
		checker := checker
		wg.Add(1)
		go func() {
			defer wg.Done()
			st := a.runChecker(ctx, checker)
			mu.Lock()
			results[checker.Identity()] = st
			mu.Unlock()
		}()
	}
	wg.Wait()

	snap := Snapshot{
		Barrier: services.Down("No checker registered"),
		SSH:     services.Down("No checker registered"),
		SMB:     services.Down("No checker registered"),
	}
	if st, ok := results[services.Barrier]; ok {
		snap.Barrier = st
	}
	if st, ok := results[services.SSH]; ok {
		snap.SSH = st
	}
	if st, ok := results[services.SMB]; ok {
		snap.SMB = st
	}
	return snap
}

// runChecker isolates one checker call; a panic degrades that service to
// down instead of crashing the snapshot.
func (a *Aggregator) runChecker(ctx context.Context, checker services.Checker) (st services.Status) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("checker panicked",
				logging.String("service", string(checker.Identity())),
				logging.Any("panic", r))
			st = services.Down(services.ClipDetail(fmt.Sprintf("check failed: %v", r)))
		}
	}()
	return checker.Check(ctx)
}
