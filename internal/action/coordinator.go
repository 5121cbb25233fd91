package action

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"relink/internal/logging"
	"relink/internal/services"
)

// Coordinator serializes remediation per service. Two concurrent reconnects
// for the same identity never both reach the remediator: the second is
// rejected immediately with a busy outcome. Different services remediate
// freely in parallel.
type Coordinator struct {
	logger      *slog.Logger
	remediators map[services.Identity]services.Remediator

	mu   sync.Mutex
	busy map[services.Identity]bool
}

// NewCoordinator constructs a coordinator over the given remediators.
func NewCoordinator(logger *slog.Logger, remediators ...services.Remediator) *Coordinator {
	byID := make(map[services.Identity]services.Remediator, len(remediators))
	for _, rem := range remediators {
		byID[rem.Identity()] = rem
	}
	return &Coordinator{
		logger:      logging.NewComponentLogger(logger, "coordinator"),
		remediators: byID,
		busy:        make(map[services.Identity]bool, len(byID)),
	}
}

// Reconnect runs the remediator for one service, holding its busy flag for
// the duration. A concurrent attempt for the same service observes the flag
// and is rejected with a busy outcome.
func (c *Coordinator) Reconnect(ctx context.Context, id services.Identity) services.Outcome {
	rem, ok := c.remediators[id]
	if !ok {
		return services.Outcome{Message: fmt.Sprintf("No remediator for %s", id)}
	}

	if !c.acquire(id) {
		c.logger.Info("reconnect rejected, already in progress", logging.String("service", string(id)))
		return services.Outcome{Message: fmt.Sprintf("Reconnect already in progress for %s", id)}
	}
	defer c.release(id)

	c.logger.Info("reconnecting", logging.Args(c.reconnectAttrs(ctx, id)...)...)
	outcome := c.runRemediator(ctx, rem)
	c.logger.Info("reconnect finished",
		logging.Args(append(c.reconnectAttrs(ctx, id),
			logging.String("outcome", outcome.Message))...)...)
	return outcome
}

// runRemediator isolates one remediator call; a panic degrades to a failure
// outcome instead of escaping into the caller.
func (c *Coordinator) runRemediator(ctx context.Context, rem services.Remediator) (out services.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("remediator panicked",
				logging.String("service", string(rem.Identity())),
				logging.Any("panic", r))
			out = services.Outcome{
				Message: "Failed: " + services.ClipDetail(fmt.Sprintf("reconnect failed: %v", r)),
			}
		}
	}()
	return rem.Reconnect(ctx)
}

func (c *Coordinator) reconnectAttrs(ctx context.Context, id services.Identity) []logging.Attr {
	attrs := []logging.Attr{logging.String("service", string(id))}
	if reqID, ok := services.RequestIDFromContext(ctx); ok {
		attrs = append(attrs, logging.String("request_id", reqID))
	}
	return attrs
}

// ReconnectAll remediates every service and joins the outcomes with "; " in
// the fixed enumeration order, regardless of completion order. The result
// always has exactly one segment per service.
func (c *Coordinator) ReconnectAll(ctx context.Context) services.Outcome {
	ids := services.Identities()
	messages := make([]string, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		i, id := i, id
		wg.Add(1)
		go func() {
			defer wg.Done()
			messages[i] = c.Reconnect(ctx, id).Message
		}()
	}
	wg.Wait()

	return services.Outcome{Message: strings.Join(messages, "; ")}
}

func (c *Coordinator) acquire(id services.Identity) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy[id] {
		return false
	}
	c.busy[id] = true
	return true
}

func (c *Coordinator) release(id services.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy[id] = false
}
