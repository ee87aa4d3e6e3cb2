// Package timeout bounds how long a participant may think.
package timeout

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/flipseven/internal/game"
)

// ContextAgent is implemented by agents that can abandon a decision when its
// context ends, such as an agent waiting on terminal input.
type ContextAgent interface {
	DecideContext(ctx context.Context, snapshot game.Snapshot) game.Action
	ChooseTargetContext(ctx context.Context, req game.TargetRequest) string
}

// Agent wraps another agent and answers on its behalf when it takes longer
// than the limit: Stay for decisions, the first eligible participant for
// targets. The late answer is discarded.
type Agent struct {
	inner    game.Agent
	limit    time.Duration
	clock    quartz.Clock
	logger   *log.Logger
	timeouts atomic.Int64
}

// New wraps inner. A limit of zero or less disables the timeout. A nil clock
// uses the real clock and a nil logger discards output.
func New(inner game.Agent, limit time.Duration, clock quartz.Clock, logger *log.Logger) *Agent {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Agent{
		inner:  inner,
		limit:  limit,
		clock:  clock,
		logger: logger.WithPrefix("timeout"),
	}
}

// Timeouts returns how many answers were made on the inner agent's behalf
func (a *Agent) Timeouts() int {
	return int(a.timeouts.Load())
}

func (a *Agent) Decide(s game.Snapshot) game.Action {
	return a.DecideContext(context.Background(), s)
}

// DecideContext is Decide bounded by ctx as well as the limit. When ctx ends
// first the answer is Stay but no timeout is counted.
func (a *Agent) DecideContext(ctx context.Context, s game.Snapshot) game.Action {
	action, err := wait(ctx, a, func(ctx context.Context) game.Action {
		if ca, ok := a.inner.(ContextAgent); ok {
			return ca.DecideContext(ctx, s)
		}
		return a.inner.Decide(s)
	})
	if err != nil {
		if errors.Is(err, errTimeout) {
			a.logger.Warn("Decision timeout, staying", "player", s.Name, "limit", a.limit)
		}
		return game.Stay
	}
	return action
}

func (a *Agent) ChooseTarget(req game.TargetRequest) string {
	return a.ChooseTargetContext(context.Background(), req)
}

// ChooseTargetContext is ChooseTarget bounded by ctx as well as the limit
func (a *Agent) ChooseTargetContext(ctx context.Context, req game.TargetRequest) string {
	target, err := wait(ctx, a, func(ctx context.Context) string {
		if ca, ok := a.inner.(ContextAgent); ok {
			return ca.ChooseTargetContext(ctx, req)
		}
		return a.inner.ChooseTarget(req)
	})
	if err != nil {
		fallback := game.FirstEligible{}.ChooseTarget(req)
		if errors.Is(err, errTimeout) {
			a.logger.Warn("Target timeout, using first eligible", "player", req.Actor, "target", fallback, "limit", a.limit)
		}
		return fallback
	}
	return target
}

var errTimeout = errors.New("decision timeout")

// wait runs fn on its own goroutine and returns its result. It fails with
// errTimeout when the limit passes first, or with ctx.Err() when ctx ends.
// Either way the context handed to fn is cancelled.
func wait[T any](parent context.Context, a *Agent, fn func(ctx context.Context) T) (T, error) {
	var zero T
	if err := parent.Err(); err != nil {
		return zero, err
	}
	if a.limit <= 0 {
		return fn(parent), parent.Err()
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// The timer is armed before fn starts, so fn observing its own call
	// implies the deadline is already scheduled.
	timeoutFired := make(chan struct{})
	timer := a.clock.AfterFunc(a.limit, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	result := make(chan T, 1)
	go func() {
		result <- fn(ctx)
	}()

	select {
	case v := <-result:
		if err := parent.Err(); err != nil {
			return zero, err
		}
		return v, nil
	case <-timeoutFired:
		a.timeouts.Add(1)
		return zero, errTimeout
	case <-parent.Done():
		return zero, parent.Err()
	}
}

var (
	_ game.Agent   = (*Agent)(nil)
	_ ContextAgent = (*Agent)(nil)
)
