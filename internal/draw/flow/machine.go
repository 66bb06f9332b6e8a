// Package flow drives one session's draw through Idle, Drawing and Result.
//
// A Machine owns the single current draw of a browser session. Submit
// validates input, holds the Drawing state for a cosmetic pacing delay and
// then records the sampled result. Reset returns to Idle from any state.
package flow

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/louisbranch/luckydraw/internal/draw"
	"github.com/louisbranch/luckydraw/internal/random"
)

const tracerName = "github.com/louisbranch/luckydraw/internal/draw/flow"

// DefaultDelay is the pacing delay used when none is configured.
const DefaultDelay = 1500 * time.Millisecond

// State is the lifecycle stage of a session draw.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StateResult
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateResult:
		return "result"
	default:
		return "unknown"
	}
}

// ErrDrawInProgress indicates a submit arrived while a draw was pending.
var ErrDrawInProgress = errors.New("a draw is already in progress")

// ErrDrawDiscarded indicates the pending draw was reset before it completed.
var ErrDrawDiscarded = errors.New("draw was reset before completion")

// WaitFunc blocks for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// SourceFactory returns a fresh random source for one draw.
type SourceFactory func() draw.Source

// Snapshot is a read-only view of a machine. While Drawing, Result carries
// the pending request without winners.
type Snapshot struct {
	State  State
	Result draw.Result
}

// Machine is the per-session draw state machine. It is safe for concurrent use.
type Machine struct {
	mu         sync.Mutex
	state      State
	result     draw.Result
	generation uint64

	delay     time.Duration
	wait      WaitFunc
	newSource SourceFactory
	limits    draw.Limits
}

// Option configures a Machine.
type Option func(*Machine)

// WithDelay sets the pacing delay. Zero or negative disables it.
func WithDelay(d time.Duration) Option {
	return func(m *Machine) {
		if d < 0 {
			d = 0
		}
		m.delay = d
	}
}

// WithWait replaces the delay implementation.
func WithWait(wait WaitFunc) Option {
	return func(m *Machine) {
		if wait != nil {
			m.wait = wait
		}
	}
}

// WithSourceFactory replaces how random sources are created.
func WithSourceFactory(factory SourceFactory) Option {
	return func(m *Machine) {
		if factory != nil {
			m.newSource = factory
		}
	}
}

// WithLimits sets extra validation limits.
func WithLimits(limits draw.Limits) Option {
	return func(m *Machine) {
		m.limits = limits
	}
}

// New returns an idle machine.
func New(opts ...Option) *Machine {
	m := &Machine{
		state:     StateIdle,
		delay:     DefaultDelay,
		wait:      sleep,
		newSource: random.NewSource,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Submit validates input and performs one draw.
//
// Validation failures leave the machine Idle. While a draw is pending further
// submits fail with ErrDrawInProgress. A submit from Result replaces the
// previous result.
func (m *Machine) Submit(ctx context.Context, input draw.Input) (draw.Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "draw.submit")
	defer span.End()

	m.mu.Lock()
	if m.state == StateDrawing {
		m.mu.Unlock()
		span.SetStatus(codes.Error, ErrDrawInProgress.Error())
		return draw.Result{}, ErrDrawInProgress
	}
	req, err := draw.Validate(input, m.limits)
	if err != nil {
		m.toIdleLocked()
		m.mu.Unlock()
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return draw.Result{}, err
	}
	m.result = draw.Result{Request: req}
	m.state = StateDrawing
	generation := m.generation
	m.mu.Unlock()

	span.SetAttributes(
		attribute.Int("draw.start", req.Start),
		attribute.Int("draw.end", req.End),
		attribute.Int("draw.winners_count", req.WinnersCount),
	)

	if m.delay > 0 {
		if err := m.wait(ctx, m.delay); err != nil {
			m.mu.Lock()
			discarded := m.generation != generation
			if !discarded {
				m.toIdleLocked()
			}
			m.mu.Unlock()
			if discarded {
				span.SetStatus(codes.Error, ErrDrawDiscarded.Error())
				return draw.Result{}, ErrDrawDiscarded
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "draw cancelled")
			return draw.Result{}, err
		}
	}

	result := draw.Result{Request: req, Winners: draw.Sample(req, m.newSource())}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != generation {
		span.SetStatus(codes.Error, ErrDrawDiscarded.Error())
		return draw.Result{}, ErrDrawDiscarded
	}
	m.state = StateResult
	m.result = result
	return cloneResult(result), nil
}

// Reset clears any result and returns to Idle. A pending draw is discarded.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toIdleLocked()
}

// Snapshot returns the current state and a copy of the result.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{State: m.state, Result: cloneResult(m.result)}
}

// toIdleLocked must be called with mu held.
func (m *Machine) toIdleLocked() {
	if m.state == StateDrawing {
		m.generation++
	}
	m.state = StateIdle
	m.result = draw.Result{}
}

func cloneResult(result draw.Result) draw.Result {
	result.Winners = slices.Clone(result.Winners)
	return result
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
