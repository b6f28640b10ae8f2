package games

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/grantsrb/gordongames/util"
)

var (
	ErrBadGridSize  = errors.New("grid dimensions must be positive")
	ErrBadDensity   = errors.New("pixel density must be at least 1")
	ErrBadTargRange = errors.New("targ range must fit the grid")
	ErrAllHeldOut   = errors.New("hold outs exclude every target count")
	ErrBadTargCount = errors.New("target count outside representable bounds")
	ErrNotRunning   = errors.New("environment is not running")
)

// Phase is the episode lifecycle state.
type Phase int

const (
	AwaitingReset Phase = iota
	Running
	Terminated
)

func (p Phase) String() string {
	switch p {
	case AwaitingReset:
		return "awaiting_reset"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// Config holds every construction option. Mutations between episodes take
// effect at the next Reset.
type Config struct {
	Rows         int
	Cols         int
	PixelDensity int
	TargLow      int
	TargHigh     int
	Egocentric   bool
	Harsh        bool
	Divide       bool
	HoldOuts     map[int]bool
	Seed         int64
}

func DefaultConfig() Config {
	return Config{
		Rows:         31,
		Cols:         31,
		PixelDensity: 5,
		TargLow:      1,
		TargHigh:     10,
		Harsh:        true,
		Seed:         time.Now().UnixNano(),
	}
}

func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadGridSize, c.Rows, c.Cols)
	}
	if c.PixelDensity < 1 {
		return fmt.Errorf("%w: %d", ErrBadDensity, c.PixelDensity)
	}
	if c.TargLow < 0 || c.TargLow > c.TargHigh {
		return fmt.Errorf("%w: [%d,%d]", ErrBadTargRange, c.TargLow, c.TargHigh)
	}
	if c.TargHigh >= util.MinInt(c.Rows, c.Cols) {
		return fmt.Errorf("%w: high %d with grid %dx%d", ErrBadTargRange, c.TargHigh, c.Rows, c.Cols)
	}
	allowed := 0
	for n := c.TargLow; n <= c.TargHigh; n++ {
		if !c.HoldOuts[n] {
			allowed++
		}
	}
	if allowed == 0 {
		return ErrAllHeldOut
	}
	return nil
}

func (c Config) copyHoldOuts() map[int]bool {
	out := make(map[int]bool, len(c.HoldOuts))
	for k, v := range c.HoldOuts {
		out[k] = v
	}
	return out
}

// Env drives one game controller through the reset/step lifecycle and
// renders observations. It owns its grid, register and rng exclusively;
// nothing is shared across env instances.
type Env struct {
	name string
	ctrl Controller

	cfg    Config // pending, applied at next Reset
	active Config // in effect for the current episode

	grid *Grid
	reg  *Register
	rng  *rand.Rand

	phase  Phase
	step   int
	nTargs int
	last   Frame
}

// NewEnv builds an environment for the given controller. The returned env
// is in the AwaitingReset phase.
func NewEnv(name string, ctrl Controller, cfg Config) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Env{
		name:  name,
		ctrl:  ctrl,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		phase: AwaitingReset,
	}, nil
}

func (e *Env) Name() string {
	return e.name
}

func (e *Env) Phase() Phase {
	return e.phase
}

func (e *Env) NTargs() int {
	return e.nTargs
}

func (e *Env) StepCount() int {
	return e.step
}

func (e *Env) Register() *Register {
	return e.reg
}

func (e *Env) Controller() Controller {
	return e.ctrl
}

// Config returns the pending configuration.
func (e *Env) Config() Config {
	return e.cfg
}

// SetConfig replaces the pending configuration; it takes effect at the
// next Reset.
func (e *Env) SetConfig(cfg Config) {
	e.cfg = cfg
}

func (e *Env) SetTargRange(low, high int) {
	e.cfg.TargLow, e.cfg.TargHigh = low, high
}

func (e *Env) SetGridSize(rows, cols int) {
	e.cfg.Rows, e.cfg.Cols = rows, cols
}

func (e *Env) SetPixelDensity(d int) {
	e.cfg.PixelDensity = d
}

func (e *Env) SetEgocentric(on bool) {
	e.cfg.Egocentric = on
}

func (e *Env) SetHoldOuts(holdOuts map[int]bool) {
	e.cfg.HoldOuts = holdOuts
}

// Seed replaces the env's random source.
func (e *Env) Seed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// sampleTargs draws a target count from the configured range, resampling
// past held-out values. Validate guarantees at least one value remains.
func (e *Env) sampleTargs() int {
	span := e.active.TargHigh - e.active.TargLow + 1
	n := e.active.TargLow + e.rng.Intn(span)
	for e.active.HoldOuts[n] {
		n = e.active.TargLow + e.rng.Intn(span)
	}
	return n
}

// Reset starts a new episode with a sampled target count.
func (e *Env) Reset() (Frame, error) {
	return e.ResetN(-1)
}

// ResetN starts a new episode. A negative nTargs samples the count from
// the configured range; a non-negative value is honored as given, which
// deliberately bypasses the hold-out filter.
func (e *Env) ResetN(nTargs int) (Frame, error) {
	if err := e.cfg.Validate(); err != nil {
		return Frame{}, err
	}
	e.active = e.cfg
	e.active.HoldOuts = e.cfg.copyHoldOuts()

	e.grid = NewGrid(e.active.Rows, e.active.Cols, e.active.PixelDensity, e.active.Divide)
	e.reg = NewRegister(e.grid)
	e.step = 0

	if nTargs < 0 {
		nTargs = e.sampleTargs()
	} else if nTargs >= util.MinInt(e.active.Rows, e.active.Cols) {
		return Frame{}, fmt.Errorf("%w: %d", ErrBadTargCount, nTargs)
	}
	e.nTargs = nTargs

	if err := e.ctrl.Init(e.reg, nTargs, e.rng); err != nil {
		return Frame{}, err
	}
	e.phase = Running
	e.last = e.grid.RenderFrame(e.reg, e.step, e.active.Egocentric)
	return e.last, nil
}

// Step applies one action. The returned reward is zero on non-terminal
// steps and the controller's grade when the end button is pressed.
// Calling Step outside the Running phase is a contract violation.
func (e *Env) Step(a Action) (Frame, float64, bool, map[string]interface{}, error) {
	if e.phase != Running {
		return Frame{}, 0, false, nil, fmt.Errorf("%w: phase %s", ErrNotRunning, e.phase)
	}
	e.step++
	animating := e.ctrl.Animating(e.step)
	event := e.reg.ApplyAction(a, !animating)

	rew := float64(0)
	done := false
	if event == EventButton {
		rew = e.ctrl.Reward(e.reg, e.active.Harsh)
		done = true
		e.phase = Terminated
	}

	e.last = e.grid.RenderFrame(e.reg, e.step, e.active.Egocentric)
	info := e.info(animating)
	return e.last, rew, done, info, nil
}

// Render returns the most recently rendered frame for the display sink.
func (e *Env) Render() Frame {
	return e.last
}

func (e *Env) info(animating bool) map[string]interface{} {
	items := e.reg.Items()
	dispTargs := 0
	for _, t := range e.reg.Targs() {
		if t.VisibleAt(e.step) {
			dispTargs++
		}
	}
	return map[string]interface{}{
		"is_harsh":     e.active.Harsh,
		"n_targs":      e.nTargs,
		"n_items":      len(items),
		"n_aligned":    alignedWithTargs(items, e.reg.Targs()),
		"disp_targs":   dispTargs,
		"is_animating": animating,
		"pile_grabs":   e.reg.PileGrabs(),
	}
}
