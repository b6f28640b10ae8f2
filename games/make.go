package games

import (
	"errors"
	"fmt"
	"sort"

	"github.com/grantsrb/gordongames/core"
	"github.com/grantsrb/gordongames/util"
)

var ErrUnknownGame = errors.New("unknown game")

// controllerMakers maps the registered game names to their variant
// controllers.
var controllerMakers = map[string]func() Controller{
	"gordongames-v0": func() Controller { return NewEvenLineMatchController() },
	"gordongames-v1": func() Controller { return NewClusterMatchController() },
	"gordongames-v2": func() Controller { return NewOrthogonalLineMatchController() },
	"gordongames-v3": func() Controller { return NewUnevenLineMatchController() },
	"gordongames-v4": func() Controller { return NewNutsInCanController() },
	"gordongames-v5": func() Controller { return NewReverseClusterMatchController() },
	"gordongames-v6": func() Controller { return NewClusterClusterMatchController() },
	"gordongames-v7": func() Controller { return NewBriefPresentationController() },
	"gordongames-v8": func() Controller { return NewVisNutsController() },
}

// Names lists the registered game names in order.
func Names() []string {
	out := make([]string, 0, len(controllerMakers))
	for name := range controllerMakers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Make constructs the environment registered under the given name.
func Make(name string, cfg Config) (*Env, error) {
	maker, ok := controllerMakers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, name)
	}
	return NewEnv(name, maker(), cfg)
}

// gameState adapts a rendered frame to the core.State contract. All six
// actions are always available.
type gameState struct {
	frame Frame
	hash  string
}

func newGameState(frame Frame) *gameState {
	return &gameState{
		frame: frame,
		hash:  util.JsonHash(frame.Pixels),
	}
}

func (s *gameState) Hash() string {
	return s.hash
}

func (s *gameState) Actions() []core.Action {
	actions := AllActions()
	out := make([]core.Action, len(actions))
	for i, a := range actions {
		out[i] = a
	}
	return out
}

func (s *gameState) Frame() Frame {
	return s.frame
}

// CoreEnv exposes an Env through the core.Environment interface so that
// the experiment runner and policies can drive it.
type CoreEnv struct {
	env *Env
}

var _ core.Environment = &CoreEnv{}

func NewCoreEnv(env *Env) *CoreEnv {
	return &CoreEnv{env: env}
}

func (c *CoreEnv) Env() *Env {
	return c.env
}

func (c *CoreEnv) Reset() (core.State, error) {
	frame, err := c.env.Reset()
	if err != nil {
		return nil, err
	}
	return newGameState(frame), nil
}

func (c *CoreEnv) Step(a core.Action, _ *core.StepContext) (*core.StepResult, error) {
	action, ok := a.(Action)
	if !ok {
		return nil, fmt.Errorf("unexpected action type %T", a)
	}
	frame, rew, done, info, err := c.env.Step(action)
	if err != nil {
		return nil, err
	}
	return &core.StepResult{
		State:  newGameState(frame),
		Reward: rew,
		Done:   done,
		Info:   info,
	}, nil
}

// Constructor builds per-worker environment instances for parallel runs.
// Each instance gets a decorrelated seed.
type Constructor struct {
	GameName string
	Cfg      Config
}

var _ core.EnvironmentConstructor = &Constructor{}

func (c *Constructor) NewEnvironment(instance int) core.Environment {
	cfg := c.Cfg
	cfg.Seed = c.Cfg.Seed + int64(instance)*7919
	env, err := Make(c.GameName, cfg)
	if err != nil {
		// Construction only fails on an invalid config, which the caller
		// validates up front.
		panic(err)
	}
	return NewCoreEnv(env)
}
