package policies

import (
	"math/rand"
	"time"

	"github.com/grantsrb/gordongames/core"
)

// EpsilonGreedyPolicy is tabular Q-learning with epsilon-greedy
// exploration over observation hashes.
type EpsilonGreedyPolicy struct {
	qTable  *QTable
	Alpha   float64
	Gamma   float64
	Epsilon float64

	rand *rand.Rand
}

var _ core.Policy = &EpsilonGreedyPolicy{}

func NewEpsilonGreedyPolicy(alpha, gamma, epsilon float64) *EpsilonGreedyPolicy {
	return &EpsilonGreedyPolicy{
		qTable:  NewQTable(),
		Alpha:   alpha,
		Gamma:   gamma,
		Epsilon: epsilon,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (e *EpsilonGreedyPolicy) Reset() {
	e.qTable = NewQTable()
}

func (e *EpsilonGreedyPolicy) ResetEpisode(_ *core.EpisodeContext) {}

func (e *EpsilonGreedyPolicy) UpdateEpisode(_ *core.EpisodeContext) {}

func (e *EpsilonGreedyPolicy) PickAction(_ *core.StepContext, state core.State, actions []core.Action) core.Action {
	if e.rand.Float64() < e.Epsilon {
		return actions[e.rand.Intn(len(actions))]
	}
	names := make([]string, len(actions))
	byName := make(map[string]core.Action, len(actions))
	for i, a := range actions {
		names[i] = a.Hash()
		byName[a.Hash()] = a
	}
	best, _ := e.qTable.MaxAmong(state.Hash(), names, 0)
	return byName[best]
}

func (e *EpsilonGreedyPolicy) UpdateStep(_ *core.StepContext, state core.State, action core.Action, reward float64, nextState core.State) {
	stateHash := state.Hash()
	actionKey := action.Hash()
	cur := e.qTable.Get(stateHash, actionKey, 0)
	_, nextMax := e.qTable.Max(nextState.Hash(), 0)
	target := reward + e.Gamma*nextMax
	e.qTable.Set(stateHash, actionKey, cur+e.Alpha*(target-cur))
}

type EpsilonGreedyPolicyConstructor struct {
	Alpha   float64
	Gamma   float64
	Epsilon float64
}

func (c *EpsilonGreedyPolicyConstructor) NewPolicy() core.Policy {
	return NewEpsilonGreedyPolicy(c.Alpha, c.Gamma, c.Epsilon)
}
