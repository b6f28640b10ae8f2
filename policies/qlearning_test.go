package policies

import (
	"testing"

	"github.com/grantsrb/gordongames/core"
)

type fakeState string

func (s fakeState) Hash() string { return string(s) }

func (s fakeState) Actions() []core.Action {
	return []core.Action{fakeAction("left"), fakeAction("right")}
}

type fakeAction string

func (a fakeAction) Hash() string { return string(a) }

func TestQTable(t *testing.T) {
	q := NewQTable()
	if got := q.Get("s", "a", 0.5); got != 0.5 {
		t.Fatalf("default = %v, want 0.5", got)
	}
	q.Set("s", "a", 2)
	q.Set("s", "b", 1)
	if got := q.Get("s", "a", 0); got != 2 {
		t.Fatalf("get = %v, want 2", got)
	}

	action, val := q.Max("s", 0)
	if action != "a" || val != 2 {
		t.Fatalf("max = %q %v, want a 2", action, val)
	}
	if _, val := q.Max("missing", -7); val != -7 {
		t.Fatalf("missing state max = %v, want default", val)
	}

	action, val = q.MaxAmong("s", []string{"b", "c"}, 0)
	if action != "b" || val != 1 {
		t.Fatalf("max among = %q %v, want b 1", action, val)
	}
}

func TestEpsilonGreedyUpdateStep(t *testing.T) {
	p := NewEpsilonGreedyPolicy(0.5, 0.9, 0)

	state := fakeState("s0")
	next := fakeState("s1")
	action := fakeAction("right")

	p.UpdateStep(nil, state, action, 1, next)
	// Q(s0,right) = 0 + 0.5 * (1 + 0.9*0 - 0)
	if got := p.qTable.Get("s0", "right", 0); got != 0.5 {
		t.Fatalf("q value = %v, want 0.5", got)
	}

	p.UpdateStep(nil, state, action, 1, next)
	if got := p.qTable.Get("s0", "right", 0); got != 0.75 {
		t.Fatalf("q value = %v, want 0.75", got)
	}
}

func TestEpsilonGreedyPicksGreedy(t *testing.T) {
	p := NewEpsilonGreedyPolicy(0.5, 0.9, 0)
	state := fakeState("s0")
	p.qTable.Set("s0", "left", 3)
	p.qTable.Set("s0", "right", 1)

	for i := 0; i < 10; i++ {
		action := p.PickAction(nil, state, state.Actions())
		if action.Hash() != "left" {
			t.Fatalf("picked %q, want the greedy action", action.Hash())
		}
	}
}

func TestPolicyResetClearsTable(t *testing.T) {
	p := NewEpsilonGreedyPolicy(0.5, 0.9, 0)
	p.qTable.Set("s0", "left", 3)
	p.Reset()
	if got := p.qTable.Size(); got != 0 {
		t.Fatalf("table size = %d after reset", got)
	}
}

func TestRandomPolicyCoversActions(t *testing.T) {
	p := NewRandomPolicy()
	state := fakeState("s0")
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[p.PickAction(nil, state, state.Actions()).Hash()] = true
	}
	if len(seen) != 2 {
		t.Fatalf("saw %d distinct actions, want 2", len(seen))
	}
}
