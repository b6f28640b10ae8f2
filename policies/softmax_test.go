package policies

import (
	"math"
	"testing"
)

func TestSoftMaxUpdateStep(t *testing.T) {
	p := NewSoftMaxPolicy(0.5, 0.9, 1)

	state := fakeState("s0")
	next := fakeState("s1")
	action := fakeAction("right")

	p.UpdateStep(nil, state, action, 1, next)
	if got := p.QTable["s0"]["right"]; got != 0.5 {
		t.Fatalf("q value = %v, want 0.5", got)
	}

	// The next state's best value feeds the target.
	p.QTable["s1"] = map[string]float64{"left": 2}
	p.UpdateStep(nil, state, action, 0, next)
	// target = 0 + 0.9*2, q = 0.5 + 0.5*(1.8-0.5)
	if got := p.QTable["s0"]["right"]; math.Abs(got-1.15) > 1e-9 {
		t.Fatalf("q value = %v, want 1.15", got)
	}
}

func TestSoftMaxPrefersHigherValues(t *testing.T) {
	p := NewSoftMaxPolicy(0.5, 0.9, 0.1)
	state := fakeState("s0")
	p.QTable["s0"] = map[string]float64{"left": 5, "right": 0}

	picks := make(map[string]int)
	for i := 0; i < 200; i++ {
		picks[p.PickAction(nil, state, state.Actions()).Hash()]++
	}
	if picks["left"] <= picks["right"] {
		t.Fatalf("picks = %v, want a strong preference for left", picks)
	}
}

func TestSoftMaxReset(t *testing.T) {
	p := NewSoftMaxPolicy(0.5, 0.9, 1)
	p.QTable["s0"] = map[string]float64{"left": 1}
	p.Reset()
	if len(p.QTable) != 0 {
		t.Fatal("reset kept q values")
	}
}
