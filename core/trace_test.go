package core

import "testing"

func TestTrace(t *testing.T) {
	trace := NewTrace()
	if trace.Last() != nil {
		t.Fatal("empty trace has a last step")
	}
	if trace.TotalReward() != 0 {
		t.Fatal("empty trace has reward")
	}

	trace.AddStep(&Step{Reward: 0})
	trace.AddStep(&Step{Reward: -0.5})
	trace.AddStep(&Step{Reward: 1, Done: true})

	if got := trace.Len(); got != 3 {
		t.Fatalf("len = %d, want 3", got)
	}
	if got := trace.TotalReward(); got != 0.5 {
		t.Fatalf("total reward = %v, want 0.5", got)
	}
	last := trace.Last()
	if last == nil || !last.Done || last.Reward != 1 {
		t.Fatalf("unexpected last step %+v", last)
	}
	if got := trace.Step(1).Reward; got != -0.5 {
		t.Fatalf("step 1 reward = %v", got)
	}
}

func TestEpisodeContextDone(t *testing.T) {
	eCtx := NewEpisodeContext(nil)
	if eCtx.Trace == nil {
		t.Fatal("missing trace")
	}
	select {
	case <-eCtx.Done():
		t.Fatal("fresh context already done")
	default:
	}

	eCtx.Finish()
	select {
	case <-eCtx.Done():
	default:
		t.Fatal("finished context not done")
	}
	if eCtx.IsError() {
		t.Fatal("finish flagged as error")
	}
}
