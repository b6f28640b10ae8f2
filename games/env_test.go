package games

import (
	"errors"
	"testing"
)

func testConfig() Config {
	return Config{
		Rows:         7,
		Cols:         7,
		PixelDensity: 1,
		TargLow:      1,
		TargHigh:     4,
		Harsh:        true,
		Seed:         11,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"Valid", func(c *Config) {}, nil},
		{"Zero rows", func(c *Config) { c.Rows = 0 }, ErrBadGridSize},
		{"Negative cols", func(c *Config) { c.Cols = -3 }, ErrBadGridSize},
		{"Zero density", func(c *Config) { c.PixelDensity = 0 }, ErrBadDensity},
		{"Inverted range", func(c *Config) { c.TargLow = 5; c.TargHigh = 2 }, ErrBadTargRange},
		{"Range too large", func(c *Config) { c.TargHigh = 7 }, ErrBadTargRange},
		{"All held out", func(c *Config) {
			c.HoldOuts = map[int]bool{1: true, 2: true, 3: true, 4: true}
		}, ErrAllHeldOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResetInvariants(t *testing.T) {
	env, err := Make("gordongames-v0", testConfig())
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if env.Phase() != AwaitingReset {
		t.Fatalf("phase = %v before reset", env.Phase())
	}
	if _, err := env.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if env.Phase() != Running {
		t.Fatalf("phase = %v after reset", env.Phase())
	}

	reg := env.Register()
	if reg.Player() == nil || reg.Pile() == nil || reg.Button() == nil {
		t.Fatal("missing fixtures after reset")
	}
	if got := len(reg.OfType(Player)); got != 1 {
		t.Fatalf("player count = %d", got)
	}
	n := env.NTargs()
	if n < 1 || n > 4 {
		t.Fatalf("sampled target count %d outside [1,4]", n)
	}
	if got := len(reg.Targs()); got != n {
		t.Fatalf("placed %d targets, want %d", got, n)
	}
	if got := reg.NumItems(); got != 0 {
		t.Fatalf("item count = %d after reset", got)
	}
}

func TestHoldOutsNeverSampled(t *testing.T) {
	cfg := testConfig()
	cfg.HoldOuts = map[int]bool{3: true}
	env, err := Make("gordongames-v1", cfg)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	for i := 0; i < 100; i++ {
		if _, err := env.Reset(); err != nil {
			t.Fatalf("Reset %d: %v", i, err)
		}
		if env.NTargs() == 3 {
			t.Fatalf("held out count sampled on reset %d", i)
		}
	}
}

func TestResetNExplicit(t *testing.T) {
	env, err := Make("gordongames-v0", testConfig())
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if _, err := env.ResetN(2); err != nil {
		t.Fatalf("ResetN: %v", err)
	}
	if env.NTargs() != 2 {
		t.Fatalf("NTargs = %d, want 2", env.NTargs())
	}
	if got := len(env.Register().Targs()); got != 2 {
		t.Fatalf("placed %d targets, want 2", got)
	}

	if _, err := env.ResetN(7); !errors.Is(err, ErrBadTargCount) {
		t.Fatalf("ResetN(7) = %v, want ErrBadTargCount", err)
	}
}

func TestStepOutsideRunning(t *testing.T) {
	env, err := Make("gordongames-v0", testConfig())
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if _, _, _, _, err := env.Step(Stay); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Step before reset = %v, want ErrNotRunning", err)
	}
}

func TestEpisodeTermination(t *testing.T) {
	env, err := Make("gordongames-v0", testConfig())
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if _, err := env.ResetN(2); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	// Walk from the starting cell to the button in the top right corner.
	for i := 0; i < 3; i++ {
		_, rew, done, _, err := env.Step(Right)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if rew != 0 || done {
			t.Fatalf("non-terminal step returned rew=%v done=%v", rew, done)
		}
	}
	_, rew, done, _, err := env.Step(Grab)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !done {
		t.Fatal("button press did not end the episode")
	}
	if rew != -1 {
		t.Fatalf("reward = %v with no items placed, want -1", rew)
	}
	if env.Phase() != Terminated {
		t.Fatalf("phase = %v, want Terminated", env.Phase())
	}
	if _, _, _, _, err := env.Step(Stay); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Step after termination = %v, want ErrNotRunning", err)
	}

	// A new reset recovers the env.
	if _, err := env.Reset(); err != nil {
		t.Fatalf("Reset after termination: %v", err)
	}
	if env.Phase() != Running {
		t.Fatalf("phase = %v after reset", env.Phase())
	}
}

func TestStepInfo(t *testing.T) {
	env, err := Make("gordongames-v0", testConfig())
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if _, err := env.ResetN(3); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	_, _, _, info, err := env.Step(Stay)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := info["n_targs"].(int); got != 3 {
		t.Errorf("n_targs = %d", got)
	}
	if got := info["n_items"].(int); got != 0 {
		t.Errorf("n_items = %d", got)
	}
	if got := info["disp_targs"].(int); got != 3 {
		t.Errorf("disp_targs = %d", got)
	}
	if got := info["is_harsh"].(bool); !got {
		t.Error("is_harsh = false")
	}
	if got := info["is_animating"].(bool); !got {
		t.Error("is_animating = false during the intro window")
	}

	// The window closes one step per target.
	for i := 0; i < 3; i++ {
		if _, _, _, info, err = env.Step(Stay); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if got := info["is_animating"].(bool); got {
		t.Error("is_animating = true after the intro window")
	}
}

func TestIntroAnimationSuppressesGrabs(t *testing.T) {
	env, err := Make("gordongames-v0", testConfig())
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if _, err := env.ResetN(4); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	// Reach the pile while the intro window is still open.
	for i := 0; i < 3; i++ {
		if _, _, _, _, err := env.Step(Left); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if _, _, _, _, err := env.Step(Grab); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := env.Register().PileGrabs(); got != 0 {
		t.Fatalf("pile grabs = %d during the intro window, want 0", got)
	}

	// The same grab works once the window closes.
	if _, _, _, _, err := env.Step(Grab); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := env.Register().PileGrabs(); got != 1 {
		t.Fatalf("pile grabs = %d after the intro window, want 1", got)
	}
}

func TestSeedDeterminism(t *testing.T) {
	cfg := testConfig()
	a, err := Make("gordongames-v1", cfg)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	b, err := Make("gordongames-v1", cfg)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	for i := 0; i < 10; i++ {
		fa, err := a.Reset()
		if err != nil {
			t.Fatalf("Reset: %v", err)
		}
		fb, err := b.Reset()
		if err != nil {
			t.Fatalf("Reset: %v", err)
		}
		if a.NTargs() != b.NTargs() {
			t.Fatalf("reset %d sampled %d vs %d targets", i, a.NTargs(), b.NTargs())
		}
		for p := range fa.Pixels {
			if fa.Pixels[p] != fb.Pixels[p] {
				t.Fatalf("reset %d produced diverging frames", i)
			}
		}
	}
}

func TestConfigChangesApplyAtReset(t *testing.T) {
	env, err := Make("gordongames-v0", testConfig())
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	frame, err := env.Reset()
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if frame.Rows != 7 || frame.Cols != 7 {
		t.Fatalf("frame %dx%d, want 7x7", frame.Rows, frame.Cols)
	}

	env.SetGridSize(9, 9)
	env.SetEgocentric(true)
	// The running episode still renders with the old settings.
	frame, _, _, _, err = env.Step(Stay)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if frame.Rows != 7 || frame.Cols != 7 {
		t.Fatalf("mid-episode frame %dx%d, want 7x7", frame.Rows, frame.Cols)
	}

	frame, err = env.Reset()
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if frame.Rows != 18 || frame.Cols != 18 {
		t.Fatalf("egocentric frame %dx%d, want 18x18", frame.Rows, frame.Cols)
	}
}
