package cmd

import (
	"path"
	"time"

	"github.com/grantsrb/gordongames/games"
	"github.com/grantsrb/gordongames/util"
)

type Flags struct {
	GameFlags
	SavePath string
	DBPath   string
	RunFlags
	PolicyFlags
	Parallelism int
}

type GameFlags struct {
	Rows         int
	Cols         int
	PixelDensity int
	TargLow      int
	TargHigh     int
	Egocentric   bool
	Harsh        bool
	Divide       bool
	HoldOuts     []int
	Seed         int64
}

type RunFlags struct {
	NumRuns                int
	Episodes               int
	Horizon                int
	MaxConsecutiveErrors   int
	MaxConsecutiveTimeouts int
	EpisodeTimeout         time.Duration
}

type PolicyFlags struct {
	Alpha       float64
	Gamma       float64
	Epsilon     float64
	Temperature float64
}

func DefaultFlags() *Flags {
	return &Flags{
		GameFlags: GameFlags{
			Rows:         31,
			Cols:         31,
			PixelDensity: 1,
			TargLow:      1,
			TargHigh:     10,
			Egocentric:   false,
			Harsh:        true,
			Divide:       true,
			HoldOuts:     nil,
			Seed:         0,
		},
		SavePath: "results",
		DBPath:   "",
		RunFlags: RunFlags{
			NumRuns:                1,
			Episodes:               1000,
			Horizon:                200,
			MaxConsecutiveErrors:   20,
			MaxConsecutiveTimeouts: 20,
			EpisodeTimeout:         10 * time.Second,
		},
		PolicyFlags: PolicyFlags{
			Alpha:       0.1,
			Gamma:       0.99,
			Epsilon:     0.1,
			Temperature: 1,
		},
		Parallelism: 10,
	}
}

func (f *Flags) Record() {
	util.SaveJson(path.Join(f.SavePath, "config.json"), f)
}

func (f *Flags) GameConfig() games.Config {
	holdOuts := make(map[int]bool, len(f.HoldOuts))
	for _, n := range f.HoldOuts {
		holdOuts[n] = true
	}
	seed := f.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return games.Config{
		Rows:         f.Rows,
		Cols:         f.Cols,
		PixelDensity: f.PixelDensity,
		TargLow:      f.TargLow,
		TargHigh:     f.TargHigh,
		Egocentric:   f.Egocentric,
		Harsh:        f.Harsh,
		Divide:       f.Divide,
		HoldOuts:     holdOuts,
		Seed:         seed,
	}
}
