package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	flags *Flags = DefaultFlags()

	savePath     string
	dbPath       string
	rows         int
	cols         int
	pixelDensity int
	targLow      int
	targHigh     int
	egocentric   bool
	harsh        bool
	divide       bool
	holdOuts     []int
	seed         int64

	numRuns                int
	episodes               int
	horizon                int
	maxConsecutiveErrors   int
	maxConsecutiveTimeouts int
	episodeTimeout         int
	parallelism            int

	alpha       float64
	gamma       float64
	epsilon     float64
	temperature float64
)

func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&savePath, "save-path", flags.SavePath, "Path to save results")
	cmd.PersistentFlags().StringVar(&dbPath, "db-path", flags.DBPath, "Path to the episode database, empty disables recording")
	cmd.PersistentFlags().IntVar(&rows, "rows", flags.Rows, "Number of grid rows")
	cmd.PersistentFlags().IntVar(&cols, "cols", flags.Cols, "Number of grid columns")
	cmd.PersistentFlags().IntVar(&pixelDensity, "pixel-density", flags.PixelDensity, "Pixels per grid cell side")
	cmd.PersistentFlags().IntVar(&targLow, "targ-low", flags.TargLow, "Lowest target count")
	cmd.PersistentFlags().IntVar(&targHigh, "targ-high", flags.TargHigh, "Highest target count")
	cmd.PersistentFlags().BoolVar(&egocentric, "egocentric", flags.Egocentric, "Center observations on the player")
	cmd.PersistentFlags().BoolVar(&harsh, "harsh", flags.Harsh, "Use all-or-nothing rewards")
	cmd.PersistentFlags().BoolVar(&divide, "divide", flags.Divide, "Draw the divider row")
	cmd.PersistentFlags().IntSliceVar(&holdOuts, "hold-outs", flags.HoldOuts, "Target counts excluded from sampling")
	cmd.PersistentFlags().Int64Var(&seed, "seed", flags.Seed, "Base random seed, 0 uses the current time")

	cmd.PersistentFlags().IntVar(&numRuns, "num-runs", flags.NumRuns, "Number of runs")
	cmd.PersistentFlags().IntVar(&episodes, "episodes", flags.Episodes, "Number of episodes")
	cmd.PersistentFlags().IntVar(&horizon, "horizon", flags.Horizon, "Horizon")
	cmd.PersistentFlags().IntVar(&maxConsecutiveErrors, "max-consecutive-errors", flags.MaxConsecutiveErrors, "Maximum number of consecutive errors")
	cmd.PersistentFlags().IntVar(&maxConsecutiveTimeouts, "max-consecutive-timeouts", flags.MaxConsecutiveTimeouts, "Maximum number of consecutive timeouts")
	cmd.PersistentFlags().IntVar(&episodeTimeout, "episode-timeout", int(flags.EpisodeTimeout.Seconds()), "Episode timeout in seconds")
	cmd.PersistentFlags().IntVar(&parallelism, "parallelism", flags.Parallelism, "Number of parallel runs")

	cmd.PersistentFlags().Float64Var(&alpha, "alpha", flags.Alpha, "Learning rate")
	cmd.PersistentFlags().Float64Var(&gamma, "gamma", flags.Gamma, "Discount factor")
	cmd.PersistentFlags().Float64Var(&epsilon, "epsilon", flags.Epsilon, "Exploration rate for epsilon greedy")
	cmd.PersistentFlags().Float64Var(&temperature, "temperature", flags.Temperature, "Softmax temperature")
}

func UpdateFlags() {
	flags.SavePath = savePath
	flags.DBPath = dbPath
	flags.Rows = rows
	flags.Cols = cols
	flags.PixelDensity = pixelDensity
	flags.TargLow = targLow
	flags.TargHigh = targHigh
	flags.Egocentric = egocentric
	flags.Harsh = harsh
	flags.Divide = divide
	flags.HoldOuts = holdOuts
	flags.Seed = seed

	flags.NumRuns = numRuns
	flags.Episodes = episodes
	flags.Horizon = horizon
	flags.MaxConsecutiveErrors = maxConsecutiveErrors
	flags.MaxConsecutiveTimeouts = maxConsecutiveTimeouts
	flags.EpisodeTimeout = time.Duration(episodeTimeout) * time.Second
	flags.Parallelism = parallelism

	flags.Alpha = alpha
	flags.Gamma = gamma
	flags.Epsilon = epsilon
	flags.Temperature = temperature
}
