package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/grantsrb/gordongames/analysis"
	"github.com/grantsrb/gordongames/core"
	"github.com/grantsrb/gordongames/games"
	"github.com/grantsrb/gordongames/policies"
	"github.com/grantsrb/gordongames/storage"
)

func ListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available games",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range games.Names() {
				fmt.Println(name)
			}
		},
	}
}

func RunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [games...]",
		Short: "Run policies over the games and compare results",
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)

			doneCh := make(chan struct{})

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				select {
				case <-sigCh:
				case <-doneCh:
				}
				cancel()
			}()
			defer close(doneCh)

			gameNames := args
			if len(gameNames) == 0 {
				gameNames = games.Names()
			}
			cfg := flags.GameConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			for _, name := range gameNames {
				if _, err := games.Make(name, cfg); err != nil {
					return err
				}
			}
			flags.Record()

			cmp := core.NewParallelComparison()
			policyConstructors := []struct {
				name string
				cons core.PolicyConstructor
			}{
				{"random", &policies.RandomPolicyConstructor{}},
				{"egreedy", &policies.EpsilonGreedyPolicyConstructor{
					Alpha:   flags.Alpha,
					Gamma:   flags.Gamma,
					Epsilon: flags.Epsilon,
				}},
				{"softmax", &policies.SoftMaxPolicyConstructor{
					Alpha:       flags.Alpha,
					Gamma:       flags.Gamma,
					Temperature: flags.Temperature,
				}},
			}
			for _, gameName := range gameNames {
				for _, pc := range policyConstructors {
					cmp.AddExperiment(&core.ParallelExperiment{
						Name:        gameName + "-" + pc.name,
						Environment: &games.Constructor{GameName: gameName, Cfg: cfg},
						Policy:      pc.cons,
					})
				}
			}

			cmp.AddAnalysis(
				"reward",
				&analysis.RewardAnalyzerConstructor{},
				analysis.NewRewardComparatorConstructor(flags.SavePath),
			)
			cmp.AddAnalysis(
				"targ-count",
				&analysis.TargCountAnalyzerConstructor{},
				analysis.NewTargCountComparatorConstructor(flags.SavePath),
			)
			if flags.DBPath != "" {
				store := storage.NewSQLiteStore(flags.DBPath)
				if err := store.Init(ctx); err != nil {
					return err
				}
				defer store.Close()
				cmp.AddAnalysis(
					"record",
					&analysis.RecordAnalyzerConstructor{Store: store},
					analysis.NoOpComparatorConstructor{},
				)
			}

			cmp.Run(ctx, flags.NumRuns, &core.RunConfig{
				Episodes:                     flags.Episodes,
				Horizon:                      flags.Horizon,
				ThresholdConsecutiveErrors:   flags.MaxConsecutiveErrors,
				ThresholdConsecutiveTimeouts: flags.MaxConsecutiveTimeouts,
				EpisodeTimeout:               flags.EpisodeTimeout,
			}, flags.Parallelism)
			return nil
		},
	}

	return cmd
}
