package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grantsrb/gordongames/games"
	"github.com/grantsrb/gordongames/viewer"
)

func PlayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <game>",
		Short: "Play a game interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.GameConfig()
			env, err := games.Make(args[0], cfg)
			if err != nil {
				return err
			}

			view, err := viewer.New()
			if err != nil {
				return err
			}
			defer view.Close()

			return playLoop(env, view)
		},
	}

	return cmd
}

func playLoop(env *games.Env, view *viewer.Viewer) error {
	frame, err := env.Reset()
	if err != nil {
		return err
	}
	total := 0.0
	done := false
	view.Draw(frame, status(env, total, done))

	for {
		command, action := view.Poll()
		switch command {
		case viewer.CommandQuit:
			return nil
		case viewer.CommandReset:
			frame, err = env.Reset()
			if err != nil {
				return err
			}
			total = 0
			done = false
		case viewer.CommandAction:
			if done {
				continue
			}
			var rew float64
			frame, rew, done, _, err = env.Step(action)
			if err != nil {
				return err
			}
			total += rew
		default:
			continue
		}
		view.Draw(frame, status(env, total, done))
	}
}

func status(env *games.Env, total float64, done bool) string {
	if done {
		return fmt.Sprintf("%s  targs=%d  reward=%.0f  episode over, press r", env.Name(), env.NTargs(), total)
	}
	return fmt.Sprintf("%s  targs=%d  step=%d  reward=%.0f", env.Name(), env.NTargs(), env.StepCount(), total)
}
