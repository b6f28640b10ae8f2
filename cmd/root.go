package cmd

import "github.com/spf13/cobra"

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gordongames",
		Short: "Grid world counting games",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			UpdateFlags()
		},
	}
	AddFlags(cmd)

	cmd.AddCommand(
		RunCommand(),
		PlayCommand(),
		ListCommand(),
	)

	return cmd
}
