package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/bounce/internal/daemon"
)

func newDaemonCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the tiling daemon in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return daemon.Run(daemon.Options{
				ConfigPath: opts.configPath,
				SocketPath: opts.socketPath,
				Verbose:    opts.verbose,
				Stderr:     cmd.ErrOrStderr(),
			})
		},
	}
}
