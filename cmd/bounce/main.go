package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/1broseidon/bounce/internal/ipc"
)

// Set via -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	socketPath string
	verbose    bool
	jsonOut    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "bounce",
		Short: "Golden-ratio tiling for X11 desktops",
		Long: `bounce keeps the windows of the current desktop in a golden-ratio
partition of the work area. New windows split the region under the pointer,
closed windows hand their space to their neighbours, and dragging a window
onto another swaps their places in the tiling order.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(fmt.Sprintf("bounce %s\ncommit: %s\n", version, commit))

	pf := root.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&opts.configPath, "config", "", "config file path (default: ~/.config/bounce/config.yaml)")
	pf.StringVar(&opts.socketPath, "socket", "", "daemon socket path (default: $XDG_RUNTIME_DIR/bounce.sock)")
	pf.BoolVar(&opts.jsonOut, "json", false, "print JSON (default when stdout is not a terminal)")

	root.AddCommand(newDaemonCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newEnableCmd(opts))
	root.AddCommand(newDisableCmd(opts))
	root.AddCommand(newToggleCmd(opts))
	root.AddCommand(newRetileCmd(opts))
	root.AddCommand(newCenterCmd(opts))
	root.AddCommand(newRegionsCmd(opts))
	root.AddCommand(newReloadCmd(opts))
	root.AddCommand(newLayoutCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newMCPCmd(opts))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bounce %s\ncommit: %s\n", version, commit)
		},
	})

	return root
}

func (o *rootOptions) client() *ipc.Client {
	if o.socketPath != "" {
		return ipc.NewClientAt(o.socketPath)
	}
	return ipc.NewClient()
}
