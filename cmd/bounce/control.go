package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/1broseidon/bounce/internal/ipc"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := opts.client().GetStatus()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.wantJSON(out) {
				return writeJSON(out, status)
			}
			printStatus(out, status)
			return nil
		},
	}
}

func printStatus(w io.Writer, s *ipc.StatusData) {
	fmt.Fprintf(w, "enabled:        %v\n", s.Enabled)
	fmt.Fprintf(w, "mode:           %s\n", s.Mode)
	fmt.Fprintf(w, "windows:        %d\n", s.WindowCount)
	fmt.Fprintf(w, "pending_tasks:  %d\n", s.PendingTasks)
	fmt.Fprintf(w, "uptime_seconds: %d\n", s.UptimeSeconds)
	if s.ConfigPath != "" {
		fmt.Fprintf(w, "config:         %s\n", s.ConfigPath)
	}
	fmt.Fprintf(w, "instance:       %s\n", s.InstanceID)
}

func newEnableCmd(opts *rootOptions) *cobra.Command {
	return enabledCmd(opts, "enable", "Turn tiling on and retile every window", (*ipc.Client).Enable)
}

func newDisableCmd(opts *rootOptions) *cobra.Command {
	return enabledCmd(opts, "disable", "Turn tiling off, leaving windows where they are", (*ipc.Client).Disable)
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return enabledCmd(opts, "toggle", "Flip tiling on or off", (*ipc.Client).Toggle)
}

func enabledCmd(opts *rootOptions, use, short string, call func(*ipc.Client) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := call(opts.client())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.wantJSON(out) {
				return writeJSON(out, ipc.EnabledData{Enabled: enabled})
			}
			fmt.Fprintf(out, "tiling %s\n", onOff(enabled))
			return nil
		},
	}
}

func onOff(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func newRetileCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "retile",
		Short: "Re-partition the work area among all tracked windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			retiled, err := opts.client().Retile()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.wantJSON(out) {
				return writeJSON(out, ipc.RetileData{Retiled: retiled})
			}
			if !retiled {
				fmt.Fprintln(out, "tiling is disabled; nothing to retile")
				return nil
			}
			fmt.Fprintln(out, "retiled")
			return nil
		},
	}
}

func newCenterCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "center",
		Short: "Turn tiling off and stack every window in the middle of the screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := opts.client().Center()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.wantJSON(out) {
				return writeJSON(out, data)
			}
			fmt.Fprintf(out, "centered %d window(s); tiling %s\n", data.Centered, onOff(data.Enabled))
			return nil
		},
	}
}

func newRegionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List tracked windows and their regions in tiling order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := opts.client().GetRegions()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.wantJSON(out) {
				return writeJSON(out, data)
			}
			printRegions(out, data)
			return nil
		},
	}
}

func printRegions(w io.Writer, data *ipc.RegionsData) {
	if !data.Enabled {
		fmt.Fprintln(w, "tiling is disabled")
		return
	}
	fmt.Fprintf(w, "work area: %s\n", formatRect(data.WorkArea))
	if len(data.Regions) == 0 {
		fmt.Fprintln(w, "no windows tracked")
		return
	}
	for i, r := range data.Regions {
		fmt.Fprintf(w, "%2d  0x%08x  %s\n", i+1, r.Window, formatRect(r.Rect))
	}
}

func formatRect(r ipc.Rect) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

func newReloadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Ask the daemon to re-read its config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().Reload(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config reloaded")
			return nil
		},
	}
}
