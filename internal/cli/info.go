package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func infoCmd(a *app) *cobra.Command {
	var (
		jsonOut bool
		passive bool
		settle  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show device identity, state and capabilities",
		Long: `Show everything the device facade reports. Orientation and battery are
only read while their monitors are on, so info turns them on unless
--passive is given.

Some sources cannot read orientation on demand and only report it when it
changes (the host source on Linux uses monitor-sensor). For those, info
waits up to --settle for the first reading and otherwise reports unknown.`,
		Example: `  devicectl info
  devicectl info --json
  devicectl info --source fixture --fixture ./iphone.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			d, err := a.newDevice(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			if !passive {
				d.SetGeneratesOrientationNotifications(true)
				d.SetBatteryMonitoringEnabled(true)
				d.WaitOrientation(ctx, settle)
			}

			snap := d.Snapshot(ctx)

			if jsonOut {
				return a.writeJSON(snap)
			}

			a.renderer().RenderSnapshot(snap)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&passive, "passive", false, "Do not enable orientation and battery monitoring")
	cmd.Flags().DurationVar(&settle, "settle", 500*time.Millisecond, "How long to wait for a streamed orientation reading")

	return cmd
}
