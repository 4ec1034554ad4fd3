package cli

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/devicectl/internal/notify"
)

func watchCmd(a *app) *cobra.Command {
	var (
		orientation bool
		battery     bool
		connection  bool
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream device change notifications",
		Long: `Enable the selected monitors and print one line per change until
interrupted. With no selection every monitor is enabled. A warning is
printed for each selected monitor the source cannot stream.`,
		Example: `  devicectl watch
  devicectl watch --battery --connection
  devicectl watch --json --source fixture --fixture ./iphone.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !orientation && !battery && !connection {
				orientation, battery, connection = true, true, true
			}

			d, err := a.newDevice(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			renderer := a.renderer()
			enc := json.NewEncoder(a.stdout)

			// Events for different monitors arrive on different goroutines.
			var mu sync.Mutex
			show := func(ev notify.Event) {
				mu.Lock()
				defer mu.Unlock()
				if jsonOut {
					if err := enc.Encode(ev); err != nil {
						a.logger.Warn("failed to write event", "event", ev.Name, "err", err)
					}
					return
				}
				renderer.RenderEvent(ev)
			}

			var names []string
			subscribe := func(n notify.Name) {
				d.Bus().Subscribe(n, show)
				names = append(names, string(n))
			}
			unavailable := func(what string, on bool) {
				if on {
					renderer.Warning("%s changes are not available from source %q", what, a.cfg.Source)
				}
			}

			if orientation {
				subscribe(notify.OrientationDidChange)
				d.SetGeneratesOrientationNotifications(true)
			}
			if battery {
				subscribe(notify.BatteryLevelDidChange)
				subscribe(notify.BatteryStateDidChange)
				d.SetBatteryMonitoringEnabled(true)
			}
			if connection {
				subscribe(notify.ConnectionStateDidChange)
				d.SetGeneratesConnectionStateNotifications(true)
			}

			streaming := d.Streaming()
			unavailable("orientation", orientation && !streaming.Orientation)
			unavailable("battery", battery && !streaming.Battery)
			unavailable("connection state", connection && !streaming.Connection)

			if !jsonOut {
				renderer.Dim("watching %s (ctrl-c to stop)", strings.Join(names, ", "))
			}

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().BoolVar(&orientation, "orientation", false, "Watch orientation changes")
	cmd.Flags().BoolVar(&battery, "battery", false, "Watch battery level and state changes")
	cmd.Flags().BoolVar(&connection, "connection", false, "Watch connection state changes")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print events as JSON lines")

	return cmd
}
