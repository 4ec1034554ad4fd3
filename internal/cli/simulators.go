package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/devicectl/internal/source"
	"github.com/arnavsurve/devicectl/internal/ui"
)

func simulatorsCmd(a *app) *cobra.Command {
	var (
		booted  bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "simulators",
		Short: "List available simulators",
		Long:  `List the simulators xcrun simctl knows about. Any of them can be used with --source simulator --simulator <name|udid>.`,
		Example: `  devicectl simulators
  devicectl simulators --booted
  devicectl simulators --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sims := source.NewSimulators(a.logger, nil)
			renderer := a.renderer()

			if !jsonOut {
				renderer.StartSpinner("Listing simulators...")
			}
			devices, err := sims.List(ctx, booted)
			renderer.StopSpinner()
			if err != nil {
				if !jsonOut {
					renderer.Error("Could not list simulators")
				}
				return fmt.Errorf("failed to list simulators: %w", err)
			}

			if jsonOut {
				return a.writeJSON(devices)
			}

			if len(devices) > 0 {
				renderer.Success("Found %d simulators", len(devices))
			}

			display := make([]ui.DeviceInfo, len(devices))
			for i, d := range devices {
				display[i] = ui.DeviceInfo{
					Name:      d.Name,
					UDID:      d.UDID,
					State:     string(d.State),
					OSVersion: d.OSVersion,
					Platform:  d.OSName,
				}
			}
			renderer.RenderDeviceList(display)
			return nil
		},
	}

	cmd.Flags().BoolVar(&booted, "booted", false, "Show only booted simulators")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
