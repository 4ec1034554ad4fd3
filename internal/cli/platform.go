package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/devicectl/internal/device"
)

type platformResult struct {
	Identifier string          `json:"identifier"`
	Platform   device.Platform `json:"platform"`
	Family     device.Family   `json:"family"`
	Idiom      device.Idiom    `json:"idiom"`
	Model      string          `json:"model"`
	Known      bool            `json:"known"`
}

func platformCmd(a *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "platform <hardware-id>...",
		Short: "Look up hardware identifiers",
		Long:  `Classify hardware identifiers such as iPhone16,1 or MacBookPro18,3. Unrecognised identifiers resolve to an unknown platform for their family.`,
		Example: `  devicectl platform iPhone16,1
  devicectl platform iPad13,18 Watch6,18 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !jsonOut {
				a.renderer().RenderPlatforms(args)
				return nil
			}

			results := make([]platformResult, len(args))
			for i, id := range args {
				p := device.LookupPlatform(id)
				results[i] = platformResult{
					Identifier: id,
					Platform:   p,
					Family:     p.Family(),
					Idiom:      p.Idiom(),
					Model:      p.Model(),
					Known:      !p.IsUnknown(),
				}
			}
			return a.writeJSON(results)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

func modelsCmd(a *app) *cobra.Command {
	var (
		family  string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List every known hardware identifier",
		Example: `  devicectl models
  devicectl models --family ipad`,
		RunE: func(cmd *cobra.Command, args []string) error {
			models := device.Models()

			if family != "" {
				f, ok := device.ParseFamily(family)
				if !ok {
					return fmt.Errorf("unknown family %q", family)
				}
				filtered := models[:0]
				for _, m := range models {
					if m.Family == f {
						filtered = append(filtered, m)
					}
				}
				models = filtered
			}

			if jsonOut {
				return a.writeJSON(models)
			}

			a.renderer().RenderModels(models)
			return nil
		},
	}

	cmd.Flags().StringVarP(&family, "family", "f", "", "Filter by family (iphone, ipod, ipad, mac, appletv, watch)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
