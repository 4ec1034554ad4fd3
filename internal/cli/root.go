package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/arnavsurve/devicectl/internal/config"
	"github.com/arnavsurve/devicectl/internal/devinfo"
	"github.com/arnavsurve/devicectl/internal/source"
	"github.com/arnavsurve/devicectl/internal/ui"
)

// app is the state shared by every subcommand, filled in before each run.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *log.Logger

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devicectl",
		Short: "Device identity, state and change notifications",
		Long: `devicectl reports what a device is and what it is doing: identity,
platform, orientation, battery, connectivity and capabilities.

Common workflows:
  devicectl info                   Everything about this machine
  devicectl info --source simulator Identity of the booted simulator
  devicectl watch --battery        Stream battery changes
  devicectl platform iPhone16,1    Look up a hardware identifier`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = config.NewLogger(a.stderr, cfg.LogLevel)
			if cfg.File == "" {
				a.logger.Debug("no config file found, using defaults")
			} else {
				a.logger.Debug("loaded config", "file", cfg.File)
			}
			return nil
		},
	}

	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Config file (default ./devicectl.yaml or ~/.config/devicectl/devicectl.yaml)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("source", config.SourceHost, "Where device values come from (host, simulator, fixture)")
	flags.String("simulator", "booted", "Simulator name or UDID for --source simulator")
	flags.String("fixture", "", "JSON state file for --source fixture")
	flags.Duration("fixture-debounce", 0, "Delay before re-reading a changed fixture file")

	bindFlags(a.v, flags)

	rootCmd.AddCommand(infoCmd(a))
	rootCmd.AddCommand(watchCmd(a))
	rootCmd.AddCommand(platformCmd(a))
	rootCmd.AddCommand(modelsCmd(a))
	rootCmd.AddCommand(simulatorsCmd(a))

	return rootCmd
}

// bindFlags maps persistent flags onto config keys so flags override the
// config file and environment.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for key, flag := range map[string]string{
		"log_level":        "log-level",
		"source":           "source",
		"simulator.device": "simulator",
		"fixture.path":     "fixture",
		"fixture.debounce": "fixture-debounce",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
}

func Execute(ctx context.Context, version string) error {
	a := &app{v: config.New(), stdout: os.Stdout, stderr: os.Stderr}
	rootCmd := newRootCmd(a)
	rootCmd.Version = version
	return rootCmd.ExecuteContext(ctx)
}

func (a *app) renderer() *ui.Renderer {
	return ui.NewRenderer(a.stdout, a.stderr)
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// sources builds the source set selected by configuration.
func (a *app) sources() (source.Set, error) {
	switch a.cfg.Source {
	case config.SourceHost:
		h := source.NewHost(a.logger)
		return source.Set{Identity: h, Orientation: h, Power: h, Reachability: h}, nil

	case config.SourceSimulator:
		sims := source.NewSimulators(a.logger, nil)
		// Simulators share the host's network stack.
		return source.Set{
			Identity:     source.NewSimulator(sims, a.cfg.Simulator.Device),
			Reachability: source.NewHost(a.logger),
		}, nil

	case config.SourceFixture:
		f := source.NewFixture(a.cfg.Fixture.Path, a.cfg.Fixture.Debounce, a.logger)
		return source.Set{Identity: f, Orientation: f, Power: f, Reachability: f}, nil

	default:
		return source.Set{}, fmt.Errorf("unknown source %q", a.cfg.Source)
	}
}

func (a *app) newDevice(ctx context.Context) (*devinfo.Device, error) {
	set, err := a.sources()
	if err != nil {
		return nil, err
	}
	a.logger.Debug("device source", "source", a.cfg.Source)
	return devinfo.New(ctx, set, devinfo.WithLogger(a.logger)), nil
}
