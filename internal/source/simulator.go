package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/arnavsurve/devicectl/internal/device"
	"github.com/arnavsurve/devicectl/internal/process"
)

type SimState string

const (
	SimStateShutdown     SimState = "Shutdown"
	SimStateBooted       SimState = "Booted"
	SimStateBooting      SimState = "Booting"
	SimStateShuttingDown SimState = "Shutting Down"
)

// SimDevice is one entry of `simctl list devices`.
type SimDevice struct {
	UDID         string    `json:"udid"`
	Name         string    `json:"name"`
	OS           device.OS `json:"-"`
	OSName       string    `json:"os"`
	OSVersion    string    `json:"os_version"`
	State        SimState  `json:"state"`
	IsAvailable  bool      `json:"is_available"`
	DeviceTypeID string    `json:"device_type"`
}

func (d *SimDevice) Booted() bool { return d.State == SimStateBooted }

// Simulators wraps xcrun simctl.
type Simulators struct {
	runner Commander
	logger *log.Logger
}

func NewSimulators(logger *log.Logger, runner Commander) *Simulators {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = process.NewRunner(logger)
	}
	return &Simulators{runner: runner, logger: logger}
}

func (s *Simulators) List(ctx context.Context, onlyBooted bool) ([]*SimDevice, error) {
	result, err := s.runner.RunGJSON(ctx, "xcrun", []string{"simctl", "list", "devices", "-j"})
	if err != nil {
		return nil, fmt.Errorf("simctl list: %w", err)
	}

	var devices []*SimDevice

	result.Get("devices").ForEach(func(runtime, devicesArray gjson.Result) bool {
		osLine, version := parseRuntime(runtime.String())

		devicesArray.ForEach(func(_, dev gjson.Result) bool {
			if !dev.Get("isAvailable").Bool() {
				return true
			}

			state := SimState(dev.Get("state").String())
			if onlyBooted && state != SimStateBooted {
				return true
			}

			devices = append(devices, &SimDevice{
				UDID:         dev.Get("udid").String(),
				Name:         dev.Get("name").String(),
				OS:           osLine,
				OSName:       osLine.String(),
				OSVersion:    version,
				State:        state,
				IsAvailable:  true,
				DeviceTypeID: dev.Get("deviceTypeIdentifier").String(),
			})
			return true
		})
		return true
	})

	return devices, nil
}

// Get finds a device by UDID (exact), name (exact, case-insensitive), or
// name substring. An empty query or "booted" picks the first booted device.
func (s *Simulators) Get(ctx context.Context, nameOrUDID string) (*SimDevice, error) {
	query := strings.TrimSpace(nameOrUDID)
	bootedOnly := query == "" || strings.EqualFold(query, "booted")

	devices, err := s.List(ctx, bootedOnly)
	if err != nil {
		return nil, err
	}

	if bootedOnly {
		if len(devices) == 0 {
			return nil, fmt.Errorf("no booted simulator")
		}
		return devices[0], nil
	}

	for _, d := range devices {
		if d.UDID == query {
			return d, nil
		}
	}

	lower := strings.ToLower(query)
	for _, d := range devices {
		if strings.ToLower(d.Name) == lower {
			return d, nil
		}
	}

	for _, d := range devices {
		if strings.Contains(strings.ToLower(d.Name), lower) {
			return d, nil
		}
	}

	return nil, fmt.Errorf("simulator not found: %s", query)
}

// ModelIdentifier returns the hardware identifier a booted simulator
// reports to apps, e.g. "iPhone15,2".
func (s *Simulators) ModelIdentifier(ctx context.Context, d *SimDevice) (string, error) {
	if !d.Booted() {
		return "", fmt.Errorf("%s is not booted: %w", d.Name, ErrUnsupported)
	}

	out, err := s.runner.RunSilent(ctx, "xcrun", []string{"simctl", "getenv", d.UDID, "SIMULATOR_MODEL_IDENTIFIER"})
	if err != nil {
		return "", fmt.Errorf("simctl getenv %s: %w", d.Name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Simulator is the identity source for one simulator. The device is
// resolved on every read so renames and reboots are picked up.
type Simulator struct {
	sims  *Simulators
	query string
}

func NewSimulator(sims *Simulators, nameOrUDID string) *Simulator {
	return &Simulator{sims: sims, query: nameOrUDID}
}

func (s *Simulator) Identity(ctx context.Context) (Identity, error) {
	d, err := s.sims.Get(ctx, s.query)
	if err != nil {
		return Identity{}, err
	}

	id := Identity{
		Name:             d.Name,
		SystemName:       d.OS.String(),
		SystemVersion:    d.OSVersion,
		UniqueIdentifier: d.UDID,
		Family:           familyFromDeviceType(d.DeviceTypeID),
	}
	id.Model = id.Family.Model()

	hw, err := s.sims.ModelIdentifier(ctx, d)
	if err != nil {
		s.sims.logger.Debug("simulator model identifier unavailable", "udid", d.UDID, "err", err)
	} else {
		id.HardwareID = hw
	}

	return id, nil
}

// familyFromDeviceType maps a simctl device type identifier such as
// com.apple.CoreSimulator.SimDeviceType.iPhone-15-Pro to a family.
func familyFromDeviceType(id string) device.Family {
	id = strings.ToLower(id)
	switch {
	case strings.Contains(id, "iphone"):
		return device.FamilyPhone
	case strings.Contains(id, "ipod"):
		return device.FamilyPod
	case strings.Contains(id, "ipad"):
		return device.FamilyPad
	case strings.Contains(id, "watch"):
		return device.FamilyWatch
	case strings.Contains(id, "tv"):
		return device.FamilyTV
	default:
		return device.FamilySimulator
	}
}

// parseRuntime splits a runtime identifier such as
// com.apple.CoreSimulator.SimRuntime.iOS-17-4 into its OS and "17.4".
func parseRuntime(runtime string) (device.OS, string) {
	runtime = strings.ToLower(runtime)

	var osLine device.OS
	switch {
	case strings.Contains(runtime, "ios"):
		osLine = device.OSiOS
	case strings.Contains(runtime, "macos"):
		osLine = device.OSMacOS
	case strings.Contains(runtime, "watchos"):
		osLine = device.OSWatchOS
	case strings.Contains(runtime, "tvos"):
		osLine = device.OSTVOS
	case strings.Contains(runtime, "xros"), strings.Contains(runtime, "visionos"):
		osLine = device.OSVisionOS
	default:
		osLine = device.OSOther
	}

	var parts []string
	fields := strings.Split(runtime, "-")
	for i := len(fields) - 1; i > 0; i-- {
		if fields[i] == "" || fields[i][0] < '0' || fields[i][0] > '9' {
			break
		}
		parts = append([]string{fields[i]}, parts...)
	}

	return osLine, strings.Join(parts, ".")
}
