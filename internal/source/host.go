package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shirou/gopsutil/v3/host"
	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/arnavsurve/devicectl/internal/device"
	"github.com/arnavsurve/devicectl/internal/process"
)

// Host reads the machine the process is running on. OS specifics are
// chosen at runtime from goos so every branch can be exercised in tests.
type Host struct {
	runner Commander
	logger *log.Logger
	goos   string
	sysfs  string

	hostInfo   func(context.Context) (*host.InfoStat, error)
	interfaces func(context.Context) (psnet.InterfaceStatList, error)
	lookPath   func(string) bool
}

type HostOption func(*Host)

func WithRunner(r Commander) HostOption {
	return func(h *Host) { h.runner = r }
}

// WithGOOS overrides runtime.GOOS.
func WithGOOS(goos string) HostOption {
	return func(h *Host) { h.goos = goos }
}

// WithSysfsRoot points linux reads at a directory other than /sys.
func WithSysfsRoot(root string) HostOption {
	return func(h *Host) { h.sysfs = root }
}

func withHostInfo(fn func(context.Context) (*host.InfoStat, error)) HostOption {
	return func(h *Host) { h.hostInfo = fn }
}

func withInterfaces(fn func(context.Context) (psnet.InterfaceStatList, error)) HostOption {
	return func(h *Host) { h.interfaces = fn }
}

func withLookPath(fn func(string) bool) HostOption {
	return func(h *Host) { h.lookPath = fn }
}

func NewHost(logger *log.Logger, opts ...HostOption) *Host {
	if logger == nil {
		logger = log.Default()
	}

	h := &Host{
		logger:     logger,
		goos:       runtime.GOOS,
		sysfs:      "/sys",
		hostInfo:   host.InfoWithContext,
		interfaces: psnet.InterfacesWithContext,
		lookPath:   process.CommandExists,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.runner == nil {
		h.runner = process.NewRunner(logger)
	}
	return h
}

func (h *Host) Identity(ctx context.Context) (Identity, error) {
	info, err := h.hostInfo(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("host info: %w", err)
	}

	id := Identity{
		Name:             info.Hostname,
		SystemName:       hostSystemName(h.goos, info),
		SystemVersion:    info.PlatformVersion,
		UniqueIdentifier: info.HostID,
	}

	switch h.goos {
	case "darwin":
		out, err := h.runner.RunSilent(ctx, "sysctl", []string{"-n", "hw.model"})
		if err != nil {
			h.logger.Debug("hw.model unavailable", "err", err)
		} else {
			id.HardwareID = strings.TrimSpace(string(out))
		}
		id.Family = device.FamilyMac
	case "linux":
		id.HardwareID = h.readSysfs("class/dmi/id/product_name")
		id.Model = h.readSysfs("class/dmi/id/product_family")
	}

	return id, nil
}

func hostSystemName(goos string, info *host.InfoStat) string {
	switch {
	case goos == "darwin":
		return device.OSMacOS.String()
	case info.Platform != "":
		return info.Platform
	default:
		return info.OS
	}
}

// Orientation has no snapshot API on any host; the value only arrives
// through WatchOrientation.
func (h *Host) Orientation(context.Context) (device.Orientation, error) {
	return device.OrientationUnknown, ErrUnsupported
}

// WatchOrientation follows iio-sensor-proxy on linux.
func (h *Host) WatchOrientation(ctx context.Context) (<-chan device.Orientation, error) {
	if h.goos != "linux" || !h.lookPath("monitor-sensor") {
		return nil, ErrUnsupported
	}

	return followCommand(ctx, h.logger, h.runner, "monitor-sensor", nil,
		func(_ context.Context, line string) (device.Orientation, bool) {
			return parseSensorLine(line)
		}), nil
}

func (h *Host) Battery(ctx context.Context) (Battery, error) {
	switch h.goos {
	case "darwin":
		out, err := h.runner.RunSilent(ctx, "pmset", []string{"-g", "batt"})
		if err != nil {
			return UnknownBattery, fmt.Errorf("pmset: %w", err)
		}
		return parsePmset(string(out))
	case "linux":
		return readPowerSupply(filepath.Join(h.sysfs, "class", "power_supply"))
	default:
		return UnknownBattery, ErrUnsupported
	}
}

// WatchBattery re-reads the battery on every power source event reported
// by the OS.
func (h *Host) WatchBattery(ctx context.Context) (<-chan Battery, error) {
	var name string
	var args []string

	switch h.goos {
	case "darwin":
		name, args = "pmset", []string{"-g", "pslog"}
	case "linux":
		name, args = "udevadm", []string{"monitor", "--udev", "--subsystem-match=power_supply"}
	default:
		return nil, ErrUnsupported
	}

	if !h.lookPath(name) {
		return nil, fmt.Errorf("%s not found: %w", name, ErrUnsupported)
	}

	return followCommand(ctx, h.logger, h.runner, name, args,
		func(ctx context.Context, _ string) (Battery, bool) {
			b, err := h.Battery(ctx)
			return b, err == nil
		}), nil
}

func (h *Host) ConnectionState(ctx context.Context) (device.ConnectionState, error) {
	ifaces, err := h.interfaces(ctx)
	if err != nil {
		return device.ConnectionStateUnknown, fmt.Errorf("interfaces: %w", err)
	}
	return classifyInterfaces(ifaces), nil
}

// WatchConnectionState re-reads the interfaces on every routing or link
// change reported by the OS.
func (h *Host) WatchConnectionState(ctx context.Context) (<-chan device.ConnectionState, error) {
	var name string
	var args []string

	switch h.goos {
	case "darwin":
		name, args = "route", []string{"-n", "monitor"}
	case "linux":
		name, args = "ip", []string{"monitor", "link", "address"}
	default:
		return nil, ErrUnsupported
	}

	if !h.lookPath(name) {
		return nil, fmt.Errorf("%s not found: %w", name, ErrUnsupported)
	}

	return followCommand(ctx, h.logger, h.runner, name, args,
		func(ctx context.Context, _ string) (device.ConnectionState, bool) {
			c, err := h.ConnectionState(ctx)
			return c, err == nil
		}), nil
}

func (h *Host) readSysfs(rel string) string {
	data, err := os.ReadFile(filepath.Join(h.sysfs, rel))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
