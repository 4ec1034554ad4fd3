package source

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/arnavsurve/devicectl/internal/device"
)

// -InternalBattery-0 (id=4653155)	82%; discharging; 4:37 remaining present: true
var pmsetBatteryPattern = regexp.MustCompile(`-InternalBattery-\d+.*?(\d+)%;\s*([^;]+);`)

func parsePmset(out string) (Battery, error) {
	m := pmsetBatteryPattern.FindStringSubmatch(out)
	if m == nil {
		return UnknownBattery, ErrUnsupported
	}

	pct, err := strconv.Atoi(m[1])
	if err != nil {
		return UnknownBattery, fmt.Errorf("pmset percentage %q: %w", m[1], err)
	}
	level := clampLevel(float32(pct) / 100)

	var state device.BatteryState
	switch strings.TrimSpace(m[2]) {
	case "charged":
		state = device.BatteryStateFull
	case "charging", "finishing charge":
		state = device.BatteryStateCharging
	case "discharging":
		state = device.BatteryStateUnplugged
	case "AC attached":
		// plugged in but held, e.g. by optimised charging
		if pct >= 100 {
			state = device.BatteryStateFull
		} else {
			state = device.BatteryStateCharging
		}
	default:
		state = device.BatteryStateUnknown
	}

	return Battery{Level: level, State: state}, nil
}

// readPowerSupply reads the first system battery under
// /sys/class/power_supply. Peripheral batteries (scope "Device") are
// skipped.
func readPowerSupply(dir string) (Battery, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return UnknownBattery, ErrUnsupported
		}
		return UnknownBattery, fmt.Errorf("power_supply: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		supply := filepath.Join(dir, name)
		if readAttr(supply, "type") != "Battery" {
			continue
		}
		if readAttr(supply, "scope") == "Device" {
			continue
		}
		return Battery{
			Level: supplyLevel(supply),
			State: supplyState(readAttr(supply, "status")),
		}, nil
	}

	return UnknownBattery, ErrUnsupported
}

func supplyLevel(supply string) float32 {
	if v, ok := readIntAttr(supply, "capacity"); ok {
		return clampLevel(float32(v) / 100)
	}
	for _, pair := range [][2]string{{"energy_now", "energy_full"}, {"charge_now", "charge_full"}} {
		now, ok1 := readIntAttr(supply, pair[0])
		full, ok2 := readIntAttr(supply, pair[1])
		if ok1 && ok2 && full > 0 {
			return clampLevel(float32(now) / float32(full))
		}
	}
	return -1
}

func supplyState(status string) device.BatteryState {
	switch status {
	case "Charging":
		return device.BatteryStateCharging
	case "Discharging":
		return device.BatteryStateUnplugged
	case "Full", "Not charging":
		return device.BatteryStateFull
	default:
		return device.BatteryStateUnknown
	}
}

func readAttr(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func readIntAttr(dir, name string) (int64, bool) {
	v, err := strconv.ParseInt(readAttr(dir, name), 10, 64)
	return v, err == nil
}

func clampLevel(l float32) float32 {
	switch {
	case l < 0:
		return 0
	case l > 1:
		return 1
	default:
		return l
	}
}
