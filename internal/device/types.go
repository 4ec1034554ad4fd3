package device

import "strings"

// Idiom is the coarse form factor of a device.
type Idiom int

const (
	IdiomPhone Idiom = iota
	IdiomPad
	IdiomDesktop
)

func (i Idiom) String() string {
	switch i {
	case IdiomPhone:
		return "phone"
	case IdiomPad:
		return "pad"
	default:
		return "desktop"
	}
}

// BatteryState represents the charging state of the battery
type BatteryState int

const (
	BatteryStateUnknown BatteryState = iota
	BatteryStateUnplugged
	BatteryStateCharging
	BatteryStateFull
)

func (s BatteryState) String() string {
	switch s {
	case BatteryStateUnplugged:
		return "unplugged"
	case BatteryStateCharging:
		return "charging"
	case BatteryStateFull:
		return "full"
	default:
		return "unknown"
	}
}

// ParseBatteryState accepts the names produced by String. Anything else is
// BatteryStateUnknown.
func ParseBatteryState(s string) BatteryState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unplugged", "discharging":
		return BatteryStateUnplugged
	case "charging":
		return BatteryStateCharging
	case "full", "charged":
		return BatteryStateFull
	default:
		return BatteryStateUnknown
	}
}

// ConnectionState describes how the device currently reaches the network.
// Wired links report as ConnectionStateWiFi: the only distinction made is
// cellular versus everything else.
type ConnectionState int

const (
	ConnectionStateUnknown ConnectionState = iota
	ConnectionStateMobile
	ConnectionStateWiFi
	ConnectionStateDisconnected
)

func (c ConnectionState) String() string {
	switch c {
	case ConnectionStateMobile:
		return "mobile"
	case ConnectionStateWiFi:
		return "wifi"
	case ConnectionStateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

func ParseConnectionState(s string) ConnectionState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mobile", "cellular", "wwan":
		return ConnectionStateMobile
	case "wifi", "wi-fi", "ethernet":
		return ConnectionStateWiFi
	case "disconnected", "offline", "none":
		return ConnectionStateDisconnected
	default:
		return ConnectionStateUnknown
	}
}

// MarshalText lets the enums render by name in JSON output.
func (i Idiom) MarshalText() ([]byte, error)           { return []byte(i.String()), nil }
func (s BatteryState) MarshalText() ([]byte, error)    { return []byte(s.String()), nil }
func (c ConnectionState) MarshalText() ([]byte, error) { return []byte(c.String()), nil }
