package devinfo

import (
	"context"

	"github.com/arnavsurve/devicectl/internal/device"
)

type Monitoring struct {
	Orientation bool `json:"orientation"`
	Battery     bool `json:"battery"`
	Connection  bool `json:"connection"`
}

// Snapshot is every value the facade exposes, read at one point in time.
type Snapshot struct {
	Name               string                 `json:"name"`
	SystemName         string                 `json:"system_name"`
	SystemVersion      string                 `json:"system_version"`
	Model              string                 `json:"model"`
	UniqueIdentifier   string                 `json:"unique_identifier"`
	HardwareIdentifier string                 `json:"hardware_identifier"`
	Platform           device.Platform        `json:"platform"`
	Idiom              device.Idiom           `json:"idiom"`
	Orientation        device.Orientation     `json:"orientation"`
	BatteryLevel       float32                `json:"battery_level"`
	BatteryState       device.BatteryState    `json:"battery_state"`
	ConnectionState    device.ConnectionState `json:"connection_state"`
	Capabilities       device.Capabilities    `json:"capabilities"`
	Monitoring         Monitoring             `json:"monitoring"`
}

// Snapshot reads the identity source once and every state source once.
func (d *Device) Snapshot(ctx context.Context) Snapshot {
	id := d.identity(ctx)
	p := platformFor(id)
	b := d.readBattery(ctx)

	return Snapshot{
		Name:               id.Name,
		SystemName:         id.SystemName,
		SystemVersion:      id.SystemVersion,
		Model:              modelFor(id, p),
		UniqueIdentifier:   id.UniqueIdentifier,
		HardwareIdentifier: id.HardwareID,
		Platform:           p,
		Idiom:              p.Idiom(),
		Orientation:        d.Orientation(ctx),
		BatteryLevel:       b.Level,
		BatteryState:       b.State,
		ConnectionState:    d.ConnectionState(ctx),
		Capabilities:       device.CapabilitiesFor(id.SystemName, id.SystemVersion, p),
		Monitoring: Monitoring{
			Orientation: d.GeneratesOrientationNotifications(),
			Battery:     d.BatteryMonitoringEnabled(),
			Connection:  d.GeneratesConnectionStateNotifications(),
		},
	}
}
