// Package source holds the boundary collaborators the device facade reads
// from: hardware identification, the orientation sensor, the power source
// and network reachability. Each is backed by the host OS, a simulator or a
// fixture file.
//
// Sources report failures as errors. Turning those into "unknown" values is
// the facade's job.
package source

import (
	"context"
	"errors"

	"github.com/tidwall/gjson"

	"github.com/arnavsurve/devicectl/internal/device"
	"github.com/arnavsurve/devicectl/internal/process"
)

// ErrUnsupported is returned when a source has no way to provide a value.
var ErrUnsupported = errors.New("not supported by this source")

// Identity is the static identification of a device.
type Identity struct {
	Name             string
	SystemName       string
	SystemVersion    string
	Model            string
	HardwareID       string
	UniqueIdentifier string
	// Family is a hint used when HardwareID is empty or unrecognised.
	Family device.Family
}

// Battery is a power source reading. Level is in [0,1], or -1 if unknown.
type Battery struct {
	Level float32
	State device.BatteryState
}

// UnknownBattery is what a battery reads as when no value is available.
var UnknownBattery = Battery{Level: -1, State: device.BatteryStateUnknown}

type IdentitySource interface {
	Identity(ctx context.Context) (Identity, error)
}

// The Watch methods return a channel of new readings that is closed when
// ctx is cancelled or the underlying stream ends.

type OrientationSource interface {
	Orientation(ctx context.Context) (device.Orientation, error)
	WatchOrientation(ctx context.Context) (<-chan device.Orientation, error)
}

type PowerSource interface {
	Battery(ctx context.Context) (Battery, error)
	WatchBattery(ctx context.Context) (<-chan Battery, error)
}

type ReachabilitySource interface {
	ConnectionState(ctx context.Context) (device.ConnectionState, error)
	WatchConnectionState(ctx context.Context) (<-chan device.ConnectionState, error)
}

// Set bundles one source per concern. Nil members read as unsupported.
type Set struct {
	Identity     IdentitySource
	Orientation  OrientationSource
	Power        PowerSource
	Reachability ReachabilitySource
}

// Normalized returns s with nil members replaced by Unsupported.
func (s Set) Normalized() Set {
	if s.Identity == nil {
		s.Identity = Unsupported{}
	}
	if s.Orientation == nil {
		s.Orientation = Unsupported{}
	}
	if s.Power == nil {
		s.Power = Unsupported{}
	}
	if s.Reachability == nil {
		s.Reachability = Unsupported{}
	}
	return s
}

// Commander runs OS tools. *process.Runner satisfies it.
type Commander interface {
	RunSilent(ctx context.Context, name string, args []string) ([]byte, error)
	RunGJSON(ctx context.Context, name string, args []string) (gjson.Result, error)
	Run(ctx context.Context, name string, args []string) (<-chan process.OutputLine, <-chan error)
}

// Unsupported answers every query with ErrUnsupported.
type Unsupported struct{}

func (Unsupported) Identity(context.Context) (Identity, error) {
	return Identity{}, ErrUnsupported
}

func (Unsupported) Orientation(context.Context) (device.Orientation, error) {
	return device.OrientationUnknown, ErrUnsupported
}

func (Unsupported) WatchOrientation(context.Context) (<-chan device.Orientation, error) {
	return nil, ErrUnsupported
}

func (Unsupported) Battery(context.Context) (Battery, error) {
	return UnknownBattery, ErrUnsupported
}

func (Unsupported) WatchBattery(context.Context) (<-chan Battery, error) {
	return nil, ErrUnsupported
}

func (Unsupported) ConnectionState(context.Context) (device.ConnectionState, error) {
	return device.ConnectionStateUnknown, ErrUnsupported
}

func (Unsupported) WatchConnectionState(context.Context) (<-chan device.ConnectionState, error) {
	return nil, ErrUnsupported
}

func (s Set) WithIdentity(src IdentitySource) Set {
	s.Identity = src
	return s
}

func (s Set) WithOrientation(src OrientationSource) Set {
	s.Orientation = src
	return s
}

func (s Set) WithPower(src PowerSource) Set {
	s.Power = src
	return s
}

func (s Set) WithReachability(src ReachabilitySource) Set {
	s.Reachability = src
	return s
}
