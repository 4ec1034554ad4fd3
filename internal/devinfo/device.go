// Package devinfo is the device information facade. A Device is built once
// from a source.Set and passed to whatever needs it.
//
// Every getter succeeds. When a source fails the getter logs at debug level
// and returns the last value delivered by an active monitor, or the unknown
// value for its type.
//
// Orientation and battery read as unknown until their monitoring toggle is
// on. While a toggle is on, the matching change stream is consumed and one
// event is published on the Bus for every change in value. Events are
// delivered on the goroutine draining that stream. Once a toggle is turned
// off no further handler is called for it; a handler already running
// finishes.
package devinfo

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arnavsurve/devicectl/internal/device"
	"github.com/arnavsurve/devicectl/internal/notify"
	"github.com/arnavsurve/devicectl/internal/source"
)

type Device struct {
	src    source.Set
	bus    *notify.Bus
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	orientation monitor[device.Orientation]
	battery     monitor[source.Battery]
	connection  monitor[device.ConnectionState]
}

type Option func(*Device)

// WithBus publishes change events on b instead of a private bus.
func WithBus(b *notify.Bus) Option {
	return func(d *Device) { d.bus = b }
}

func WithLogger(l *log.Logger) Option {
	return func(d *Device) { d.logger = l }
}

// New builds a Device. Monitors started later live until they are
// disabled, Close is called, or ctx is cancelled.
func New(ctx context.Context, sources source.Set, opts ...Option) *Device {
	d := &Device{
		src:    sources.Normalized(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.bus == nil {
		d.bus = notify.NewBus()
	}
	d.ctx, d.cancel = context.WithCancel(ctx)
	return d
}

func (d *Device) Bus() *notify.Bus { return d.bus }

// Close stops every monitor. Enabling a monitor afterwards does nothing.
func (d *Device) Close() {
	d.orientation.close()
	d.battery.close()
	d.connection.close()
	d.cancel()
}

// Streaming reports which running monitors have a change stream behind
// them. A monitor can be on without one when the source has no way to
// report changes; its getter still reads on demand.
func (d *Device) Streaming() Monitoring {
	return Monitoring{
		Orientation: d.orientation.hasStream(),
		Battery:     d.battery.hasStream(),
		Connection:  d.connection.hasStream(),
	}
}

func (d *Device) degraded(what string, err error) {
	if errors.Is(err, source.ErrUnsupported) {
		d.logger.Debug("unsupported", "value", what)
		return
	}
	d.logger.Debug("read failed", "value", what, "err", err)
}

func (d *Device) identity(ctx context.Context) source.Identity {
	id, err := d.src.Identity.Identity(ctx)
	if err != nil {
		d.degraded("identity", err)
		return source.Identity{}
	}
	return id
}

func (d *Device) Name(ctx context.Context) string {
	return d.identity(ctx).Name
}

func (d *Device) SystemName(ctx context.Context) string {
	return d.identity(ctx).SystemName
}

func (d *Device) SystemVersion(ctx context.Context) string {
	return d.identity(ctx).SystemVersion
}

// Model is the generic model name, e.g. "iPhone". It falls back to the
// name implied by the platform when the source has none.
func (d *Device) Model(ctx context.Context) string {
	id := d.identity(ctx)
	return modelFor(id, platformFor(id))
}

func (d *Device) UniqueIdentifier(ctx context.Context) string {
	return d.identity(ctx).UniqueIdentifier
}

// HardwareIdentifier is the raw model string, e.g. "iPhone16,1".
func (d *Device) HardwareIdentifier(ctx context.Context) string {
	return d.identity(ctx).HardwareID
}

func (d *Device) Platform(ctx context.Context) device.Platform {
	return platformFor(d.identity(ctx))
}

// PlatformString is the marketing name of the platform.
func (d *Device) PlatformString(ctx context.Context) string {
	return d.Platform(ctx).String()
}

func (d *Device) UserInterfaceIdiom(ctx context.Context) device.Idiom {
	return d.Platform(ctx).Idiom()
}

func platformFor(id source.Identity) device.Platform {
	p := device.LookupPlatform(id.HardwareID)
	if p == device.PlatformUnknown && id.Family != device.FamilyUnknown {
		return device.UnknownPlatform(id.Family)
	}
	return p
}

func modelFor(id source.Identity, p device.Platform) string {
	if id.Model != "" {
		return id.Model
	}
	return p.Model()
}

func (d *Device) capabilities(ctx context.Context) device.Capabilities {
	id := d.identity(ctx)
	return device.CapabilitiesFor(id.SystemName, id.SystemVersion, platformFor(id))
}

func (d *Device) MultitaskingSupported(ctx context.Context) bool {
	return d.capabilities(ctx).Multitasking
}

func (d *Device) PushNotificationsSupported(ctx context.Context) bool {
	return d.capabilities(ctx).PushNotifications
}

func (d *Device) ICloudKeyValueSyncSupported(ctx context.Context) bool {
	return d.capabilities(ctx).ICloudKeyValueSync
}

func (d *Device) ICloudFileSyncSupported(ctx context.Context) bool {
	return d.capabilities(ctx).ICloudFileSync
}

// Orientation is OrientationUnknown unless orientation notifications are
// enabled.
func (d *Device) Orientation(ctx context.Context) device.Orientation {
	if !d.orientation.enabled() {
		return device.OrientationUnknown
	}
	o, err := d.src.Orientation.Orientation(ctx)
	if err != nil {
		d.degraded("orientation", err)
		last, _ := d.orientation.lastKnown()
		return last
	}
	return o
}

// WaitOrientation is Orientation, except that when the source can only
// stream orientation it waits up to timeout for the first reading.
func (d *Device) WaitOrientation(ctx context.Context, timeout time.Duration) device.Orientation {
	first := make(chan device.Orientation, 1)
	sub := d.bus.Subscribe(notify.OrientationDidChange, func(ev notify.Event) {
		select {
		case first <- ev.Orientation:
		default:
		}
	})
	defer d.bus.Unsubscribe(sub)

	if o := d.Orientation(ctx); o != device.OrientationUnknown || !d.orientation.hasStream() {
		return o
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case o := <-first:
		return o
	case <-timer.C:
	case <-ctx.Done():
	}
	return d.Orientation(ctx)
}

func (d *Device) GeneratesOrientationNotifications() bool {
	return d.orientation.enabled()
}

func (d *Device) SetGeneratesOrientationNotifications(enabled bool) {
	if !enabled {
		d.orientation.stop()
		return
	}
	ctx, gen, ok := d.orientation.start(d.ctx)
	if !ok {
		return
	}
	if o, err := d.src.Orientation.Orientation(ctx); err == nil {
		d.orientation.seed(gen, o)
	}
	ch, err := d.src.Orientation.WatchOrientation(ctx)
	if err != nil {
		d.logger.Debug("orientation changes unavailable", "err", err)
		return
	}
	d.orientation.setStreaming(gen)
	live := func() bool { return d.orientation.live(gen) }
	go drain(ch, func(o device.Orientation) {
		if _, _, changed := d.orientation.update(gen, o); changed {
			d.bus.PublishWhile(notify.Event{Name: notify.OrientationDidChange, Orientation: o}, live)
		}
	})
}

// BatteryLevel is in [0,1], or -1 when unknown or when battery monitoring
// is off.
func (d *Device) BatteryLevel(ctx context.Context) float32 {
	return d.readBattery(ctx).Level
}

// BatteryState is BatteryStateUnknown when battery monitoring is off.
func (d *Device) BatteryState(ctx context.Context) device.BatteryState {
	return d.readBattery(ctx).State
}

func (d *Device) readBattery(ctx context.Context) source.Battery {
	if !d.battery.enabled() {
		return source.UnknownBattery
	}
	b, err := d.src.Power.Battery(ctx)
	if err != nil {
		d.degraded("battery", err)
		if last, ok := d.battery.lastKnown(); ok {
			return last
		}
		return source.UnknownBattery
	}
	return b
}

func (d *Device) BatteryMonitoringEnabled() bool {
	return d.battery.enabled()
}

func (d *Device) SetBatteryMonitoringEnabled(enabled bool) {
	if !enabled {
		d.battery.stop()
		return
	}
	ctx, gen, ok := d.battery.start(d.ctx)
	if !ok {
		return
	}
	if b, err := d.src.Power.Battery(ctx); err == nil {
		d.battery.seed(gen, b)
	}
	ch, err := d.src.Power.WatchBattery(ctx)
	if err != nil {
		d.logger.Debug("battery changes unavailable", "err", err)
		return
	}
	d.battery.setStreaming(gen)
	live := func() bool { return d.battery.live(gen) }
	go drain(ch, func(b source.Battery) {
		prev, hadPrev, changed := d.battery.update(gen, b)
		if !changed {
			return
		}
		if !hadPrev || prev.Level != b.Level {
			d.bus.PublishWhile(notify.Event{Name: notify.BatteryLevelDidChange, BatteryLevel: b.Level, BatteryState: b.State}, live)
		}
		if !hadPrev || prev.State != b.State {
			d.bus.PublishWhile(notify.Event{Name: notify.BatteryStateDidChange, BatteryLevel: b.Level, BatteryState: b.State}, live)
		}
	})
}

func (d *Device) ConnectionState(ctx context.Context) device.ConnectionState {
	c, err := d.src.Reachability.ConnectionState(ctx)
	if err != nil {
		d.degraded("connection state", err)
		last, _ := d.connection.lastKnown()
		return last
	}
	return c
}

func (d *Device) GeneratesConnectionStateNotifications() bool {
	return d.connection.enabled()
}

func (d *Device) SetGeneratesConnectionStateNotifications(enabled bool) {
	if !enabled {
		d.connection.stop()
		return
	}
	ctx, gen, ok := d.connection.start(d.ctx)
	if !ok {
		return
	}
	if c, err := d.src.Reachability.ConnectionState(ctx); err == nil {
		d.connection.seed(gen, c)
	}
	ch, err := d.src.Reachability.WatchConnectionState(ctx)
	if err != nil {
		d.logger.Debug("connection state changes unavailable", "err", err)
		return
	}
	d.connection.setStreaming(gen)
	live := func() bool { return d.connection.live(gen) }
	go drain(ch, func(c device.ConnectionState) {
		if _, _, changed := d.connection.update(gen, c); changed {
			d.bus.PublishWhile(notify.Event{Name: notify.ConnectionStateDidChange, ConnectionState: c}, live)
		}
	})
}

func drain[T any](ch <-chan T, fn func(T)) {
	for v := range ch {
		fn(v)
	}
}
