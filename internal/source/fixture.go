package source

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/arnavsurve/devicectl/internal/device"
	"github.com/arnavsurve/devicectl/internal/watcher"
)

// Fixture reads device state from a JSON file:
//
//	{
//	  "name": "Test iPhone",
//	  "system_name": "iOS",
//	  "system_version": "17.4",
//	  "hardware_id": "iPhone16,1",
//	  "orientation": "portrait",
//	  "battery": {"level": 0.8, "state": "charging"},
//	  "connection": "wifi"
//	}
//
// Every key is optional; a missing key reads as unsupported. The Watch
// methods re-read the file each time it is written.
type Fixture struct {
	path     string
	debounce time.Duration
	logger   *log.Logger
}

// NewFixture creates a fixture source. debounce delays re-reads after a
// burst of writes to the file; zero re-reads on every write.
func NewFixture(path string, debounce time.Duration, logger *log.Logger) *Fixture {
	if logger == nil {
		logger = log.Default()
	}
	return &Fixture{path: path, debounce: debounce, logger: logger}
}

func (f *Fixture) load() (gjson.Result, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read fixture: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("fixture %s: invalid json", f.path)
	}
	return gjson.ParseBytes(data), nil
}

func (f *Fixture) Identity(context.Context) (Identity, error) {
	doc, err := f.load()
	if err != nil {
		return Identity{}, err
	}

	id := Identity{
		Name:             doc.Get("name").String(),
		SystemName:       doc.Get("system_name").String(),
		SystemVersion:    doc.Get("system_version").String(),
		Model:            doc.Get("model").String(),
		HardwareID:       doc.Get("hardware_id").String(),
		UniqueIdentifier: doc.Get("unique_identifier").String(),
	}
	if fam, ok := device.ParseFamily(doc.Get("family").String()); ok {
		id.Family = fam
	}
	return id, nil
}

func (f *Fixture) Orientation(context.Context) (device.Orientation, error) {
	doc, err := f.load()
	if err != nil {
		return device.OrientationUnknown, err
	}
	v := doc.Get("orientation")
	if !v.Exists() {
		return device.OrientationUnknown, ErrUnsupported
	}
	return device.ParseOrientation(v.String()), nil
}

func (f *Fixture) Battery(context.Context) (Battery, error) {
	doc, err := f.load()
	if err != nil {
		return UnknownBattery, err
	}
	v := doc.Get("battery")
	if !v.Exists() {
		return UnknownBattery, ErrUnsupported
	}

	b := UnknownBattery
	if lvl := v.Get("level"); lvl.Exists() {
		b.Level = clampLevel(float32(lvl.Float()))
	}
	b.State = device.ParseBatteryState(v.Get("state").String())
	return b, nil
}

func (f *Fixture) ConnectionState(context.Context) (device.ConnectionState, error) {
	doc, err := f.load()
	if err != nil {
		return device.ConnectionStateUnknown, err
	}
	v := doc.Get("connection")
	if !v.Exists() {
		return device.ConnectionStateUnknown, ErrUnsupported
	}
	return device.ParseConnectionState(v.String()), nil
}

func (f *Fixture) WatchOrientation(ctx context.Context) (<-chan device.Orientation, error) {
	return watchFixture(ctx, f, f.Orientation)
}

func (f *Fixture) WatchBattery(ctx context.Context) (<-chan Battery, error) {
	return watchFixture(ctx, f, f.Battery)
}

func (f *Fixture) WatchConnectionState(ctx context.Context) (<-chan device.ConnectionState, error) {
	return watchFixture(ctx, f, f.ConnectionState)
}

// watchFixture emits read's result after every write to the fixture file.
// Failed reads, such as a half-written file, are skipped.
func watchFixture[T any](ctx context.Context, f *Fixture, read func(context.Context) (T, error)) (<-chan T, error) {
	w, err := watcher.New(f.debounce)
	if err != nil {
		return nil, fmt.Errorf("fixture watcher: %w", err)
	}
	if err := w.AddFile(f.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", f.path, err)
	}

	out := make(chan T)
	events := w.Watch(ctx)

	go func() {
		defer close(out)
		defer w.Close()

		for range events {
			v, err := read(ctx)
			if err != nil {
				f.logger.Debug("fixture re-read failed", "path", f.path, "err", err)
				continue
			}
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
