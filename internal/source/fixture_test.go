package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/devicectl/internal/device"
)

const fullFixture = `{
  "name": "Test iPhone",
  "system_name": "iOS",
  "system_version": "17.4",
  "model": "iPhone",
  "hardware_id": "iPhone16,1",
  "unique_identifier": "F00D",
  "family": "iphone",
  "orientation": "landscape-left",
  "battery": {"level": 0.8, "state": "charging"},
  "connection": "mobile"
}`

// writeFixture replaces the file atomically so a watcher never sees a
// partial write.
func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}

func TestFixtureReads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.json")
	writeFixture(t, path, fullFixture)

	f := NewFixture(path, 0, nil)
	ctx := context.Background()

	id, err := f.Identity(ctx)
	require.NoError(t, err)
	assert.Equal(t, Identity{
		Name:             "Test iPhone",
		SystemName:       "iOS",
		SystemVersion:    "17.4",
		Model:            "iPhone",
		HardwareID:       "iPhone16,1",
		UniqueIdentifier: "F00D",
		Family:           device.FamilyPhone,
	}, id)

	o, err := f.Orientation(ctx)
	require.NoError(t, err)
	assert.Equal(t, device.OrientationLandscapeLeft, o)

	b, err := f.Battery(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, b.Level, 0.001)
	assert.Equal(t, device.BatteryStateCharging, b.State)

	c, err := f.ConnectionState(ctx)
	require.NoError(t, err)
	assert.Equal(t, device.ConnectionStateMobile, c)
}

func TestFixtureMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.json")
	writeFixture(t, path, `{"name": "bare"}`)

	f := NewFixture(path, 0, nil)
	ctx := context.Background()

	_, err := f.Orientation(ctx)
	assert.ErrorIs(t, err, ErrUnsupported)

	b, err := f.Battery(ctx)
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, UnknownBattery, b)

	_, err = f.ConnectionState(ctx)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFixtureBatteryWithoutLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.json")
	writeFixture(t, path, `{"battery": {"state": "full"}}`)

	b, err := NewFixture(path, 0, nil).Battery(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float32(-1), b.Level)
	assert.Equal(t, device.BatteryStateFull, b.State)
}

func TestFixtureErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFixture(filepath.Join(dir, "missing.json"), 0, nil).Identity(context.Background())
	assert.ErrorContains(t, err, "read fixture")

	bad := filepath.Join(dir, "bad.json")
	writeFixture(t, bad, `{"name": `)
	_, err = NewFixture(bad, 0, nil).Identity(context.Background())
	assert.ErrorContains(t, err, "invalid json")
}

func TestFixtureWatchConnectionState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.json")
	writeFixture(t, path, `{"connection": "wifi"}`)

	f := NewFixture(path, 0, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := f.WatchConnectionState(ctx)
	require.NoError(t, err)

	writeFixture(t, path, `{"connection": "disconnected"}`)

	var got device.ConnectionState
	require.Eventually(t, func() bool {
		select {
		case got = <-ch:
			return got == device.ConnectionStateDisconnected
		default:
			return false
		}
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	for range ch {
	}
}
