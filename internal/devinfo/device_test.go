package devinfo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/devicectl/internal/device"
	"github.com/arnavsurve/devicectl/internal/notify"
	"github.com/arnavsurve/devicectl/internal/source"
)

type fakeIdentity struct {
	id  source.Identity
	err error
}

func (f fakeIdentity) Identity(context.Context) (source.Identity, error) { return f.id, f.err }

// fakeState serves snapshot reads from fields and change streams from
// buffered input channels the test writes to.
type fakeState struct {
	mu          sync.Mutex
	orientation device.Orientation
	orientErr   error
	battery     source.Battery
	batteryErr  error
	connection  device.ConnectionState
	connErr     error

	orientIn  chan device.Orientation
	batteryIn chan source.Battery
	connIn    chan device.ConnectionState
	watchErr  error
}

func newFakeState() *fakeState {
	return &fakeState{
		battery:   source.Battery{Level: 0.5, State: device.BatteryStateCharging},
		orientIn:  make(chan device.Orientation, 16),
		batteryIn: make(chan source.Battery, 16),
		connIn:    make(chan device.ConnectionState, 16),
	}
}

func forward[T any](ctx context.Context, in <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v := <-in:
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

func (f *fakeState) Orientation(context.Context) (device.Orientation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orientation, f.orientErr
}

func (f *fakeState) WatchOrientation(ctx context.Context) (<-chan device.Orientation, error) {
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	return forward(ctx, f.orientIn), nil
}

func (f *fakeState) Battery(context.Context) (source.Battery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.batteryErr != nil {
		return source.UnknownBattery, f.batteryErr
	}
	return f.battery, nil
}

func (f *fakeState) WatchBattery(ctx context.Context) (<-chan source.Battery, error) {
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	return forward(ctx, f.batteryIn), nil
}

func (f *fakeState) ConnectionState(context.Context) (device.ConnectionState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connection, f.connErr
}

func (f *fakeState) WatchConnectionState(ctx context.Context) (<-chan device.ConnectionState, error) {
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	return forward(ctx, f.connIn), nil
}

func (f *fakeState) set(fn func(f *fakeState)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

type recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func record(bus *notify.Bus, names ...notify.Name) *recorder {
	r := &recorder{}
	for _, n := range names {
		bus.Subscribe(n, func(ev notify.Event) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, ev)
		})
	}
	return r
}

func (r *recorder) all() []notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Event(nil), r.events...)
}

func (r *recorder) count() int {
	return len(r.all())
}

func newTestDevice(t *testing.T, id source.IdentitySource, state *fakeState) *Device {
	t.Helper()
	set := source.Set{Identity: id}
	if state != nil {
		set = set.WithOrientation(state).WithPower(state).WithReachability(state)
	}
	d := New(context.Background(), set)
	t.Cleanup(d.Close)
	return d
}

func TestIdentityGetters(t *testing.T) {
	d := newTestDevice(t, fakeIdentity{id: source.Identity{
		Name:             "Ada's iPhone",
		SystemName:       "iOS",
		SystemVersion:    "17.4",
		HardwareID:       "iPhone10,3",
		UniqueIdentifier: "ABC-123",
	}}, nil)
	ctx := context.Background()

	assert.Equal(t, "Ada's iPhone", d.Name(ctx))
	assert.Equal(t, "iOS", d.SystemName(ctx))
	assert.Equal(t, "17.4", d.SystemVersion(ctx))
	assert.Equal(t, "iPhone", d.Model(ctx))
	assert.Equal(t, "ABC-123", d.UniqueIdentifier(ctx))
	assert.Equal(t, "iPhone10,3", d.HardwareIdentifier(ctx))
	assert.Equal(t, device.PlatformIPhoneX, d.Platform(ctx))
	assert.Equal(t, "iPhone X", d.PlatformString(ctx))
	assert.Equal(t, device.IdiomPhone, d.UserInterfaceIdiom(ctx))

	assert.True(t, d.MultitaskingSupported(ctx))
	assert.True(t, d.PushNotificationsSupported(ctx))
	assert.True(t, d.ICloudKeyValueSyncSupported(ctx))
	assert.True(t, d.ICloudFileSyncSupported(ctx))
}

func TestPlatformFallsBackToFamily(t *testing.T) {
	d := newTestDevice(t, fakeIdentity{id: source.Identity{
		HardwareID: "",
		Family:     device.FamilyPad,
	}}, nil)
	ctx := context.Background()

	assert.Equal(t, device.PlatformUnknownPad, d.Platform(ctx))
	assert.Equal(t, device.IdiomPad, d.UserInterfaceIdiom(ctx))
	assert.Equal(t, "iPad", d.Model(ctx))
}

func TestSourceModelWins(t *testing.T) {
	d := newTestDevice(t, fakeIdentity{id: source.Identity{
		HardwareID: "20XW0055US",
		Model:      "ThinkPad X1 Carbon Gen 9",
	}}, nil)

	assert.Equal(t, "ThinkPad X1 Carbon Gen 9", d.Model(context.Background()))
	assert.Equal(t, device.PlatformUnknown, d.Platform(context.Background()))
}

func TestGettersNeverFail(t *testing.T) {
	d := New(context.Background(), source.Set{Identity: fakeIdentity{err: errors.New("boom")}})
	defer d.Close()
	ctx := context.Background()

	assert.Empty(t, d.Name(ctx))
	assert.Empty(t, d.SystemName(ctx))
	assert.Empty(t, d.Model(ctx))
	assert.Equal(t, device.PlatformUnknown, d.Platform(ctx))
	assert.Equal(t, device.IdiomDesktop, d.UserInterfaceIdiom(ctx))
	assert.False(t, d.PushNotificationsSupported(ctx))

	d.SetGeneratesOrientationNotifications(true)
	d.SetBatteryMonitoringEnabled(true)
	d.SetGeneratesConnectionStateNotifications(true)

	assert.Equal(t, device.OrientationUnknown, d.Orientation(ctx))
	assert.Equal(t, float32(-1), d.BatteryLevel(ctx))
	assert.Equal(t, device.BatteryStateUnknown, d.BatteryState(ctx))
	assert.Equal(t, device.ConnectionStateUnknown, d.ConnectionState(ctx))
}

func TestOrientationRequiresNotifications(t *testing.T) {
	state := newFakeState()
	state.orientation = device.OrientationLandscapeLeft
	d := newTestDevice(t, fakeIdentity{}, state)
	ctx := context.Background()

	assert.False(t, d.GeneratesOrientationNotifications())
	assert.Equal(t, device.OrientationUnknown, d.Orientation(ctx))

	d.SetGeneratesOrientationNotifications(true)
	assert.True(t, d.GeneratesOrientationNotifications())
	assert.Equal(t, device.OrientationLandscapeLeft, d.Orientation(ctx))

	d.SetGeneratesOrientationNotifications(false)
	assert.Equal(t, device.OrientationUnknown, d.Orientation(ctx))
}

func TestOrientationFallsBackToLastStreamed(t *testing.T) {
	state := newFakeState()
	state.orientErr = source.ErrUnsupported
	d := newTestDevice(t, fakeIdentity{}, state)
	rec := record(d.Bus(), notify.OrientationDidChange)

	d.SetGeneratesOrientationNotifications(true)
	assert.Equal(t, device.OrientationUnknown, d.Orientation(context.Background()))

	state.orientIn <- device.OrientationPortraitUpsideDown
	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, device.OrientationPortraitUpsideDown, d.Orientation(context.Background()))
}

func TestOrientationOneEventPerChange(t *testing.T) {
	state := newFakeState()
	state.orientation = device.OrientationPortrait
	d := newTestDevice(t, fakeIdentity{}, state)
	rec := record(d.Bus(), notify.OrientationDidChange)

	d.SetGeneratesOrientationNotifications(true)

	state.orientIn <- device.OrientationPortrait
	state.orientIn <- device.OrientationLandscapeRight
	state.orientIn <- device.OrientationLandscapeRight
	state.orientIn <- device.OrientationFaceUp

	require.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	events := rec.all()
	require.Len(t, events, 2)
	assert.Equal(t, device.OrientationLandscapeRight, events[0].Orientation)
	assert.Equal(t, device.OrientationFaceUp, events[1].Orientation)
	assert.False(t, events[0].Time.IsZero())
}

func TestWaitOrientation(t *testing.T) {
	t.Run("first streamed reading", func(t *testing.T) {
		state := newFakeState()
		state.orientErr = source.ErrUnsupported
		d := newTestDevice(t, fakeIdentity{}, state)
		d.SetGeneratesOrientationNotifications(true)

		go func() {
			time.Sleep(20 * time.Millisecond)
			state.orientIn <- device.OrientationLandscapeLeft
		}()

		assert.Equal(t, device.OrientationLandscapeLeft, d.WaitOrientation(context.Background(), time.Second))
		assert.Equal(t, device.OrientationLandscapeLeft, d.Snapshot(context.Background()).Orientation)
		assert.Equal(t, 0, d.Bus().Subscribers(notify.OrientationDidChange))
	})

	t.Run("snapshot read wins", func(t *testing.T) {
		state := newFakeState()
		state.orientation = device.OrientationFaceDown
		d := newTestDevice(t, fakeIdentity{}, state)
		d.SetGeneratesOrientationNotifications(true)

		assert.Equal(t, device.OrientationFaceDown, d.WaitOrientation(context.Background(), time.Hour))
	})

	t.Run("times out", func(t *testing.T) {
		state := newFakeState()
		state.orientErr = source.ErrUnsupported
		d := newTestDevice(t, fakeIdentity{}, state)
		d.SetGeneratesOrientationNotifications(true)

		assert.Equal(t, device.OrientationUnknown, d.WaitOrientation(context.Background(), 20*time.Millisecond))
	})

	t.Run("no stream returns at once", func(t *testing.T) {
		state := newFakeState()
		state.orientErr = source.ErrUnsupported
		state.watchErr = source.ErrUnsupported
		d := newTestDevice(t, fakeIdentity{}, state)
		d.SetGeneratesOrientationNotifications(true)

		start := time.Now()
		assert.Equal(t, device.OrientationUnknown, d.WaitOrientation(context.Background(), time.Hour))
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestBatteryRequiresMonitoring(t *testing.T) {
	state := newFakeState()
	d := newTestDevice(t, fakeIdentity{}, state)
	ctx := context.Background()

	assert.Equal(t, float32(-1), d.BatteryLevel(ctx))
	assert.Equal(t, device.BatteryStateUnknown, d.BatteryState(ctx))

	d.SetBatteryMonitoringEnabled(true)
	assert.True(t, d.BatteryMonitoringEnabled())
	assert.Equal(t, float32(0.5), d.BatteryLevel(ctx))
	assert.Equal(t, device.BatteryStateCharging, d.BatteryState(ctx))
}

func TestBatteryEventsAndDisable(t *testing.T) {
	state := newFakeState()
	d := newTestDevice(t, fakeIdentity{}, state)
	level := record(d.Bus(), notify.BatteryLevelDidChange)
	st := record(d.Bus(), notify.BatteryStateDidChange)

	d.SetBatteryMonitoringEnabled(true)

	state.batteryIn <- source.Battery{Level: 0.5, State: device.BatteryStateCharging}
	state.batteryIn <- source.Battery{Level: 0.6, State: device.BatteryStateCharging}
	state.batteryIn <- source.Battery{Level: 1, State: device.BatteryStateFull}

	require.Eventually(t, func() bool { return st.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, level.count())
	assert.Equal(t, float32(0.6), level.all()[0].BatteryLevel)
	assert.Equal(t, device.BatteryStateFull, st.all()[0].BatteryState)

	d.SetBatteryMonitoringEnabled(false)
	assert.False(t, d.BatteryMonitoringEnabled())

	state.batteryIn <- source.Battery{Level: 0.2, State: device.BatteryStateUnplugged}
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, level.count())
	assert.Equal(t, 1, st.count())
}

func TestNoEventsAfterDisableReturns(t *testing.T) {
	state := newFakeState()
	d := newTestDevice(t, fakeIdentity{}, state)

	entered := make(chan struct{})
	release := make(chan struct{})
	d.Bus().Subscribe(notify.BatteryLevelDidChange, func(notify.Event) {
		close(entered)
		<-release
	})
	st := record(d.Bus(), notify.BatteryStateDidChange)

	d.SetBatteryMonitoringEnabled(true)
	state.batteryIn <- source.Battery{Level: 0.2, State: device.BatteryStateUnplugged}

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("level handler never ran")
	}
	d.SetBatteryMonitoringEnabled(false)
	close(release)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, st.count())
}

func TestHandlerMayDisableItsOwnMonitor(t *testing.T) {
	state := newFakeState()
	state.orientation = device.OrientationPortrait
	d := newTestDevice(t, fakeIdentity{}, state)

	done := make(chan struct{})
	d.Bus().Subscribe(notify.OrientationDidChange, func(notify.Event) {
		d.SetGeneratesOrientationNotifications(false)
		close(done)
	})
	later := record(d.Bus(), notify.OrientationDidChange)

	d.SetGeneratesOrientationNotifications(true)
	state.orientIn <- device.OrientationFaceUp

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
	assert.False(t, d.GeneratesOrientationNotifications())
	assert.Zero(t, later.count())
}

func TestBatteryFallsBackToLastStreamed(t *testing.T) {
	state := newFakeState()
	d := newTestDevice(t, fakeIdentity{}, state)
	rec := record(d.Bus(), notify.BatteryLevelDidChange)

	d.SetBatteryMonitoringEnabled(true)
	state.batteryIn <- source.Battery{Level: 0.3, State: device.BatteryStateUnplugged}
	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)

	state.set(func(f *fakeState) { f.batteryErr = errors.New("pmset hung") })
	assert.Equal(t, float32(0.3), d.BatteryLevel(context.Background()))
	assert.Equal(t, device.BatteryStateUnplugged, d.BatteryState(context.Background()))
}

func TestConnectionStateEvents(t *testing.T) {
	state := newFakeState()
	state.connection = device.ConnectionStateWiFi
	d := newTestDevice(t, fakeIdentity{}, state)
	rec := record(d.Bus(), notify.ConnectionStateDidChange)
	ctx := context.Background()

	assert.Equal(t, device.ConnectionStateWiFi, d.ConnectionState(ctx))

	d.SetGeneratesConnectionStateNotifications(true)
	d.SetGeneratesConnectionStateNotifications(true)

	state.connIn <- device.ConnectionStateWiFi
	state.connIn <- device.ConnectionStateDisconnected
	state.connIn <- device.ConnectionStateMobile

	require.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, 5*time.Millisecond)
	events := rec.all()
	assert.Equal(t, device.ConnectionStateDisconnected, events[0].ConnectionState)
	assert.Equal(t, device.ConnectionStateMobile, events[1].ConnectionState)
}

func TestMonitoringWithoutStream(t *testing.T) {
	state := newFakeState()
	state.watchErr = source.ErrUnsupported
	state.connection = device.ConnectionStateMobile
	d := newTestDevice(t, fakeIdentity{}, state)

	d.SetGeneratesConnectionStateNotifications(true)
	assert.True(t, d.GeneratesConnectionStateNotifications())
	assert.Equal(t, device.ConnectionStateMobile, d.ConnectionState(context.Background()))
}

func TestCloseStopsMonitors(t *testing.T) {
	state := newFakeState()
	d := New(context.Background(), source.Set{}.WithOrientation(state).WithPower(state).WithReachability(state))
	rec := record(d.Bus(), notify.Names()...)

	d.SetGeneratesOrientationNotifications(true)
	d.SetBatteryMonitoringEnabled(true)
	d.SetGeneratesConnectionStateNotifications(true)
	d.Close()

	assert.False(t, d.GeneratesOrientationNotifications())
	assert.False(t, d.BatteryMonitoringEnabled())
	assert.False(t, d.GeneratesConnectionStateNotifications())

	state.orientIn <- device.OrientationFaceDown
	state.batteryIn <- source.Battery{Level: 0.1, State: device.BatteryStateUnplugged}
	state.connIn <- device.ConnectionStateDisconnected
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, rec.count())
}

func TestEnableAfterCloseIsNoop(t *testing.T) {
	state := newFakeState()
	d := New(context.Background(), source.Set{}.WithOrientation(state).WithPower(state).WithReachability(state))
	rec := record(d.Bus(), notify.Names()...)
	d.Close()

	d.SetGeneratesOrientationNotifications(true)
	d.SetBatteryMonitoringEnabled(true)
	d.SetGeneratesConnectionStateNotifications(true)

	assert.False(t, d.GeneratesOrientationNotifications())
	assert.False(t, d.BatteryMonitoringEnabled())
	assert.False(t, d.GeneratesConnectionStateNotifications())
	assert.Equal(t, float32(-1), d.BatteryLevel(context.Background()))

	state.orientIn <- device.OrientationFaceDown
	state.batteryIn <- source.Battery{Level: 0.1, State: device.BatteryStateUnplugged}
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, rec.count())
}

func TestStreaming(t *testing.T) {
	state := newFakeState()
	d := newTestDevice(t, fakeIdentity{}, state)

	d.SetBatteryMonitoringEnabled(true)
	assert.Equal(t, Monitoring{Battery: true}, d.Streaming())

	d.SetBatteryMonitoringEnabled(false)
	assert.Equal(t, Monitoring{}, d.Streaming())

	state.watchErr = source.ErrUnsupported
	d.SetGeneratesOrientationNotifications(true)
	assert.True(t, d.GeneratesOrientationNotifications())
	assert.False(t, d.Streaming().Orientation)
}

func TestSharedBus(t *testing.T) {
	bus := notify.NewBus()
	d := New(context.Background(), source.Set{}, WithBus(bus))
	defer d.Close()
	assert.Same(t, bus, d.Bus())
}

func TestSnapshot(t *testing.T) {
	state := newFakeState()
	state.orientation = device.OrientationPortrait
	state.connection = device.ConnectionStateWiFi
	d := newTestDevice(t, fakeIdentity{id: source.Identity{
		Name:          "iPad",
		SystemName:    "iPadOS",
		SystemVersion: "17.4",
		HardwareID:    "iPad13,18",
	}}, state)
	d.SetBatteryMonitoringEnabled(true)

	s := d.Snapshot(context.Background())
	assert.Equal(t, device.PlatformIPad10G, s.Platform)
	assert.Equal(t, device.IdiomPad, s.Idiom)
	assert.Equal(t, "iPad", s.Model)
	assert.Equal(t, device.OrientationUnknown, s.Orientation)
	assert.Equal(t, float32(0.5), s.BatteryLevel)
	assert.Equal(t, device.BatteryStateCharging, s.BatteryState)
	assert.Equal(t, device.ConnectionStateWiFi, s.ConnectionState)
	assert.True(t, s.Capabilities.Multitasking)
	assert.Equal(t, Monitoring{Battery: true}, s.Monitoring)
}
