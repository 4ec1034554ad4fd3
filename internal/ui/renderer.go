package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/arnavsurve/devicectl/internal/device"
	"github.com/arnavsurve/devicectl/internal/devinfo"
	"github.com/arnavsurve/devicectl/internal/notify"
)

// Renderer handles terminal output with colors and spinners. Results go to
// out, status messages and the spinner to status.
type Renderer struct {
	out    io.Writer
	status io.Writer

	mu          sync.Mutex
	spinning    bool
	spinnerDone chan struct{}
}

func NewRenderer(out, status io.Writer) *Renderer {
	return &Renderer{out: out, status: status}
}

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StartSpinner starts an animated spinner with a message
func (r *Renderer) StartSpinner(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.spinning {
		return
	}

	r.spinning = true
	r.spinnerDone = make(chan struct{})
	done := r.spinnerDone

	msg := fmt.Sprintf(format, args...)

	go func() {
		frame := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				r.mu.Lock()
				fmt.Fprintf(r.status, "\r%s %s", cyan(spinnerFrames[frame]), msg)
				r.mu.Unlock()
				frame = (frame + 1) % len(spinnerFrames)
			}
		}
	}()
}

func (r *Renderer) StopSpinner() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.spinning {
		return
	}

	close(r.spinnerDone)
	r.spinning = false

	// Clear the spinner line
	fmt.Fprint(r.status, "\r\033[K")
}

func (r *Renderer) Success(format string, args ...any) {
	fmt.Fprintf(r.status, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

func (r *Renderer) Error(format string, args ...any) {
	fmt.Fprintf(r.status, "%s %s\n", red("✗"), fmt.Sprintf(format, args...))
}

func (r *Renderer) Warning(format string, args ...any) {
	fmt.Fprintf(r.status, "%s %s\n", yellow("!"), fmt.Sprintf(format, args...))
}

func (r *Renderer) Info(format string, args ...any) {
	fmt.Fprintf(r.status, "  %s\n", fmt.Sprintf(format, args...))
}

// Dim prints dimmed/secondary text
func (r *Renderer) Dim(format string, args ...any) {
	fmt.Fprintf(r.status, "  %s\n", dim(fmt.Sprintf(format, args...)))
}

func orDash(s string) string {
	if s == "" {
		return dim("-")
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return green("yes")
	}
	return dim("no")
}

func (r *Renderer) row(label, value string) {
	fmt.Fprintf(r.out, "  %-22s %s\n", dim(label), value)
}

func batteryLevel(level float32) string {
	if level < 0 {
		return dim("unknown")
	}
	return fmt.Sprintf("%.0f%%", level*100)
}

// RenderSnapshot prints every facade value grouped by concern.
func (r *Renderer) RenderSnapshot(s devinfo.Snapshot) {
	fmt.Fprintf(r.out, "\n%s\n", bold("IDENTITY"))
	r.row("name", orDash(s.Name))
	r.row("system", orDash(strings.TrimSpace(s.SystemName+" "+s.SystemVersion)))
	r.row("model", orDash(s.Model))
	r.row("hardware identifier", orDash(s.HardwareIdentifier))
	r.row("platform", s.Platform.String())
	r.row("idiom", s.Idiom.String())
	r.row("unique identifier", orDash(s.UniqueIdentifier))

	fmt.Fprintf(r.out, "\n%s\n", bold("STATE"))
	r.row("orientation", s.Orientation.String())
	r.row("battery level", batteryLevel(s.BatteryLevel))
	r.row("battery state", s.BatteryState.String())
	r.row("connection", connectionColor(s.ConnectionState))

	fmt.Fprintf(r.out, "\n%s\n", bold("CAPABILITIES"))
	r.row("multitasking", yesNo(s.Capabilities.Multitasking))
	r.row("push notifications", yesNo(s.Capabilities.PushNotifications))
	r.row("iCloud key-value sync", yesNo(s.Capabilities.ICloudKeyValueSync))
	r.row("iCloud file sync", yesNo(s.Capabilities.ICloudFileSync))
	fmt.Fprintln(r.out)
}

func connectionColor(c device.ConnectionState) string {
	switch c {
	case device.ConnectionStateWiFi:
		return green(c.String())
	case device.ConnectionStateMobile:
		return yellow(c.String())
	case device.ConnectionStateDisconnected:
		return red(c.String())
	default:
		return dim(c.String())
	}
}

// RenderEvent prints one change notification on a single line.
func (r *Renderer) RenderEvent(ev notify.Event) {
	var value string
	switch ev.Name {
	case notify.OrientationDidChange:
		value = ev.Orientation.String()
	case notify.BatteryLevelDidChange:
		value = batteryLevel(ev.BatteryLevel)
	case notify.BatteryStateDidChange:
		value = ev.BatteryState.String()
	case notify.ConnectionStateDidChange:
		value = connectionColor(ev.ConnectionState)
	}
	fmt.Fprintf(r.out, "%s %s %s\n", dim(ev.Time.Format(time.TimeOnly)), cyan(string(ev.Name)), value)
}

// RenderPlatforms prints the lookup result for each hardware identifier.
func (r *Renderer) RenderPlatforms(ids []string) {
	for _, id := range ids {
		p := device.LookupPlatform(id)
		name := p.String()
		if p.IsUnknown() {
			name = yellow(name)
		}
		fmt.Fprintf(r.out, "  %-18s %s %s\n", id, name, dim(p.Family().String()))
	}
}

// RenderModels prints the hardware identifier table grouped by family.
func (r *Renderer) RenderModels(models []device.Model) {
	byFamily := make(map[device.Family][]device.Model)
	var families []device.Family
	for _, m := range models {
		if _, ok := byFamily[m.Family]; !ok {
			families = append(families, m.Family)
		}
		byFamily[m.Family] = append(byFamily[m.Family], m)
	}
	sort.Slice(families, func(i, j int) bool { return families[i] < families[j] })

	for _, f := range families {
		fmt.Fprintf(r.out, "\n%s\n", bold(strings.ToUpper(f.String())))
		for _, m := range byFamily[f] {
			fmt.Fprintf(r.out, "  %-18s %s\n", m.Identifier, m.Platform.String())
		}
	}
	fmt.Fprintln(r.out)
}

// DeviceInfo contains simulator information for display
type DeviceInfo struct {
	Name      string
	UDID      string
	State     string
	OSVersion string
	Platform  string
}

// RenderDeviceList prints simulators grouped by OS.
func (r *Renderer) RenderDeviceList(devices []DeviceInfo) {
	if len(devices) == 0 {
		r.Info("No simulators found")
		return
	}

	byPlatform := make(map[string][]DeviceInfo)
	var platforms []string
	for _, d := range devices {
		if _, ok := byPlatform[d.Platform]; !ok {
			platforms = append(platforms, d.Platform)
		}
		byPlatform[d.Platform] = append(byPlatform[d.Platform], d)
	}
	sort.Strings(platforms)

	for _, platform := range platforms {
		fmt.Fprintf(r.out, "\n%s\n", bold(strings.ToUpper(platform)))
		for _, d := range byPlatform[platform] {
			stateColor := dim
			if d.State == "Booted" {
				stateColor = green
			}
			fmt.Fprintf(r.out, "  %s %s %s %s\n",
				d.Name,
				dim(d.OSVersion),
				stateColor(fmt.Sprintf("[%s]", d.State)),
				dim(d.UDID),
			)
		}
	}
	fmt.Fprintln(r.out)
}
