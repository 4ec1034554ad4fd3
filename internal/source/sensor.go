package source

import (
	"regexp"

	"github.com/arnavsurve/devicectl/internal/device"
)

// monitor-sensor prints the initial orientation as
// "=== Has accelerometer (orientation: normal)" and changes as
// "Accelerometer orientation changed: left-up".
var sensorOrientationPattern = regexp.MustCompile(`[Aa]ccelerometer.*orientation(?: changed)?:\s*([a-z-]+)`)

// iio-sensor-proxy names the edge that points up.
var sensorOrientations = map[string]device.Orientation{
	"normal":    device.OrientationPortrait,
	"bottom-up": device.OrientationPortraitUpsideDown,
	"left-up":   device.OrientationLandscapeRight,
	"right-up":  device.OrientationLandscapeLeft,
	"undefined": device.OrientationUnknown,
}

func parseSensorLine(line string) (device.Orientation, bool) {
	m := sensorOrientationPattern.FindStringSubmatch(line)
	if m == nil {
		return device.OrientationUnknown, false
	}
	o, ok := sensorOrientations[m[1]]
	return o, ok
}
