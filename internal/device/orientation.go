package device

import "strings"

// Orientation is a set of physical orientations. A reading from a sensor is
// always a single bit (or OrientationUnknown); masks are only used to
// describe acceptable orientations.
type Orientation uint8

const OrientationUnknown Orientation = 0

const (
	OrientationPortrait Orientation = 1 << iota
	OrientationPortraitUpsideDown
	OrientationLandscapeLeft
	OrientationLandscapeRight
	OrientationFaceUp
	OrientationFaceDown
)

const (
	OrientationMaskPortrait  = OrientationPortrait | OrientationPortraitUpsideDown
	OrientationMaskLandscape = OrientationLandscapeLeft | OrientationLandscapeRight
	OrientationMaskFlat      = OrientationFaceUp | OrientationFaceDown
	OrientationMaskAll       = OrientationMaskPortrait | OrientationMaskLandscape | OrientationMaskFlat
)

var orientationNames = []struct {
	o    Orientation
	name string
}{
	{OrientationPortrait, "portrait"},
	{OrientationPortraitUpsideDown, "portrait-upside-down"},
	{OrientationLandscapeLeft, "landscape-left"},
	{OrientationLandscapeRight, "landscape-right"},
	{OrientationFaceUp, "face-up"},
	{OrientationFaceDown, "face-down"},
}

// single reports whether exactly one known orientation bit is set.
func (o Orientation) single() bool {
	return o != 0 && o&(o-1) == 0 && o&^OrientationMaskAll == 0
}

// IsPortrait is true for Portrait and PortraitUpsideDown only. Combined
// masks are never portrait.
func (o Orientation) IsPortrait() bool {
	return o.single() && o&OrientationMaskPortrait != 0
}

// IsLandscape is true for LandscapeLeft and LandscapeRight only.
func (o Orientation) IsLandscape() bool {
	return o.single() && o&OrientationMaskLandscape != 0
}

func (o Orientation) IsFlat() bool {
	return o.single() && o&OrientationMaskFlat != 0
}

// IsValid reports whether o is a single known orientation.
func (o Orientation) IsValid() bool {
	return o.single()
}

// Contains reports whether every bit of other is set in o.
func (o Orientation) Contains(other Orientation) bool {
	return other != 0 && o&other == other
}

func (o Orientation) String() string {
	if o == OrientationUnknown {
		return "unknown"
	}
	var parts []string
	for _, n := range orientationNames {
		if o&n.o != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 || o&^OrientationMaskAll != 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}

func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// ParseOrientation parses a name or a "|"-separated list of names. Unknown
// names yield OrientationUnknown.
func ParseOrientation(s string) Orientation {
	var o Orientation
	for _, part := range strings.Split(strings.ToLower(s), "|") {
		part = strings.TrimSpace(part)
		found := false
		for _, n := range orientationNames {
			if part == n.name {
				o |= n.o
				found = true
				break
			}
		}
		if !found {
			return OrientationUnknown
		}
	}
	return o
}
