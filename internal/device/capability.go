package device

import (
	"strings"

	"golang.org/x/mod/semver"
)

// OS is the operating system line a system name belongs to.
type OS int

const (
	OSOther OS = iota
	OSiOS
	OSMacOS
	OSTVOS
	OSWatchOS
	OSVisionOS
)

func (o OS) String() string {
	switch o {
	case OSiOS:
		return "iOS"
	case OSMacOS:
		return "macOS"
	case OSTVOS:
		return "tvOS"
	case OSWatchOS:
		return "watchOS"
	case OSVisionOS:
		return "visionOS"
	default:
		return "other"
	}
}

// ParseOS classifies a system name as reported by the device ("iOS",
// "iPhone OS", "Mac OS X", "darwin", ...).
func ParseOS(systemName string) OS {
	s := strings.ToLower(strings.TrimSpace(systemName))
	switch {
	case s == "ios", s == "iphone os", s == "ipados":
		return OSiOS
	case s == "macos", s == "mac os x", s == "os x", s == "darwin":
		return OSMacOS
	case s == "tvos":
		return OSTVOS
	case s == "watchos":
		return OSWatchOS
	case s == "visionos", s == "xros":
		return OSVisionOS
	default:
		return OSOther
	}
}

// Capabilities are static feature checks derived from the system name,
// system version and hardware platform.
type Capabilities struct {
	Multitasking       bool `json:"multitasking"`
	PushNotifications  bool `json:"push_notifications"`
	ICloudKeyValueSync bool `json:"icloud_key_value_sync"`
	ICloudFileSync     bool `json:"icloud_file_sync"`
}

// hardware that cannot multitask on any iOS release
var noMultitasking = map[Platform]bool{
	PlatformIPhone1G: true,
	PlatformIPhone3G: true,
	PlatformIPod1G:   true,
	PlatformIPod2G:   true,
}

func CapabilitiesFor(systemName, systemVersion string, p Platform) Capabilities {
	switch ParseOS(systemName) {
	case OSiOS:
		return Capabilities{
			Multitasking:       versionAtLeast(systemVersion, "4.0") && !noMultitasking[p],
			PushNotifications:  versionAtLeast(systemVersion, "3.0"),
			ICloudKeyValueSync: versionAtLeast(systemVersion, "5.0"),
			ICloudFileSync:     versionAtLeast(systemVersion, "5.0"),
		}
	case OSMacOS:
		return Capabilities{
			Multitasking:       true,
			PushNotifications:  versionAtLeast(systemVersion, "10.7"),
			ICloudKeyValueSync: versionAtLeast(systemVersion, "10.7"),
			ICloudFileSync:     versionAtLeast(systemVersion, "10.7"),
		}
	case OSTVOS:
		return Capabilities{
			PushNotifications:  versionAtLeast(systemVersion, "9.0"),
			ICloudKeyValueSync: versionAtLeast(systemVersion, "9.0"),
		}
	case OSWatchOS:
		return Capabilities{
			PushNotifications:  versionAtLeast(systemVersion, "6.0"),
			ICloudKeyValueSync: versionAtLeast(systemVersion, "9.0"),
		}
	case OSVisionOS:
		return Capabilities{
			Multitasking:       true,
			PushNotifications:  true,
			ICloudKeyValueSync: true,
			ICloudFileSync:     true,
		}
	default:
		return Capabilities{Multitasking: true}
	}
}

// versionAtLeast compares dotted Apple versions ("17.2", "10.15.7"). A
// version that does not parse never satisfies the check.
func versionAtLeast(version, minimum string) bool {
	v := canonicalVersion(version)
	if v == "" {
		return false
	}
	return semver.Compare(v, canonicalVersion(minimum)) >= 0
}

func canonicalVersion(version string) string {
	fields := strings.Fields(version)
	if len(fields) == 0 {
		return ""
	}
	v := "v" + strings.TrimPrefix(fields[0], "v")
	parts := strings.Split(v, ".")
	if len(parts) > 3 {
		v = strings.Join(parts[:3], ".")
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
