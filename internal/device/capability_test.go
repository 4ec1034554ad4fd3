package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesFor(t *testing.T) {
	tests := []struct {
		name     string
		system   string
		version  string
		platform Platform
		want     Capabilities
	}{
		{"iphone os 3", "iPhone OS", "3.1.3", PlatformIPhone3GS, Capabilities{PushNotifications: true}},
		{"ios 4 on 3G", "iOS", "4.2.1", PlatformIPhone3G, Capabilities{PushNotifications: true}},
		{"ios 4 on 4", "iOS", "4.3", PlatformIPhone4, Capabilities{Multitasking: true, PushNotifications: true}},
		{"ios 17", "iOS", "17.2", PlatformIPhone15Pro, Capabilities{true, true, true, true}},
		{"ipados", "iPadOS", "17.0", PlatformIPad10G, Capabilities{true, true, true, true}},
		{"snow leopard", "Mac OS X", "10.6.8", PlatformUnknownMac, Capabilities{Multitasking: true}},
		{"sonoma", "macOS", "14.2.1", PlatformMacBookPro14M3, Capabilities{true, true, true, true}},
		{"tvos", "tvOS", "17.0", PlatformAppleTV4K3G, Capabilities{PushNotifications: true, ICloudKeyValueSync: true}},
		{"watchos 8", "watchOS", "8.0", PlatformAppleWatchSeries7, Capabilities{PushNotifications: true}},
		{"linux", "ubuntu", "22.04", PlatformUnknown, Capabilities{Multitasking: true}},
		{"empty version", "iOS", "", PlatformIPhone12, Capabilities{}},
		{"garbage version", "iOS", "seventeen", PlatformIPhone12, Capabilities{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CapabilitiesFor(tt.system, tt.version, tt.platform))
		})
	}
}

func TestVersionAtLeast(t *testing.T) {
	assert.True(t, versionAtLeast("10.15.7", "10.7"))
	assert.False(t, versionAtLeast("10.6.8", "10.7"))
	assert.True(t, versionAtLeast("17", "5.0"))
	assert.True(t, versionAtLeast("17.2 (21C52)", "5.0"))
	assert.True(t, versionAtLeast("4.3.5.1", "4.0"))
	assert.False(t, versionAtLeast("", "1.0"))
}

func TestParseOS(t *testing.T) {
	assert.Equal(t, OSiOS, ParseOS("iPhone OS"))
	assert.Equal(t, OSMacOS, ParseOS("darwin"))
	assert.Equal(t, OSVisionOS, ParseOS("xrOS"))
	assert.Equal(t, OSOther, ParseOS("debian"))
}
