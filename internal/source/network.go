package source

import (
	"net"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/arnavsurve/devicectl/internal/device"
)

// cellular data interfaces: iOS, linux modems, android
var mobilePrefixes = []string{"pdp_ip", "wwan", "rmnet", "ppp", "ccmni"}

// tunnels, bridges and peer-to-peer links that never carry the primary route
var virtualPrefixes = []string{
	"docker", "veth", "br-", "virbr", "vmnet", "vboxnet",
	"utun", "tun", "tap", "wg", "tailscale", "zt",
	"awdl", "llw", "anpi", "ap", "bridge", "gif", "stf",
}

func hasPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func hasFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}

func hasRoutableAddr(addrs psnet.InterfaceAddrList) bool {
	for _, a := range addrs {
		ip, _, err := net.ParseCIDR(a.Addr)
		if err != nil {
			ip = net.ParseIP(a.Addr)
		}
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
			continue
		}
		return true
	}
	return false
}

// classifyInterfaces reduces the interface table to a reachability state.
// Any usable non-cellular link wins over cellular.
func classifyInterfaces(ifaces psnet.InterfaceStatList) device.ConnectionState {
	mobile := false
	for _, ifc := range ifaces {
		if !hasFlag(ifc.Flags, "up") || hasFlag(ifc.Flags, "loopback") {
			continue
		}
		if !hasRoutableAddr(ifc.Addrs) {
			continue
		}
		switch {
		case hasPrefix(ifc.Name, mobilePrefixes):
			mobile = true
		case hasPrefix(ifc.Name, virtualPrefixes):
		default:
			return device.ConnectionStateWiFi
		}
	}
	if mobile {
		return device.ConnectionStateMobile
	}
	return device.ConnectionStateDisconnected
}
