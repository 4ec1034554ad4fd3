package device

import (
	"sort"
	"strings"
)

// Family groups platforms by product line.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyPhone
	FamilyPod
	FamilyPad
	FamilyMac
	FamilyTV
	FamilyWatch
	FamilySimulator
)

func (f Family) String() string {
	switch f {
	case FamilyPhone:
		return "iphone"
	case FamilyPod:
		return "ipod"
	case FamilyPad:
		return "ipad"
	case FamilyMac:
		return "mac"
	case FamilyTV:
		return "appletv"
	case FamilyWatch:
		return "watch"
	case FamilySimulator:
		return "simulator"
	default:
		return "unknown"
	}
}

// ParseFamily accepts the names produced by String.
func ParseFamily(s string) (Family, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f := FamilyUnknown; f <= FamilySimulator; f++ {
		if f.String() == s {
			return f, true
		}
	}
	return FamilyUnknown, false
}

// Model returns the generic model name a device of this family reports,
// e.g. "iPhone" or "iPad".
func (f Family) Model() string {
	switch f {
	case FamilyPhone:
		return "iPhone"
	case FamilyPod:
		return "iPod touch"
	case FamilyPad:
		return "iPad"
	case FamilyMac:
		return "Mac"
	case FamilyTV:
		return "Apple TV"
	case FamilyWatch:
		return "Apple Watch"
	case FamilySimulator:
		return "Simulator"
	default:
		return ""
	}
}

func (f Family) Idiom() Idiom {
	switch f {
	case FamilyPhone, FamilyPod:
		return IdiomPhone
	case FamilyPad:
		return IdiomPad
	default:
		return IdiomDesktop
	}
}

// Platform is a specific hardware generation.
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformUnknownPhone
	PlatformUnknownPod
	PlatformUnknownPad
	PlatformUnknownMac
	PlatformUnknownTV
	PlatformUnknownWatch

	PlatformSimulator

	PlatformIPhone1G
	PlatformIPhone3G
	PlatformIPhone3GS
	PlatformIPhone4
	PlatformIPhone4S
	PlatformIPhone5
	PlatformIPhone5C
	PlatformIPhone5S
	PlatformIPhone6
	PlatformIPhone6Plus
	PlatformIPhone6S
	PlatformIPhone6SPlus
	PlatformIPhoneSE
	PlatformIPhone7
	PlatformIPhone7Plus
	PlatformIPhone8
	PlatformIPhone8Plus
	PlatformIPhoneX
	PlatformIPhoneXS
	PlatformIPhoneXSMax
	PlatformIPhoneXR
	PlatformIPhone11
	PlatformIPhone11Pro
	PlatformIPhone11ProMax
	PlatformIPhoneSE2
	PlatformIPhone12Mini
	PlatformIPhone12
	PlatformIPhone12Pro
	PlatformIPhone12ProMax
	PlatformIPhone13Mini
	PlatformIPhone13
	PlatformIPhone13Pro
	PlatformIPhone13ProMax
	PlatformIPhoneSE3
	PlatformIPhone14
	PlatformIPhone14Plus
	PlatformIPhone14Pro
	PlatformIPhone14ProMax
	PlatformIPhone15
	PlatformIPhone15Plus
	PlatformIPhone15Pro
	PlatformIPhone15ProMax
	PlatformIPhone16
	PlatformIPhone16Plus
	PlatformIPhone16Pro
	PlatformIPhone16ProMax

	PlatformIPod1G
	PlatformIPod2G
	PlatformIPod3G
	PlatformIPod4G
	PlatformIPod5G
	PlatformIPod6G
	PlatformIPod7G

	PlatformIPad1G
	PlatformIPad2G
	PlatformIPad3G
	PlatformIPad4G
	PlatformIPad5G
	PlatformIPad6G
	PlatformIPad7G
	PlatformIPad8G
	PlatformIPad9G
	PlatformIPad10G
	PlatformIPadMini1G
	PlatformIPadMini2G
	PlatformIPadMini3G
	PlatformIPadMini4G
	PlatformIPadMini5G
	PlatformIPadMini6G
	PlatformIPadAir1G
	PlatformIPadAir2G
	PlatformIPadAir3G
	PlatformIPadAir4G
	PlatformIPadAir5G
	PlatformIPadPro9Inch
	PlatformIPadPro10Inch
	PlatformIPadPro11Inch1G
	PlatformIPadPro11Inch3G
	PlatformIPadPro12Inch1G
	PlatformIPadPro12Inch2G
	PlatformIPadPro12Inch3G
	PlatformIPadPro12Inch5G

	PlatformAppleTV2G
	PlatformAppleTV3G
	PlatformAppleTVHD
	PlatformAppleTV4K
	PlatformAppleTV4K2G
	PlatformAppleTV4K3G

	PlatformAppleWatch1G
	PlatformAppleWatchSeries6
	PlatformAppleWatchSeries7
	PlatformAppleWatchUltra

	PlatformMacBookAirM1
	PlatformMacBookAirM2
	PlatformMacBookPro13M1
	PlatformMacBookPro13M2
	PlatformMacBookPro14M1
	PlatformMacBookPro16M1
	PlatformMacBookPro14M3
	PlatformMacMiniM1
	PlatformMacMiniM2
	PlatformIMac24M1
	PlatformMacStudio2022
	PlatformMacPro2019
	PlatformVirtualMac

	platformCount
)

type platformInfo struct {
	name   string
	family Family
}

var platformInfos = [platformCount]platformInfo{
	PlatformUnknown:      {"Unknown", FamilyUnknown},
	PlatformUnknownPhone: {"Unknown iPhone", FamilyPhone},
	PlatformUnknownPod:   {"Unknown iPod touch", FamilyPod},
	PlatformUnknownPad:   {"Unknown iPad", FamilyPad},
	PlatformUnknownMac:   {"Unknown Mac", FamilyMac},
	PlatformUnknownTV:    {"Unknown Apple TV", FamilyTV},
	PlatformUnknownWatch: {"Unknown Apple Watch", FamilyWatch},

	PlatformSimulator: {"Simulator", FamilySimulator},

	PlatformIPhone1G:       {"iPhone", FamilyPhone},
	PlatformIPhone3G:       {"iPhone 3G", FamilyPhone},
	PlatformIPhone3GS:      {"iPhone 3GS", FamilyPhone},
	PlatformIPhone4:        {"iPhone 4", FamilyPhone},
	PlatformIPhone4S:       {"iPhone 4S", FamilyPhone},
	PlatformIPhone5:        {"iPhone 5", FamilyPhone},
	PlatformIPhone5C:       {"iPhone 5c", FamilyPhone},
	PlatformIPhone5S:       {"iPhone 5s", FamilyPhone},
	PlatformIPhone6:        {"iPhone 6", FamilyPhone},
	PlatformIPhone6Plus:    {"iPhone 6 Plus", FamilyPhone},
	PlatformIPhone6S:       {"iPhone 6s", FamilyPhone},
	PlatformIPhone6SPlus:   {"iPhone 6s Plus", FamilyPhone},
	PlatformIPhoneSE:       {"iPhone SE", FamilyPhone},
	PlatformIPhone7:        {"iPhone 7", FamilyPhone},
	PlatformIPhone7Plus:    {"iPhone 7 Plus", FamilyPhone},
	PlatformIPhone8:        {"iPhone 8", FamilyPhone},
	PlatformIPhone8Plus:    {"iPhone 8 Plus", FamilyPhone},
	PlatformIPhoneX:        {"iPhone X", FamilyPhone},
	PlatformIPhoneXS:       {"iPhone XS", FamilyPhone},
	PlatformIPhoneXSMax:    {"iPhone XS Max", FamilyPhone},
	PlatformIPhoneXR:       {"iPhone XR", FamilyPhone},
	PlatformIPhone11:       {"iPhone 11", FamilyPhone},
	PlatformIPhone11Pro:    {"iPhone 11 Pro", FamilyPhone},
	PlatformIPhone11ProMax: {"iPhone 11 Pro Max", FamilyPhone},
	PlatformIPhoneSE2:      {"iPhone SE (2nd generation)", FamilyPhone},
	PlatformIPhone12Mini:   {"iPhone 12 mini", FamilyPhone},
	PlatformIPhone12:       {"iPhone 12", FamilyPhone},
	PlatformIPhone12Pro:    {"iPhone 12 Pro", FamilyPhone},
	PlatformIPhone12ProMax: {"iPhone 12 Pro Max", FamilyPhone},
	PlatformIPhone13Mini:   {"iPhone 13 mini", FamilyPhone},
	PlatformIPhone13:       {"iPhone 13", FamilyPhone},
	PlatformIPhone13Pro:    {"iPhone 13 Pro", FamilyPhone},
	PlatformIPhone13ProMax: {"iPhone 13 Pro Max", FamilyPhone},
	PlatformIPhoneSE3:      {"iPhone SE (3rd generation)", FamilyPhone},
	PlatformIPhone14:       {"iPhone 14", FamilyPhone},
	PlatformIPhone14Plus:   {"iPhone 14 Plus", FamilyPhone},
	PlatformIPhone14Pro:    {"iPhone 14 Pro", FamilyPhone},
	PlatformIPhone14ProMax: {"iPhone 14 Pro Max", FamilyPhone},
	PlatformIPhone15:       {"iPhone 15", FamilyPhone},
	PlatformIPhone15Plus:   {"iPhone 15 Plus", FamilyPhone},
	PlatformIPhone15Pro:    {"iPhone 15 Pro", FamilyPhone},
	PlatformIPhone15ProMax: {"iPhone 15 Pro Max", FamilyPhone},
	PlatformIPhone16:       {"iPhone 16", FamilyPhone},
	PlatformIPhone16Plus:   {"iPhone 16 Plus", FamilyPhone},
	PlatformIPhone16Pro:    {"iPhone 16 Pro", FamilyPhone},
	PlatformIPhone16ProMax: {"iPhone 16 Pro Max", FamilyPhone},

	PlatformIPod1G: {"iPod touch", FamilyPod},
	PlatformIPod2G: {"iPod touch (2nd generation)", FamilyPod},
	PlatformIPod3G: {"iPod touch (3rd generation)", FamilyPod},
	PlatformIPod4G: {"iPod touch (4th generation)", FamilyPod},
	PlatformIPod5G: {"iPod touch (5th generation)", FamilyPod},
	PlatformIPod6G: {"iPod touch (6th generation)", FamilyPod},
	PlatformIPod7G: {"iPod touch (7th generation)", FamilyPod},

	PlatformIPad1G:          {"iPad", FamilyPad},
	PlatformIPad2G:          {"iPad 2", FamilyPad},
	PlatformIPad3G:          {"iPad (3rd generation)", FamilyPad},
	PlatformIPad4G:          {"iPad (4th generation)", FamilyPad},
	PlatformIPad5G:          {"iPad (5th generation)", FamilyPad},
	PlatformIPad6G:          {"iPad (6th generation)", FamilyPad},
	PlatformIPad7G:          {"iPad (7th generation)", FamilyPad},
	PlatformIPad8G:          {"iPad (8th generation)", FamilyPad},
	PlatformIPad9G:          {"iPad (9th generation)", FamilyPad},
	PlatformIPad10G:         {"iPad (10th generation)", FamilyPad},
	PlatformIPadMini1G:      {"iPad mini", FamilyPad},
	PlatformIPadMini2G:      {"iPad mini 2", FamilyPad},
	PlatformIPadMini3G:      {"iPad mini 3", FamilyPad},
	PlatformIPadMini4G:      {"iPad mini 4", FamilyPad},
	PlatformIPadMini5G:      {"iPad mini (5th generation)", FamilyPad},
	PlatformIPadMini6G:      {"iPad mini (6th generation)", FamilyPad},
	PlatformIPadAir1G:       {"iPad Air", FamilyPad},
	PlatformIPadAir2G:       {"iPad Air 2", FamilyPad},
	PlatformIPadAir3G:       {"iPad Air (3rd generation)", FamilyPad},
	PlatformIPadAir4G:       {"iPad Air (4th generation)", FamilyPad},
	PlatformIPadAir5G:       {"iPad Air (5th generation)", FamilyPad},
	PlatformIPadPro9Inch:    {"iPad Pro (9.7-inch)", FamilyPad},
	PlatformIPadPro10Inch:   {"iPad Pro (10.5-inch)", FamilyPad},
	PlatformIPadPro11Inch1G: {"iPad Pro (11-inch)", FamilyPad},
	PlatformIPadPro11Inch3G: {"iPad Pro (11-inch, 3rd generation)", FamilyPad},
	PlatformIPadPro12Inch1G: {"iPad Pro (12.9-inch)", FamilyPad},
	PlatformIPadPro12Inch2G: {"iPad Pro (12.9-inch, 2nd generation)", FamilyPad},
	PlatformIPadPro12Inch3G: {"iPad Pro (12.9-inch, 3rd generation)", FamilyPad},
	PlatformIPadPro12Inch5G: {"iPad Pro (12.9-inch, 5th generation)", FamilyPad},

	PlatformAppleTV2G:   {"Apple TV (2nd generation)", FamilyTV},
	PlatformAppleTV3G:   {"Apple TV (3rd generation)", FamilyTV},
	PlatformAppleTVHD:   {"Apple TV HD", FamilyTV},
	PlatformAppleTV4K:   {"Apple TV 4K", FamilyTV},
	PlatformAppleTV4K2G: {"Apple TV 4K (2nd generation)", FamilyTV},
	PlatformAppleTV4K3G: {"Apple TV 4K (3rd generation)", FamilyTV},

	PlatformAppleWatch1G:      {"Apple Watch", FamilyWatch},
	PlatformAppleWatchSeries6: {"Apple Watch Series 6", FamilyWatch},
	PlatformAppleWatchSeries7: {"Apple Watch Series 7", FamilyWatch},
	PlatformAppleWatchUltra:   {"Apple Watch Ultra", FamilyWatch},

	PlatformMacBookAirM1:   {"MacBook Air (M1, 2020)", FamilyMac},
	PlatformMacBookAirM2:   {"MacBook Air (M2, 2022)", FamilyMac},
	PlatformMacBookPro13M1: {"MacBook Pro (13-inch, M1, 2020)", FamilyMac},
	PlatformMacBookPro13M2: {"MacBook Pro (13-inch, M2, 2022)", FamilyMac},
	PlatformMacBookPro14M1: {"MacBook Pro (14-inch, 2021)", FamilyMac},
	PlatformMacBookPro16M1: {"MacBook Pro (16-inch, 2021)", FamilyMac},
	PlatformMacBookPro14M3: {"MacBook Pro (14-inch, M3, 2023)", FamilyMac},
	PlatformMacMiniM1:      {"Mac mini (M1, 2020)", FamilyMac},
	PlatformMacMiniM2:      {"Mac mini (2023)", FamilyMac},
	PlatformIMac24M1:       {"iMac (24-inch, M1, 2021)", FamilyMac},
	PlatformMacStudio2022:  {"Mac Studio (2022)", FamilyMac},
	PlatformMacPro2019:     {"Mac Pro (2019)", FamilyMac},
	PlatformVirtualMac:     {"Apple Virtual Machine", FamilyMac},
}

func (p Platform) info() platformInfo {
	if p < 0 || p >= platformCount {
		return platformInfos[PlatformUnknown]
	}
	return platformInfos[p]
}

// String returns the marketing name.
func (p Platform) String() string { return p.info().name }

func (p Platform) Family() Family { return p.info().family }

func (p Platform) Idiom() Idiom { return p.Family().Idiom() }

func (p Platform) Model() string { return p.Family().Model() }

// IsUnknown reports whether p is one of the fallback members.
func (p Platform) IsUnknown() bool {
	return p >= PlatformUnknown && p <= PlatformUnknownWatch
}

func (p Platform) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnknownPlatform returns the fallback member for a family.
func UnknownPlatform(f Family) Platform {
	switch f {
	case FamilyPhone:
		return PlatformUnknownPhone
	case FamilyPod:
		return PlatformUnknownPod
	case FamilyPad:
		return PlatformUnknownPad
	case FamilyMac:
		return PlatformUnknownMac
	case FamilyTV:
		return PlatformUnknownTV
	case FamilyWatch:
		return PlatformUnknownWatch
	case FamilySimulator:
		return PlatformSimulator
	default:
		return PlatformUnknown
	}
}

// familyPrefixes maps identifier prefixes to the fallback for unmapped
// identifiers. Longer prefixes come first.
var familyPrefixes = []struct {
	prefix   string
	fallback Platform
}{
	{"iPhone", PlatformUnknownPhone},
	{"iPod", PlatformUnknownPod},
	{"iPad", PlatformUnknownPad},
	{"AppleTV", PlatformUnknownTV},
	{"Watch", PlatformUnknownWatch},
	{"MacBookPro", PlatformUnknownMac},
	{"MacBookAir", PlatformUnknownMac},
	{"MacBook", PlatformUnknownMac},
	{"Macmini", PlatformUnknownMac},
	{"MacPro", PlatformUnknownMac},
	{"iMacPro", PlatformUnknownMac},
	{"iMac", PlatformUnknownMac},
	{"VirtualMac", PlatformUnknownMac},
	{"Mac", PlatformUnknownMac},
}

// LookupPlatform classifies a hardware identifier such as "iPhone10,3" or
// "MacBookPro18,3". Identifiers missing from the table fall back to the
// unknown member of their family, or PlatformUnknown.
func LookupPlatform(hardwareID string) Platform {
	id := strings.TrimSpace(hardwareID)
	if p, ok := hardwareIDs[id]; ok {
		return p
	}
	for _, fp := range familyPrefixes {
		if strings.HasPrefix(id, fp.prefix) {
			return fp.fallback
		}
	}
	return PlatformUnknown
}

// Model pairs a hardware identifier with its platform.
type Model struct {
	Identifier string   `json:"identifier"`
	Platform   Platform `json:"platform"`
	Family     Family   `json:"family"`
}

// Models returns every known hardware identifier sorted by identifier.
func Models() []Model {
	out := make([]Model, 0, len(hardwareIDs))
	for id, p := range hardwareIDs {
		out = append(out, Model{Identifier: id, Platform: p, Family: p.Family()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out
}

func (f Family) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
