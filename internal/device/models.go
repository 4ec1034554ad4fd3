package device

// hardwareIDs is keyed by the value of sysctl hw.machine (iOS, tvOS,
// watchOS) or hw.model (macOS).
var hardwareIDs = map[string]Platform{
	"i386":   PlatformSimulator,
	"x86_64": PlatformSimulator,
	"arm64":  PlatformSimulator,

	"iPhone1,1":  PlatformIPhone1G,
	"iPhone1,2":  PlatformIPhone3G,
	"iPhone2,1":  PlatformIPhone3GS,
	"iPhone3,1":  PlatformIPhone4,
	"iPhone3,2":  PlatformIPhone4,
	"iPhone3,3":  PlatformIPhone4,
	"iPhone4,1":  PlatformIPhone4S,
	"iPhone5,1":  PlatformIPhone5,
	"iPhone5,2":  PlatformIPhone5,
	"iPhone5,3":  PlatformIPhone5C,
	"iPhone5,4":  PlatformIPhone5C,
	"iPhone6,1":  PlatformIPhone5S,
	"iPhone6,2":  PlatformIPhone5S,
	"iPhone7,1":  PlatformIPhone6Plus,
	"iPhone7,2":  PlatformIPhone6,
	"iPhone8,1":  PlatformIPhone6S,
	"iPhone8,2":  PlatformIPhone6SPlus,
	"iPhone8,4":  PlatformIPhoneSE,
	"iPhone9,1":  PlatformIPhone7,
	"iPhone9,3":  PlatformIPhone7,
	"iPhone9,2":  PlatformIPhone7Plus,
	"iPhone9,4":  PlatformIPhone7Plus,
	"iPhone10,1": PlatformIPhone8,
	"iPhone10,4": PlatformIPhone8,
	"iPhone10,2": PlatformIPhone8Plus,
	"iPhone10,5": PlatformIPhone8Plus,
	"iPhone10,3": PlatformIPhoneX,
	"iPhone10,6": PlatformIPhoneX,
	"iPhone11,2": PlatformIPhoneXS,
	"iPhone11,4": PlatformIPhoneXSMax,
	"iPhone11,6": PlatformIPhoneXSMax,
	"iPhone11,8": PlatformIPhoneXR,
	"iPhone12,1": PlatformIPhone11,
	"iPhone12,3": PlatformIPhone11Pro,
	"iPhone12,5": PlatformIPhone11ProMax,
	"iPhone12,8": PlatformIPhoneSE2,
	"iPhone13,1": PlatformIPhone12Mini,
	"iPhone13,2": PlatformIPhone12,
	"iPhone13,3": PlatformIPhone12Pro,
	"iPhone13,4": PlatformIPhone12ProMax,
	"iPhone14,4": PlatformIPhone13Mini,
	"iPhone14,5": PlatformIPhone13,
	"iPhone14,2": PlatformIPhone13Pro,
	"iPhone14,3": PlatformIPhone13ProMax,
	"iPhone14,6": PlatformIPhoneSE3,
	"iPhone14,7": PlatformIPhone14,
	"iPhone14,8": PlatformIPhone14Plus,
	"iPhone15,2": PlatformIPhone14Pro,
	"iPhone15,3": PlatformIPhone14ProMax,
	"iPhone15,4": PlatformIPhone15,
	"iPhone15,5": PlatformIPhone15Plus,
	"iPhone16,1": PlatformIPhone15Pro,
	"iPhone16,2": PlatformIPhone15ProMax,
	"iPhone17,3": PlatformIPhone16,
	"iPhone17,4": PlatformIPhone16Plus,
	"iPhone17,1": PlatformIPhone16Pro,
	"iPhone17,2": PlatformIPhone16ProMax,

	"iPod1,1": PlatformIPod1G,
	"iPod2,1": PlatformIPod2G,
	"iPod3,1": PlatformIPod3G,
	"iPod4,1": PlatformIPod4G,
	"iPod5,1": PlatformIPod5G,
	"iPod7,1": PlatformIPod6G,
	"iPod9,1": PlatformIPod7G,

	"iPad1,1":   PlatformIPad1G,
	"iPad2,1":   PlatformIPad2G,
	"iPad2,2":   PlatformIPad2G,
	"iPad2,3":   PlatformIPad2G,
	"iPad2,4":   PlatformIPad2G,
	"iPad2,5":   PlatformIPadMini1G,
	"iPad2,6":   PlatformIPadMini1G,
	"iPad2,7":   PlatformIPadMini1G,
	"iPad3,1":   PlatformIPad3G,
	"iPad3,2":   PlatformIPad3G,
	"iPad3,3":   PlatformIPad3G,
	"iPad3,4":   PlatformIPad4G,
	"iPad3,5":   PlatformIPad4G,
	"iPad3,6":   PlatformIPad4G,
	"iPad4,1":   PlatformIPadAir1G,
	"iPad4,2":   PlatformIPadAir1G,
	"iPad4,3":   PlatformIPadAir1G,
	"iPad4,4":   PlatformIPadMini2G,
	"iPad4,5":   PlatformIPadMini2G,
	"iPad4,6":   PlatformIPadMini2G,
	"iPad4,7":   PlatformIPadMini3G,
	"iPad4,8":   PlatformIPadMini3G,
	"iPad4,9":   PlatformIPadMini3G,
	"iPad5,1":   PlatformIPadMini4G,
	"iPad5,2":   PlatformIPadMini4G,
	"iPad5,3":   PlatformIPadAir2G,
	"iPad5,4":   PlatformIPadAir2G,
	"iPad6,3":   PlatformIPadPro9Inch,
	"iPad6,4":   PlatformIPadPro9Inch,
	"iPad6,7":   PlatformIPadPro12Inch1G,
	"iPad6,8":   PlatformIPadPro12Inch1G,
	"iPad6,11":  PlatformIPad5G,
	"iPad6,12":  PlatformIPad5G,
	"iPad7,1":   PlatformIPadPro12Inch2G,
	"iPad7,2":   PlatformIPadPro12Inch2G,
	"iPad7,3":   PlatformIPadPro10Inch,
	"iPad7,4":   PlatformIPadPro10Inch,
	"iPad7,5":   PlatformIPad6G,
	"iPad7,6":   PlatformIPad6G,
	"iPad7,11":  PlatformIPad7G,
	"iPad7,12":  PlatformIPad7G,
	"iPad8,1":   PlatformIPadPro11Inch1G,
	"iPad8,2":   PlatformIPadPro11Inch1G,
	"iPad8,3":   PlatformIPadPro11Inch1G,
	"iPad8,4":   PlatformIPadPro11Inch1G,
	"iPad8,5":   PlatformIPadPro12Inch3G,
	"iPad8,6":   PlatformIPadPro12Inch3G,
	"iPad8,7":   PlatformIPadPro12Inch3G,
	"iPad8,8":   PlatformIPadPro12Inch3G,
	"iPad11,1":  PlatformIPadMini5G,
	"iPad11,2":  PlatformIPadMini5G,
	"iPad11,3":  PlatformIPadAir3G,
	"iPad11,4":  PlatformIPadAir3G,
	"iPad11,6":  PlatformIPad8G,
	"iPad11,7":  PlatformIPad8G,
	"iPad12,1":  PlatformIPad9G,
	"iPad12,2":  PlatformIPad9G,
	"iPad13,1":  PlatformIPadAir4G,
	"iPad13,2":  PlatformIPadAir4G,
	"iPad13,4":  PlatformIPadPro11Inch3G,
	"iPad13,5":  PlatformIPadPro11Inch3G,
	"iPad13,6":  PlatformIPadPro11Inch3G,
	"iPad13,7":  PlatformIPadPro11Inch3G,
	"iPad13,8":  PlatformIPadPro12Inch5G,
	"iPad13,9":  PlatformIPadPro12Inch5G,
	"iPad13,10": PlatformIPadPro12Inch5G,
	"iPad13,11": PlatformIPadPro12Inch5G,
	"iPad13,16": PlatformIPadAir5G,
	"iPad13,17": PlatformIPadAir5G,
	"iPad13,18": PlatformIPad10G,
	"iPad13,19": PlatformIPad10G,
	"iPad14,1":  PlatformIPadMini6G,
	"iPad14,2":  PlatformIPadMini6G,

	"AppleTV2,1":  PlatformAppleTV2G,
	"AppleTV3,1":  PlatformAppleTV3G,
	"AppleTV3,2":  PlatformAppleTV3G,
	"AppleTV5,3":  PlatformAppleTVHD,
	"AppleTV6,2":  PlatformAppleTV4K,
	"AppleTV11,1": PlatformAppleTV4K2G,
	"AppleTV14,1": PlatformAppleTV4K3G,

	"Watch1,1":  PlatformAppleWatch1G,
	"Watch1,2":  PlatformAppleWatch1G,
	"Watch6,1":  PlatformAppleWatchSeries6,
	"Watch6,2":  PlatformAppleWatchSeries6,
	"Watch6,3":  PlatformAppleWatchSeries6,
	"Watch6,4":  PlatformAppleWatchSeries6,
	"Watch6,6":  PlatformAppleWatchSeries7,
	"Watch6,7":  PlatformAppleWatchSeries7,
	"Watch6,8":  PlatformAppleWatchSeries7,
	"Watch6,9":  PlatformAppleWatchSeries7,
	"Watch6,18": PlatformAppleWatchUltra,

	"MacBookAir10,1": PlatformMacBookAirM1,
	"Mac14,2":        PlatformMacBookAirM2,
	"MacBookPro17,1": PlatformMacBookPro13M1,
	"Mac14,7":        PlatformMacBookPro13M2,
	"MacBookPro18,3": PlatformMacBookPro14M1,
	"MacBookPro18,4": PlatformMacBookPro14M1,
	"MacBookPro18,1": PlatformMacBookPro16M1,
	"MacBookPro18,2": PlatformMacBookPro16M1,
	"Mac15,3":        PlatformMacBookPro14M3,
	"Macmini9,1":     PlatformMacMiniM1,
	"Mac14,3":        PlatformMacMiniM2,
	"iMac21,1":       PlatformIMac24M1,
	"iMac21,2":       PlatformIMac24M1,
	"Mac13,1":        PlatformMacStudio2022,
	"Mac13,2":        PlatformMacStudio2022,
	"MacPro7,1":      PlatformMacPro2019,
	"VirtualMac2,1":  PlatformVirtualMac,
}
