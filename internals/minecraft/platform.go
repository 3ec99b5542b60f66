package minecraft

import (
	"runtime"
	"strings"
)

// OS tokens as used in version manifests
const (
	OSMac     = "osx"
	OSLinux   = "linux"
	OSWindows = "windows"
)

// Platform is the os/arch pair used to pick native classifiers and evaluate rules
type Platform struct {
	// OS is one of OSMac, OSLinux or OSWindows
	OS string
	// Arch is the manifest style architecture (x64, x86, arm64, arm32)
	Arch string
}

// CurrentPlatform returns the platform this process runs on
func CurrentPlatform() Platform {
	return NewPlatform(runtime.GOOS, runtime.GOARCH)
}

// NewPlatform translates go style os and arch names into the tokens
// used in version manifests. Unknown names are passed through as they are
func NewPlatform(goos string, goarch string) Platform {
	return Platform{OS: normalizeOS(goos), Arch: normalizeArch(goarch)}
}

// Bits returns the pointer width of the platform ("32" or "64")
// it is used to replace ${arch} in native classifier keys
func (p Platform) Bits() string {
	switch p.Arch {
	case "x86", "arm32":
		return "32"
	default:
		return "64"
	}
}

func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

func normalizeOS(os string) string {
	switch strings.ToLower(os) {
	case "darwin", "macos", "osx":
		return OSMac
	default:
		return strings.ToLower(os)
	}
}

func normalizeArch(arch string) string {
	switch arch {
	case "amd64", "x86_64":
		return "x64"
	case "386", "i386":
		return "x86"
	case "arm":
		return "arm32"
	}
	// note: we don't know how other platforms are named
	return arch
}
