package utils

import (
	"strings"

	"github.com/jwalton/gchalk"
)

// PrettyVersion returns a pretty colored version string for terminal printing.
// Snapshot suffixes are dimmed
func PrettyVersion(version string) string {
	// we trim first to avoid broken colors
	if len(version) >= 22 {
		version = version[:18] + " …"
	}

	versionParts := strings.SplitN(version, "-", 2)
	if len(versionParts) == 2 {
		return versionParts[0] + gchalk.Dim("-"+versionParts[1])
	}
	return version
}
