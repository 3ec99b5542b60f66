package commands

import (
	"os"
	"runtime"
	"sync/atomic"
)

var emojiOff atomic.Bool

func init() {
	emojiOff.Store(!terminalHasEmoji())
}

// terminalHasEmoji guesses if the terminal can render emojis.
// Only the classic windows console can not
func terminalHasEmoji() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	// windows terminal and vscode set these, conhost does not
	return os.Getenv("WT_SESSION") != "" || os.Getenv("TERM_PROGRAM") == "vscode"
}

// SetEmoji turns emoji output on or off. Turning it on has no effect
// on terminals without emoji support
func SetEmoji(enabled bool) {
	emojiOff.Store(!enabled || !terminalHasEmoji())
}

// Emoji returns e if emojis are enabled, an empty string otherwise
func Emoji(e string) string {
	if emojiOff.Load() {
		return ""
	}
	return e
}
