package runtime

import (
	"fmt"

	"github.com/adrg/xdg"
)

const (
	XDGName = "doclib"
)

// File is a per-session file such as the debug log.
func File(filename string) (string, error) {
	return xdg.RuntimeFile(fmt.Sprintf("%s/%s", XDGName, filename))
}

// CacheFile survives restarts but may be thrown away, e.g. cached tokens.
func CacheFile(filename string) (string, error) {
	return xdg.CacheFile(fmt.Sprintf("%s/%s", XDGName, filename))
}

// ConfigFile is where `doclib config init` offers to write when no path is given.
func ConfigFile(filename string) (string, error) {
	return xdg.ConfigFile(fmt.Sprintf("%s/%s", XDGName, filename))
}
