package plugins

import (
	"fmt"
	"net/url"
)

// Type names a document backend.
type Type string

const (
	TypeSharePoint Type = "sharepoint"
	TypeLocal      Type = "fs"
)

// TypeFor picks the backend serving site by its URL scheme.
func TypeFor(site string) (Type, error) {
	u, err := url.Parse(site)
	if err != nil {
		return "", fmt.Errorf("unable to parse site %q: %w", site, err)
	}
	switch u.Scheme {
	case "http", "https":
		return TypeSharePoint, nil
	case "file":
		return TypeLocal, nil
	}
	return "", fmt.Errorf("no backend for site %q", site)
}
