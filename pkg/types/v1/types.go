package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID identifies a record in the remote collection. SharePoint hands these out
// as integers, other backends as strings, so we keep it opaque.
type ID string

func (i ID) String() string { return string(i) }

// UnmarshalJSON accepts both JSON numbers and strings.
func (i *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*i = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("unable to decode id %s: %w", b, err)
		}
		*i = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("unable to decode id %s: %w", b, err)
	}
	*i = ID(n.String())
	return nil
}

// DefaultCollection is queried whenever no collection is configured
const DefaultCollection CollectionTarget = "Documents"

// CollectionTarget is the name of the remote document collection (a
// document library) a retrieval cycle queries.
type CollectionTarget string

// OrDefault returns the target, or DefaultCollection when it is blank.
func (c CollectionTarget) OrDefault() CollectionTarget {
	if strings.TrimSpace(string(c)) == "" {
		return DefaultCollection
	}
	return c
}

func (c CollectionTarget) String() string { return string(c) }
