package db

import (
	"encoding/json"
	"fmt"
	"io"

	v1 "github.com/byxorna/doclib/pkg/types/v1"
)

// envelope covers both the nometadata/minimal shape {"value": [...]} and the
// verbose shape {"d": {"results": [...]}}.
type envelope struct {
	Value []v1.RawRecord `json:"value"`
	D     *struct {
		Results []v1.RawRecord `json:"results"`
	} `json:"d"`
}

// DecodeRecords parses a list response body. A body without records is an
// empty, successful result.
func DecodeRecords(r io.Reader) ([]v1.RawRecord, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		if err == io.EOF {
			return []v1.RawRecord{}, nil
		}
		return nil, &NetworkError{Err: fmt.Errorf("unable to decode response: %w", err)}
	}
	switch {
	case env.Value != nil:
		return env.Value, nil
	case env.D != nil && env.D.Results != nil:
		return env.D.Results, nil
	}
	return []v1.RawRecord{}, nil
}
