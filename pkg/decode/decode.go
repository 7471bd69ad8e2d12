// Package decode reads strictly shaped JSON values.
package decode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrTrailingData is returned when a body holds more than one JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

// JSON decodes exactly one JSON value from r into T, rejecting unknown fields.
func JSON[T any](r io.Reader) (T, error) {
	var result T

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("decode json: %w", err)
	}

	if dec.More() {
		return result, ErrTrailingData
	}

	return result, nil
}

// Raw decodes data into T, rejecting unknown fields.
func Raw[T any](data json.RawMessage) (T, error) {
	var result T
	if len(data) == 0 {
		return result, fmt.Errorf("decode json: empty value")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("decode json: %w", err)
	}
	return result, nil
}
