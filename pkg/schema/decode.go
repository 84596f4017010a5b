package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode rehydrates a shared-state value into a typed payload.
//
// Values written by stages are already typed, but values loaded from a
// store adapter have been through JSON and come back as map[string]any.
// Decode handles both: typed values are assigned directly, generic maps are
// decoded through mapstructure.
func Decode[T any](value any) (T, error) {
	var out T
	if value == nil {
		return out, fmt.Errorf("cannot decode nil value")
	}
	if typed, ok := value.(T); ok {
		return typed, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true, // JSON numbers arrive as float64
	})
	if err != nil {
		return out, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(value); err != nil {
		return out, fmt.Errorf("failed to decode %T: %w", out, err)
	}
	return out, nil
}

// DecodeSlice rehydrates a shared-state value holding a list of payloads.
func DecodeSlice[T any](value any) ([]T, error) {
	if value == nil {
		return nil, fmt.Errorf("cannot decode nil value")
	}
	if typed, ok := value.([]T); ok {
		return typed, nil
	}

	var out []T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(value); err != nil {
		return nil, fmt.Errorf("failed to decode []%T: %w", *new(T), err)
	}
	return out, nil
}
