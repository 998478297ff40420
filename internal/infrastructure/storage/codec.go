package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode unmarshals a collection from its durable JSON form. Absent, empty,
// null, or structurally invalid payloads all yield the supplied empty
// collection instead of failing; the returned error is diagnostic only, so
// operators can detect corruption without the request failing.
func Decode[T any](data []byte, empty T) (T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return empty, nil
	}

	var collection T
	if err := json.Unmarshal(trimmed, &collection); err != nil {
		return empty, fmt.Errorf("failed to decode collection: %w", err)
	}
	return collection, nil
}

// Encode marshals a collection to its durable JSON form.
func Encode[T any](collection T) ([]byte, error) {
	data, err := json.Marshal(collection)
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return data, nil
}
