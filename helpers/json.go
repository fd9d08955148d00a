package helpers

import "encoding/json"

// MarshalJSON is a store codec encoding T as JSON.
func MarshalJSON[T any](v T) ([]byte, error) {
	return json.Marshal(v)
}

// UnmarshalJSON is a store codec decoding JSON into T.
func UnmarshalJSON[T any](b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}
