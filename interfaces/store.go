package interfaces

import "context"

// Store represents the durable registry store: a mapping from "network:host" to a serialized value.
// Each operation is atomic per key; there are no cross-key transactions.
//
//go:generate moq -stub -out mock/store.go -pkg mock . Store
type Store[T any] interface {
	// Get returns the value stored under key.
	// Returns:
	// 1) (item, nil) on success;
	// 2) (zero, entity_not_found) when the key is absent. Expected during fan-out, not a fault;
	// 3) (zero, internal_server_error) when the storage read or unmarshalling fails.
	Get(ctx context.Context, key string) (T, error)

	// Put writes (upserts) the value under key.
	// Returns:
	// 1) nil on success;
	// 2) internal_server_error when marshalling fails or when the storage write fails.
	Put(ctx context.Context, key string, item T) error

	// Delete removes the value for key. Deleting an absent key is not an error.
	// Returns:
	// 1) nil on success;
	// 2) internal_server_error when the storage delete fails.
	Delete(ctx context.Context, key string) error

	// Scan calls fn for every stored value in key order. Values that cannot be unmarshalled are skipped.
	// Writes made during a scan may or may not be visited.
	// Returns:
	// 1) nil after a full pass;
	// 2) the error returned by fn, which stops the pass;
	// 3) internal_server_error when iterating the storage fails.
	Scan(ctx context.Context, fn func(key string, item T) error) error
}
