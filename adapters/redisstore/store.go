// Package redisstore implements the registry store on Redis. Values live under "<prefix>:<key>".
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"electrumcrawler/helpers"
	"electrumcrawler/service"

	"github.com/go-redis/redis/v8"
)

const scanBatch = 256

type redisStore[T any] struct {
	client    redis.UniversalClient
	prefix    string
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
	zero      T
}

// NewStore creates redis implementation of generic store interface.
func NewStore[T any](client redis.UniversalClient, prefix string, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) *redisStore[T] {
	var zero T
	return &redisStore[T]{
		client:    helpers.NilPanic(client, "redisstore.store.go: client is required"),
		prefix:    helpers.StrPanic(prefix, "redisstore.store.go: prefix is required"),
		zero:      zero,
		marshal:   helpers.NilPanic(marshal, "redisstore.store.go: marshal is required"),
		unmarshal: helpers.NilPanic(unmarshal, "redisstore.store.go: unmarshal is required"),
	}
}

func (r *redisStore[T]) Get(ctx context.Context, key string) (T, error) {
	bytes, err := r.client.Get(ctx, r.generateKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return r.zero, service.NewEntityNotFoundError("Entity not found", err)
		}
		return r.zero, service.NewInternalServerError("Redis get key error", fmt.Errorf("can't read item of type %T from redis (key='%s'), err: %w", r.zero, key, err))
	}

	item, err := r.unmarshal(bytes)
	if err != nil {
		return r.zero, service.NewInternalServerError("Redis unmarshal item error", fmt.Errorf("can't unmarshal item of type %T (key='%s'), err: %w", r.zero, key, err))
	}

	return item, nil
}

func (r *redisStore[T]) Put(ctx context.Context, key string, item T) error {
	bytes, err := r.marshal(item)
	if err != nil {
		return service.NewInternalServerError("Redis marshal item error", fmt.Errorf("can't marshal item of type %T, err: %w", item, err))
	}

	err = r.client.Set(ctx, r.generateKey(key), bytes, 0).Err()
	if err != nil {
		return service.NewInternalServerError("Redis write key error", fmt.Errorf("can't write item of type %T to redis (key='%s'), err: %w", item, key, err))
	}

	return nil
}

func (r *redisStore[T]) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, r.generateKey(key)).Err()
	if err != nil {
		return service.NewInternalServerError("Redis delete key error", fmt.Errorf("can't delete item of type %T from redis (key='%s'), err: %w", r.zero, key, err))
	}
	return nil
}

// Scan walks the prefix with SCAN, sorts the keys, then fetches each value.
// Keys deleted in between and values that fail to unmarshal are skipped.
func (r *redisStore[T]) Scan(ctx context.Context, fn func(key string, item T) error) error {
	prefixWithColon := r.prefix + ":"

	var keys []string
	iter := r.client.Scan(ctx, 0, prefixWithColon+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), prefixWithColon))
	}
	if err := iter.Err(); err != nil {
		return service.NewInternalServerError("Redis scan keys error", fmt.Errorf("redis scan keys error, err: %w", err))
	}
	sort.Strings(keys)

	for _, key := range keys {
		bytes, err := r.client.Get(ctx, r.generateKey(key)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return service.NewInternalServerError("Redis get key error", fmt.Errorf("can't read key '%s' during scan, err: %w", key, err))
		}

		item, err := r.unmarshal(bytes)
		if err != nil {
			continue
		}

		if err := fn(key, item); err != nil {
			return err
		}
	}

	return nil
}

func (r *redisStore[T]) generateKey(key string) string {
	return r.prefix + ":" + key
}
