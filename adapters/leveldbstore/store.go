// Package leveldbstore implements the registry store on an embedded LevelDB database.
package leveldbstore

import (
	"context"
	"errors"
	"fmt"

	"electrumcrawler/helpers"
	"electrumcrawler/service"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type levelStore[T any] struct {
	db        *leveldb.DB
	prefix    string
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
	zero      T
}

// Open opens (or creates) the database directory at path.
func Open(path string) (*leveldb.DB, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("can't open leveldb at %s: %w", path, err)
	}
	return db, nil
}

// NewStore creates leveldb implementation of generic store interface. Keys are stored as "<prefix>:<key>".
func NewStore[T any](db *leveldb.DB, prefix string, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) *levelStore[T] {
	var zero T
	return &levelStore[T]{
		db:        helpers.NilPanic(db, "leveldbstore.store.go: db is required"),
		prefix:    helpers.StrPanic(prefix, "leveldbstore.store.go: prefix is required"),
		zero:      zero,
		marshal:   helpers.NilPanic(marshal, "leveldbstore.store.go: marshal is required"),
		unmarshal: helpers.NilPanic(unmarshal, "leveldbstore.store.go: unmarshal is required"),
	}
}

func (s *levelStore[T]) Get(ctx context.Context, key string) (T, error) {
	bytes, err := s.db.Get(s.generateKey(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return s.zero, service.NewEntityNotFoundError("Entity not found", err)
		}
		return s.zero, service.NewInternalServerError("LevelDB get key error", fmt.Errorf("can't read item of type %T (key='%s'), err: %w", s.zero, key, err))
	}

	item, err := s.unmarshal(bytes)
	if err != nil {
		return s.zero, service.NewInternalServerError("LevelDB unmarshal item error", fmt.Errorf("can't unmarshal item of type %T (key='%s'), err: %w", s.zero, key, err))
	}

	return item, nil
}

func (s *levelStore[T]) Put(ctx context.Context, key string, item T) error {
	bytes, err := s.marshal(item)
	if err != nil {
		return service.NewInternalServerError("LevelDB marshal item error", fmt.Errorf("can't marshal item of type %T, err: %w", item, err))
	}

	if err := s.db.Put(s.generateKey(key), bytes, nil); err != nil {
		return service.NewInternalServerError("LevelDB write key error", fmt.Errorf("can't write item of type %T (key='%s'), err: %w", item, key, err))
	}

	return nil
}

func (s *levelStore[T]) Delete(ctx context.Context, key string) error {
	if err := s.db.Delete(s.generateKey(key), nil); err != nil {
		return service.NewInternalServerError("LevelDB delete key error", fmt.Errorf("can't delete item of type %T (key='%s'), err: %w", s.zero, key, err))
	}
	return nil
}

// Scan iterates the prefix in key order. LevelDB keys are sorted, so no extra sort is needed.
func (s *levelStore[T]) Scan(ctx context.Context, fn func(key string, item T) error) error {
	prefix := []byte(s.prefix + ":")
	iter := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}

		item, err := s.unmarshal(iter.Value())
		if err != nil {
			continue
		}

		if err := fn(string(iter.Key()[len(prefix):]), item); err != nil {
			return err
		}
	}
	if err := iter.Error(); err != nil {
		return service.NewInternalServerError("LevelDB iterate error", fmt.Errorf("leveldb iterate error, err: %w", err))
	}

	return nil
}

func (s *levelStore[T]) generateKey(key string) []byte {
	return []byte(s.prefix + ":" + key)
}
