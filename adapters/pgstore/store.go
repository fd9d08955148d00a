package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"electrumcrawler/helpers"
	"electrumcrawler/service"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const scanBatch = 200

// entry is one row of a key-value table. The table name is the store namespace.
type entry struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Value     []byte    `gorm:"type:bytea;not null"`
	UpdatedAt time.Time `gorm:"type:timestamp with time zone;not null"`
}

type pgStore[T any] struct {
	db        *gorm.DB
	table     string
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
	zero      T
}

// NewStore creates postgres implementation of generic store interface backed by table.
func NewStore[T any](db *gorm.DB, table string, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) *pgStore[T] {
	var zero T
	return &pgStore[T]{
		db:        helpers.NilPanic(db, "pgstore.store.go: db is required"),
		table:     helpers.StrPanic(table, "pgstore.store.go: table is required"),
		zero:      zero,
		marshal:   helpers.NilPanic(marshal, "pgstore.store.go: marshal is required"),
		unmarshal: helpers.NilPanic(unmarshal, "pgstore.store.go: unmarshal is required"),
	}
}

func (s *pgStore[T]) Get(ctx context.Context, key string) (T, error) {
	var row entry
	err := s.db.WithContext(ctx).Table(s.table).Where("key = ?", key).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.zero, service.NewEntityNotFoundError("Entity not found", err)
		}
		return s.zero, service.NewInternalServerError("Postgres get key error", fmt.Errorf("can't read item of type %T (key='%s'), err: %w", s.zero, key, err))
	}

	item, err := s.unmarshal(row.Value)
	if err != nil {
		return s.zero, service.NewInternalServerError("Postgres unmarshal item error", fmt.Errorf("can't unmarshal item of type %T (key='%s'), err: %w", s.zero, key, err))
	}

	return item, nil
}

func (s *pgStore[T]) Put(ctx context.Context, key string, item T) error {
	bytes, err := s.marshal(item)
	if err != nil {
		return service.NewInternalServerError("Postgres marshal item error", fmt.Errorf("can't marshal item of type %T, err: %w", item, err))
	}

	row := entry{Key: key, Value: bytes, UpdatedAt: time.Now().UTC()}
	err = s.db.WithContext(ctx).Table(s.table).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return service.NewInternalServerError("Postgres write key error", fmt.Errorf("can't write item of type %T (key='%s'), err: %w", item, key, err))
	}

	return nil
}

func (s *pgStore[T]) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Table(s.table).Where("key = ?", key).Delete(&entry{}).Error
	if err != nil {
		return service.NewInternalServerError("Postgres delete key error", fmt.Errorf("can't delete item of type %T (key='%s'), err: %w", s.zero, key, err))
	}
	return nil
}

// Scan reads the table in key order, in batches.
func (s *pgStore[T]) Scan(ctx context.Context, fn func(key string, item T) error) error {
	var (
		rows  []entry
		fnErr error
	)
	res := s.db.WithContext(ctx).Table(s.table).Order("key").FindInBatches(&rows, scanBatch, func(tx *gorm.DB, batch int) error {
		for _, row := range rows {
			item, err := s.unmarshal(row.Value)
			if err != nil {
				continue
			}
			if err := fn(row.Key, item); err != nil {
				fnErr = err
				return err
			}
		}
		return nil
	})
	if fnErr != nil {
		return fnErr
	}
	if res.Error != nil {
		return service.NewInternalServerError("Postgres scan error", fmt.Errorf("postgres scan error, err: %w", res.Error))
	}

	return nil
}
