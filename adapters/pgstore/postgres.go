// Package pgstore implements the registry store on PostgreSQL through gorm.
package pgstore

import (
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgres opens a gorm connection whose SQL warnings go to the go-kit logger.
func NewPostgres(dsn string, kitLogger log.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		kitWriter{logger: log.With(kitLogger, "component", "gorm")},
		logger.Config{
			SlowThreshold:             300 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("can't open postgres: %w", err)
	}
	return db, nil
}

// Migrate creates the entries table.
func Migrate(db *gorm.DB, table string) error {
	return db.Table(table).AutoMigrate(&entry{})
}

type kitWriter struct {
	logger log.Logger
}

func (w kitWriter) Printf(format string, args ...interface{}) {
	level.Warn(w.logger).Log("msg", fmt.Sprintf(format, args...))
}
