// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// SQLConfig configures a SQLite-backed store.
type SQLConfig struct {
	// DSN is the SQLite data source name, typically a file path.
	DSN string `json:"dsn" yaml:"dsn"`
	// Prefix is prepended to table names.
	Prefix string `json:"prefix" yaml:"prefix"`
}

// DefaultSQLConfig returns the default SQLite configuration.
func DefaultSQLConfig() SQLConfig {
	return SQLConfig{
		DSN:    "session.sqlite3",
		Prefix: "reqx_",
	}
}

type sessionEntry struct {
	CacheKey  string `gorm:"column:cache_key;primaryKey"`
	Value     []byte `gorm:"column:value"`
	UpdatedAt time.Time
}

// SQL is a Store persisted through GORM. It is safe for concurrent use.
type SQL struct {
	db *gorm.DB
}

// OpenSQL opens (creating if needed) a SQLite database and returns a
// store backed by it. GORM log output goes to log, which may be nil.
func OpenSQL(cfg SQLConfig, log *zerolog.Logger) (*SQL, error) {
	if cfg.DSN == "" {
		cfg.DSN = DefaultSQLConfig().DSN
	}
	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		Logger:         NewGormLogger(log),
		NamingStrategy: schema.NamingStrategy{TablePrefix: cfg.Prefix},
	})
	if err != nil {
		return nil, err
	}
	return NewSQL(db)
}

// NewSQL returns a store backed by an existing GORM database, migrating
// its table if necessary.
func NewSQL(db *gorm.DB) (*SQL, error) {
	if err := db.AutoMigrate(&sessionEntry{}); err != nil {
		return nil, err
	}
	return &SQL{db: db}, nil
}

// Get returns the value stored for key.
func (s *SQL) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e sessionEntry
	err := s.db.WithContext(ctx).Where("cache_key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	return e.Value, true, nil
}

// Set upserts value for key.
func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	e := sessionEntry{CacheKey: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cache_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
}

// Close closes the underlying database.
func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
