package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SchemaVersion is the schema version this code expects.
// Version 1 had the users and exercise_logs stores, version 2 added kv_entries.
const SchemaVersion = 2

var _ DB = (*Client)(nil) // Ensure Client implements DB

var (
	openMu      sync.Mutex
	openClients = make(map[string]*Client)
)

// Client wraps the gorm.DB instance.
type Client struct {
	db         *gorm.DB
	path       string
	refs       int
	bcryptCost int
}

// SchemaMeta records the schema version stored in the database file.
type SchemaMeta struct {
	ID        uint `gorm:"primaryKey"`
	Version   int  `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName overrides the gorm default.
func (SchemaMeta) TableName() string { return "schema_meta" }

const schemaMetaID = 1

// Option configures a Client when it is first opened.
type Option func(*Client)

// WithBcryptCost sets the bcrypt work factor used for new passwords.
func WithBcryptCost(cost int) Option {
	return func(c *Client) {
		c.bcryptCost = cost
	}
}

// Open opens the database at dbpath and upgrades its schema if needed.
// Calling Open again with the same path returns the already open client,
// options are only applied on the first call.
func Open(dbpath string, opts ...Option) (*Client, error) {
	if dbpath == "" {
		return nil, ErrStorageUnavailable
	}
	abs, err := filepath.Abs(dbpath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	openMu.Lock()
	defer openMu.Unlock()

	if c, ok := openClients[abs]; ok {
		c.refs++
		return c, nil
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	db, err := gorm.Open(sqlite.Open(abs+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, &OpenError{Path: abs, Err: err}
	}

	c := &Client{
		db:         db,
		path:       abs,
		refs:       1,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.migrate(); err != nil {
		_ = c.closeDB()
		return nil, &OpenError{Path: abs, Err: err}
	}

	openClients[abs] = c
	return c, nil
}

// migrate creates missing stores when the stored schema version is older than SchemaVersion.
// Existing tables and rows are never dropped.
func (c *Client) migrate() error {
	if err := c.db.AutoMigrate(&SchemaMeta{}); err != nil {
		return fmt.Errorf("failed to migrate schema metadata: %w", err)
	}

	stored, err := c.storedVersion(c.db)
	if err != nil {
		return err
	}

	if stored > SchemaVersion {
		log.Warn("database schema is newer than this binary", "stored", stored, "expected", SchemaVersion)
		return nil
	}
	if stored == SchemaVersion {
		return nil
	}

	if err := c.db.AutoMigrate(
		&User{},
		&ExerciseLog{},
		&KeyValue{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := c.db.Save(&SchemaMeta{ID: schemaMetaID, Version: SchemaVersion}).Error; err != nil {
		return fmt.Errorf("failed to store schema version: %w", err)
	}

	log.Info("database schema upgraded", "path", c.path, "from", stored, "to", SchemaVersion)
	return nil
}

func (c *Client) storedVersion(db *gorm.DB) (int, error) {
	var meta SchemaMeta
	if err := db.First(&meta, schemaMetaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return meta.Version, nil
}

// Path returns the absolute path of the database file.
func (c *Client) Path() string {
	return c.path
}

// Close releases the client. The underlying connection is closed once every
// caller of Open has closed it. Closing an already closed client is a no-op.
func (c *Client) Close() error {
	openMu.Lock()
	defer openMu.Unlock()

	if c.refs == 0 {
		return nil
	}
	if c.refs > 1 {
		c.refs--
		return nil
	}
	c.refs = 0
	if openClients[c.path] == c {
		delete(openClients, c.path)
	}
	return c.closeDB()
}

func (c *Client) closeDB() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
