// Package database opens the session store database and manages its schema.
package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"finboard/internal/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	driver string
}

// NewManager opens the configured database
func NewManager(config *Config) (*Manager, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  config.DSN(),
			PreferSimpleProtocol: true,
		})
	case DriverSQLite, "":
		dialector = sqlite.Open(config.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if config.Driver == DriverPostgres {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// A single connection keeps a :memory: database alive between queries.
		sqlDB.SetMaxOpenConns(1)
	}

	driver := config.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	return &Manager{db: db, driver: driver}, nil
}

// newMigrate builds a migrator over the manager's own connection pool.
// The returned release func frees what the migrator holds without closing
// the pool.
func (m *Manager) newMigrate() (*migrate.Migrate, func(), error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open migrations: %w", err)
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	var target migratedb.Driver
	release := func() { _ = src.Close() }
	if m.driver == DriverPostgres {
		ctx := context.Background()
		conn, connErr := sqlDB.Conn(ctx)
		if connErr != nil {
			return nil, nil, fmt.Errorf("failed to get connection: %w", connErr)
		}
		release = func() {
			_ = src.Close()
			_ = conn.Close()
		}
		target, err = migratepg.WithConnection(ctx, conn, &migratepg.Config{})
	} else {
		target, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	}
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("failed to create migrate driver: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", src, m.driver, target)
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, release, nil
}

// RunMigrations applies every pending migration.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	mig, release, err := m.newMigrate()
	if err != nil {
		return err
	}
	defer release()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// RollbackMigrations reverts the last steps migrations.
func (m *Manager) RollbackMigrations(steps int) error {
	mig, release, err := m.newMigrate()
	if err != nil {
		return err
	}
	defer release()

	if err := mig.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// Version reports the applied schema version and whether it is dirty.
func (m *Manager) Version() (uint, bool, error) {
	mig, release, err := m.newMigrate()
	if err != nil {
		return 0, false, err
	}
	defer release()

	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close closes the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
