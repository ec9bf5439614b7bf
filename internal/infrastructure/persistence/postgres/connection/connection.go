package connection

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/samuelmonteirotf/habitus-app/pkg/config"
)

const pingTimeout = 10 * time.Second

// Database wraps the shared gorm handle together with the DSN so a
// lost connection can be reopened with the same pool settings.
type Database struct {
	*gorm.DB
	dsn          string
	maxIdleConns int
	maxOpenConns int
}

func buildDSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)
}

// NewDatabase pings postgres with a raw lib/pq connection first so
// driver errors surface with code and detail, then opens the gorm
// handle and tunes the pool from config.
func NewDatabase(cfg *config.Config) (*Database, error) {
	dsn := buildDSN(&cfg.Database)

	probe, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening probe connection: %w", err)
	}
	defer probe.Close()

	probe.SetConnMaxLifetime(pingTimeout)
	if err := probe.Ping(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("postgres refused connection: code=%s message=%s detail=%s", pqErr.Code, pqErr.Message, pqErr.Detail)
		}
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	db := &Database{
		dsn:          dsn,
		maxIdleConns: cfg.Database.MaxIdleConns,
		maxOpenConns: cfg.Database.MaxOpenConns,
	}
	if db.maxIdleConns <= 0 {
		db.maxIdleConns = 10
	}
	if db.maxOpenConns <= 0 {
		db.maxOpenConns = 100
	}

	if err := db.open(); err != nil {
		return nil, err
	}
	return db, nil
}

// Reconnect reopens the gorm handle after a dropped connection,
// keeping the original DSN and pool settings.
func (db *Database) Reconnect() error {
	return db.open()
}

func (db *Database) open() error {
	handle, err := gorm.Open(postgres.Open(db.dsn), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return fmt.Errorf("opening gorm connection: %w", err)
	}

	sqlDB, err := handle.DB()
	if err != nil {
		return fmt.Errorf("unwrapping *sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(db.maxIdleConns)
	sqlDB.SetMaxOpenConns(db.maxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("pinging connection pool: %w", err)
	}

	db.DB = handle
	return nil
}
