package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/booknotes/internal/catalog"
	"github.com/mrlokans/booknotes/internal/entities"
)

// DriverName is the sqlite3 driver with the catalog's SQL functions
// registered on every connection.
const DriverName = "sqlite3_booknotes"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(catalog.FoldFunction, catalog.Fold, true)
		},
	})
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the SQLite catalog at dbPath and migrates the schema.
// logLevel is one of silent, error, warn or info.
func NewDatabase(dbPath, logLevel string) (*Database, error) {
	level, err := ParseLogLevel(logLevel)
	if err != nil {
		return nil, err
	}

	dialector := sqlite.New(sqlite.Config{DriverName: DriverName, DSN: dbPath})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewLogger(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.Book{}, &entities.Content{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// NewLogger returns a gorm logger that does not report lookups of absent
// rows, which the catalog treats as a normal outcome.
func NewLogger(level logger.LogLevel) logger.Interface {
	return logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// ParseLogLevel maps a configuration value to a gorm logger level.
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent, nil
	case "error":
		return logger.Error, nil
	case "", "warn", "warning":
		return logger.Warn, nil
	case "info":
		return logger.Info, nil
	default:
		return logger.Silent, fmt.Errorf("unknown database log level %q", level)
	}
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
