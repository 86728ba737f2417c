package config

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

var (
	DB   *sqlx.DB
	once sync.Once
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know by default.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// ConnectDB opens and pings the ledger database.
func ConnectDB(cfg DatabaseConfig) (*sqlx.DB, error) {
	driver := strings.ToLower(cfg.Driver)
	db, err := sqlx.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == "sqlite" {
		// One connection keeps an in-memory database alive and avoids
		// SQLITE_BUSY on writes.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Lifetime())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// InitDB connects and migrates the shared DB handle once.
func InitDB(cfg DatabaseConfig, logger *zap.Logger) error {
	var initErr error
	once.Do(func() {
		db, err := ConnectDB(cfg)
		if err != nil {
			initErr = err
			return
		}
		if err := Migrate(db, logger); err != nil {
			db.Close()
			initErr = fmt.Errorf("failed to migrate database: %w", err)
			return
		}
		DB = db
		logger.Info("Database connected and migrated", zap.String("driver", db.DriverName()))
	})
	return initErr
}

// Migration is one named schema change.
type Migration struct {
	Name string
	SQL  string
}

// Migrate creates the migrations table and runs every pending migration for
// the connection's dialect.
func Migrate(db *sqlx.DB, logger *zap.Logger) error {
	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	migrations, err := getMigrations(db.DriverName())
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if err := runMigrationIfNotExists(db, m, logger); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", m.Name, err)
		}
	}
	return nil
}

func createMigrationsTable(db *sqlx.DB) error {
	var createSQL string
	switch db.DriverName() {
	case "mysql":
		createSQL = `
		CREATE TABLE IF NOT EXISTS migrations (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`
	case "postgres":
		createSQL = `
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`
	default:
		createSQL = `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`
	}
	_, err := db.Exec(createSQL)
	return err
}

func getMigrations(driver string) ([]Migration, error) {
	var idType, text string
	switch driver {
	case "mysql":
		idType, text = "INT AUTO_INCREMENT PRIMARY KEY", "TEXT"
	case "postgres":
		idType, text = "SERIAL PRIMARY KEY", "TEXT"
	case "sqlite":
		idType, text = "INTEGER PRIMARY KEY AUTOINCREMENT", "TEXT"
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}

	return []Migration{
		{
			Name: "001_create_users_table",
			SQL: `
			CREATE TABLE IF NOT EXISTS users (
				id ` + idType + `,
				username VARCHAR(255) NOT NULL UNIQUE,
				password VARCHAR(255) NOT NULL,
				role INT NOT NULL DEFAULT 0,
				created_at VARCHAR(32) NOT NULL
			)`,
		},
		{
			Name: "002_create_favorites_table",
			SQL: `
			CREATE TABLE IF NOT EXISTS favorites (
				id VARCHAR(32) PRIMARY KEY,
				user_id INT NOT NULL,
				crop VARCHAR(255) NOT NULL,
				variety VARCHAR(255) NOT NULL DEFAULT '',
				kind VARCHAR(16) NOT NULL,
				source VARCHAR(16) NOT NULL,
				notes ` + text + `,
				record_json ` + text + ` NOT NULL,
				edited BOOLEAN NOT NULL DEFAULT FALSE,
				created_at VARCHAR(32) NOT NULL,
				updated_at VARCHAR(32) NOT NULL
			)`,
		},
		{
			Name: "003_index_favorites_user",
			SQL:  `CREATE INDEX idx_favorites_user ON favorites (user_id, created_at)`,
		},
	}, nil
}

func runMigrationIfNotExists(db *sqlx.DB, m Migration, logger *zap.Logger) error {
	var count int
	if err := db.Get(&count, db.Rebind("SELECT COUNT(*) FROM migrations WHERE name = ?"), m.Name); err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Migration already executed, skipping", zap.String("migration", m.Name))
		return nil
	}

	logger.Info("Running migration", zap.String("migration", m.Name))
	if _, err := db.Exec(m.SQL); err != nil {
		return err
	}
	_, err := db.Exec(db.Rebind("INSERT INTO migrations (name) VALUES (?)"), m.Name)
	return err
}
