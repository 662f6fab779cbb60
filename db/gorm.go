package db

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"musicapp/config"
	applog "musicapp/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed schema/sqlite.sql
var sqliteSchema string

//go:embed schema/mysql.sql
var mysqlSchema string

// Open connects to the catalog database selected by cfg.DBDriver and makes sure
// the schema exists. The SQLite file is created if it is absent.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if applog.ParseLevel(cfg.LogLevel) == applog.DebugLevel {
		logLevel = logger.Info
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database with GORM: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.DBDriver == config.DriverMySQL {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// SQLite allows a single writer; one connection also keeps
		// the foreign_keys pragma and in-memory databases consistent.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(gdb, cfg.DBDriver); err != nil {
		sqlDB.Close()
		return nil, err
	}

	applog.Info("Connected to catalog database",
		applog.String("driver", cfg.DBDriver))
	return gdb, nil
}

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return mysql.Open(dsn), nil
	case config.DriverSQLite, "":
		return sqlite.Open(sqliteDSN(cfg.DBPath)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

func sqliteDSN(path string) string {
	const params = "_foreign_keys=on&_busy_timeout=5000"
	if path == "" || path == ":memory:" {
		return "file::memory:?" + params
	}
	if dir := filepath.Dir(path); dir != "." {
		// best effort; sqlite reports the real error on open
		_ = os.MkdirAll(dir, 0755)
	}
	return path + "?" + params
}

// Migrate executes the embedded schema for driver. Every statement is
// idempotent, so running it against an existing database is a no-op.
func Migrate(gdb *gorm.DB, driver string) error {
	schema := sqliteSchema
	if driver == config.DriverMySQL {
		schema = mysqlSchema
	}

	for _, stmt := range splitStatements(schema) {
		if err := gdb.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to apply schema statement %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

// Close 关闭 GORM 数据库连接
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func splitStatements(schema string) []string {
	var stmts []string
	for _, part := range strings.Split(schema, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
