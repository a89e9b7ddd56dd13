package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	// Pure-Go SQLite driver registered as "sqlite".
	_ "modernc.org/sqlite"

	"github.com/unn-housing/service-booking/internal/config"
)

// ErrKeywordDSN is returned for libpq keyword/value DSNs. Only postgres:// URLs
// are accepted, since the same string is handed to the migrator.
var ErrKeywordDSN = errors.New("keyword/value PostgreSQL DSNs are not supported, use a postgres:// URL")

// IsPostgresDSN reports whether dsn targets PostgreSQL.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// isKeywordDSN reports whether dsn looks like "host=... user=...".
func isKeywordDSN(dsn string) bool {
	for _, field := range strings.Fields(dsn) {
		key, _, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch key {
		case "host", "user", "dbname", "port", "password", "sslmode":
			return true
		}
	}
	return false
}

// Connect opens a GORM connection. PostgreSQL URLs use the postgres driver;
// anything else is treated as a SQLite DSN.
func Connect(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dsn := cfg.DatabaseURL()
	if !IsPostgresDSN(dsn) && isKeywordDSN(dsn) {
		return nil, ErrKeywordDSN
	}
	gormCfg := &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	var (
		db  *gorm.DB
		err error
	)
	if IsPostgresDSN(dsn) {
		log.Info("connecting to PostgreSQL", zap.String("host", cfg.Host), zap.String("database", cfg.DBName))
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	} else {
		log.Info("using SQLite", zap.String("dsn", dsn))
		db, err = gorm.Open(gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if IsPostgresDSN(dsn) {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	} else {
		// SQLite allows one writer at a time.
		sqlDB.SetMaxOpenConns(1)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established")
	return db, nil
}
