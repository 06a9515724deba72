package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"YSFinancials/models"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = 10 * time.Minute
)

// GormStore persists inquiries in a SQL database through GORM.
type GormStore struct {
	db *gorm.DB
}

// OpenGorm connects the given SQL backend, pings it and creates the contacts table.
func OpenGorm(ctx context.Context, backend Backend, dsn string) (*GormStore, error) {
	var dialector gorm.Dialector
	switch backend {
	case BackendPostgres:
		dialector = postgres.Open(dsn)
	case BackendMySQL:
		dialector = mysql.Open(dsn)
	case BackendSQLite:
		sqlDB, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		// one connection so ":memory:" databases are shared by every query
		sqlDB.SetMaxOpenConns(1)
		dialector = sqlite.Dialector{DriverName: "sqlite", DSN: dsn, Conn: sqlDB}
	default:
		return nil, fmt.Errorf("backend %q is not a SQL backend", backend)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// never log SQL: statements carry submitted personal data
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", backend, err)
	}

	if backend != BackendSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
		sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
	}

	return NewGormStore(ctx, db)
}

// NewGormStore wraps an open *gorm.DB, checking it and migrating the contacts table.
func NewGormStore(ctx context.Context, db *gorm.DB) (*GormStore, error) {
	s := &GormStore{db: db}
	if err := s.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database connection test failed: %w", err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&models.Inquiry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Insert writes one inquiry row.
func (s *GormStore) Insert(ctx context.Context, inq *models.Inquiry) error {
	return s.db.WithContext(ctx).Create(inq).Error
}

// Ping checks the connection.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
