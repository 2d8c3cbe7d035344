// Package gormstore implements the core repository ports on gorm.
//
// Two dialects are supported: SQLite (pure-Go driver, no CGO — easy to
// build and run in Docker/Alpine) for development and tests, and Postgres
// for production. The settlement path relies on row locking on Postgres;
// on SQLite the single writer connection serialises whole transactions,
// which gives the same per-order guarantee.
package gormstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/apperror"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/entity"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/identity"

	"github.com/google/uuid"
)

// Open connects to the database, applies the schema, and seeds the role
// table. driver is "sqlite" or "postgres".
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(dsn))
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("gormstore: unknown driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("gormstore: open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// SQLite performs best with a single writer connection; this is
		// also what serialises concurrent settlement transactions.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("gormstore: unwrap sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Customer{},
		&entity.Category{},
		&entity.Product{},
		&entity.ProductImage{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Payment{},
	); err != nil {
		return nil, fmt.Errorf("gormstore: migrate: %w", err)
	}

	if err := seedRoles(db); err != nil {
		return nil, err
	}
	return db, nil
}

// sqliteDSN appends the pragmas we always want: WAL so readers never block
// the writer, foreign keys on, and a busy timeout instead of immediate
// SQLITE_BUSY failures. DSNs that already carry parameters pass through.
func sqliteDSN(dsn string) string {
	if dsn == ":memory:" || strings.Contains(dsn, "?") {
		return dsn
	}
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", dsn)
}

// seedRoles guarantees the built-in roles exist so registration always has
// a default role to attach.
func seedRoles(db *gorm.DB) error {
	for _, name := range []string{identity.RoleAdmin, identity.RoleUser} {
		role := entity.Role{ID: uuid.NewString(), Name: name}
		err := db.Where(entity.Role{Name: name}).
			Attrs(entity.Role{ID: role.ID}).
			FirstOrCreate(&role).Error
		if err != nil {
			return fmt.Errorf("gormstore: seed role %q: %w", name, err)
		}
	}
	return nil
}

// notFoundOr translates gorm's record-not-found into the application's
// NotFound kind; anything else is an unexpected store failure.
func notFoundOr(err error, code, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFoundf(code, format, args...)
	}
	return apperror.Dependency(code, err)
}
