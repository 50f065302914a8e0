package db

import (
	"fmt"
	"time"

	"genesis-lending/internal/domain/loan"
	"genesis-lending/internal/domain/user"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// OpenGorm opens the store for the configured driver. dsn is a MySQL DSN or a
// sqlite file path.
func OpenGorm(driver, dsn string, lvl logger.LogLevel) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch driver {
	case DriverMySQL:
		dial = mysql.Open(dsn)
	case DriverSQLite:
		dial = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	return openWith(dial, lvl)
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	return openWith(dial, logger.Warn)
}

func openWith(dial gorm.Dialector, lvl logger.LogLevel) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(lvl),
		DisableAutomaticPing: true,
		TranslateError:       true,
		NowFunc:              func() time.Time { return time.Now().UTC() },
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	zap.L().Info("gorm: connected", zap.String("dialect", dial.Name()))
	return db, nil
}

// Migrate creates or updates the users and loans tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&user.User{}, &loan.Loan{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
