package mysql

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	driver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type Config struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	LogLevel        string        `mapstructure:"log_level"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func NewConnection(ctx context.Context, cfg Config, logger *zap.Logger) (db *gorm.DB, err error) {
	logger = logger.With(zap.String("host", cfg.Host), zap.String("database", cfg.Name))

	sqlLogger := gormLogger.New(&zapWriter{logger: logger.Named("sql")},
		gormLogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  parseLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
		})

	// TranslateError turns MySQL 1062 into gorm.ErrDuplicatedKey for the unique reference index.
	db, err = gorm.Open(mysql.Open(buildDSN(cfg)), &gorm.Config{
		Logger:         sqlLogger,
		TranslateError: true,
	})
	if err != nil {
		logger.Error("Failed to open MySQL", zap.Error(err))
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("mysql pool: %w", err)
	}

	sqlDB.SetMaxIdleConns(valueOr(cfg.MaxIdleConns, 10))
	sqlDB.SetMaxOpenConns(valueOr(cfg.MaxOpenConns, 50))
	sqlDB.SetConnMaxLifetime(time.Hour)
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("MySQL ping failed", zap.Error(err))
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	logger.Info("Connected to MySQL")

	return db.WithContext(ctx), nil
}

func buildDSN(cfg Config) string {
	dsn := driver.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	dsn.DBName = cfg.Name
	dsn.ParseTime = true
	dsn.Loc = time.Local
	dsn.Params = map[string]string{"charset": "utf8mb4"}

	return dsn.FormatDSN()
}

func parseLogLevel(level string) gormLogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormLogger.Silent
	case "error":
		return gormLogger.Error
	case "info":
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}

func valueOr(v, fallback int) int {
	if v > 0 {
		return v
	}

	return fallback
}

type zapWriter struct {
	logger *zap.Logger
}

func (z *zapWriter) Printf(format string, args ...interface{}) {
	z.logger.Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
