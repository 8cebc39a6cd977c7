package database

import (
	"context"

	"github.com/a1tips/paymentgateway/internal/config"
	"github.com/a1tips/paymentgateway/pkg/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewConnection(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return mysql.NewConnection(context.Background(), cfg.Database, logger)
}
