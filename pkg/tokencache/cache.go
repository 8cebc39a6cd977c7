package tokencache

import (
	"context"
	"errors"
	"time"
)

var ErrMiss = errors.New("token cache miss")

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type Config struct {
	Enable    bool   `mapstructure:"enable"`
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	Namespace string `mapstructure:"namespace"`
}
