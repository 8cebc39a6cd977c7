package metrics

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrSinkUnavailable = errors.New("payment record sink unavailable")

// SinkMonitor samples the payment record sink's connection pool and answers
// the /health probe.
type SinkMonitor struct {
	metrics *Metrics
	logger  *zap.Logger
	pool    *sql.DB

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewSinkMonitor(metrics *Metrics, logger *zap.Logger, db *gorm.DB) *SinkMonitor {
	monitor := &SinkMonitor{metrics: metrics, logger: logger}

	pool, err := db.DB()
	if err != nil {
		logger.Error("Payment record sink has no connection pool", zap.Error(err))
		metrics.RecordDBConnectionError()
		return monitor
	}
	monitor.pool = pool

	return monitor
}

// Start samples pool stats every interval until Stop is called.
func (m *SinkMonitor) Start(interval time.Duration) {
	if m.pool == nil {
		m.logger.Warn("Pool sampling disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.sample(ctx, interval)
	}()
}

func (m *SinkMonitor) Stop() {
	m.stopOnce.Do(func() {
		if m.cancel != nil {
			m.cancel()
		}
		m.wg.Wait()
	})
}

func (m *SinkMonitor) sample(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		stats := m.pool.Stats()
		m.metrics.DBConnectionsInUse.Set(float64(stats.InUse))
		m.metrics.DBConnectionsIdle.Set(float64(stats.Idle))

		if stats.WaitCount > 0 {
			m.logger.Debug("Sink pool contention",
				zap.Int("inUse", stats.InUse),
				zap.Int64("waitCount", stats.WaitCount),
				zap.Duration("waitDuration", stats.WaitDuration))
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

// HealthCheck pings the sink and records the probe latency.
func (m *SinkMonitor) HealthCheck(ctx context.Context) error {
	if m.pool == nil {
		m.metrics.RecordDBConnectionError()
		return ErrSinkUnavailable
	}

	start := time.Now()
	err := m.pool.PingContext(ctx)

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
		m.metrics.RecordDBConnectionError()
	}
	m.metrics.RecordDBQuery("ping", outcome, time.Since(start))

	return err
}
