package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSinkMonitor_WithoutPool(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	monitor := &SinkMonitor{metrics: m, logger: zap.NewNop()}

	err := monitor.HealthCheck(context.Background())

	assert.ErrorIs(t, err, ErrSinkUnavailable)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBConnectionErrors))

	monitor.Start(0)
	monitor.Stop()
	monitor.Stop()
}
