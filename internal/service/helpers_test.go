package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/a1tips/paymentgateway/internal/config"
	"github.com/a1tips/paymentgateway/internal/metrics"
	"github.com/a1tips/paymentgateway/internal/model"
	"github.com/a1tips/paymentgateway/internal/repository"
	"github.com/a1tips/paymentgateway/pkg/hostedcheckout"
	"github.com/a1tips/paymentgateway/pkg/momo"
	"github.com/prometheus/client_golang/prometheus"
)

const referenceID = "6f1c2a8e-3b5d-4c7e-9f10-2a3b4c5d6e7f"

func newConfig(provider string) *config.Config {
	return &config.Config{
		Payments: config.Payments{Provider: provider},
		MoMo: momo.Config{
			BaseURL:           "https://momo.test",
			SubscriptionKey:   "sub-key",
			APIUser:           "api-user",
			APIKey:            "api-key",
			TargetEnvironment: "sandbox",
			Currency:          "EUR",
			Timeout:           15 * time.Second,
			TokenExpiryMargin: 30 * time.Second,
		},
		HostedCheckout: hostedcheckout.Config{
			URL:         "https://checkout.test/graphql",
			SecretKey:   "sk_test",
			RedirectURL: "https://a1tips.test/payment/complete",
			Currency:    "GHS",
			Timeout:     15 * time.Second,
		},
		Outbox: config.Outbox{Queue: "payments.recorded", BatchSize: 100},
	}
}

func newMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

// memoryRepository enforces the unique reference index the way MySQL does.
type memoryRepository struct {
	mu     sync.Mutex
	nextID int64
	events map[string]model.PaymentEvent
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{events: make(map[string]model.PaymentEvent)}
}

func (r *memoryRepository) Create(_ context.Context, event *model.PaymentEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[event.Reference]; exists {
		return repository.ErrPaymentEventExists
	}

	r.nextID++
	event.ID = r.nextID
	r.events[event.Reference] = *event

	return nil
}

func (r *memoryRepository) GetByReference(_ context.Context, reference string) (*model.PaymentEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[reference]
	if !ok {
		return nil, repository.ErrPaymentEventNotFound
	}

	return &event, nil
}

func (r *memoryRepository) FindUnpublished(_ context.Context, limit int) ([]model.PaymentEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var events []model.PaymentEvent
	for _, event := range r.events {
		if !event.Published && len(events) < limit {
			events = append(events, event)
		}
	}

	return events, nil
}

func (r *memoryRepository) MarkPublished(_ context.Context, id int64, publishedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ref, event := range r.events {
		if event.ID == id {
			event.Published = true
			event.PublishedAt = &publishedAt
			r.events[ref] = event
		}
	}

	return nil
}

func (r *memoryRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.events)
}
