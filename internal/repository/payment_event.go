package repository

import (
	"context"
	"errors"
	"time"

	"github.com/a1tips/paymentgateway/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrPaymentEventNotFound = errors.New("PAYMENT_EVENT_NOT_FOUND")
var ErrPaymentEventExists = errors.New("PAYMENT_EVENT_EXISTS")

const mysqlDuplicateEntry = 1062

type PaymentEventRepository interface {
	Create(ctx context.Context, event *model.PaymentEvent) error
	GetByReference(ctx context.Context, reference string) (*model.PaymentEvent, error)
	FindUnpublished(ctx context.Context, limit int) ([]model.PaymentEvent, error)
	MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error
}

type PaymentEvent struct {
	db *gorm.DB
}

func NewPaymentEventRepository(db *gorm.DB) PaymentEventRepository {
	return &PaymentEvent{db: db}
}

// Create inserts the event. The unique index on reference makes this an
// atomic insert-if-absent: a concurrent or repeated insert yields ErrPaymentEventExists.
func (p *PaymentEvent) Create(ctx context.Context, event *model.PaymentEvent) error {
	err := p.db.WithContext(ctx).Create(event).Error
	if err == nil {
		return nil
	}

	if isDuplicateKey(err) {
		return ErrPaymentEventExists
	}

	return err
}

func (p *PaymentEvent) GetByReference(ctx context.Context, reference string) (*model.PaymentEvent, error) {
	var event model.PaymentEvent

	err := p.db.WithContext(ctx).Where("reference = ?", reference).First(&event).Error
	if err == nil {
		return &event, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentEventNotFound
	}

	return nil, err
}

func (p *PaymentEvent) FindUnpublished(ctx context.Context, limit int) ([]model.PaymentEvent, error) {
	var events []model.PaymentEvent

	err := p.db.WithContext(ctx).
		Where("published = ?", false).
		Order("id ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (p *PaymentEvent) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	return p.db.WithContext(ctx).
		Model(&model.PaymentEvent{}).
		Where("id = ? AND published = ?", id, false).
		Updates(map[string]interface{}{"published": true, "published_at": publishedAt}).Error
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
