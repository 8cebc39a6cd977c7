package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentEventSourceReconcile = "reconcile"
	PaymentEventSourceWebhook   = "webhook"
)

type PaymentEvent struct {
	ID          int64               `gorm:"primaryKey;autoIncrement;<-:create"`
	Reference   string              `gorm:"type:varchar(64);not null;uniqueIndex:uq_payment_events_reference;<-:create"`
	Email       string              `gorm:"type:varchar(255);not null"`
	BookingID   string              `gorm:"column:booking_id;type:varchar(255);not null"`
	Provider    Provider            `gorm:"type:varchar(32);not null"`
	Source      string              `gorm:"type:varchar(16);not null"`
	Amount      decimal.NullDecimal `gorm:"type:decimal(18,2);null"`
	Currency    *string             `gorm:"type:varchar(3);null"`
	Payer       *string             `gorm:"type:varchar(32);null"`
	Published   bool                `gorm:"default:false;not null;index:idx_payment_events_published"`
	PublishedAt *time.Time          `gorm:"type:timestamp;null"`
	CreatedAt   time.Time           `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
}

func (PaymentEvent) TableName() string {
	return "payment_events"
}
