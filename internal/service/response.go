package service

import "github.com/a1tips/paymentgateway/internal/model"

const MsgPaymentPromptSent = "Payment prompt sent to user phone"
const MsgHostedLinkCreated = "Hosted payment link created"

type DepositResult struct {
	ReferenceID string
	Status      model.ChargeStatus
	Message     string
	HostedLink  string
}

type StatusResult struct {
	ReferenceID string
	Status      model.ChargeStatus
}

type RecordResult struct {
	Created bool
	Event   *model.PaymentEvent
}

type WebhookResult struct {
	Reference string
	Status    string
	Recorded  bool
	Duplicate bool
}
