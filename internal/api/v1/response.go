package v1

type CreateDepositResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	ReferenceID string `json:"referenceId"`
	HostedLink  string `json:"hostedLink,omitempty"`
}

type CheckStatusResponse struct {
	Status      string `json:"status"`
	ReferenceID string `json:"referenceId"`
}

type RecordPaymentEventResponse struct {
	Status    string `json:"status"`
	Reference string `json:"reference,omitempty"`
	Event     string `json:"event,omitempty"`
	Recorded  bool   `json:"recorded"`
	Duplicate bool   `json:"duplicate"`
}
