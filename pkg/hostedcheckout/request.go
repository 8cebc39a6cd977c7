package hostedcheckout

import "encoding/json"

// InitiateHostedPaymentMutation asks the provider for a single hosted payment link.
const InitiateHostedPaymentMutation = `mutation InitiateHostedPayment($input: HostedPaymentInput!) {
  initiateHostedPayment(input: $input) {
    hostedLink
  }
}`

type PaymentInput struct {
	Amount      json.Number `json:"amount"`
	Currency    string      `json:"currency,omitempty"`
	CountryCode string      `json:"countryCode"`
	Email       string      `json:"email"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	RedirectURL string      `json:"redirectUrl"`
	Reference   string      `json:"reference"`
	Metadata    Metadata    `json:"metadata"`
}

// Metadata is echoed back by the provider under data.metadata in payment events.
type Metadata struct {
	GameType string `json:"game_type"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}
