package hostedcheckout

type HostedPayment struct {
	HostedLink string `json:"hostedLink"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data *struct {
		InitiateHostedPayment *HostedPayment `json:"initiateHostedPayment"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}
