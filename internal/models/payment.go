package models

// PaymentCreationRequest is a validated PIX creation request coming from the client app.
type PaymentCreationRequest struct {
	Value       float64        `json:"value"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// OutboundProviderRequest is the body posted to WiinPay.
type OutboundProviderRequest struct {
	APIKey      string         `json:"api_key"`
	Value       float64        `json:"value"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Description string         `json:"description"`
	WebhookURL  string         `json:"webhook_url"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func NewOutboundProviderRequest(apiKey, webhookURL string, req *PaymentCreationRequest) *OutboundProviderRequest {
	return &OutboundProviderRequest{
		APIKey:      apiKey,
		Value:       req.Value,
		Name:        req.Name,
		Email:       req.Email,
		Description: req.Description,
		WebhookURL:  webhookURL,
		Metadata:    req.Metadata,
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ProviderFailureResponse proxies a non-2xx WiinPay answer back to the client.
type ProviderFailureResponse struct {
	Error          string `json:"error"`
	WiinpayStatus  int    `json:"wiinpay_status"`
	WiinpayPayload any    `json:"wiinpay_response"`
}
