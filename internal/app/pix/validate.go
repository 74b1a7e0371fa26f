package pix

import (
	"math"
	"strconv"
	"strings"

	"francoggm/wiinpay-pix-relay/internal/models"
)

const (
	MinValue           = 3.0
	DefaultDescription = "Pagamento PIX"
)

// ValidateCreateRequest turns a decoded creation body into a PaymentCreationRequest.
// A missing API key is reported before any input is looked at.
func ValidateCreateRequest(apiKey string, body map[string]any) (*models.PaymentCreationRequest, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Message: "WIINPAY_API_KEY não configurada no servidor"}
	}

	value, ok := toNumber(body["value"])
	if !ok || math.IsNaN(value) || math.IsInf(value, 0) || value < MinValue {
		return nil, &ValidationError{Message: "value inválido (mínimo R$ 3,00)"}
	}

	name := toString(body["name"])
	email := toString(body["email"])
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return nil, &ValidationError{Message: "name e email são obrigatórios"}
	}

	description := toString(body["description"])
	if description == "" {
		description = DefaultDescription
	}

	req := &models.PaymentCreationRequest{
		Value:       value,
		Name:        name,
		Email:       email,
		Description: description,
	}
	if metadata, ok := body["metadata"].(map[string]any); ok {
		req.Metadata = metadata
	}

	return req, nil
}

// toNumber accepts JSON numbers and numeric strings.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}

	return 0, false
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}

	return ""
}
