package pix

import "strings"

// Canonical keys exposed on every normalized WiinPay response.
const (
	QRCodeKey       = "qr_code"
	QRCodeBase64Key = "qr_code_base64"
)

// qrCodeAliases and qrCodeBase64Aliases are the historical field names WiinPay
// has used, highest priority first.
var (
	qrCodeAliases = []string{
		"qr_code",
		"qrCode",
		"qrcode",
		"pix_copia_cola",
		"pixCopiaECola",
		"brcode",
		"br_code",
		"emv",
		"copy_paste",
		"pix_copy_paste",
	}

	qrCodeBase64Aliases = []string{
		"qr_code_base64",
		"qrCodeBase64",
		"qrcode_base64",
		"qrCodeImage",
		"qr_code_image",
		"qr_image_base64",
		"qrCodeImageBase64",
		"qrCodeBase64Image",
	}
)

// NormalizeResponse returns a shallow copy of the effective payload (the nested
// "data" object when present) with qr_code and qr_code_base64 filled from the
// first alias holding a non-blank string. Existing canonical values are kept.
// Non-object input is returned unchanged.
func NormalizeResponse(data any) any {
	root, ok := data.(map[string]any)
	if !ok {
		return data
	}

	payload := root
	if nested, ok := root["data"].(map[string]any); ok {
		payload = nested
	}

	normalized := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		normalized[k] = v
	}

	fillCanonical(normalized, QRCodeKey, qrCodeAliases)
	fillCanonical(normalized, QRCodeBase64Key, qrCodeBase64Aliases)

	return normalized
}

func fillCanonical(payload map[string]any, canonical string, aliases []string) {
	if existing, ok := payload[canonical]; ok && existing != nil {
		return
	}

	if value, ok := pickString(payload, aliases); ok {
		payload[canonical] = value
	}
}

func pickString(payload map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}

	return "", false
}
