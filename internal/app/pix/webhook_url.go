package pix

import (
	"net/url"
	"strings"

	"francoggm/wiinpay-pix-relay/internal/config"
)

// ProviderDomain is WiinPay's own domain; callbacks must never point at it.
const ProviderDomain = "wiinpay.com.br"

// ResolveWebhookURL picks the callback URL sent to WiinPay: the explicit
// webhook URL first, then the first non-empty public base URL with the default
// webhook path appended.
func ResolveWebhookURL(cfg config.Webhook) (string, error) {
	webhookURL := EnsureWebhookPath(cfg.ExplicitURL)

	if webhookURL == "" {
		for _, candidate := range cfg.PublicBaseURLs {
			base := strings.TrimRight(Sanitize(candidate), "/")
			if base != "" {
				webhookURL = base + DefaultWebhookPath
				break
			}
		}
	}

	if webhookURL == "" {
		return "", &ConfigurationError{
			Message: "Webhook não configurado",
			Details: "Configure WIINPAY_WEBHOOK_URL ou deixe o Render fornecer RENDER_EXTERNAL_URL",
		}
	}

	lower := strings.ToLower(webhookURL)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "", &ConfigurationError{
			Message: "Webhook inválido",
			Details: "webhook_url precisa começar com http(s)://",
		}
	}

	if pointsAtProvider(webhookURL) {
		return "", &ConfigurationError{
			Message: "Webhook inválido",
			Details: "WIINPAY_WEBHOOK_URL deve apontar para o seu servidor, não para domínio da WiinPay",
		}
	}

	return webhookURL, nil
}

func pointsAtProvider(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return strings.Contains(strings.ToLower(rawURL), ProviderDomain)
	}

	host := strings.ToLower(u.Hostname())
	return host == ProviderDomain || strings.HasSuffix(host, "."+ProviderDomain)
}
