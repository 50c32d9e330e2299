package payments

import (
	"fmt"
	"strings"

	"storefront/internal/usecase/interfaces"
)

const (
	ProviderRevolut     = "revolut"
	ProviderMercadoPago = "mercadopago"
)

type GatewayConfig struct {
	Provider               string
	APIURL                 string
	APISecret              string
	RedirectURL            string
	NotificationURL        string
	MercadoPagoAccessToken string
	Mock                   bool
}

// NewGateway builds the configured payment provider client.
func NewGateway(cfg GatewayConfig) (interfaces.IPaymentGateway, error) {
	if cfg.Mock {
		return NewMockGateway(cfg.RedirectURL), nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderRevolut:
		g, err := NewRevolutGateway(cfg.APIURL, cfg.APISecret, cfg.RedirectURL, nil)
		if err != nil {
			return nil, err
		}
		return g, nil
	case ProviderMercadoPago:
		g, err := NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.RedirectURL, cfg.NotificationURL)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}
