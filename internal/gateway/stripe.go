// Package gateway adapts the external payment provider.
package gateway

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"go.uber.org/zap"
)

// ErrStripeClientInitFailed is returned when no secret key is configured.
var ErrStripeClientInitFailed = errors.New("failed to initialize Stripe client")

const paymentMethodCard = "card"

// StripeConfig configures the Stripe gateway.
type StripeConfig struct {
	SecretKey string
	Currency  string
	// APIURL overrides the Stripe API base URL. Empty uses the default.
	APIURL string
}

// StripeGateway creates Stripe payment intents.
type StripeGateway struct {
	client   *client.API
	currency string
	logger   *zap.Logger
}

// NewStripeGateway creates a StripeGateway. Network retries are disabled so
// a failed call surfaces to the caller immediately.
func NewStripeGateway(cfg StripeConfig, logger *zap.Logger) (*StripeGateway, error) {
	if cfg.SecretKey == "" {
		return nil, ErrStripeClientInitFailed
	}

	backendCfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if cfg.APIURL != "" {
		backendCfg.URL = stripe.String(cfg.APIURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg)

	sc := client.New(cfg.SecretKey, &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})

	currency := cfg.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	return &StripeGateway{
		client:   sc,
		currency: currency,
		logger:   logger,
	}, nil
}

// CreatePaymentIntent creates a card payment intent for amount and returns
// its client secret.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{paymentMethodCard}),
	}
	params.Context = ctx

	intent, err := g.client.PaymentIntents.New(params)
	if err != nil {
		g.logger.Error("stripe payment intent creation failed",
			zap.Int64("amount", amount),
			zap.String("currency", g.currency),
			zap.Error(err),
		)
		return "", err
	}

	g.logger.Info("stripe payment intent created",
		zap.String("payment_intent_id", intent.ID),
		zap.Int64("amount", amount),
	)
	return intent.ClientSecret, nil
}

// Unconfigured stands in for the gateway when no secret key is set. Every
// call fails with ErrStripeClientInitFailed.
type Unconfigured struct{}

// CreatePaymentIntent always fails.
func (Unconfigured) CreatePaymentIntent(context.Context, int64) (string, error) {
	return "", ErrStripeClientInitFailed
}
