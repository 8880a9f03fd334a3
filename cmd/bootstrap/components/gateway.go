package components

import (
	"stayhub/internal/infra/identity"
	"stayhub/internal/infra/payment"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			payment.NewClient,
			fx.As(new(commands.PaymentGateway)),
		),
		fx.Annotate(
			NewIdentityVerifier,
			fx.As(new(commands.IdentityVerifier)),
		),
	),
)

func NewIdentityVerifier(cfg config.Config) (*identity.WebhookVerifier, error) {
	return identity.NewWebhookVerifier(cfg.Identity.WebhookSecret, cfg.Identity.WebhookTolerance)
}
