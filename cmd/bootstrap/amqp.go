package bootstrap

import (
	"context"

	"stayhub/internal/infra/queue"
	"stayhub/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var AMQPModule = fx.Module("amqp",
	fx.Provide(
		NewQueuePublisher,
	),
	fx.Invoke(StartOutboxDispatcher),
)

func NewQueuePublisher(lc fx.Lifecycle, cfg config.Config) *queue.Publisher {
	publisher := queue.NewPublisher(cfg.AMQP)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher
}

func StartOutboxDispatcher(lc fx.Lifecycle, pool *pgxpool.Pool, publisher *queue.Publisher, cfg config.Config) {
	dispatcher := queue.NewDispatcher(pool, publisher, cfg.AMQP)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			dispatcher.Start(context.Background())
			return nil
		},
		OnStop: func(_ context.Context) error {
			dispatcher.Stop()
			return nil
		},
	})
}
