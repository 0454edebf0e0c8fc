package main

import (
	"context"
	"log/slog"
	"os"

	"scooter/config"
	"scooter/internal/delivery"
	"scooter/internal/delivery/http"
	"scooter/internal/delivery/http/router/handler"
	"scooter/internal/delivery/http/session"
	"scooter/internal/domain/service"
	"scooter/internal/infra/backend"
	"scooter/internal/infra/identity/cognito"
	logs "scooter/internal/infra/log"
	"scooter/internal/infra/profile"
	"scooter/internal/infra/pubsub"
	"scooter/internal/infra/qrcode"
	"scooter/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		profile.Module,
		pubsub.Module,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				cognito.NewFactory,
				fx.As(new(service.IdentityProviderFactory)),
			),
			fx.Annotate(
				backend.NewClientFactory,
				fx.As(new(service.RentalAPIFactory)),
			),
			qrcode.NewAccessCodeQRFromConfig,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewWorkspaceFactory,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			session.NewRegistry,
			handler.NewAuthHandler,
			handler.NewRegistrationHandler,
			handler.NewCatalogHandler,
			handler.NewBookingHandler,
			handler.NewFleetHandler,
			handler.NewConcernHandler,
			handler.NewDashboardHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
