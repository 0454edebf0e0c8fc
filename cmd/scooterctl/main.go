package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"scooter/config"
	"scooter/internal/delivery/cli"
	"scooter/internal/domain/lifecycle"
	"scooter/internal/domain/service"
	"scooter/internal/infra/backend"
	"scooter/internal/infra/identity/cognito"
	logs "scooter/internal/infra/log"
	"scooter/internal/infra/profile"
	"scooter/internal/infra/pubsub"
	"scooter/internal/usecase"
	"scooter/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.Options{
		Open:    openWorkspace,
		In:      os.Stdin,
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: version,
	}, os.Args[1:])
	stop()

	os.Exit(code)
}

// openWorkspace starts the client infrastructure and builds the workspace
// of a profile. Logs go to stderr so they stay out of command output.
func openWorkspace(ctx context.Context, profileName string) (*usecase.Workspace, func(), error) {
	var factory usecase.WorkspaceFactory

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			func() context.Context { return ctx },
			func(cfg *config.Config) (*slog.Logger, error) {
				return logs.NewWithWriter(os.Stderr, cfg)
			},
			fx.Annotate(
				cognito.NewFactory,
				fx.As(new(service.IdentityProviderFactory)),
			),
			fx.Annotate(
				backend.NewClientFactory,
				fx.As(new(service.RentalAPIFactory)),
			),
			impl.NewWorkspaceFactory,
		),
		profile.Module,
		pubsub.Module,
		fx.Populate(&factory),
	)
	if err := app.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "build client")
	}

	if err := app.Start(ctx); err != nil {
		return nil, nil, errors.Wrap(err, "start client")
	}

	closeFn := func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		if err := app.Stop(stopCtx); err != nil {
			slog.Warn("Failed to stop client", slog.Any("error", err))
		}
	}

	return factory.NewWorkspace(profileName), closeFn, nil
}
