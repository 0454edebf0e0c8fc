package cognito

import (
	"context"
	"log/slog"
	"time"

	"scooter/config"
	"scooter/internal/domain/service"

	cognitosrp "github.com/alexrudd/cognito-srp/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// FactoryParams holds dependencies for NewFactory, injected by Fx.
type FactoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// Factory creates one Provider per client on a shared Cognito client.
type Factory struct {
	api         cognitoAPI
	clientID    string
	newVerifier verifierFactory
	logger      *slog.Logger
}

var _ service.IdentityProviderFactory = (*Factory)(nil)

// NewFactory loads the AWS configuration for the user pool region.
// Sign-in calls are unauthenticated; a custom endpoint (local emulator)
// gets static placeholder credentials.
func NewFactory(params FactoryParams) (*Factory, error) {
	cfg := params.Config.Identity

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	} else {
		opts = append(opts, awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(params.Ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load AWS configuration")
	}

	client := cip.NewFromConfig(awsCfg, func(o *cip.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	poolID := cfg.UserPoolID
	clientID := cfg.ClientID

	params.Logger.Info("Identity provider configured",
		slog.String("region", cfg.Region),
		slog.String("user_pool_id", poolID))

	return newFactory(client, clientID, func(username, password string) (passwordVerifier, error) {
		csrp, err := cognitosrp.NewCognitoSRP(username, password, poolID, clientID, nil)
		if err != nil {
			return nil, errors.Wrap(err, "create SRP session")
		}

		return csrp, nil
	}, params.Logger), nil
}

func newFactory(api cognitoAPI, clientID string, newVerifier verifierFactory, logger *slog.Logger) *Factory {
	return &Factory{
		api:         api,
		clientID:    clientID,
		newVerifier: newVerifier,
		logger:      logger,
	}
}

// NewIdentityProvider returns a provider holding no tokens.
func (f *Factory) NewIdentityProvider() service.IdentityProvider {
	return &Provider{
		api:         f.api,
		clientID:    f.clientID,
		newVerifier: f.newVerifier,
		now:         time.Now,
		logger:      f.logger,
	}
}
