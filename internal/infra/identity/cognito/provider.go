// Package cognito implements the identity provider port on an Amazon Cognito
// user pool using the custom authentication flow.
package cognito

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/domain/service"
	"scooter/internal/infra/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/pkg/errors"
)

// User attributes written on sign-up and read by the backend triggers.
const (
	attrEmail     = "email"
	attrName      = "name"
	attrUserType  = "custom:userType"
	attrQuestions = "custom:questions"
)

// Auth parameter and challenge response keys of the custom flow.
const (
	paramUsername      = "USERNAME"
	paramAnswer        = "ANSWER"
	paramChallengeName = "CHALLENGE_NAME"
	paramRefreshToken  = "REFRESH_TOKEN"
	challengeSRPA      = "SRP_A"
)

// expirySkew renews tokens slightly before they expire.
const expirySkew = 30 * time.Second

// cognitoAPI is the part of the Cognito client the provider uses.
type cognitoAPI interface {
	InitiateAuth(ctx context.Context, params *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	RespondToAuthChallenge(ctx context.Context, params *cip.RespondToAuthChallengeInput, optFns ...func(*cip.Options)) (*cip.RespondToAuthChallengeOutput, error)
	SignUp(ctx context.Context, params *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, params *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
	RevokeToken(ctx context.Context, params *cip.RevokeTokenInput, optFns ...func(*cip.Options)) (*cip.RevokeTokenOutput, error)
}

// passwordVerifier computes the SRP proof of a password.
type passwordVerifier interface {
	GetAuthParams() map[string]string
	PasswordVerifierChallenge(challengeParams map[string]string, ts time.Time) (map[string]string, error)
}

// verifierFactory creates the SRP state of one sign-in attempt.
type verifierFactory func(username, password string) (passwordVerifier, error)

// tokenSet is what a completed authentication returns.
type tokenSet struct {
	idToken      string
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

// Provider is one client's session with the user pool.
type Provider struct {
	api         cognitoAPI
	clientID    string
	newVerifier verifierFactory
	now         func() time.Time
	logger      *slog.Logger

	mu     sync.Mutex
	tokens *tokenSet
}

var _ service.IdentityProvider = (*Provider)(nil)

// SignUp creates an unconfirmed account with the security questions as an attribute.
func (p *Provider) SignUp(ctx context.Context, registration entity.Registration) (*entity.SignupResult, error) {
	questions, err := json.Marshal(registration.Questions)
	if err != nil {
		return nil, errors.Wrap(err, "encode security questions")
	}

	out, err := p.api.SignUp(ctx, &cip.SignUpInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(registration.Email),
		Password: aws.String(registration.Password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String(attrEmail), Value: aws.String(registration.Email)},
			{Name: aws.String(attrName), Value: aws.String(registration.Name)},
			{Name: aws.String(attrUserType), Value: aws.String(string(registration.AccountType))},
			{Name: aws.String(attrQuestions), Value: aws.String(string(questions))},
		},
	})
	metrics.RecordIdentityCall("sign_up", err)
	if err != nil {
		return nil, translate(err, "sign up")
	}

	result := &entity.SignupResult{
		UserID:       aws.ToString(out.UserSub),
		NeedsConfirm: !out.UserConfirmed,
	}
	if out.CodeDeliveryDetails != nil {
		result.CodeDelivery = aws.ToString(out.CodeDeliveryDetails.Destination)
	}

	return result, nil
}

// ConfirmSignUp confirms an account with the e-mailed code.
func (p *Provider) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := p.api.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	metrics.RecordIdentityCall("confirm_sign_up", err)
	if err != nil {
		return translate(err, "confirm sign up")
	}

	return nil
}

// SignIn starts the custom flow with an SRP password proof.
func (p *Provider) SignIn(ctx context.Context, username, password string) (*service.AuthStep, error) {
	verifier, err := p.newVerifier(username, password)
	if err != nil {
		return nil, errors.Wrap(err, "prepare password verifier")
	}

	params := verifier.GetAuthParams()
	params[paramChallengeName] = challengeSRPA

	initiated, err := p.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeCustomAuth,
		ClientId:       aws.String(p.clientID),
		AuthParameters: params,
	})
	metrics.RecordIdentityCall("initiate_auth", err)
	if err != nil {
		return nil, translate(err, "initiate auth")
	}

	if initiated.AuthenticationResult != nil {
		return p.signedIn(initiated.AuthenticationResult)
	}

	if initiated.ChallengeName != types.ChallengeNameTypePasswordVerifier {
		return p.step(username, initiated.ChallengeName, aws.ToString(initiated.Session), initiated.ChallengeParameters, 1)
	}

	responses, err := verifier.PasswordVerifierChallenge(initiated.ChallengeParameters, p.now())
	if err != nil {
		return nil, errors.Wrap(err, "compute password verifier")
	}

	verified, err := p.api.RespondToAuthChallenge(ctx, &cip.RespondToAuthChallengeInput{
		ChallengeName:      types.ChallengeNameTypePasswordVerifier,
		ClientId:           aws.String(p.clientID),
		ChallengeResponses: responses,
		Session:            initiated.Session,
	})
	metrics.RecordIdentityCall("password_verifier", err)
	if err != nil {
		return nil, translate(err, "verify password")
	}

	if verified.AuthenticationResult != nil {
		return p.signedIn(verified.AuthenticationResult)
	}

	return p.step(username, verified.ChallengeName, aws.ToString(verified.Session), verified.ChallengeParameters, 1)
}

// SendChallengeAnswer answers one custom challenge round.
func (p *Provider) SendChallengeAnswer(ctx context.Context, challenge entity.ChallengeSession, answer string) (*service.AuthStep, error) {
	out, err := p.api.RespondToAuthChallenge(ctx, &cip.RespondToAuthChallengeInput{
		ChallengeName: types.ChallengeNameTypeCustomChallenge,
		ClientId:      aws.String(p.clientID),
		Session:       aws.String(challenge.SessionToken),
		ChallengeResponses: map[string]string{
			paramUsername: challenge.Username,
			paramAnswer:   answer,
		},
	})
	metrics.RecordIdentityCall("custom_challenge", err)
	if err != nil {
		return nil, translate(err, "answer challenge")
	}

	if out.AuthenticationResult != nil {
		return p.signedIn(out.AuthenticationResult)
	}

	return p.step(challenge.Username, out.ChallengeName, aws.ToString(out.Session), out.ChallengeParameters, challenge.Round+1)
}

// CurrentPrincipal decodes the held tokens, renewing them when expired.
func (p *Provider) CurrentPrincipal(ctx context.Context) (*entity.Principal, error) {
	p.mu.Lock()
	tokens := p.tokens
	p.mu.Unlock()

	if tokens == nil {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	if !p.now().Add(expirySkew).Before(tokens.expiresAt) {
		renewed, err := p.refresh(ctx, tokens)
		if err != nil {
			p.forget()

			return nil, err
		}
		tokens = renewed
	}

	return principalFromTokens(tokens)
}

// SignOut revokes the refresh token and forgets local tokens.
func (p *Provider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	tokens := p.tokens
	p.tokens = nil
	p.mu.Unlock()

	if tokens == nil || tokens.refreshToken == "" {
		return nil
	}

	_, err := p.api.RevokeToken(ctx, &cip.RevokeTokenInput{
		ClientId: aws.String(p.clientID),
		Token:    aws.String(tokens.refreshToken),
	})
	metrics.RecordIdentityCall("revoke_token", err)
	if err != nil {
		return translate(err, "revoke token")
	}

	return nil
}

func (p *Provider) refresh(ctx context.Context, current *tokenSet) (*tokenSet, error) {
	if current.refreshToken == "" {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	out, err := p.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeRefreshTokenAuth,
		ClientId:       aws.String(p.clientID),
		AuthParameters: map[string]string{paramRefreshToken: current.refreshToken},
	})
	metrics.RecordIdentityCall("refresh", err)
	if err != nil {
		return nil, translate(err, "refresh tokens")
	}
	if out.AuthenticationResult == nil {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	renewed := p.tokensFrom(out.AuthenticationResult)
	// refresh responses do not carry a new refresh token
	if renewed.refreshToken == "" {
		renewed.refreshToken = current.refreshToken
	}

	p.mu.Lock()
	p.tokens = renewed
	p.mu.Unlock()

	p.logger.Debug("Renewed identity tokens", slog.Time("expires_at", renewed.expiresAt))

	return renewed, nil
}

func (p *Provider) forget() {
	p.mu.Lock()
	p.tokens = nil
	p.mu.Unlock()
}

func (p *Provider) signedIn(result *types.AuthenticationResultType) (*service.AuthStep, error) {
	tokens := p.tokensFrom(result)
	if tokens.idToken == "" {
		return nil, errors.New("authentication result carries no ID token")
	}

	p.mu.Lock()
	p.tokens = tokens
	p.mu.Unlock()

	return &service.AuthStep{SignedIn: true}, nil
}

func (p *Provider) tokensFrom(result *types.AuthenticationResultType) *tokenSet {
	return &tokenSet{
		idToken:      aws.ToString(result.IdToken),
		accessToken:  aws.ToString(result.AccessToken),
		refreshToken: aws.ToString(result.RefreshToken),
		expiresAt:    p.now().Add(time.Duration(result.ExpiresIn) * time.Second),
	}
}

// step turns a challenge answer into the next round.
func (p *Provider) step(
	username string,
	name types.ChallengeNameType,
	session string,
	params map[string]string,
	round int,
) (*service.AuthStep, error) {
	if name != types.ChallengeNameTypeCustomChallenge {
		return nil, errors.Wrapf(domainerrors.ErrMalformedChallenge, "unexpected challenge %q", name)
	}

	if challengeUser := strings.TrimSpace(params[paramUsername]); challengeUser != "" {
		username = challengeUser
	}

	challenge, err := entity.ClassifyChallenge(username, session, round, params)
	if err != nil {
		return nil, err
	}

	return &service.AuthStep{Challenge: &challenge}, nil
}
