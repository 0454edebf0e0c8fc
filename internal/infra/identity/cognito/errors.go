package cognito

import (
	domainerrors "scooter/internal/domain/errors"

	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
)

// translate turns a Cognito API error into a provider error carrying the
// service's exception name and message.
func translate(err error, action string) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return errors.Wrap(&domainerrors.ProviderError{
			Code:    apiErr.ErrorCode(),
			Message: apiErr.ErrorMessage(),
		}, action)
	}

	return errors.Wrap(err, action)
}
