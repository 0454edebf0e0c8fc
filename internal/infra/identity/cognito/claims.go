package cognito

import (
	"time"

	"scooter/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const claimGroups = "cognito:groups"

// principalFromTokens reads the identity from the ID token and the groups
// from the access token. The tokens come straight from the user pool over
// TLS, so their signatures are not checked again.
func principalFromTokens(tokens *tokenSet) (*entity.Principal, error) {
	parser := jwt.NewParser()

	idClaims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokens.idToken, idClaims); err != nil {
		return nil, errors.Wrap(err, "parse ID token")
	}

	principal := &entity.Principal{
		UserID:    stringClaim(idClaims, "sub"),
		Username:  stringClaim(idClaims, "cognito:username"),
		Email:     stringClaim(idClaims, "email"),
		Name:      stringClaim(idClaims, "name"),
		IDToken:   tokens.idToken,
		ExpiresAt: tokens.expiresAt,
	}
	if principal.Username == "" {
		principal.Username = principal.Email
	}
	if exp, err := idClaims.GetExpirationTime(); err == nil && exp != nil {
		principal.ExpiresAt = exp.Time
	}

	groupsRaw := idClaims[claimGroups]
	if tokens.accessToken != "" {
		accessClaims := jwt.MapClaims{}
		if _, _, err := parser.ParseUnverified(tokens.accessToken, accessClaims); err == nil {
			if raw, ok := accessClaims[claimGroups]; ok {
				groupsRaw = raw
			}
		}
	}
	principal.Groups = entity.NormalizeGroups(groupsRaw)

	if principal.UserID == "" {
		return nil, errors.New("ID token has no subject")
	}
	if principal.ExpiresAt.IsZero() {
		principal.ExpiresAt = time.Now().Add(time.Hour)
	}

	return principal, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}

	return ""
}
