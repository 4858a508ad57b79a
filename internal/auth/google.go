package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"
)

var ErrEmailNotVerified = errors.New("google account email not verified")

// GoogleVerifier checks Google ID tokens issued for the portal's OAuth client.
type GoogleVerifier struct {
	clientID string
	validate func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID: clientID,
		validate: idtoken.Validate,
	}
}

// Verify returns the verified email the token was issued to.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		return "", fmt.Errorf("validate id token: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", errors.New("id token has no email claim")
	}
	if verified, _ := payload.Claims["email_verified"].(bool); !verified {
		return "", ErrEmailNotVerified
	}

	return strings.ToLower(email), nil
}
