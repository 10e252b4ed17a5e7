/*
Package auth implements the shared-password gate in front of the calendar.

There are no user accounts: the whole table shares one master password, and a
successful login yields a short-lived JWT proving the holder knows it. The
bcrypt hash of the password is configuration, never stored in the database.
*/
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/aetherialcal/aethercal/internal/platform/apperr"
	"github.com/aetherialcal/aethercal/internal/platform/constants"
	"github.com/aetherialcal/aethercal/internal/platform/sec"
	"github.com/aetherialcal/aethercal/internal/platform/validate"
)

// TokenIssuer is the slice of the token service the login flow needs.
type TokenIssuer interface {
	GenerateAccessToken(timeToLive time.Duration) (string, error)
}

type Service struct {
	tokens     TokenIssuer
	masterHash string
	logger     *slog.Logger
}

func NewService(tokens TokenIssuer, masterHash string, logger *slog.Logger) *Service {
	return &Service{
		tokens:     tokens,
		masterHash: masterHash,
		logger:     logger,
	}
}

// LoginResult is the wire shape of a successful login.
type LoginResult struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login verifies the master password and issues an access token.
// Wrong passwords answer UNAUTHORIZED with no detail about why.
func (service *Service) Login(context context.Context, password string) (*LoginResult, error) {
	validator := &validate.Validator{}
	validator.Required("password", password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if !sec.CheckPasswordHash(password, service.masterHash) {
		service.logger.WarnContext(context, "login_rejected")
		return nil, apperr.Unauthorized("Invalid password")
	}

	token, err := service.tokens.GenerateAccessToken(constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &LoginResult{Token: token, Message: "Authentication successful"}, nil
}
