package account

import (
	"context"

	"themeweek/models"
	"themeweek/services/decision"

	"go.uber.org/zap"
)

// AuthClient is the consumed shape of the hosted auth service. Credentials
// are never stored locally; every operation delegates to the remote API.
type AuthClient interface {
	SignUp(ctx context.Context, email, password string) (*models.RemoteAccount, error)
	SignInWithPassword(ctx context.Context, email, password string) (*models.RemoteSession, error)
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	GetUser(ctx context.Context, accessToken string) (*models.RemoteAccount, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Service exposes the account flows: sign-up (gated on consent and payment),
// password sign-in, password recovery, session introspection and sign-out.
type Service interface {
	SignUp(ctx context.Context, deviceID, email, password string) (string, error)
	SignIn(ctx context.Context, deviceID, email, password string) (*models.RemoteSession, error)
	ForgotPassword(ctx context.Context, deviceID, email string) (string, error)
	Session(ctx context.Context, accessToken string) (*models.SessionInfo, error)
	SignOut(ctx context.Context, accessToken string) error

	// Events returns the hub carrying session-change notifications.
	Events() *Hub
}

// ConsentRequiredError blocks account actions until both consent flags are set.
type ConsentRequiredError struct{}

func (ConsentRequiredError) Error() string {
	return "Bitte bestätige zuerst AGB und Datenschutzhinweise."
}

// PaymentRequiredError blocks sign-up until a successful checkout return.
type PaymentRequiredError struct{}

func (PaymentRequiredError) Error() string {
	return "Konto erstellen ist erst nach erfolgreicher Zahlung möglich."
}

// MissingInputError is a locally recovered user-input error.
type MissingInputError struct {
	Message string
}

func (e MissingInputError) Error() string {
	return e.Message
}

// AuthServiceError wraps a failure reported by the hosted auth service,
// carrying its human-readable message when available.
type AuthServiceError struct {
	Status  int
	Message string
}

func (e AuthServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Der Anmeldedienst ist gerade nicht erreichbar. Bitte versuche es erneut."
}

// DefaultAccountService is the production implementation.
type DefaultAccountService struct {
	Client  AuthClient
	Store   decision.Store
	Logger  *zap.Logger
	SiteURL string
	hub     *Hub
}

func NewDefaultAccountService(client AuthClient, store decision.Store, logger *zap.Logger, siteURL string) *DefaultAccountService {
	return &DefaultAccountService{
		Client:  client,
		Store:   store,
		Logger:  logger,
		SiteURL: siteURL,
		hub:     NewHub(),
	}
}
