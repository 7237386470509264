package account

import (
	"context"
	"testing"
	"time"

	"themeweek/config"
	"themeweek/models"
	"themeweek/services/decision"
	"themeweek/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testDevice = "device-1"

// fakeAuthClient records calls and returns canned results.
type fakeAuthClient struct {
	signUpCalls  int
	signInCalls  int
	recoverCalls int
	signOutCalls int

	lastRedirectTo string

	signUpErr  error
	signInErr  error
	recoverErr error
	signOutErr error
}

func (f *fakeAuthClient) SignUp(_ context.Context, email, _ string) (*models.RemoteAccount, error) {
	f.signUpCalls++
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &models.RemoteAccount{ID: "acc-1", Email: email}, nil
}

func (f *fakeAuthClient) SignInWithPassword(_ context.Context, email, _ string) (*models.RemoteSession, error) {
	f.signInCalls++
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &models.RemoteSession{
		AccessToken: "token-1",
		TokenType:   "bearer",
		ExpiresIn:   3600,
		User:        models.RemoteAccount{ID: "acc-1", Email: email},
	}, nil
}

func (f *fakeAuthClient) ResetPasswordForEmail(_ context.Context, _, redirectTo string) error {
	f.recoverCalls++
	f.lastRedirectTo = redirectTo
	return f.recoverErr
}

func (f *fakeAuthClient) GetUser(_ context.Context, _ string) (*models.RemoteAccount, error) {
	return &models.RemoteAccount{ID: "acc-1"}, nil
}

func (f *fakeAuthClient) SignOut(_ context.Context, _ string) error {
	f.signOutCalls++
	return f.signOutErr
}

func newTestAccountService(store decision.Store) (*DefaultAccountService, *fakeAuthClient) {
	client := &fakeAuthClient{}
	svc := NewDefaultAccountService(client, store, zap.NewNop(), "https://example.test")
	return svc, client
}

func grantConsent(ctx context.Context, store decision.Store) {
	store.SetConsent(ctx, testDevice, models.ConsentState{AcceptTerms: true, AcceptPrivacy: true})
}

func TestSignUpRequiresConsent(t *testing.T) {
	ctx := context.Background()
	store := decision.NewMemoryStore()
	svc, client := newTestAccountService(store)

	_, err := svc.SignUp(ctx, testDevice, "a@b.de", "secret")

	var consentErr ConsentRequiredError
	require.ErrorAs(t, err, &consentErr)
	assert.Equal(t, 0, client.signUpCalls, "no remote call without consent")
}

func TestSignUpRequiresPayment(t *testing.T) {
	ctx := context.Background()
	store := decision.NewMemoryStore()
	grantConsent(ctx, store)
	svc, client := newTestAccountService(store)

	_, err := svc.SignUp(ctx, testDevice, "a@b.de", "secret")

	var payErr PaymentRequiredError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, 0, client.signUpCalls)
}

func TestSignUpRequiresCredentials(t *testing.T) {
	ctx := context.Background()
	store := decision.NewMemoryStore()
	grantConsent(ctx, store)
	store.SetPaid(ctx, testDevice, true)
	svc, client := newTestAccountService(store)

	_, err := svc.SignUp(ctx, testDevice, "", "secret")

	var inputErr MissingInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, 0, client.signUpCalls)
}

func TestSignUpSuccess(t *testing.T) {
	ctx := context.Background()
	store := decision.NewMemoryStore()
	grantConsent(ctx, store)
	store.SetPaid(ctx, testDevice, true)
	svc, client := newTestAccountService(store)

	msg, err := svc.SignUp(ctx, testDevice, "a@b.de", "secret")

	require.NoError(t, err)
	assert.Equal(t, msgSignedUp, msg)
	assert.Equal(t, 1, client.signUpCalls)
	assert.Equal(t, "a@b.de", store.CheckoutEmail(ctx, testDevice))
}

func TestSignInMapsInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	store := decision.NewMemoryStore()
	grantConsent(ctx, store)
	svc, client := newTestAccountService(store)
	client.signInErr = AuthServiceError{Status: 400, Message: "Invalid login credentials"}

	_, err := svc.SignIn(ctx, testDevice, "a@b.de", "wrong")

	var authErr AuthServiceError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, msgInvalidLogin, authErr.Message)
}

func TestSignInPublishesEvent(t *testing.T) {
	ctx := context.Background()
	store := decision.NewMemoryStore()
	grantConsent(ctx, store)
	svc, _ := newTestAccountService(store)

	var events []SessionEvent
	unsubscribe := svc.Events().Subscribe(func(ev SessionEvent) {
		events = append(events, ev)
	})
	defer unsubscribe()

	session, err := svc.SignIn(ctx, testDevice, "a@b.de", "secret")
	require.NoError(t, err)
	assert.Equal(t, "token-1", session.AccessToken)

	require.Len(t, events, 1)
	assert.Equal(t, SessionSignedIn, events[0].Type)
	assert.Equal(t, "acc-1", events[0].UserID)
}

func TestForgotPasswordValidation(t *testing.T) {
	ctx := context.Background()
	store := decision.NewMemoryStore()
	svc, client := newTestAccountService(store)

	// Missing email wins over missing consent, matching the form's order.
	_, err := svc.ForgotPassword(ctx, testDevice, "")
	var inputErr MissingInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, msgMissingEmail, inputErr.Message)

	_, err = svc.ForgotPassword(ctx, testDevice, "a@b.de")
	var consentErr ConsentRequiredError
	require.ErrorAs(t, err, &consentErr)
	assert.Equal(t, 0, client.recoverCalls)
}

func TestForgotPasswordRedirectTarget(t *testing.T) {
	ctx := context.Background()
	store := decision.NewMemoryStore()
	grantConsent(ctx, store)
	svc, client := newTestAccountService(store)

	msg, err := svc.ForgotPassword(ctx, testDevice, "a@b.de")

	require.NoError(t, err)
	assert.Equal(t, msgRecoverySent, msg)
	assert.Equal(t, "https://example.test/account?pwreset=1", client.lastRedirectTo)
}

func TestSessionFromToken(t *testing.T) {
	config.AppConfig.AuthJWTSecret = "test-secret"
	ctx := context.Background()
	svc, _ := newTestAccountService(decision.NewMemoryStore())

	token, err := utils.GenerateSessionToken("acc-1", "a@b.de", time.Hour)
	require.NoError(t, err)

	info, err := svc.Session(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", info.UserID)
	assert.Equal(t, "a@b.de", info.Email)
	assert.True(t, info.ExpiresAt.After(time.Now()))
}

func TestSessionRejectsExpiredToken(t *testing.T) {
	config.AppConfig.AuthJWTSecret = "test-secret"
	ctx := context.Background()
	svc, _ := newTestAccountService(decision.NewMemoryStore())

	token, err := utils.GenerateSessionToken("acc-1", "a@b.de", -time.Minute)
	require.NoError(t, err)

	_, err = svc.Session(ctx, token)
	assert.Error(t, err)

	_, err = svc.Session(ctx, "")
	assert.Error(t, err)
}

func TestSignOutPublishesEvent(t *testing.T) {
	config.AppConfig.AuthJWTSecret = "test-secret"
	ctx := context.Background()
	svc, client := newTestAccountService(decision.NewMemoryStore())

	var events []SessionEvent
	unsubscribe := svc.Events().Subscribe(func(ev SessionEvent) {
		events = append(events, ev)
	})
	defer unsubscribe()

	token, err := utils.GenerateSessionToken("acc-1", "a@b.de", time.Hour)
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, token))
	assert.Equal(t, 1, client.signOutCalls)

	require.Len(t, events, 1)
	assert.Equal(t, SessionSignedOut, events[0].Type)
	assert.Equal(t, "acc-1", events[0].UserID)
}
