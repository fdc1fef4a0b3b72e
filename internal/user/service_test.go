package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/h-wallet/h_wallet/internal/apierr"
	"github.com/h-wallet/h_wallet/internal/config"
	"github.com/h-wallet/h_wallet/internal/logging"
	"github.com/h-wallet/h_wallet/internal/scheme"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	validators, err := scheme.NewValidatorFactory()
	require.NoError(t, err)
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Minute}
	return NewService(cfg, logging.Discard(), NewMemoryRepository(), validators)
}

func kindOf(t *testing.T, err error) apierr.Kind {
	t.Helper()
	var be *apierr.Error
	require.ErrorAs(t, err, &be)
	return be.Kind
}

func validRegistration() Registration {
	return Registration{
		Username:        "kwamena",
		PhoneNumber:     "233249885566",
		Password:        "Password123",
		ConfirmPassword: "Password123",
	}
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	phone, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.Equal(t, "233249885566", phone)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc := newTestService(t)

	r := validRegistration()
	r.ConfirmPassword = "Password124"
	_, err := svc.Register(context.Background(), r)
	require.Equal(t, apierr.KindBadRequest, kindOf(t, err))
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	r := validRegistration()
	r.Username = "kobbina"
	_, err = svc.Register(ctx, r)
	require.Equal(t, apierr.KindConflict, kindOf(t, err))
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	token, err := svc.Authenticate(ctx, Login{PhoneNumber: "233249885566", Password: "Password123"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, unknownErr := svc.Authenticate(ctx, Login{PhoneNumber: "233200000000", Password: "Password123"})
	_, wrongPassErr := svc.Authenticate(ctx, Login{PhoneNumber: "233249885566", Password: "Password124"})

	require.Equal(t, apierr.KindUnauthorized, kindOf(t, unknownErr))
	require.Equal(t, apierr.KindUnauthorized, kindOf(t, wrongPassErr))
	// Same message for both, so responses never reveal whether the phone
	// number is registered.
	require.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestAuthenticatedUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	caller, err := svc.AuthenticatedUser(ctx, "233249885566")
	require.NoError(t, err)
	require.Equal(t, "kwamena", caller.Username)

	_, err = svc.AuthenticatedUser(ctx, "")
	require.Equal(t, apierr.KindUnauthorized, kindOf(t, err))

	_, err = svc.AuthenticatedUser(ctx, "233200000000")
	require.Equal(t, apierr.KindUnauthorized, kindOf(t, err))
}

func TestDetails(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	profile, err := svc.Details(ctx, "233249885566")
	require.NoError(t, err)
	require.Equal(t, "kwamena", profile.Username)
	require.Equal(t, "233249885566", profile.PhoneNumber)
	require.False(t, profile.CreatedAt.IsZero())

	// A missing user reports bad request, not not-found. Longstanding API
	// behavior, asserted here so a change is a deliberate one.
	_, err = svc.Details(ctx, "233200000000")
	require.Equal(t, apierr.KindBadRequest, kindOf(t, err))
}
