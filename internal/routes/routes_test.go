package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/h-wallet/h_wallet/internal/api"
	"github.com/h-wallet/h_wallet/internal/config"
	"github.com/h-wallet/h_wallet/internal/logging"
	"github.com/h-wallet/h_wallet/internal/server"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := config.Config{
		AppName:        "HWallet",
		AppEnv:         "development",
		Port:           "8080",
		LogLevel:       "error",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Minute,
		WalletCacheTTL: time.Minute,
		ShutdownPeriod: time.Second,
	}

	srv, err := server.New(cfg, nil, client, logging.Discard())
	require.NoError(t, err)
	return srv.App()
}

func request(t *testing.T, app *fiber.App, method, path, token string, body any) (int, api.Envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope api.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func registerBody(phone string) map[string]string {
	return map[string]string{
		"username":         "kwamena",
		"phone_number":     phone,
		"password":         "Password123",
		"confirm_password": "Password123",
	}
}

func registerAndLogin(t *testing.T, app *fiber.App, phone string) string {
	t.Helper()

	status, envelope := request(t, app, http.MethodPost, "/api/v1/user/register", "", registerBody(phone))
	require.Equal(t, http.StatusCreated, status)
	require.True(t, envelope.Success)
	require.Equal(t, phone, envelope.Data)

	status, envelope = request(t, app, http.MethodPost, "/api/v1/user/login", "", map[string]string{
		"phone_number": phone,
		"password":     "Password123",
	})
	require.Equal(t, http.StatusOK, status)
	token, ok := envelope.Data.(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginAndWalletLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "233249885566")

	// Create a momo wallet; the stored number is the full PAN.
	status, envelope := request(t, app, http.MethodPost, "/api/v1/wallet/new", token, map[string]string{
		"name":   "My Wallet",
		"scheme": "Mtn",
		"pan":    "233249885566",
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, envelope.Success)
	walletID, ok := envelope.Data.(string)
	require.True(t, ok)
	require.NotEmpty(t, walletID)

	// The same registration again conflicts.
	status, envelope = request(t, app, http.MethodPost, "/api/v1/wallet/new", token, map[string]string{
		"name":   "My Wallet",
		"scheme": "Mtn",
		"pan":    "233249885566",
	})
	require.Equal(t, http.StatusConflict, status)
	require.False(t, envelope.Success)

	// List and get.
	status, envelope = request(t, app, http.MethodGet, "/api/v1/wallet/all", token, nil)
	require.Equal(t, http.StatusOK, status)
	wallets, ok := envelope.Data.([]any)
	require.True(t, ok)
	require.Len(t, wallets, 1)
	first, ok := wallets[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "233249885566", first["number"])
	require.Equal(t, "momo", first["type"])

	status, envelope = request(t, app, http.MethodGet, "/api/v1/wallet/"+walletID, token, nil)
	require.Equal(t, http.StatusOK, status)
	projection, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "233249885566", projection["owner"])

	// Delete, then the wallet is gone.
	status, envelope = request(t, app, http.MethodDelete, "/api/v1/wallet/"+walletID, token, nil)
	require.Equal(t, http.StatusAccepted, status)
	require.True(t, envelope.Success)

	status, _ = request(t, app, http.MethodGet, "/api/v1/wallet/"+walletID, token, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	body := registerBody("233249885566")
	body["confirm_password"] = "Password124"
	status, envelope := request(t, app, http.MethodPost, "/api/v1/user/register", "", body)
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, envelope.Success)

	body = registerBody("not-a-number")
	status, _ = request(t, app, http.MethodPost, "/api/v1/user/register", "", body)
	require.Equal(t, http.StatusBadRequest, status)

	registerAndLogin(t, app, "233249885566")
	status, _ = request(t, app, http.MethodPost, "/api/v1/user/register", "", registerBody("233249885566"))
	require.Equal(t, http.StatusConflict, status)
}

func TestLoginFailures(t *testing.T) {
	app := newTestApp(t)
	registerAndLogin(t, app, "233249885566")

	status, unknown := request(t, app, http.MethodPost, "/api/v1/user/login", "", map[string]string{
		"phone_number": "233200000000",
		"password":     "Password123",
	})
	require.Equal(t, http.StatusUnauthorized, status)

	status, wrongPass := request(t, app, http.MethodPost, "/api/v1/user/login", "", map[string]string{
		"phone_number": "233249885566",
		"password":     "Password124",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, unknown.Message, wrongPass.Message)
}

func TestMe(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "233249885566")

	status, envelope := request(t, app, http.MethodGet, "/api/v1/user/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	details, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "kwamena", details["username"])
	require.Equal(t, "233249885566", details["phone_number"])

	status, _ = request(t, app, http.MethodGet, "/api/v1/user/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = request(t, app, http.MethodGet, "/api/v1/user/me", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestWalletEndpointsRequireAuth(t *testing.T) {
	app := newTestApp(t)

	status, _ := request(t, app, http.MethodGet, "/api/v1/wallet/all", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = request(t, app, http.MethodPost, "/api/v1/wallet/new", "", map[string]string{
		"name": "My Wallet", "scheme": "Mtn", "pan": "233249885566",
	})
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestWalletOwnershipIsolationOverHTTP(t *testing.T) {
	app := newTestApp(t)
	tokenA := registerAndLogin(t, app, "233249885566")
	tokenB := registerAndLogin(t, app, "233201234567")

	status, envelope := request(t, app, http.MethodPost, "/api/v1/wallet/new", tokenB, map[string]string{
		"name":   "B Wallet",
		"scheme": "Vodafone",
		"pan":    "233201234567",
	})
	require.Equal(t, http.StatusCreated, status)
	walletID := envelope.Data.(string)

	status, _ = request(t, app, http.MethodGet, "/api/v1/wallet/"+walletID, tokenA, nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = request(t, app, http.MethodDelete, "/api/v1/wallet/"+walletID, tokenA, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestCreateWalletRejectsUnknownScheme(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "233249885566")

	status, envelope := request(t, app, http.MethodPost, "/api/v1/wallet/new", token, map[string]string{
		"name":   "My Wallet",
		"scheme": "amex",
		"pan":    "233249885566",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, envelope.Success)
}
