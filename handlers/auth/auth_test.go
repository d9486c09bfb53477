package auth_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nmdong/VietThanhProductions/api"
	"github.com/nmdong/VietThanhProductions/database"
	"github.com/nmdong/VietThanhProductions/router"
	"github.com/nmdong/VietThanhProductions/utils/auth"
	"github.com/nmdong/VietThanhProductions/utils/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type testEnv struct {
	app *fiber.App
	jwt *auth.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	jwtManager := auth.NewJWTManager(auth.JWTConfig{Secret: testSecret, Issuer: "test"},
		auth.NewBlacklistService(store.GetDB()))

	app := api.NewApp(api.ServerConfig{})
	middleware.SetupSecurity(app, middleware.SecurityConfig{AllowedOrigins: "*", DisableAccessLog: true})
	require.NoError(t, router.SetupRoutes(app, router.Dependencies{
		DB:         store.GetDB(),
		JWTManager: jwtManager,
		DBPing:     store.HealthCheck,
	}))

	return &testEnv{app: app, jwt: jwtManager}
}

type result struct {
	status int
	body   map[string]interface{}
}

func (r result) data() map[string]interface{} {
	d, _ := r.body["data"].(map[string]interface{})
	return d
}

func (r result) code() string {
	e, _ := r.body["error"].(map[string]interface{})
	c, _ := e["code"].(string)
	return c
}

func (env *testEnv) do(t *testing.T, method, path, token, body string) result {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed), string(raw))
	return result{status: resp.StatusCode, body: parsed}
}

func (env *testEnv) register(t *testing.T, username, password string) result {
	t.Helper()
	return env.do(t, http.MethodPost, "/auth/register", "",
		`{"action":"register","data":{"username":"`+username+`","password":"`+password+`"}}`)
}

func (env *testEnv) login(t *testing.T, username, password string) result {
	t.Helper()
	return env.do(t, http.MethodPost, "/auth/login", "",
		`{"action":"login","data":{"username":"`+username+`","password":"`+password+`"}}`)
}

func TestRegisterLoginMeLogoutFlow(t *testing.T) {
	env := newTestEnv(t)

	reg := env.register(t, "bob", "pw1")
	require.Equal(t, http.StatusCreated, reg.status)
	assert.Equal(t, "success", reg.body["status"])
	userID := reg.data()["userId"]
	require.NotNil(t, userID)

	login := env.login(t, "bob", "pw1")
	require.Equal(t, http.StatusOK, login.status)
	assert.Equal(t, userID, login.data()["userId"])
	token, _ := login.data()["token"].(string)
	refresh, _ := login.data()["refreshToken"].(string)
	require.NotEmpty(t, token)
	require.NotEmpty(t, refresh)

	me := env.do(t, http.MethodGet, "/auth/me", token, "")
	require.Equal(t, http.StatusOK, me.status)
	user := me.data()["user"].(map[string]interface{})
	assert.Equal(t, userID, user["id"])
	assert.Equal(t, "bob", user["username"])
	assert.Contains(t, user, "email")
	assert.Nil(t, user["email"])

	logout := env.do(t, http.MethodPost, "/auth/logout_access", token, "")
	require.Equal(t, http.StatusOK, logout.status)
	assert.Equal(t, true, logout.data()["revoked"])

	again := env.do(t, http.MethodGet, "/auth/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, again.status)
	assert.Equal(t, "AUTH_INVALID", again.code())

	// the refresh token is unaffected by revoking the access token
	renewed := env.do(t, http.MethodPost, "/auth/refresh", refresh, "")
	require.Equal(t, http.StatusOK, renewed.status)
	newToken, _ := renewed.data()["token"].(string)
	require.NotEmpty(t, newToken)

	me = env.do(t, http.MethodGet, "/auth/me", newToken, "")
	assert.Equal(t, http.StatusOK, me.status)
}

func TestRegisterWithEmail(t *testing.T) {
	env := newTestEnv(t)

	reg := env.do(t, http.MethodPost, "/auth/register", "",
		`{"action":"register","data":{"username":"lan","password":"pw","email":"lan@example.com"},"meta":{"client":"ios"}}`)
	require.Equal(t, http.StatusCreated, reg.status)

	token := env.login(t, "lan", "pw").data()["token"].(string)
	me := env.do(t, http.MethodGet, "/auth/me", token, "")
	require.Equal(t, http.StatusOK, me.status)
	assert.Equal(t, "lan@example.com", me.data()["user"].(map[string]interface{})["email"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.register(t, "alice", "pw").status)

	dup := env.register(t, "alice", "other")
	assert.Equal(t, http.StatusBadRequest, dup.status)
	assert.Equal(t, "USER_EXISTS", dup.code())

	assert.Equal(t, http.StatusOK, env.login(t, "alice", "pw").status)
	assert.Equal(t, http.StatusUnauthorized, env.login(t, "alice", "other").status)
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{
		`{"action":"register","data":{"username":"x"}}`,
		`{"action":"register","data":{"password":"x"}}`,
		`{"action":"register"}`,
	} {
		res := env.do(t, http.MethodPost, "/auth/register", "", body)
		assert.Equal(t, http.StatusBadRequest, res.status, body)
		assert.Equal(t, "MISSING_FIELDS", res.code(), body)
	}
}

func TestRegisterPasswordTooLong(t *testing.T) {
	env := newTestEnv(t)

	res := env.register(t, "long", strings.Repeat("p", 73))
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "VALIDATION_ERROR", res.code())
}

func TestInvalidAction(t *testing.T) {
	env := newTestEnv(t)

	for path, body := range map[string]string{
		"/auth/register": `{"action":"login","data":{"username":"a","password":"b"}}`,
		"/auth/login":    `{"action":"register","data":{"username":"a","password":"b"}}`,
	} {
		res := env.do(t, http.MethodPost, path, "", body)
		assert.Equal(t, http.StatusBadRequest, res.status, path)
		assert.Equal(t, "INVALID_ACTION", res.code(), path)
		assert.Equal(t, "error", res.body["status"])
	}

	res := env.do(t, http.MethodPost, "/auth/login", "", `not json`)
	assert.Equal(t, "INVALID_ACTION", res.code())
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "bob", "pw1").status)

	res := env.login(t, "bob", "nope")
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "INVALID_CREDENTIALS", res.code())
	assert.Nil(t, res.body["data"])
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	res := env.login(t, "ghost", "pw")
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "INVALID_CREDENTIALS", res.code())
}

func TestLoginMissingCredentials(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodPost, "/auth/login", "", `{"action":"login","data":{"username":"bob"}}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "MISSING_CREDENTIALS", res.code())
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "bob", "pw1").status)
	token := env.login(t, "bob", "pw1").data()["token"].(string)

	res := env.do(t, http.MethodPost, "/auth/refresh", token, "")
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "AUTH_INVALID", res.code())
	assert.Nil(t, res.body["data"])
}

func TestMeRejectsRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "bob", "pw1").status)
	refresh := env.login(t, "bob", "pw1").data()["refreshToken"].(string)

	res := env.do(t, http.MethodGet, "/auth/me", refresh, "")
	assert.Equal(t, http.StatusUnauthorized, res.status)

	res = env.do(t, http.MethodPost, "/auth/logout_access", refresh, "")
	assert.Equal(t, http.StatusUnauthorized, res.status)
}

func TestLogoutRefresh(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "bob", "pw1").status)
	refresh := env.login(t, "bob", "pw1").data()["refreshToken"].(string)

	res := env.do(t, http.MethodPost, "/auth/logout_refresh", refresh, "")
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, true, res.data()["revoked"])

	res = env.do(t, http.MethodPost, "/auth/refresh", refresh, "")
	assert.Equal(t, http.StatusUnauthorized, res.status)

	// a second logout with the same token is refused by the middleware
	res = env.do(t, http.MethodPost, "/auth/logout_refresh", refresh, "")
	assert.Equal(t, http.StatusUnauthorized, res.status)
}

func TestMissingAndMalformedAuthorization(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "AUTH_INVALID", res.code())

	res = env.do(t, http.MethodGet, "/auth/me", "garbage.token.here", "")
	assert.Equal(t, http.StatusUnauthorized, res.status)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic Ym9iOnB3MQ==")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestExpiredAccessToken(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "bob", "pw1").status)

	stale := auth.NewJWTManager(auth.JWTConfig{
		Secret: testSecret,
		Issuer: "test",
		Clock:  func() time.Time { return time.Now().Add(-time.Hour) },
	}, nil)
	token, _, err := stale.GenerateAccessToken(1)
	require.NoError(t, err)

	res := env.do(t, http.MethodGet, "/auth/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "AUTH_INVALID", res.code())
}

func TestMeForDeletedUser(t *testing.T) {
	env := newTestEnv(t)

	// a valid token whose subject was never stored
	token, _, err := env.jwt.GenerateAccessToken(9999)
	require.NoError(t, err)

	res := env.do(t, http.MethodGet, "/auth/me", token, "")
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "USER_NOT_FOUND", res.code())
}

func TestResponseMetaAndRequestIDHeader(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"action":"nope"}`))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	meta := body["meta"].(map[string]interface{})
	assert.Regexp(t, `^[0-9a-f]{32}$`, meta["requestId"])
	assert.Equal(t, meta["requestId"], resp.Header.Get(fiber.HeaderXRequestID))
	assert.NotContains(t, meta, "processingTimeMs")
}
