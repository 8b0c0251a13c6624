package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/patitas/patitas/backend/api/internal/config"
	"github.com/patitas/patitas/backend/api/internal/sessions"
	"github.com/patitas/patitas/backend/api/internal/users"
)

// fake sessions repo
type fakeSessionsRepo struct {
	store map[string]*sessions.Session
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *sessions.Session) error {
	if f.store == nil {
		f.store = map[string]*sessions.Session{}
	}
	f.store[s.RefreshToken] = s
	return nil
}
func (f *fakeSessionsRepo) GetByRefresh(ctx context.Context, refresh string) (*sessions.Session, error) {
	s, ok := f.store[refresh]
	if !ok {
		return nil, nil
	}
	return s, nil
}
func (f *fakeSessionsRepo) DeleteByRefresh(ctx context.Context, refresh string) error {
	delete(f.store, refresh)
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-test-secret-32-bytes-xxxx"
	return cfg
}

func newAuthRouter(cfg *config.Config) (*gin.Engine, *users.Service, *sessions.Service) {
	uSvc := users.NewService(users.NewMemoryUserRepository())
	sSvc := sessions.NewService(&fakeSessionsRepo{})
	h := NewAuthHandler(cfg, uSvc, sSvc)

	r := gin.New()
	h.Register(r.Group("/"))
	return r, uSvc, sSvc
}

func postJSON(r *gin.Engine, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	r, _, _ := newAuthRouter(testConfig())

	w := postJSON(r, "/auth/register", `{"name":"Ana","email":"ana@patitas.pe","password":"secreto123"}`, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var got map[string]interface{}
	_ = json.NewDecoder(w.Body).Decode(&got)
	assert.NotEmpty(t, got["accessToken"])
	assert.NotEmpty(t, got["refreshToken"])
	user, _ := got["user"].(map[string]interface{})
	assert.Equal(t, "ana@patitas.pe", user["email"])
	// the password hash never leaves the API
	_, leaked := user["passwordHash"]
	assert.False(t, leaked)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r, _, _ := newAuthRouter(testConfig())

	w := postJSON(r, "/auth/register", `{"name":"Ana","email":"ana@patitas.pe","password":"secreto123"}`, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/auth/register", `{"name":"Otra","email":"ana@patitas.pe","password":"secreto456"}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	var got map[string]interface{}
	_ = json.NewDecoder(w.Body).Decode(&got)
	assert.Equal(t, "Este correo ya está registrado", got["error"])
}

func TestLogin_Success(t *testing.T) {
	cfg := testConfig()
	r, uSvc, _ := newAuthRouter(cfg)
	_, err := uSvc.Register(context.Background(), "Ana", "ana@patitas.pe", "secreto123")
	assert.NoError(t, err)

	w := postJSON(r, "/auth/login", `{"email":"ana@patitas.pe","password":"secreto123"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	_ = json.NewDecoder(w.Body).Decode(&got)
	assert.NotEmpty(t, got["accessToken"])
	assert.NotEmpty(t, got["refreshToken"])
}

func TestLogin_BadCredentials(t *testing.T) {
	r, uSvc, _ := newAuthRouter(testConfig())
	_, err := uSvc.Register(context.Background(), "Ana", "ana@patitas.pe", "secreto123")
	assert.NoError(t, err)

	// wrong password and unknown email look the same to the caller
	for _, body := range []string{
		`{"email":"ana@patitas.pe","password":"incorrecta"}`,
		`{"email":"nadie@patitas.pe","password":"secreto123"}`,
	} {
		w := postJSON(r, "/auth/login", body, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var got map[string]interface{}
		_ = json.NewDecoder(w.Body).Decode(&got)
		assert.Equal(t, "Correo o contraseña incorrectos", got["error"])
	}
}

func TestRefresh_Success(t *testing.T) {
	cfg := testConfig()
	uRepo := users.NewMemoryUserRepository()
	uSvc := users.NewService(uRepo)
	sSvc := sessions.NewService(&fakeSessionsRepo{})
	h := NewAuthHandler(cfg, uSvc, sSvc)

	u, err := uSvc.Register(context.Background(), "Ana", "ana@patitas.pe", "secreto123")
	assert.NoError(t, err)
	rt, err := sSvc.CreateSession(context.Background(), u.ID.Hex(), time.Hour)
	assert.NoError(t, err)

	r := gin.New()
	h.Register(r.Group("/"))

	w := postJSON(r, "/auth/refresh", fmt.Sprintf(`{"refresh_token":"%s"}`, rt), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	_ = json.NewDecoder(w.Body).Decode(&got)
	assert.NotEmpty(t, got["access_token"])
}

func TestRefresh_Invalid(t *testing.T) {
	r, _, _ := newAuthRouter(testConfig())

	w := postJSON(r, "/auth/refresh", `{"refresh_token":"does-not-exist"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_BlacklistsAccessAndDeletesRefresh(t *testing.T) {
	m, err := mr.Run()
	assert.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	sessions.SetBlacklistClient(client)
	defer sessions.SetBlacklistClient(nil)

	r, _, sSvc := newAuthRouter(testConfig())
	rt, err := sSvc.CreateSession(context.Background(), "64b000000000000000000001", time.Hour)
	assert.NoError(t, err)

	// craft an access token with exp in the future
	exp := time.Now().Add(2 * time.Minute).Unix()
	payload := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"sub":"64b000000000000000000001","exp":%d}`, exp)))
	access := "hdr." + payload + ".sig"

	w := postJSON(r, "/auth/logout", fmt.Sprintf(`{"refresh_token":"%s"}`, rt),
		map[string]string{"Authorization": "Bearer " + access})
	assert.Equal(t, http.StatusOK, w.Code)

	// refresh session is gone
	sess, err := sSvc.ValidateRefresh(context.Background(), rt)
	assert.NoError(t, err)
	assert.Nil(t, sess)

	// access token is now blacklisted in redis
	exists := m.Exists("blacklist:access:" + access)
	assert.True(t, exists)
}

func TestParseExpFromJWT(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"s1","exp":1700000000}`))
	tok := "hdr." + payload + ".sig"
	expTime, err := parseExpFromJWT(tok)
	if err != nil {
		t.Fatalf("unexpected error from parseExpFromJWT: %v", err)
	}
	if expTime.Unix() != 1700000000 {
		t.Fatalf("unexpected exp time: %v", expTime.Unix())
	}

	noExp := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"s2"}`))
	if _, err := parseExpFromJWT("hdr." + noExp + ".sig"); err == nil {
		t.Fatalf("expected error for missing exp claim")
	}

	if _, err := parseExpFromJWT("not-a-jwt"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}
