package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fleet/src/api"
	handlers "fleet/src/api/handlers"
	"fleet/src/models"
	"fleet/src/repositories"
	"fleet/src/services"

	"github.com/go-chi/jwtauth"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memUsers) Update(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	return nil
}

func (m *memUsers) SoftDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUsers) CountActive(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type testServer struct {
	*api.Server
	tokenAuth *jwtauth.JWTAuth
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tokenAuth := jwtauth.New("HS256", []byte("api-test-secret"), nil)
	svcs := handlers.Services{
		Users:   services.NewUserService(&memUsers{users: map[string]models.User{}}, tokenAuth, time.Hour),
		Uploads: services.NewUploadService(t.TempDir()),
	}
	h := handlers.NewHandler(svcs, logger, 1<<20, time.Second)
	return &testServer{Server: api.NewServerWithHandler(h, tokenAuth, logger), tokenAuth: tokenAuth}
}

func (s *testServer) token(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	_, token, err := s.tokenAuth.Encode(claims)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body io.Reader, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)

	var env envelope
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	}
	return rr, env
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestAlive(t *testing.T) {
	s := newTestServer(t)
	rr, _ := s.do(t, http.MethodGet, "/alive", "", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Im alive!", rr.Body.String())
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t)
	other := jwtauth.New("HS256", []byte("someone-else"), nil)
	_, foreign, err := other.Encode(map[string]interface{}{"user_id": "u1"})
	require.NoError(t, err)

	expired := map[string]interface{}{"user_id": "u1"}
	jwtauth.SetExpiry(expired, time.Now().Add(-time.Hour))

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"malformed token", "not-a-jwt", http.StatusForbidden},
		{"foreign signature", foreign, http.StatusForbidden},
		{"expired", s.token(t, expired), http.StatusForbidden},
		{"no user id", s.token(t, map[string]interface{}{"role": "ADMIN"}), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, env := s.do(t, http.MethodGet, "/api/auth/me", tt.token, nil, "")
			assert.Equal(t, tt.status, rr.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestRegisterLoginMe(t *testing.T) {
	s := newTestServer(t)

	rr, env := s.do(t, http.MethodPost, "/api/users/register", "", jsonBody(t, map[string]string{
		"fullname": "Dewi", "username": "dewi", "password": "rahasia", "role": "admin",
	}), "application/json")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.True(t, env.Success)
	assert.NotContains(t, string(env.Data), "rahasia")

	rr, env = s.do(t, http.MethodPost, "/api/auth/login", "", jsonBody(t, map[string]string{
		"username": "dewi", "password": "salah-sandi",
	}), "application/json")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, env.Success)

	rr, env = s.do(t, http.MethodPost, "/api/auth/login", "", jsonBody(t, map[string]string{
		"username": "dewi", "password": "rahasia",
	}), "application/json")
	require.Equal(t, http.StatusOK, rr.Code)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.AccessToken)

	rr, env = s.do(t, http.MethodGet, "/api/auth/me", login.AccessToken, nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "dewi", me.Username)
	assert.Equal(t, "ADMIN", me.Role)
}

func TestRequestValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, map[string]interface{}{"user_id": "u1", "role": "ADMIN"})

	rr, env := s.do(t, http.MethodPost, "/api/users/register", "", strings.NewReader("{"), "application/json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, env.Message, "invalid request body")

	rr, env = s.do(t, http.MethodPost, "/api/users/register", "", jsonBody(t, map[string]string{"username": "x"}), "application/json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var fields map[string][]string
	require.NoError(t, json.Unmarshal(env.Error, &fields))
	assert.Contains(t, fields, "fullname")
	assert.Contains(t, fields, "password")

	for _, path := range []string{
		"/api/reminders?type=OIL",
		"/api/reminders?sort=sideways",
		"/api/reminders?startDate=yesterday",
		"/api/maintenances/pdf",
		"/api/maintenances/me?page=first",
	} {
		rr, _ := s.do(t, http.MethodGet, path, token, nil, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, path)
	}
}

func TestUploads(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, map[string]interface{}{"user_id": "u1"})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "nota.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rr, env := s.do(t, http.MethodPost, "/api/uploads", token, &body, mw.FormDataContentType())
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var uploaded struct {
		Path string `json:"path"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &uploaded))

	rr, _ = s.do(t, http.MethodGet, uploaded.Path, token, nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "png bytes", rr.Body.String())

	rr, _ = s.do(t, http.MethodGet, uploaded.Path, "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr, _ = s.do(t, http.MethodGet, "/api/uploads/missing.png", token, nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = s.do(t, http.MethodPost, "/api/uploads", token, strings.NewReader("plain"), "text/plain")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
