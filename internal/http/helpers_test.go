package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"social-api/internal/service"
)

type testApp struct {
	router *gin.Engine
	users  *mockUserRepo
	posts  *mockPostRepo
	jwt    *service.JWTService
}

func newTestApp(t *testing.T, secret string, limiter service.LoginRateLimiter) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	users := newMockUserRepo()
	posts := newMockPostRepo(users)
	jwtSvc := service.NewJWTService(secret, 0)

	authSvc := service.NewAuthService(logger, users, service.NewBcryptHasher(bcrypt.MinCost), jwtSvc, limiter)
	userSvc := service.NewUserService(logger, users)
	postSvc := service.NewPostService(logger, posts)

	router := NewRouter(
		logger,
		nil,
		jwtSvc,
		NewAuthHandler(logger, authSvc),
		NewUserHandler(logger, userSvc),
		NewPostHandler(logger, postSvc),
		NewHealthHandler("test", okPinger{}, nil),
	)
	return &testApp{router: router, users: users, posts: posts, jwt: jwtSvc}
}

func (a *testApp) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return a.doFrom(t, "192.0.2.1:1234", method, path, body, headers)
}

// doFrom envía la request desde remoteAddr, que gin usa como IP del cliente.
func (a *testApp) doFrom(t *testing.T, remoteAddr, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = remoteAddr
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// signup registra un usuario válido y devuelve su id.
func (a *testApp) signup(t *testing.T, name, email, password string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"name":       name,
		"email":      email,
		"password":   password,
		"rePassword": password,
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d: %s", email, rec.Code, rec.Body.String())
	}
	id, ok := a.users.usersByEmail[email]
	if !ok {
		t.Fatalf("signup %s: user not stored", email)
	}
	return id
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectMessage(t *testing.T, rec *httptest.ResponseRecorder, code int, message string) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["message"] != message {
		t.Fatalf("expected message %q, got %q", message, body["message"])
	}
}
