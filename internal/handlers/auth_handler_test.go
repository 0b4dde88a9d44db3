package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"finboard/internal/auth"
	apperrors "finboard/internal/errors"
	"finboard/internal/middleware"
	"finboard/internal/models"
	"finboard/internal/validator"
)

// --- mock services ---

type mockSessionService struct {
	loginFn           func(ctx context.Context, email, password string) (models.User, error)
	loginWithGoogleFn func(ctx context.Context) (models.User, error)
	logoutFn          func(ctx context.Context) error
	currentUserFn     func() (models.User, bool)
	stateFn           func() auth.State
}

func (m *mockSessionService) Login(ctx context.Context, email, password string) (models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return demoUser(email), nil
}

func (m *mockSessionService) LoginWithGoogle(ctx context.Context) (models.User, error) {
	if m.loginWithGoogleFn != nil {
		return m.loginWithGoogleFn(ctx)
	}
	return demoUser("john.doe@gmail.com"), nil
}

func (m *mockSessionService) Logout(ctx context.Context) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx)
	}
	return nil
}

func (m *mockSessionService) CurrentUser() (models.User, bool) {
	if m.currentUserFn != nil {
		return m.currentUserFn()
	}
	return models.User{}, false
}

func (m *mockSessionService) State() auth.State {
	if m.stateFn != nil {
		return m.stateFn()
	}
	return auth.State{}
}

type auditEntry struct {
	userID     string
	action     string
	resourceID string
}

type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(userID, action, _, resourceID, _ string, _ map[string]any) {
	m.entries = append(m.entries, auditEntry{userID: userID, action: action, resourceID: resourceID})
}

func (m *mockAuditService) actions() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.action)
	}
	return out
}

// --- test helpers ---

func demoUser(email string) models.User {
	u := auth.DemoUser()
	u.Email = email
	return u
}

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/google", handler.LoginWithGoogle)
	r.GET("/auth/session", handler.GetSession)
	r.POST("/auth/logout", injectUserID("1"), handler.Logout)
	r.GET("/profile", injectUserID("1"), handler.GetProfile)
	return r
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 with a token on success", func(t *testing.T) {
		var gotEmail, gotPassword string
		session := &mockSessionService{
			loginFn: func(_ context.Context, email, password string) (models.User, error) {
				gotEmail, gotPassword = email, password
				return demoUser(email), nil
			},
		}
		audit := &mockAuditService{}
		r := setupAuthRouter(NewAuthHandler(session, audit))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"jane@example.com","password":"secret1"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotEmail != "jane@example.com" || gotPassword != "secret1" {
			t.Errorf("credentials not passed through: %q %q", gotEmail, gotPassword)
		}
		result := parseJSON(t, rec)
		token, _ := result["token"].(string)
		if token == "" {
			t.Fatal("expected non-empty token")
		}
		claims, err := middleware.ParseAccessToken(token)
		if err != nil {
			t.Fatalf("issued token does not parse: %v", err)
		}
		if claims.UserID != "1" || claims.Email != "jane@example.com" {
			t.Errorf("unexpected claims: %+v", claims)
		}
		user := result["user"].(map[string]interface{})
		if user["name"] != "John Doe" {
			t.Errorf("expected John Doe, got %v", user["name"])
		}
		if got := audit.actions(); len(got) != 1 || got[0] != "LOGIN" {
			t.Errorf("expected LOGIN audit entry, got %v", got)
		}
	})

	t.Run("returns 400 with the inline message", func(t *testing.T) {
		session := &mockSessionService{
			loginFn: func(_ context.Context, email, password string) (models.User, error) {
				if err := auth.ValidateCredentials(email, password); err != nil {
					return models.User{}, err
				}
				return demoUser(email), nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(session, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"jane@example.com","password":"abc"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "INVALID_INPUT")
		msg := result["error"].(map[string]interface{})["message"]
		if msg != "Password must be at least 6 characters" {
			t.Errorf("unexpected message %v", msg)
		}
	})

	t.Run("returns 401 on invalid credentials", func(t *testing.T) {
		audit := &mockAuditService{}
		session := &mockSessionService{
			loginFn: func(_ context.Context, _, _ string) (models.User, error) {
				return models.User{}, apperrors.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(NewAuthHandler(session, audit))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"jane@example.com","password":"wrongpw"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
		if len(audit.entries) != 0 {
			t.Errorf("failed login must not be audited as a login, got %v", audit.actions())
		}
	})

	t.Run("returns 409 while another login runs", func(t *testing.T) {
		session := &mockSessionService{
			loginFn: func(_ context.Context, _, _ string) (models.User, error) {
				return models.User{}, apperrors.ErrLoginInProgress
			},
		}
		r := setupAuthRouter(NewAuthHandler(session, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"jane@example.com","password":"secret1"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "LOGIN_IN_PROGRESS")
	})

	t.Run("returns 400 on malformed body", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockSessionService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"email":`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 500 when the session cannot be persisted", func(t *testing.T) {
		session := &mockSessionService{
			loginFn: func(_ context.Context, _, _ string) (models.User, error) {
				return models.User{}, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("disk full"))
			},
		}
		r := setupAuthRouter(NewAuthHandler(session, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"jane@example.com","password":"secret1"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		msg := result["error"].(map[string]interface{})["message"]
		if strings.Contains(fmt.Sprint(msg), "disk full") {
			t.Error("internal error details must not leak")
		}
	})
}

func TestAuthHandler_LoginWithGoogle(t *testing.T) {
	audit := &mockAuditService{}
	r := setupAuthRouter(NewAuthHandler(&mockSessionService{}, audit))

	rec := doRequest(r, "POST", "/auth/google", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	if user["email"] != "john.doe@gmail.com" {
		t.Errorf("expected the Google account, got %v", user["email"])
	}
	if got := audit.actions(); len(got) != 1 || got[0] != "LOGIN_GOOGLE" {
		t.Errorf("expected LOGIN_GOOGLE audit entry, got %v", got)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("clears the session", func(t *testing.T) {
		called := false
		audit := &mockAuditService{}
		session := &mockSessionService{
			logoutFn: func(_ context.Context) error {
				called = true
				return nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(session, audit))

		rec := doRequest(r, "POST", "/auth/logout", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !called {
			t.Error("expected session logout to be called")
		}
		result := parseJSON(t, rec)
		if result["user"] != nil {
			t.Errorf("expected null user, got %v", result["user"])
		}
		if got := audit.actions(); len(got) != 1 || got[0] != "LOGOUT" {
			t.Errorf("expected LOGOUT audit entry, got %v", got)
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewAuthHandler(&mockSessionService{}, &mockAuditService{})
		r := gin.New()
		r.POST("/auth/logout", handler.Logout)

		rec := doRequest(r, "POST", "/auth/logout", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 500 when the stored session cannot be erased", func(t *testing.T) {
		session := &mockSessionService{
			logoutFn: func(_ context.Context) error {
				return apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("locked"))
			},
		}
		r := setupAuthRouter(NewAuthHandler(session, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/logout", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_GetSession(t *testing.T) {
	t.Run("signed out", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockSessionService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/auth/session", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["user"] != nil {
			t.Errorf("expected null user, got %v", result["user"])
		}
		if result["isLoading"] != false {
			t.Errorf("expected isLoading false, got %v", result["isLoading"])
		}
	})

	t.Run("login in flight", func(t *testing.T) {
		user := demoUser("jane@example.com")
		session := &mockSessionService{
			stateFn: func() auth.State { return auth.State{User: &user, IsLoading: true} },
		}
		r := setupAuthRouter(NewAuthHandler(session, &mockAuditService{}))

		result := parseJSON(t, doRequest(r, "GET", "/auth/session", ""))

		if result["isLoading"] != true {
			t.Errorf("expected isLoading true, got %v", result["isLoading"])
		}
		got := result["user"].(map[string]interface{})
		if got["email"] != "jane@example.com" {
			t.Errorf("expected jane@example.com, got %v", got["email"])
		}
	})
}

func TestAuthHandler_GetProfile(t *testing.T) {
	t.Run("returns 200 with user profile", func(t *testing.T) {
		session := &mockSessionService{
			currentUserFn: func() (models.User, bool) {
				return demoUser("jane@example.com"), true
			},
		}
		r := setupAuthRouter(NewAuthHandler(session, &mockAuditService{}))

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		user := parseJSON(t, rec)["user"].(map[string]interface{})
		if user["email"] != "jane@example.com" {
			t.Errorf("expected jane@example.com, got %v", user["email"])
		}
		if user["role"] != "Admin" {
			t.Errorf("expected Admin, got %v", user["role"])
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewAuthHandler(&mockSessionService{}, &mockAuditService{})
		r := gin.New()
		r.GET("/profile", handler.GetProfile)

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 401 once signed out", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockSessionService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
	})
}
