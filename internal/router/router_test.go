package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/auth"
	"finboard/internal/ledger"
	"finboard/internal/services"
	"finboard/internal/storage"
	"finboard/internal/testutil"
	"finboard/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

type testApp struct {
	router  *gin.Engine
	store   *storage.GormStore
	session *auth.Session
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store := storage.NewGormStore(testutil.SetupTestDB(t))
	provider := &auth.SimulatedProvider{
		DemoUser:    auth.DemoUser(),
		GoogleEmail: "john.doe@gmail.com",
	}
	session := auth.NewSession(provider, store)
	registry := services.NewRegistry(ledger.NewEngineFor("en"), true)
	return &testApp{
		router:  New(NewServices(session, registry, 0)),
		store:   store,
		session: session,
	}
}

func (a *testApp) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var result map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result), rec.Body.String())
	}
	return rec, result
}

func (a *testApp) login(t *testing.T) string {
	t.Helper()
	rec, result := a.do(t, "POST", "/api/v1/auth/login", "", `{"email":"john@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := result["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func ids(t *testing.T, page map[string]any) []string {
	t.Helper()
	data, ok := page["data"].([]any)
	require.True(t, ok, "missing data in %v", page)
	out := make([]string, 0, len(data))
	for _, item := range data {
		out = append(out, item.(map[string]any)["id"].(string))
	}
	return out
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec, result := app.do(t, "GET", "/api/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", result["status"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/v1/transactions", "/api/v1/budgets", "/api/v1/dashboard/summary", "/api/v1/profile"} {
		rec, _ := app.do(t, "GET", path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t)

	t.Run("form validation", func(t *testing.T) {
		cases := []struct {
			body string
			msg  string
		}{
			{`{"email":"","password":"secret1"}`, "Email is required"},
			{`{"email":"a@b.c","password":""}`, "Password is required"},
			{`{"email":"a@b.c","password":"abc"}`, "Password must be at least 6 characters"},
		}
		for _, tc := range cases {
			rec, result := app.do(t, "POST", "/api/v1/auth/login", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, tc.body)
			assert.Equal(t, tc.msg, result["error"].(map[string]any)["message"], tc.body)
		}
	})

	token := app.login(t)

	t.Run("session is persisted", func(t *testing.T) {
		_, ok, err := app.store.Get(context.Background(), auth.StorageKey)
		require.NoError(t, err)
		assert.True(t, ok)

		_, result := app.do(t, "GET", "/api/v1/auth/session", "", "")
		user := result["user"].(map[string]any)
		assert.Equal(t, "john@example.com", user["email"])
		assert.Equal(t, false, result["isLoading"])
	})

	t.Run("profile", func(t *testing.T) {
		rec, result := app.do(t, "GET", "/api/v1/profile", token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "John Doe", result["user"].(map[string]any)["name"])
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		rec, _ := app.do(t, "POST", "/api/v1/auth/logout", token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		rec, _ = app.do(t, "GET", "/api/v1/profile", token, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		_, ok, err := app.store.Get(context.Background(), auth.StorageKey)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("google login", func(t *testing.T) {
		rec, result := app.do(t, "POST", "/api/v1/auth/google", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "john.doe@gmail.com", result["user"].(map[string]any)["email"])
	})
}

func TestSessionSurvivesRestart(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	restarted := auth.NewSession(&auth.SimulatedProvider{DemoUser: auth.DemoUser()}, app.store)
	require.NoError(t, restarted.Restore(context.Background()))

	user, ok := restarted.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "john@example.com", user.Email)
}

func TestTransactionsFlow(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	t.Run("expenses oldest first", func(t *testing.T) {
		rec, page := app.do(t, "GET", "/api/v1/transactions?type=expense&sort=date&direction=asc", token, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		assert.Equal(t, []string{"2", "3", "6", "4", "7"}, ids(t, page))
		summary := page["summary"].(map[string]any)
		assert.Equal(t, float64(0), summary["income"])
		assert.Equal(t, float64(1810), summary["expenses"])
		assert.Equal(t, float64(7), page["total_records"])
	})

	t.Run("query is remembered", func(t *testing.T) {
		_, page := app.do(t, "GET", "/api/v1/transactions", token, "")
		assert.Len(t, ids(t, page), 5)
	})

	t.Run("search", func(t *testing.T) {
		_, page := app.do(t, "GET", "/api/v1/transactions?type=all&search=NET", token, "")
		assert.Equal(t, []string{"4"}, ids(t, page))
	})

	t.Run("bulk delete", func(t *testing.T) {
		app.do(t, "GET", "/api/v1/transactions?search=", token, "")

		rec, state := app.do(t, "POST", "/api/v1/transactions/selection/mode", token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "selecting", state["mode"])

		app.do(t, "POST", "/api/v1/transactions/2/click", token, "")
		_, state = app.do(t, "POST", "/api/v1/transactions/selection/3", token, "")
		assert.Equal(t, float64(2), state["count"])

		rec, _ = app.do(t, "POST", "/api/v1/transactions/selection/delete", token, "")
		assert.Equal(t, http.StatusPreconditionRequired, rec.Code)

		rec, result := app.do(t, "POST", "/api/v1/transactions/selection/delete?confirm=true", token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(2), result["deleted"])

		_, page := app.do(t, "GET", "/api/v1/transactions", token, "")
		assert.Equal(t, float64(5), page["total_records"])
		assert.Equal(t, "browsing", page["mode"])
		assert.NotContains(t, ids(t, page), "2")
	})

	t.Run("create and delete", func(t *testing.T) {
		rec, result := app.do(t, "POST", "/api/v1/transactions", token,
			`{"type":"expense","amount":"45.50","description":"Dinner","category":"Dining","payment_method":"Card","date":"2025-01-20"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		id := result["transaction"].(map[string]any)["id"].(string)

		_, cats := app.do(t, "GET", "/api/v1/transactions/categories", token, "")
		assert.Contains(t, cats["categories"], "Dining")

		rec, _ = app.do(t, "DELETE", "/api/v1/transactions/"+id+"?confirm=true", token, "")
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, _ = app.do(t, "GET", "/api/v1/transactions/"+id, token, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("export", func(t *testing.T) {
		rec, _ := app.do(t, "GET", "/api/v1/transactions/export?format=csv", token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
		assert.Contains(t, rec.Body.String(), "Monthly Salary")
	})
}

func TestDashboardAndBudgets(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	rec, summary := app.do(t, "GET", "/api/v1/dashboard/summary?month=2025-01", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(4200), summary["total_income"])
	assert.Equal(t, float64(1810), summary["total_expenses"])
	assert.Equal(t, float64(2390), summary["total_balance"])

	rec, weekly := app.do(t, "GET", "/api/v1/dashboard/weekly?week_start=2025-01-12", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, weekly["days"], 7)

	rec, budgets := app.do(t, "GET", "/api/v1/budgets", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(6), budgets["total_items"])

	rec, _ = app.do(t, "POST", "/api/v1/budgets", token, `{"category":"Travel","allocated":"800"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = app.do(t, "POST", "/api/v1/budgets", token, `{"category":"Moon","allocated":"1e400"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec, budgets = app.do(t, "GET", "/api/v1/budgets", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(7), budgets["total_items"])

	rec, _ = app.do(t, "GET", "/api/v1/budgets/summary", token, "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
