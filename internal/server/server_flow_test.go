package server

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/nfrund/cyberwatch/internal/database"
	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/nfrund/cyberwatch/internal/testutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerOn(t, afero.NewMemMapFs())
}

func newTestServerOn(t *testing.T, fs afero.Fs) *Server {
	t.Helper()

	s, err := New(testutils.ConfigForTests(t), slog.Default(), fs)
	require.NoError(t, err)
	s.RegisterRoutes()
	t.Cleanup(func() { s.close(context.Background()) })

	testutils.CreateUser(t, s.UserStore(), "analyst@example.com", "s3cret", "Ana Lista", true)
	testutils.CreateUser(t, s.UserStore(), "former@example.com", "s3cret", "Ex Empleado", false)
	return s
}

func postLogin(s *Server, email, pw string) *httptest.ResponseRecorder {
	form := url.Values{"email": {email}, "password": {pw}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, req)
	return rec
}

func get(s *Server, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, req)
	return rec
}

func TestServer_RootRedirectsToLogin(t *testing.T) {
	s := newTestServer(t)

	rec := get(s, "/", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	rec := get(s, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_LoginPageHidesLabels(t *testing.T) {
	s := newTestServer(t)

	rec := get(s, "/login", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="login-form"`)
	assert.Contains(t, body, `<span id="email-error" class="hidden text-red-600 text-sm"></span>`)
	assert.Contains(t, body, `<span id="password-error" class="hidden text-red-600 text-sm"></span>`)
	assert.Contains(t, body, `/static/js/login.js`)
}

func TestServer_LoginBlankFieldsShowsLabels(t *testing.T) {
	s := newTestServer(t)

	rec := postLogin(s, "   ", "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<span id="email-error" class="text-red-600 text-sm">Email requerido</span>`)
	assert.Contains(t, body, `<span id="password-error" class="text-red-600 text-sm">Contraseña requerida</span>`)
}

func TestServer_LoginWrongPassword(t *testing.T) {
	s := newTestServer(t)

	rec := postLogin(s, "analyst@example.com", "nope")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Credenciales inválidas")
}

func TestServer_LoginInactiveUser(t *testing.T) {
	s := newTestServer(t)

	rec := postLogin(s, "former@example.com", "s3cret")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Credenciales inválidas")
}

func TestServer_LoginFlow(t *testing.T) {
	s := newTestServer(t)

	rec := postLogin(s, "Analyst@Example.com", "s3cret")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	dash := get(s, "/dashboard", cookies)
	require.Equal(t, http.StatusOK, dash.Code)
	assert.Contains(t, dash.Body.String(), "Bienvenido, Ana Lista")

	again := get(s, "/login", cookies)
	assert.Equal(t, http.StatusFound, again.Code)
	assert.Equal(t, "/dashboard", again.Header().Get("Location"))

	out := get(s, "/logout", cookies)
	assert.Equal(t, http.StatusFound, out.Code)
	assert.Equal(t, "/login", out.Header().Get("Location"))
}

func TestServer_DashboardShowsIncidentKPIs(t *testing.T) {
	fs := afero.NewMemMapFs()
	incidents := database.NewFileIncidentStore(fs, testutils.ConfigForTests(t).IncidentsFile)
	recent := time.Now().UTC().Add(-30 * time.Minute)
	for _, inc := range []domain.Incident{
		{Code: "INC-2025-0001", Title: "Ransomware en servidor", Severity: domain.SeverityCritical, Status: domain.StatusOpen, Source: "EDR", DetectedAt: domain.NewDateTime(recent)},
		{Code: "INC-2025-0002", Title: "Escaneo externo", Severity: domain.SeverityMedium, Status: domain.StatusInvestigating, Source: "IDS", DetectedAt: domain.NewDateTime(recent)},
		{Code: "INC-2025-0003", Title: "Phishing", Severity: domain.SeverityLow, Status: domain.StatusClosed, Source: "Email Gateway",
			DetectedAt: domain.NewDateTime(recent.Add(-4 * time.Hour)), UpdatedAt: domain.NewDateTime(recent.Add(-time.Hour))},
	} {
		_, err := incidents.Create(context.Background(), &inc)
		require.NoError(t, err)
	}
	s := newTestServerOn(t, fs)

	login := postLogin(s, "analyst@example.com", "s3cret")
	require.Equal(t, http.StatusFound, login.Code)
	rec := get(s, "/dashboard", login.Result().Cookies())

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="kpi-open"`)
	assert.Contains(t, body, "Severidad (2 activos)")
	assert.Contains(t, body, "3h")
	assert.Contains(t, body, "Ransomware en servidor")
}

func TestServer_DashboardRequiresSession(t *testing.T) {
	s := newTestServer(t)

	rec := get(s, "/dashboard", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/session", nil)
	req.Header.Set("HX-Request", "true")
	hx := httptest.NewRecorder()
	s.E.ServeHTTP(hx, req)
	assert.Equal(t, http.StatusOK, hx.Code)
	assert.Equal(t, "/login", hx.Header().Get("HX-Redirect"))
}

func TestServer_ServesLoginScript(t *testing.T) {
	s := newTestServer(t)

	rec := get(s, "/static/js/login.js", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "email-error")
}
