package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rkaushal27/stargaze-booking/internal/admin"
	"github.com/rkaushal27/stargaze-booking/internal/appointments"
	"github.com/rkaushal27/stargaze-booking/internal/availability"
	"github.com/rkaushal27/stargaze-booking/internal/blocking"
	"github.com/rkaushal27/stargaze-booking/pkg/logging"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.Default()

	apptRepo := appointments.NewInMemoryRepository()
	blockRepo := blocking.NewInMemoryRepository()
	apptService := appointments.NewService(apptRepo, logger)
	blockService := blocking.NewService(blockRepo, logger)
	availService := availability.NewService(apptRepo, blockRepo)

	return New(&Config{
		Logger:              logger,
		AvailabilityHandler: availability.NewHandler(availService, logger),
		AppointmentsHandler: appointments.NewHandler(apptService, logger),
		BlockingHandler:     blocking.NewHandler(blockService, logger),
		AdminHandler:        admin.NewHandler("hunter2", "jwt-secret", time.Hour, logger),
		AdminAuthSecret:     "jwt-secret",
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAvailableSlotsRoute(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/available-slots?date=2025-06-01", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/appointments"},
		{http.MethodGet, "/admin/blocked-slots"},
		{http.MethodPost, "/admin/blocked-slots"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestAdminLoginThenListAppointments(t *testing.T) {
	r := newTestRouter(t)

	login := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"hunter2"}`))
	loginRec := httptest.NewRecorder()
	r.ServeHTTP(loginRec, login)
	if loginRec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", loginRec.Code)
	}
	body := loginRec.Body.String()
	start := strings.Index(body, `"token":"`)
	if start < 0 {
		t.Fatalf("no token in %s", body)
	}
	token := body[start+len(`"token":"`):]
	token = token[:strings.Index(token, `"`)]

	req := httptest.NewRequest(http.MethodGet, "/admin/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}
