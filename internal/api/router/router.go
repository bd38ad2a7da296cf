package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rkaushal27/stargaze-booking/internal/admin"
	"github.com/rkaushal27/stargaze-booking/internal/appointments"
	"github.com/rkaushal27/stargaze-booking/internal/availability"
	"github.com/rkaushal27/stargaze-booking/internal/blocking"
	"github.com/rkaushal27/stargaze-booking/internal/booking"
	httpmiddleware "github.com/rkaushal27/stargaze-booking/internal/http/middleware"
	"github.com/rkaushal27/stargaze-booking/internal/payments"
	"github.com/rkaushal27/stargaze-booking/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	AvailabilityHandler *availability.Handler
	AppointmentsHandler *appointments.Handler
	BlockingHandler     *blocking.Handler
	PaymentsHandler     *payments.Handler
	BookingHandler      *booking.Handler
	AdminHandler        *admin.Handler
	AdminAuthSecret     string
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string
	RateLimitPerSecond  float64
	RateLimitBurst      int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimitPerSecond > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		public.Route("/api", func(api chi.Router) {
			if cfg.AvailabilityHandler != nil {
				api.Get("/available-slots", cfg.AvailabilityHandler.GetUnavailableSlots)
			}
			if cfg.AppointmentsHandler != nil {
				api.Post("/appointments", cfg.AppointmentsHandler.Create)
			}
			if cfg.PaymentsHandler != nil {
				api.Post("/payments/order", cfg.PaymentsHandler.CreateOrder)
				api.Post("/payments/verify", cfg.PaymentsHandler.Verify)
			}
			if cfg.BookingHandler != nil {
				api.Post("/bookings", cfg.BookingHandler.Begin)
				api.Post("/bookings/complete", cfg.BookingHandler.Complete)
				api.Post("/bookings/cancel", cfg.BookingHandler.Cancel)
			}
		})

		if cfg.AdminHandler != nil {
			public.Post("/admin/login", cfg.AdminHandler.Login)
		}
	})

	// Admin endpoints (JWT required)
	r.Group(func(protected chi.Router) {
		protected.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
		protected.Route("/admin", func(adm chi.Router) {
			if cfg.AppointmentsHandler != nil {
				adm.Get("/appointments", cfg.AppointmentsHandler.List)
			}
			if cfg.BlockingHandler != nil {
				adm.Get("/blocked-slots", cfg.BlockingHandler.List)
				adm.Post("/blocked-slots", cfg.BlockingHandler.Create)
				adm.Delete("/blocked-slots/{id}", cfg.BlockingHandler.Delete)
			}
		})
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
