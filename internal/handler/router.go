package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appMiddleware "github.com/ahmadqo/certitrust/internal/middleware"
	"github.com/ahmadqo/certitrust/internal/response"
)

type Router struct {
	authHandler        *AuthHandler
	templateHandler    *TemplateHandler
	certificateHandler *CertificateHandler
	configHandler      *ConfigHandler
	jwtSecret          string
}

func NewRouter(
	authHandler *AuthHandler,
	templateHandler *TemplateHandler,
	certificateHandler *CertificateHandler,
	configHandler *ConfigHandler,
	jwtSecret string,
) *Router {
	return &Router{
		authHandler:        authHandler,
		templateHandler:    templateHandler,
		certificateHandler: certificateHandler,
		configHandler:      configHandler,
		jwtSecret:          jwtSecret,
	}
}

func (ro *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, "Server berjalan dengan baik", map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ── Auth (public) ────────────────────────────────
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", ro.authHandler.Login)
			r.Post("/refresh", ro.authHandler.RefreshToken)

			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.Authenticate(ro.jwtSecret))
				r.Get("/me", ro.authHandler.Me)
			})
		})

		// ── Public: verifikasi nomor sertifikat ───────────
		r.Get("/verify/{number}", ro.certificateHandler.Verify)

		// ── Protected routes ──────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.Authenticate(ro.jwtSecret))

			// User management (admin only)
			r.Route("/users", func(r chi.Router) {
				r.Use(appMiddleware.RequireRole("admin"))
				r.Post("/", ro.authHandler.Register)
			})

			// Templates
			r.Route("/templates", func(r chi.Router) {
				r.Get("/", ro.templateHandler.GetAll)
				r.Post("/", ro.templateHandler.Create)
				r.Get("/{id}", ro.templateHandler.GetByID)
				r.Put("/{id}", ro.templateHandler.Update)
				r.Delete("/{id}", ro.templateHandler.Delete)
				r.Get("/{id}/preview", ro.templateHandler.Preview)
			})

			// Certificates
			r.Route("/certificates", func(r chi.Router) {
				r.Get("/", ro.certificateHandler.GetAll)
				r.Post("/", ro.certificateHandler.Issue)
				r.Post("/recipients/parse", ro.certificateHandler.ParseRecipients)
				r.Post("/import/parse", ro.certificateHandler.ParseLegacy)
				r.Post("/import", ro.certificateHandler.Import)
				r.Get("/{id}", ro.certificateHandler.GetByID)
				r.Put("/{id}", ro.certificateHandler.Update)
				r.Delete("/{id}", ro.certificateHandler.Delete)
				r.Get("/{id}/preview", ro.certificateHandler.Preview)
				r.Get("/{id}/download", ro.certificateHandler.Download)
			})

			// Reports
			r.Route("/reports", func(r chi.Router) {
				r.Get("/events", ro.certificateHandler.ListEvents)
				r.Get("/events/{event}", ro.certificateHandler.DistributionReport)
			})

			// System config (admin only)
			r.Route("/config", func(r chi.Router) {
				r.Get("/", ro.configHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(appMiddleware.RequireRole("admin"))
					r.Put("/", ro.configHandler.Save)
				})
			})
		})
	})

	return r
}
