package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"learnd/internal/http/handlers"
	"learnd/internal/infra/geoip"
	"learnd/internal/middleware"
)

// RouterOptions carries the cross-cutting pieces the router wires in front of
// the handlers.
type RouterOptions struct {
	Logger          zerolog.Logger
	JWTSecret       string
	CORSOrigins     []string
	RateLimitPerMin int
	GeoResolver     geoip.CountryResolver
}

func NewRouter(app *handlers.App, opts RouterOptions) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.CORS(opts.CORSOrigins),
		middleware.Logger(opts.Logger),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)
	r.Post("/v1/auth/google", app.AuthGoogleVerify)

	// Everything below requires a signed token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(opts.JWTSecret))
		r.Use(middleware.Geo(opts.GeoResolver))

		r.Get("/v1/me", app.Me)
		r.Get("/v1/me/entitlements", app.Entitlements)

		r.Route("/v1/lessons", func(r chi.Router) {
			r.Get("/", app.LessonsList)
			r.Post("/", app.LessonsCreate)
			r.Route("/draft", func(r chi.Router) {
				r.Put("/", app.DraftSave)
				r.Get("/", app.DraftGet)
				r.Delete("/", app.DraftDelete)
			})
			r.Get("/{id}", app.LessonGet)
			r.Put("/{id}", app.LessonUpdate)
			r.Delete("/{id}", app.LessonDelete)
		})

		r.Route("/v1/fields", func(r chi.Router) {
			r.Get("/", app.FieldsList)
			r.Post("/", app.FieldsCreate)
			r.Delete("/{id}", app.FieldsDelete)
		})

		r.Route("/v1/templates", func(r chi.Router) {
			r.Get("/", app.TemplatesList)
			r.Post("/", app.TemplatesCreate)
			r.Delete("/{id}", app.TemplatesDelete)
		})

		r.Route("/v1/dashboard", func(r chi.Router) {
			r.Get("/summary", app.DashboardSummary)
			r.Get("/advanced", app.DashboardAdvanced)
		})

		r.Route("/v1/exports", func(r chi.Router) {
			r.Get("/lessons.csv", app.ExportLessonsCSV)
			r.Get("/lessons.pdf", app.ExportLessonsPDF)
			r.Get("/lessons.zip", app.ExportLessonsZip)
		})

		r.Post("/v1/normalize/client", app.NormalizeClient)
	})

	return r
}
