package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	tokenAuth *jwtauth.JWTAuth,
	awardHandler AwardHandler,
	mappingHandler MappingHandler,
	payPeriodHandler PayPeriodHandler,
	exportHandler ExportHandler,
	shiftHandler ShiftHandler,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// All routes require a verified access token.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Route("/award-rates", func(r chi.Router) {
				r.Get("/", awardHandler.List)
				r.Get("/current", awardHandler.GetCurrent)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", awardHandler.Create)
				})
			})

			r.Route("/payroll-mappings", func(r chi.Router) {
				r.Get("/", mappingHandler.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", mappingHandler.Create)
					r.Put("/{id}", mappingHandler.Update)
					r.Delete("/{id}", mappingHandler.Delete)
				})
			})

			r.Route("/pay-periods", func(r chi.Router) {
				r.Post("/", payPeriodHandler.Create)
				r.Get("/", payPeriodHandler.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payPeriodHandler.GetByID)
					r.Post("/close", payPeriodHandler.Close)
					r.Get("/export/validate", exportHandler.Validate)
					r.Post("/export", exportHandler.Generate)
					r.Get("/exports", exportHandler.ListByPeriod)
				})
			})

			r.Route("/exports/{id}", func(r chi.Router) {
				r.Post("/void", exportHandler.Void)
				r.Get("/download", exportHandler.Download)
			})

			r.Post("/timesheets/{id}/unlock", exportHandler.UnlockTimesheet)
			r.Post("/shifts/preview", shiftHandler.Preview)
		})
	})
	return r
}
