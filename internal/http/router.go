package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	internalauth "github.com/alan-vieira/controle-familiar/internal/auth"
	authHandler "github.com/alan-vieira/controle-familiar/internal/http/auth"
	"github.com/alan-vieira/controle-familiar/internal/http/categorize"
	"github.com/alan-vieira/controle-familiar/internal/http/expense"
	"github.com/alan-vieira/controle-familiar/internal/http/importcsv"
	"github.com/alan-vieira/controle-familiar/internal/http/income"
	authMiddleware "github.com/alan-vieira/controle-familiar/internal/http/middleware"
	"github.com/alan-vieira/controle-familiar/internal/http/participant"
	"github.com/alan-vieira/controle-familiar/internal/http/settlement"
)

func New(
	tokens *internalauth.JWTManager,
	authV1 *authHandler.Handler,
	participantsV1 *participant.Handler,
	expensesV1 *expense.Handler,
	incomesV1 *income.Handler,
	settlementV1 *settlement.Handler,
	importV1 *importcsv.Handler,
	categorizeV1 *categorize.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		// Everything below needs a session.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth(tokens))

			r.Route("/colaboradores", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				participantsV1.Routes(r)
			})

			r.Route("/despesas", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				expensesV1.Routes(r)
			})

			r.Route("/rendas", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				incomesV1.Routes(r)
			})

			r.Route("/resumo", settlementV1.ReportRoutes)
			r.Route("/divisao", settlementV1.StatusRoutes)

			r.Route("/import", importV1.Routes)

			r.Route("/categorias/mapeamentos", func(r chi.Router) {
				categorizeV1.Routes(r)
			})
		})
	})

	return router
}
