package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"carteirab3/internal/api/handlers"
	custommiddleware "carteirab3/internal/api/middleware"
	"carteirab3/internal/config"
	"carteirab3/internal/service"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	System    *service.SystemService
	Auth      *service.AuthService
	Import    *service.ImportService
	Review    *service.ReviewService
	Dashboard *service.DashboardService
	Categoria *service.CategoriaService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public namespaces
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		authHandler := handlers.NewAuthHandler(svc.Auth)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		// Everything below requires a valid session
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.SessionAuth(svc.Auth))

			r.Route("/imports", func(r chi.Router) {
				importHandler := handlers.NewImportHandler(svc.Import)
				r.Post("/portfolio", importHandler.Portfolio)
				r.Post("/proventos", importHandler.Proventos)
				r.Post("/movimentacoes", importHandler.Movimentacoes)
			})

			r.Route("/reviews", func(r chi.Router) {
				reviewHandler := handlers.NewReviewHandler(svc.Review)
				r.Get("/portfolio", reviewHandler.Portfolio)
				r.Get("/portfolio/dates", reviewHandler.PortfolioDates)
				r.Delete("/portfolio", reviewHandler.DeletePortfolio)
				r.Get("/proventos", reviewHandler.Proventos)
				r.Delete("/proventos", reviewHandler.DeleteProvento)
				r.Get("/movimentacoes", reviewHandler.Movimentacoes)
				r.Delete("/movimentacoes", reviewHandler.DeleteMovimentacao)
			})

			dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/portfolio-evolution", dashboardHandler.PortfolioEvolution)
				r.Get("/portfolio-by-asset-type", dashboardHandler.PortfolioByAssetType)
			})
			r.Get("/proventos/chart", dashboardHandler.ProventosChart)

			r.Route("/categorias", func(r chi.Router) {
				categoriaHandler := handlers.NewCategoriaHandler(svc.Categoria)
				r.Get("/", categoriaHandler.List)
				r.Post("/", categoriaHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Put("/", categoriaHandler.Update)
					r.Delete("/", categoriaHandler.Delete)
				})
			})
		})
	})

	return r
}
