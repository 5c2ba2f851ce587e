package routers

import (
	"time"

	"claimbridge-service/internal/app/config"
	"claimbridge-service/internal/app/delivery/http/controllers"
	"claimbridge-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	clinicController *controllers.ClinicController,
	authController *controllers.AuthController,
	patientController *controllers.PatientController,
	claimsController *controllers.ClaimsController,
	codeController *controllers.CodeController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{internalConfig.App.FrontendDomain},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds)*time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/clinics", func(r chi.Router) {
			attachClinicRoutes(r, middlewares, clinicController)
		})

		r.Route("/auth", func(r chi.Router) {
			attachAuthRoutes(r, middlewares, authController)
		})

		r.Route("/patients", func(r chi.Router) {
			attachPatientRoutes(r, middlewares, patientController)
		})

		r.Route("/eob", func(r chi.Router) {
			attachEobRoutes(r, middlewares, claimsController)
		})

		r.Route("/coverage", func(r chi.Router) {
			attachCoverageRoutes(r, middlewares, claimsController)
		})

		r.Route("/codes", func(r chi.Router) {
			attachCodeRoutes(r, middlewares, codeController)
		})
	})
}
