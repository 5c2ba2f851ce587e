package routers

import (
	"claimbridge-service/internal/app/delivery/http/controllers"
	"claimbridge-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	router.With(middlewares.Authenticate).Post("/initiate", authController.InitiateConsent)
	// the provider redirects the patient's browser here, no session exists
	router.Get("/callback", authController.Callback)
}
