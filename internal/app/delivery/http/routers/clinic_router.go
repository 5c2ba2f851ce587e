package routers

import (
	"claimbridge-service/internal/app/delivery/http/controllers"
	"claimbridge-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachClinicRoutes(router chi.Router, middlewares *middlewares.Middlewares, clinicController *controllers.ClinicController) {
	router.Post("/signup", clinicController.Signup)
	router.Post("/login", clinicController.Login)
	router.With(middlewares.Authenticate).Post("/logout", clinicController.Logout)
}
