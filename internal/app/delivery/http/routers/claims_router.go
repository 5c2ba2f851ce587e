package routers

import (
	"claimbridge-service/internal/app/delivery/http/controllers"
	"claimbridge-service/internal/app/delivery/http/middlewares"
	"claimbridge-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachEobRoutes(router chi.Router, middlewares *middlewares.Middlewares, claimsController *controllers.ClaimsController) {
	router.Use(middlewares.Authenticate)
	router.Get("/{"+constvars.URLParamPatientID+"}", claimsController.FindClaimsByPatientID)
}

func attachCoverageRoutes(router chi.Router, middlewares *middlewares.Middlewares, claimsController *controllers.ClaimsController) {
	router.Use(middlewares.Authenticate)
	router.Get("/{"+constvars.URLParamPatientID+"}", claimsController.FindCoverageByPatientID)
}
