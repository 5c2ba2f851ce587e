package routers

import (
	"claimbridge-service/internal/app/delivery/http/controllers"
	"claimbridge-service/internal/app/delivery/http/middlewares"
	"claimbridge-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, middlewares *middlewares.Middlewares, patientController *controllers.PatientController) {
	router.Use(middlewares.Authenticate)
	router.Post("/", patientController.Create)
	router.Get("/", patientController.FindAll)
	router.Get("/{"+constvars.URLParamPatientID+"}", patientController.FindSummaryByID)
}
