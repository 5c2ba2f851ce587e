package routers

import (
	"claimbridge-service/internal/app/delivery/http/controllers"
	"claimbridge-service/internal/app/delivery/http/middlewares"
	"claimbridge-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachCodeRoutes(router chi.Router, middlewares *middlewares.Middlewares, codeController *controllers.CodeController) {
	router.With(middlewares.Authenticate).Get("/{"+constvars.URLParamCode+"}", codeController.FindDescriptionByCode)
}
