package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"claimbridge-service/internal/app/contracts"
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/exceptions"
	"claimbridge-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ClaimsController struct {
	Log           *zap.Logger
	ClaimsUsecase contracts.ClaimsUsecase
}

func NewClaimsController(logger *zap.Logger, claimsUsecase contracts.ClaimsUsecase) *ClaimsController {
	return &ClaimsController{
		Log:           logger,
		ClaimsUsecase: claimsUsecase,
	}
}

func (ctrl *ClaimsController) FindClaimsByPatientID(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	var claimTypes []string
	if typesParam := r.URL.Query().Get(constvars.URLQueryParamTypes); typesParam != "" {
		for _, claimType := range strings.Split(typesParam, ",") {
			claimType = strings.TrimSpace(claimType)
			if claimType != "" {
				claimTypes = append(claimTypes, claimType)
			}
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := ctrl.ClaimsUsecase.GetPatientClaims(ctx, clinicIDFromRequest(r), patientID, claimTypes)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetClaimsSuccess, result)
}

func (ctrl *ClaimsController) FindCoverageByPatientID(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	result, err := ctrl.ClaimsUsecase.GetPatientCoverage(ctx, clinicIDFromRequest(r), patientID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCoverageSuccess, result)
}
