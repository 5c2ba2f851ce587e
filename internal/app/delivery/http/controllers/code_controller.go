package controllers

import (
	"context"
	"net/http"
	"time"

	"claimbridge-service/internal/app/contracts"
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/exceptions"
	"claimbridge-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CodeController struct {
	Log         *zap.Logger
	CodeUsecase contracts.CodeUsecase
}

func NewCodeController(logger *zap.Logger, codeUsecase contracts.CodeUsecase) *CodeController {
	return &CodeController{
		Log:         logger,
		CodeUsecase: codeUsecase,
	}
}

func (ctrl *CodeController) FindDescriptionByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, constvars.URLParamCode)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.CodeUsecase.GetCodeDescription(ctx, code)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCodeDescriptionSuccess, result)
}
