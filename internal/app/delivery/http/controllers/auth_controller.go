package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"claimbridge-service/internal/app/config"
	"claimbridge-service/internal/app/contracts"
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/dto/requests"
	"claimbridge-service/internal/pkg/exceptions"
	"claimbridge-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AuthController struct {
	Log              *zap.Logger
	AuthUsecase      contracts.AuthUsecase
	BlueButtonConfig config.BlueButton
}

func NewAuthController(logger *zap.Logger, authUsecase contracts.AuthUsecase, blueButtonConfig config.BlueButton) *AuthController {
	return &AuthController{
		Log:              logger,
		AuthUsecase:      authUsecase,
		BlueButtonConfig: blueButtonConfig,
	}
}

func (ctrl *AuthController) InitiateConsent(w http.ResponseWriter, r *http.Request) {
	request := new(requests.InitiateConsentRequest)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AuthUsecase.InitiateConsent(ctx, clinicIDFromRequest(r), request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ConsentInitiatedSuccess, result)
}

// Callback lands the patient back from the provider's consent screen. It is
// unauthenticated, so outcomes are reported by redirecting the browser to
// the configured frontend pages rather than with a JSON body.
func (ctrl *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	request := &requests.ConsentCallbackRequest{
		Code:  r.URL.Query().Get(constvars.URLQueryParamCode),
		State: r.URL.Query().Get(constvars.URLQueryParamState),
	}

	if request.Code == "" || request.State == "" {
		ctrl.redirectError(w, r, exceptions.ErrOAuthStateMalformed(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	result, err := ctrl.AuthUsecase.HandleCallback(ctx, request)
	if err != nil {
		ctrl.redirectError(w, r, err)
		return
	}

	successURL, parseErr := url.Parse(ctrl.BlueButtonConfig.CallbackSuccessURL)
	if parseErr != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerProcess(parseErr))
		return
	}
	query := successURL.Query()
	query.Set("patientId", result.InternalPatientID)
	successURL.RawQuery = query.Encode()

	http.Redirect(w, r, successURL.String(), constvars.StatusFound)
}

func (ctrl *AuthController) redirectError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := utils.GetRequestID(r.Context())
	reason := "exchange_failed"

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		ctrl.Log.Error("AuthController.Callback error handling consent callback",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("reason", customErr.DevMessage),
		)
		if customErr.ClientMessage == constvars.ErrClientConsentStateInvalid {
			reason = "invalid_state"
		}
	} else {
		ctrl.Log.Error("AuthController.Callback error handling consent callback",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	errorURL, parseErr := url.Parse(ctrl.BlueButtonConfig.CallbackErrorURL)
	if parseErr != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerProcess(parseErr))
		return
	}
	query := errorURL.Query()
	query.Set("reason", reason)
	errorURL.RawQuery = query.Encode()

	http.Redirect(w, r, errorURL.String(), constvars.StatusFound)
}
