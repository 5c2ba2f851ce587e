package main

import (
	"context"
	"encoding/hex"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"claimbridge-service/internal/app/config"
	"claimbridge-service/internal/app/delivery/http/controllers"
	"claimbridge-service/internal/app/delivery/http/middlewares"
	"claimbridge-service/internal/app/delivery/http/routers"
	"claimbridge-service/internal/app/drivers/database"
	"claimbridge-service/internal/app/drivers/logger"
	"claimbridge-service/internal/app/services/bluebutton"
	"claimbridge-service/internal/app/services/core/auth"
	"claimbridge-service/internal/app/services/core/claims"
	"claimbridge-service/internal/app/services/core/clinics"
	"claimbridge-service/internal/app/services/core/codes"
	"claimbridge-service/internal/app/services/core/consents"
	"claimbridge-service/internal/app/services/core/patients"
	"claimbridge-service/internal/app/services/nih"
	"claimbridge-service/internal/app/services/shared/locker"
	"claimbridge-service/internal/app/services/shared/redis"
	"claimbridge-service/internal/app/services/shared/vault"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootstrapLog := logger.NewLogrusLogger(internalConfig)

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		Mongo:          mongoClient,
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	if err := bootstrapTheApp(bootstrap); err != nil {
		bootstrapLog.Fatalf("Failed to bootstrap the app: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		bootstrapLog.Infof("Server listening on %s", internalConfig.App.Port)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootstrapLog.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		bootstrapLog.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		bootstrapLog.Errorf("Error closing app resources: %v", err)
	}

	bootstrapLog.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap) error {
	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)

	encryptionKey, err := hex.DecodeString(bootstrap.InternalConfig.Vault.EncryptionKeyHex)
	if err != nil {
		return err
	}
	vaultService, err := vault.NewVaultService(encryptionKey)
	if err != nil {
		return err
	}

	// Middlewares
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.Logger, redisRepository, bootstrap.InternalConfig)

	// Provider clients
	blueButtonConfig := bootstrap.InternalConfig.BlueButton
	tokenClient := bluebutton.NewTokenClient(blueButtonConfig, bootstrap.Logger)
	eobFhirClient := bluebutton.NewEobFhirClient(blueButtonConfig.APIBaseURL, bootstrap.Logger)
	patientFhirClient := bluebutton.NewPatientFhirClient(blueButtonConfig.APIBaseURL, bootstrap.Logger)
	coverageFhirClient := bluebutton.NewCoverageFhirClient(blueButtonConfig.APIBaseURL, bootstrap.Logger)
	codeLookupClient := nih.NewCodeLookupClient(bootstrap.InternalConfig.CodeLookup.BaseURL, bootstrap.Logger)

	// Repositories
	dbName := bootstrap.DriverConfig.MongoDB.DbName
	clinicRepository := clinics.NewClinicMongoRepository(bootstrap.Mongo, dbName)
	patientRepository := patients.NewPatientMongoRepository(bootstrap.Mongo, dbName)
	consentRepository := consents.NewConsentMongoRepository(bootstrap.Mongo, dbName)

	// Usecases
	clinicUsecase := clinics.NewClinicUsecase(clinicRepository, redisRepository, bootstrap.InternalConfig, bootstrap.Logger)
	authUsecase := auth.NewAuthUsecase(consentRepository, redisRepository, lockerService, vaultService, tokenClient, blueButtonConfig, bootstrap.Logger)
	patientUsecase := patients.NewPatientUsecase(patientRepository, consentRepository, authUsecase, patientFhirClient, bootstrap.Logger)
	claimsUsecase := claims.NewClaimsUsecase(consentRepository, authUsecase, eobFhirClient, coverageFhirClient, bootstrap.Logger)
	codeUsecase := codes.NewCodeUsecase(redisRepository, codeLookupClient, bootstrap.Logger)

	// Controllers
	clinicController := controllers.NewClinicController(bootstrap.Logger, clinicUsecase)
	authController := controllers.NewAuthController(bootstrap.Logger, authUsecase, blueButtonConfig)
	patientController := controllers.NewPatientController(bootstrap.Logger, patientUsecase)
	claimsController := controllers.NewClaimsController(bootstrap.Logger, claimsUsecase)
	codeController := controllers.NewCodeController(bootstrap.Logger, codeUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		clinicController,
		authController,
		patientController,
		claimsController,
		codeController,
	)

	return nil
}
