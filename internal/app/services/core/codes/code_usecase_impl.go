package codes

import (
	"context"
	"sync"
	"time"

	"claimbridge-service/internal/app/contracts"
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type codeUsecase struct {
	RedisRepository  contracts.RedisRepository
	CodeLookupClient contracts.CodeLookupClient
	Log              *zap.Logger
}

var (
	codeUsecaseInstance contracts.CodeUsecase
	onceCodeUsecase     sync.Once
)

func NewCodeUsecase(
	redisRepository contracts.RedisRepository,
	codeLookupClient contracts.CodeLookupClient,
	logger *zap.Logger,
) contracts.CodeUsecase {
	onceCodeUsecase.Do(func() {
		codeUsecaseInstance = &codeUsecase{
			RedisRepository:  redisRepository,
			CodeLookupClient: codeLookupClient,
			Log:              logger,
		}
	})
	return codeUsecaseInstance
}

// GetCodeDescription looks up a procedure code description, serving from the
// redis cache when a previous lookup already resolved it.
func (uc *codeUsecase) GetCodeDescription(ctx context.Context, code string) (*responses.CodeDescription, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("codeUsecase.GetCodeDescription called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCodeKey, code),
	)

	cacheKey := constvars.RedisKeyCodeDescription + code
	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err != nil {
		uc.Log.Error("codeUsecase.GetCodeDescription error reading cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if cached != "" {
		// values are stored JSON-marshaled, unwrap the quoted string
		var description string
		if err := json.Unmarshal([]byte(cached), &description); err == nil && description != "" {
			uc.Log.Info("codeUsecase.GetCodeDescription cache hit",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingCodeKey, code),
			)
			return &responses.CodeDescription{Code: code, Description: description}, nil
		}
	}

	description, err := uc.CodeLookupClient.LookupProcedureCode(ctx, code)
	if err != nil {
		uc.Log.Error("codeUsecase.GetCodeDescription error looking up code",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := uc.RedisRepository.Set(ctx, cacheKey, description, constvars.CodeDescriptionCacheTTLDays*24*time.Hour); err != nil {
		uc.Log.Error("codeUsecase.GetCodeDescription error writing cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("codeUsecase.GetCodeDescription succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCodeKey, code),
	)
	return &responses.CodeDescription{Code: code, Description: description}, nil
}
