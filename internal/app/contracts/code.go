package contracts

import (
	"claimbridge-service/internal/pkg/dto/responses"
	"context"
)

type CodeUsecase interface {
	GetCodeDescription(ctx context.Context, code string) (*responses.CodeDescription, error)
}

type CodeLookupClient interface {
	LookupProcedureCode(ctx context.Context, code string) (string, error)
}
