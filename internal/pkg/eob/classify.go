package eob

import (
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type Classifier struct {
	Log *zap.Logger
}

func NewClassifier(logger *zap.Logger) *Classifier {
	return &Classifier{Log: logger}
}

// Classify partitions a searchset bundle into per-category buckets and runs
// the matching normalizer over each recognized entry. The first coding with
// the eob-type system decides the bucket; resources of another kind and
// entries without a recognized coding land in OTHER untouched. A malformed
// entry is logged and dropped, never aborting the rest of the bundle.
func (c *Classifier) Classify(bundle *fhir_dto.Bundle) *CategorizedClaims {
	result := &CategorizedClaims{}
	if bundle == nil {
		return result
	}

	for _, entry := range bundle.Entry {
		var resource fhir_dto.ExplanationOfBenefit
		if err := json.Unmarshal(entry.Resource, &resource); err != nil {
			c.Log.Warn("eob.Classify dropped undecodable entry",
				zap.Error(err),
			)
			continue
		}
		if resource.ResourceType != constvars.ResourceExplanationOfBenefit {
			result.Other = append(result.Other, entry.Resource)
			continue
		}
		if resource.Type == nil || len(resource.Type.Coding) == 0 {
			result.Other = append(result.Other, entry.Resource)
			continue
		}

		code, matched := eobTypeCode(resource.Type.Coding)
		if !matched {
			result.Other = append(result.Other, entry.Resource)
			continue
		}

		var err error
		switch code {
		case constvars.EobTypeCarrier:
			var claim *CarrierClaim
			if claim, err = NormalizeCarrier(&resource); err == nil {
				result.Carrier = append(result.Carrier, *claim)
			}
		case constvars.EobTypeInpatient:
			var claim *InpatientClaim
			if claim, err = NormalizeInpatient(&resource); err == nil {
				result.Inpatient = append(result.Inpatient, *claim)
			}
		case constvars.EobTypeOutpatient:
			var claim *OutpatientClaim
			if claim, err = NormalizeOutpatient(&resource); err == nil {
				result.Outpatient = append(result.Outpatient, *claim)
			}
		case constvars.EobTypePDE:
			var claim *PDEClaim
			if claim, err = NormalizePDE(&resource); err == nil {
				result.PDE = append(result.PDE, *claim)
			}
		}
		if err != nil {
			c.Log.Warn("eob.Classify dropped malformed entry",
				zap.String(constvars.LoggingResourceIDKey, resource.ID),
				zap.String(constvars.LoggingEobTypeKey, code),
				zap.Error(err),
			)
		}
	}

	return result
}

// eobTypeCode returns the first recognized claim-type code on the coding
// list. Later codings on the same entry are ignored once one matches.
func eobTypeCode(codings []fhir_dto.Coding) (string, bool) {
	for _, coding := range codings {
		if coding.System != constvars.EobTypeCodingSystem {
			continue
		}
		switch coding.Code {
		case constvars.EobTypeCarrier, constvars.EobTypeInpatient,
			constvars.EobTypeOutpatient, constvars.EobTypePDE:
			return coding.Code, true
		}
	}
	return constvars.EobTypeOther, false
}
