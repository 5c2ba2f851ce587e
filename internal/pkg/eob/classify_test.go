package eob

import (
	"testing"

	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func typedEob(t *testing.T, id, typeCode string) fhir_dto.BundleEntry {
	t.Helper()
	return eobEntry(t, &fhir_dto.ExplanationOfBenefit{
		ResourceType: constvars.ResourceExplanationOfBenefit,
		ID:           id,
		Type: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{
				{System: constvars.EobTypeCodingSystem, Code: typeCode},
			},
		},
	})
}

func eobEntry(t *testing.T, resource *fhir_dto.ExplanationOfBenefit) fhir_dto.BundleEntry {
	t.Helper()
	raw, err := json.Marshal(resource)
	require.NoError(t, err)
	return fhir_dto.BundleEntry{Resource: raw}
}

func TestClassify(t *testing.T) {
	classifier := NewClassifier(zap.NewNop())

	t.Run("routes each recognized type to its bucket", func(t *testing.T) {
		bundle := &fhir_dto.Bundle{
			ResourceType: constvars.ResourceBundle,
			Entry: []fhir_dto.BundleEntry{
				typedEob(t, "carrier-1", constvars.EobTypeCarrier),
				typedEob(t, "inpatient-1", constvars.EobTypeInpatient),
				typedEob(t, "outpatient-1", constvars.EobTypeOutpatient),
				typedEob(t, "pde-1", constvars.EobTypePDE),
			},
		}

		result := classifier.Classify(bundle)

		require.Len(t, result.Carrier, 1)
		require.Len(t, result.Inpatient, 1)
		require.Len(t, result.Outpatient, 1)
		require.Len(t, result.PDE, 1)
		assert.Empty(t, result.Other)
		assert.Equal(t, 4, result.TotalEntries())
		assert.Equal(t, "carrier-1", result.Carrier[0].ID)
		assert.Equal(t, "inpatient-1", result.Inpatient[0].ID)
		assert.Equal(t, "outpatient-1", result.Outpatient[0].ID)
		assert.Equal(t, "pde-1", result.PDE[0].ID)
	})

	t.Run("missing type coding lands in other untouched", func(t *testing.T) {
		entry := eobEntry(t, &fhir_dto.ExplanationOfBenefit{
			ResourceType: constvars.ResourceExplanationOfBenefit,
			ID:           "untyped-1",
		})
		bundle := &fhir_dto.Bundle{Entry: []fhir_dto.BundleEntry{entry}}

		result := classifier.Classify(bundle)

		require.Len(t, result.Other, 1)
		assert.JSONEq(t, string(entry.Resource), string(result.Other[0]))
	})

	t.Run("unrecognized type code lands in other", func(t *testing.T) {
		bundle := &fhir_dto.Bundle{Entry: []fhir_dto.BundleEntry{
			typedEob(t, "snf-1", "SNF"),
		}}

		result := classifier.Classify(bundle)

		assert.Empty(t, result.Carrier)
		require.Len(t, result.Other, 1)
	})

	t.Run("coding with a foreign system is ignored", func(t *testing.T) {
		entry := eobEntry(t, &fhir_dto.ExplanationOfBenefit{
			ResourceType: constvars.ResourceExplanationOfBenefit,
			ID:           "foreign-1",
			Type: &fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://terminology.hl7.org/CodeSystem/claim-type", Code: constvars.EobTypeCarrier},
					{System: constvars.EobTypeCodingSystem, Code: constvars.EobTypePDE},
				},
			},
		})
		bundle := &fhir_dto.Bundle{Entry: []fhir_dto.BundleEntry{entry}}

		result := classifier.Classify(bundle)

		assert.Empty(t, result.Carrier)
		require.Len(t, result.PDE, 1)
		assert.Equal(t, "foreign-1", result.PDE[0].ID)
	})

	t.Run("non eob resources land in other untouched", func(t *testing.T) {
		patient := json.RawMessage(`{"resourceType":"Patient","id":"p-1"}`)
		bundle := &fhir_dto.Bundle{Entry: []fhir_dto.BundleEntry{
			{Resource: patient},
			typedEob(t, "carrier-2", constvars.EobTypeCarrier),
		}}

		result := classifier.Classify(bundle)

		assert.Equal(t, 2, result.TotalEntries())
		require.Len(t, result.Carrier, 1)
		require.Len(t, result.Other, 1)
		assert.JSONEq(t, string(patient), string(result.Other[0]))
	})

	t.Run("undecodable entries are dropped", func(t *testing.T) {
		bundle := &fhir_dto.Bundle{Entry: []fhir_dto.BundleEntry{
			{Resource: json.RawMessage(`{"resourceType":`)},
			typedEob(t, "carrier-3", constvars.EobTypeCarrier),
		}}

		result := classifier.Classify(bundle)

		assert.Equal(t, 1, result.TotalEntries())
	})

	t.Run("nil bundle yields empty result", func(t *testing.T) {
		result := classifier.Classify(nil)
		assert.Equal(t, 0, result.TotalEntries())
	})

	t.Run("classification is deterministic", func(t *testing.T) {
		bundle := &fhir_dto.Bundle{Entry: []fhir_dto.BundleEntry{
			typedEob(t, "carrier-4", constvars.EobTypeCarrier),
			typedEob(t, "pde-2", constvars.EobTypePDE),
		}}

		first := classifier.Classify(bundle)
		second := classifier.Classify(bundle)

		assert.Equal(t, first, second)
	})
}

func TestCategorizedClaimsSparseSerialization(t *testing.T) {
	classifier := NewClassifier(zap.NewNop())
	bundle := &fhir_dto.Bundle{Entry: []fhir_dto.BundleEntry{
		typedEob(t, "carrier-5", constvars.EobTypeCarrier),
		eobEntry(t, &fhir_dto.ExplanationOfBenefit{
			ResourceType: constvars.ResourceExplanationOfBenefit,
			ID:           "untyped-2",
		}),
	}}

	result := classifier.Classify(bundle)
	serialized, err := json.Marshal(result)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(serialized, &keys))

	assert.Contains(t, keys, constvars.EobTypeCarrier)
	assert.Contains(t, keys, constvars.EobTypeOther)
	assert.NotContains(t, keys, constvars.EobTypeInpatient)
	assert.NotContains(t, keys, constvars.EobTypeOutpatient)
	assert.NotContains(t, keys, constvars.EobTypePDE)
}
