package eob

import (
	"strings"

	"claimbridge-service/internal/pkg/fhir_dto"
)

func codingPairs(concept *fhir_dto.CodeableConcept) []CodeDisplay {
	if concept == nil || len(concept.Coding) == 0 {
		return nil
	}
	pairs := make([]CodeDisplay, 0, len(concept.Coding))
	for _, coding := range concept.Coding {
		pairs = append(pairs, CodeDisplay{Code: coding.Code, Display: coding.Display})
	}
	return pairs
}

func firstCoding(concept *fhir_dto.CodeableConcept) *fhir_dto.Coding {
	if concept == nil || len(concept.Coding) == 0 {
		return nil
	}
	return &concept.Coding[0]
}

func firstDisplayOr(concept *fhir_dto.CodeableConcept, fallback string) string {
	if coding := firstCoding(concept); coding != nil && coding.Display != "" {
		return coding.Display
	}
	return fallback
}

func mapSupportingInfo(entries []fhir_dto.EobSupportingInfo) []SupportingInfoEntry {
	var mapped []SupportingInfoEntry
	for _, info := range entries {
		mapped = append(mapped, SupportingInfoEntry{
			Sequence: info.Sequence,
			Category: firstDisplayOr(info.Category, NotProvided),
			Code:     firstDisplayOr(info.Code, NotProvided),
		})
	}
	return mapped
}

func firstCode(concept *fhir_dto.CodeableConcept) string {
	if coding := firstCoding(concept); coding != nil {
		return coding.Code
	}
	return ""
}

func referenceValue(ref *fhir_dto.Reference) string {
	if ref == nil || ref.Identifier == nil {
		return ""
	}
	return ref.Identifier.Value
}

// findExtension returns the first extension matching url, scanning in order.
func findExtension(extensions []fhir_dto.Extension, url string) *fhir_dto.Extension {
	for i := range extensions {
		if extensions[i].Url == url {
			return &extensions[i]
		}
	}
	return nil
}

func extensionCoding(extensions []fhir_dto.Extension, url string) *fhir_dto.Coding {
	ext := findExtension(extensions, url)
	if ext == nil {
		return nil
	}
	return ext.ValueCoding
}

func extensionCodingCode(extensions []fhir_dto.Extension, url string) string {
	if coding := extensionCoding(extensions, url); coding != nil {
		return coding.Code
	}
	return ""
}

func extensionCodingDisplay(extensions []fhir_dto.Extension, url string) string {
	if coding := extensionCoding(extensions, url); coding != nil {
		return coding.Display
	}
	return ""
}

func extensionQuantity(extensions []fhir_dto.Extension, url string) float64 {
	ext := findExtension(extensions, url)
	if ext == nil || ext.ValueQuantity == nil {
		return 0
	}
	return ext.ValueQuantity.Value
}

func mapCareTeam(members []fhir_dto.EobCareTeam) []CareTeamMember {
	if len(members) == 0 {
		return nil
	}
	mapped := make([]CareTeamMember, 0, len(members))
	for _, member := range members {
		entry := CareTeamMember{
			Sequence:      member.Sequence,
			Name:          NotProvided,
			Role:          firstDisplayOr(member.Role, NotProvided),
			RoleCode:      firstCode(member.Role),
			Qualification: firstDisplayOr(member.Qualification, NotProvided),
		}
		if member.Provider != nil {
			if member.Provider.Display != "" {
				entry.Name = member.Provider.Display
			}
			if member.Provider.Identifier != nil {
				entry.ProviderID = member.Provider.Identifier.Value
				entry.ProviderTypes = codingPairs(member.Provider.Identifier.Type)
			}
		}
		mapped = append(mapped, entry)
	}
	return mapped
}

func mapDiagnoses(diagnoses []fhir_dto.EobDiagnosis) []Diagnosis {
	if len(diagnoses) == 0 {
		return nil
	}
	mapped := make([]Diagnosis, 0, len(diagnoses))
	for _, diagnosis := range diagnoses {
		entry := Diagnosis{
			Sequence: diagnosis.Sequence,
			Codes:    codingPairs(diagnosis.DiagnosisCodeableConcept),
		}
		if len(diagnosis.Type) > 0 {
			entry.Types = codingPairs(&diagnosis.Type[0])
		}
		mapped = append(mapped, entry)
	}
	return mapped
}

func mapProcedures(procedures []fhir_dto.EobProcedure) []Procedure {
	if len(procedures) == 0 {
		return nil
	}
	mapped := make([]Procedure, 0, len(procedures))
	for _, procedure := range procedures {
		mapped = append(mapped, Procedure{
			Sequence: procedure.Sequence,
			Date:     procedure.Date,
			Codes:    codingPairs(procedure.ProcedureCodeableConcept),
		})
	}
	return mapped
}

func mapIdentifiers(identifiers []fhir_dto.Identifier) []IdentifierInfo {
	if len(identifiers) == 0 {
		return nil
	}
	mapped := make([]IdentifierInfo, 0, len(identifiers))
	for _, identifier := range identifiers {
		mapped = append(mapped, IdentifierInfo{
			Types: codingPairs(identifier.Type),
			Value: identifier.Value,
		})
	}
	return mapped
}

func mapOrganizations(contained []fhir_dto.ContainedResource) []ContainedOrganization {
	if len(contained) == 0 {
		return nil
	}
	mapped := make([]ContainedOrganization, 0, len(contained))
	for _, resource := range contained {
		mapped = append(mapped, ContainedOrganization{
			ID:          resource.ID,
			Active:      resource.Active,
			Name:        resource.Name,
			Identifiers: resource.Identifier,
		})
	}
	return mapped
}

// diagnosisIndex and careTeamIndex build the sequence lookup tables used to
// resolve line-item sequence references. Unresolved sequences are dropped.
func diagnosisIndex(diagnoses []Diagnosis) map[int]Diagnosis {
	index := make(map[int]Diagnosis, len(diagnoses))
	for _, diagnosis := range diagnoses {
		index[diagnosis.Sequence] = diagnosis
	}
	return index
}

func careTeamIndex(members []CareTeamMember) map[int]CareTeamMember {
	index := make(map[int]CareTeamMember, len(members))
	for _, member := range members {
		index[member.Sequence] = member
	}
	return index
}

func resolveDiagnoses(sequences []int, index map[int]Diagnosis) []Diagnosis {
	var resolved []Diagnosis
	for _, sequence := range sequences {
		if diagnosis, ok := index[sequence]; ok {
			resolved = append(resolved, diagnosis)
		}
	}
	return resolved
}

func resolveCareTeam(sequences []int, index map[int]CareTeamMember) []CareTeamMember {
	var resolved []CareTeamMember
	for _, sequence := range sequences {
		if member, ok := index[sequence]; ok {
			resolved = append(resolved, member)
		}
	}
	return resolved
}

func mapAdjudications(adjudications []fhir_dto.EobAdjudication) []Adjudication {
	if len(adjudications) == 0 {
		return nil
	}
	mapped := make([]Adjudication, 0, len(adjudications))
	for _, adjudication := range adjudications {
		entry := Adjudication{
			Category: firstDisplayOr(adjudication.Category, NotProvided),
			Reason:   firstDisplayOr(adjudication.Reason, ""),
		}
		if adjudication.Amount != nil {
			entry.Amount = adjudication.Amount.Value
		}
		mapped = append(mapped, entry)
	}
	return mapped
}

func mapLineItems(items []fhir_dto.EobItem, diagnoses []Diagnosis, careTeam []CareTeamMember) []LineItem {
	if len(items) == 0 {
		return nil
	}
	diagnosisLookup := diagnosisIndex(diagnoses)
	careTeamLookup := careTeamIndex(careTeam)
	mapped := make([]LineItem, 0, len(items))
	for _, item := range items {
		entry := LineItem{
			Sequence:       item.Sequence,
			ServicedDate:   item.ServicedDate,
			ServicedPeriod: item.ServicedPeriod,
			Location:       codingPairs(item.LocationCodeableConcept),
			Diagnoses:      resolveDiagnoses(item.DiagnosisSequence, diagnosisLookup),
			CareTeam:       resolveCareTeam(item.CareTeamSequence, careTeamLookup),
			Adjudications:  mapAdjudications(item.Adjudication),
		}
		if coding := firstCoding(item.ProductOrService); coding != nil {
			entry.Service = &CodeDisplay{Code: coding.Code, Display: coding.Display}
		}
		for i := range item.Modifier {
			entry.Modifiers = append(entry.Modifiers, codingPairs(&item.Modifier[i])...)
		}
		if item.Quantity != nil {
			entry.Quantity = item.Quantity.Value
		}
		if item.LocationAddress != nil {
			entry.State = item.LocationAddress.State
		}
		mapped = append(mapped, entry)
	}
	return mapped
}

// summarizeFinancials walks every adjudication on every line item and
// buckets amounts by matching the category coding against known keyword
// substrings, case-insensitively. Unmatched categories are ignored and
// absent ones stay at zero.
func summarizeFinancials(items []fhir_dto.EobItem) Financials {
	var summary FinancialSummary
	for _, item := range items {
		for _, adjudication := range item.Adjudication {
			amount := 0.0
			if adjudication.Amount != nil {
				amount = adjudication.Amount.Value
			}
			switch {
			case adjudicationMatches(adjudication.Category, "submitted"):
				summary.SubmittedAmount += amount
			case adjudicationMatches(adjudication.Category, "eligible"):
				summary.AllowedAmount += amount
			case adjudicationMatches(adjudication.Category, "paidtoprovider"):
				summary.PaidToProvider += amount
			case adjudicationMatches(adjudication.Category, "paidtopatient"):
				summary.PaidToPatient += amount
			case adjudicationMatches(adjudication.Category, "noncovered"):
				summary.NonCoveredAmount += amount
			case adjudicationMatches(adjudication.Category, "deductible"):
				summary.DeductibleAmount += amount
			case adjudicationMatches(adjudication.Category, "coinsurance"):
				summary.CoinsuranceAmount += amount
			}
		}
	}
	summary.CoveredAmount = summary.SubmittedAmount - summary.NonCoveredAmount
	return Financials{Summary: summary}
}

// adjudicationMatches folds the category's codes and displays to lowercase
// with separators stripped before the substring test, so "Non-Covered",
// "noncovered" and "NCH Non Covered Amount" all match the same bucket.
func adjudicationMatches(category *fhir_dto.CodeableConcept, keyword string) bool {
	if category == nil {
		return false
	}
	for _, coding := range category.Coding {
		if strings.Contains(foldAdjudicationTerm(coding.Code), keyword) ||
			strings.Contains(foldAdjudicationTerm(coding.Display), keyword) {
			return true
		}
	}
	return strings.Contains(foldAdjudicationTerm(category.Text), keyword)
}

func foldAdjudicationTerm(term string) string {
	folded := strings.ToLower(term)
	folded = strings.ReplaceAll(folded, " ", "")
	folded = strings.ReplaceAll(folded, "-", "")
	folded = strings.ReplaceAll(folded, "_", "")
	return folded
}
