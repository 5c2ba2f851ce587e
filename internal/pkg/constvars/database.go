package constvars

const (
	MongoCollectionClinics  = "clinics"
	MongoCollectionPatients = "patients"
	MongoCollectionConsents = "consents"
)
