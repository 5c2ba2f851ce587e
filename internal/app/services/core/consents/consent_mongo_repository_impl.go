package consents

import (
	"context"
	"time"

	"claimbridge-service/internal/app/contracts"
	"claimbridge-service/internal/app/models"
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ConsentMongoRepository struct {
	Collection *mongo.Collection
}

func NewConsentMongoRepository(db *mongo.Client, dbName string) contracts.ConsentRepository {
	return &ConsentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionConsents),
	}
}

// UpsertConsent writes the consent keyed by (clinic_id, internal_patient_id),
// replacing any prior grant for the same pair.
func (r *ConsentMongoRepository) UpsertConsent(ctx context.Context, consent *models.Consent) (*models.Consent, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"clinic_id":           consent.ClinicID,
		"internal_patient_id": consent.InternalPatientID,
	}
	update := bson.M{
		"$set": bson.M{
			"provider_patient_id": consent.ProviderPatientID,
			"refresh_token":       consent.RefreshToken,
			"scope":               consent.Scope,
			"updated_at":          now,
		},
		"$setOnInsert": bson.M{
			"clinic_id":           consent.ClinicID,
			"internal_patient_id": consent.InternalPatientID,
			"granted_at":          now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var updated models.Consent
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &updated, nil
}

func (r *ConsentMongoRepository) FindByClinicAndPatient(ctx context.Context, clinicID, internalPatientID string) (*models.Consent, error) {
	filter := bson.M{
		"clinic_id":           clinicID,
		"internal_patient_id": internalPatientID,
	}

	var consent models.Consent
	err := r.Collection.FindOne(ctx, filter).Decode(&consent)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &consent, nil
}

// UpdateRefreshTokenCAS is the optimistic half of rotation: the envelope is
// swapped only while it still matches the one this rotation started from,
// so two racing rotations can never both persist.
func (r *ConsentMongoRepository) UpdateRefreshTokenCAS(ctx context.Context, consentID, expectedEnvelope, newEnvelope string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(consentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":           objectID,
		"refresh_token": expectedEnvelope,
	}
	update := bson.M{
		"$set": bson.M{
			"refresh_token": newEnvelope,
			"updated_at":    time.Now().UTC(),
		},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}
