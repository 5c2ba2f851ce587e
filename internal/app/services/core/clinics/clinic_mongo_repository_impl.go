package clinics

import (
	"context"

	"claimbridge-service/internal/app/contracts"
	"claimbridge-service/internal/app/models"
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ClinicMongoRepository struct {
	Collection *mongo.Collection
}

func NewClinicMongoRepository(db *mongo.Client, dbName string) contracts.ClinicRepository {
	return &ClinicMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionClinics),
	}
}

func (r *ClinicMongoRepository) CreateClinic(ctx context.Context, clinic *models.Clinic) (*models.Clinic, error) {
	result, err := r.Collection.InsertOne(ctx, clinic)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	clinic.ID = result.InsertedID.(primitive.ObjectID)
	return clinic, nil
}

func (r *ClinicMongoRepository) FindClinicByEmail(ctx context.Context, email string) (*models.Clinic, error) {
	var clinic models.Clinic
	err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&clinic)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &clinic, nil
}

func (r *ClinicMongoRepository) FindClinicByID(ctx context.Context, clinicID string) (*models.Clinic, error) {
	objectID, err := primitive.ObjectIDFromHex(clinicID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var clinic models.Clinic
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&clinic)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &clinic, nil
}
