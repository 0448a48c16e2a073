// internal/interface/repository/rc_repo.go
package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"rcverify-service/internal/domain/entity"
	"rcverify-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRcRepository implements the RcRepository interface
type MongoRcRepository struct {
	collection *mongo.Collection
}

// NewMongoRcRepository creates a new MongoDB Rc repository
func NewMongoRcRepository(db *mongo.Database) repository.RcRepository {
	collection := db.Collection("vehicles")

	ctx := context.Background()

	rcNumberIndex := mongo.IndexModel{
		Keys:    bson.M{"rcNumber": 1},
		Options: options.Index().SetUnique(true),
	}

	// Secondary indexes for the report query paths
	stateIndex := mongo.IndexModel{
		Keys: bson.M{"registrationState": 1},
	}
	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		rcNumberIndex,
		stateIndex,
		createdAtIndex,
	})

	return &MongoRcRepository{
		collection: collection,
	}
}

// FindAll returns every Rc document in the collection
func (r *MongoRcRepository) FindAll(ctx context.Context) ([]*entity.Rc, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.Rc
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID finds an Rc by its document id
func (r *MongoRcRepository) FindByID(ctx context.Context, id string) (*entity.Rc, error) {
	var rc entity.Rc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rc)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// FindByRcNumber finds an Rc by its registration number
func (r *MongoRcRepository) FindByRcNumber(ctx context.Context, rcNumber string) (*entity.Rc, error) {
	var rc entity.Rc
	err := r.collection.FindOne(ctx, bson.M{"rcNumber": rcNumber}).Decode(&rc)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// Save inserts or replaces the full document. New documents get a
// store-assigned id.
func (r *MongoRcRepository) Save(ctx context.Context, rc *entity.Rc) (*entity.Rc, error) {
	if rc.ID == "" {
		rc.ID = primitive.NewObjectID().Hex()
		_, err := r.collection.InsertOne(ctx, rc)
		if err != nil {
			return nil, fmt.Errorf("failed to insert rc: %w", err)
		}
		return rc, nil
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": rc.ID}, rc, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to save rc %s: %w", rc.ID, err)
	}
	return rc, nil
}

// DeleteByID removes the document. Deleting a missing id is not an error.
func (r *MongoRcRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// CountByChassisNumber counts documents sharing a chassis number
func (r *MongoRcRepository) CountByChassisNumber(ctx context.Context, chassisNumber string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"chassisNumber": chassisNumber})
}

// CountByEngineNumber counts documents sharing an engine number
func (r *MongoRcRepository) CountByEngineNumber(ctx context.Context, engineNumber string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"engineNumber": engineNumber})
}

// FindAllActive returns documents with an active registration
func (r *MongoRcRepository) FindAllActive(ctx context.Context) ([]*entity.Rc, error) {
	return r.find(ctx, bson.M{"registrationInfo.active": true})
}

// SearchByOwnerName matches owner names case-insensitively
func (r *MongoRcRepository) SearchByOwnerName(ctx context.Context, ownerName string) ([]*entity.Rc, error) {
	filter := bson.M{"owner.name": bson.M{
		"$regex":   regexp.QuoteMeta(ownerName),
		"$options": "i",
	}}
	return r.find(ctx, filter)
}

// FindByRegistrationState matches the state code exactly
func (r *MongoRcRepository) FindByRegistrationState(ctx context.Context, state string) ([]*entity.Rc, error) {
	return r.find(ctx, bson.M{"registrationState": state})
}

// FindByCreatedBetween returns documents created inside [from, to]
func (r *MongoRcRepository) FindByCreatedBetween(ctx context.Context, from, to time.Time) ([]*entity.Rc, error) {
	filter := bson.M{"createdAt": bson.M{
		"$gte": from,
		"$lte": to,
	}}
	return r.find(ctx, filter)
}

// FindWithExpiredInsurance returns documents whose insurance lapsed before asOf
func (r *MongoRcRepository) FindWithExpiredInsurance(ctx context.Context, asOf time.Time) ([]*entity.Rc, error) {
	return r.find(ctx, bson.M{"insurance.validTill": bson.M{"$lt": asOf}})
}

// FindWithExpiredPuc returns documents whose PUC lapsed before asOf
func (r *MongoRcRepository) FindWithExpiredPuc(ctx context.Context, asOf time.Time) ([]*entity.Rc, error) {
	return r.find(ctx, bson.M{"puc.validTill": bson.M{"$lt": asOf}})
}

// SearchByRcNumberPattern does a paged case-insensitive regex search
func (r *MongoRcRepository) SearchByRcNumberPattern(ctx context.Context, pattern string, offset, limit int) ([]*entity.Rc, int64, error) {
	filter := bson.M{"rcNumber": bson.M{
		"$regex":   regexp.QuoteMeta(pattern),
		"$options": "i",
	}}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip64 := int64(offset)
	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Skip:  &skip64,
		Limit: &limit64,
		Sort:  bson.D{{Key: "rcNumber", Value: 1}},
	})
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var records []*entity.Rc
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *MongoRcRepository) find(ctx context.Context, filter bson.M) ([]*entity.Rc, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.Rc
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
