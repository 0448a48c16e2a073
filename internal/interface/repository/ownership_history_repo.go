package repository

import (
	"context"
	"fmt"

	"rcverify-service/internal/domain/entity"
	"rcverify-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOwnershipHistoryRepository implements OwnershipHistoryRepository
type MongoOwnershipHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoOwnershipHistoryRepository creates a new ownership history repository
func NewMongoOwnershipHistoryRepository(db *mongo.Database) repository.OwnershipHistoryRepository {
	collection := db.Collection("ownership_history")

	ctx := context.Background()
	rcIDIndex := mongo.IndexModel{
		Keys: bson.M{"rcId": 1},
	}
	rcNumberIndex := mongo.IndexModel{
		Keys: bson.M{"rcNumber": 1},
	}
	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{rcIDIndex, rcNumberIndex})

	return &MongoOwnershipHistoryRepository{
		collection: collection,
	}
}

// Save appends one audit entry. Entries are insert-only.
func (r *MongoOwnershipHistoryRepository) Save(ctx context.Context, h *entity.OwnershipHistory) (*entity.OwnershipHistory, error) {
	if h.ID == "" {
		h.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("failed to append ownership history: %w", err)
	}
	return h, nil
}

// FindByRcID returns the audit trail for an Rc, newest transfer first
func (r *MongoOwnershipHistoryRepository) FindByRcID(ctx context.Context, rcID string) ([]*entity.OwnershipHistory, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"rcId": rcID}, &options.FindOptions{
		Sort: bson.D{{Key: "transferredAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*entity.OwnershipHistory
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
