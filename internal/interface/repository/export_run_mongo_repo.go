package repository

import (
	"context"
	"fmt"

	"chatspace-exporter/internal/domain/entity"
	"chatspace-exporter/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoExportRunRepository implements the ExportRunRepository interface
type MongoExportRunRepository struct {
	collection *mongo.Collection
}

// NewMongoExportRunRepository creates a new MongoDB export run repository
func NewMongoExportRunRepository(ctx context.Context, db *mongo.Database) (repository.ExportRunRepository, error) {
	collection := db.Collection("exportRuns")

	// Index on startedAt for newest-first listing
	startedAtIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "startedAt", Value: -1}},
	}

	// Index on actor for per-user history
	actorIndex := mongo.IndexModel{
		Keys: bson.M{"actor": 1},
	}

	if _, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{startedAtIndex, actorIndex}); err != nil {
		return nil, fmt.Errorf("failed to create export run indexes: %w", err)
	}

	return &MongoExportRunRepository{
		collection: collection,
	}, nil
}

// Save inserts or replaces an export run
func (r *MongoExportRunRepository) Save(ctx context.Context, run *entity.ExportRun) error {
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": run.ID},
		run,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save export run: %w", err)
	}
	return nil
}

// FindRecent finds the latest export runs
func (r *MongoExportRunRepository) FindRecent(ctx context.Context, limit int) ([]*entity.ExportRun, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []*entity.ExportRun
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}

	return runs, nil
}
