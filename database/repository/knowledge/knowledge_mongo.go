package knowledgeRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"zapagenda/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type knowledgeEntry struct {
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoKnowledgeRepo implements KnowledgeRepository using MongoDB.
type MongoKnowledgeRepo struct {
	coll *mongo.Collection
}

// NewMongoKnowledgeRepo constructs a new instance of MongoKnowledgeRepo.
func NewMongoKnowledgeRepo() KnowledgeRepository {
	db := database.MongoClient.Database("zapagenda")
	return &MongoKnowledgeRepo{coll: db.Collection("knowledge")}
}

// Get retrieves the value stored under key.
func (repo *MongoKnowledgeRepo) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var entry knowledgeEntry
	err := repo.coll.FindOne(ctx, bson.M{"key": strings.ToLower(key)}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("error fetching knowledge entry %s: %w", key, err)
	}
	return entry.Value, nil
}

// Set creates or replaces the value stored under key. Keys are
// lowercased, matching the lookups done at prompt-build time.
func (repo *MongoKnowledgeRepo) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	key = strings.ToLower(strings.TrimSpace(key))
	update := bson.M{"$set": bson.M{"value": value, "updated_at": time.Now()}}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctx, bson.M{"key": key}, update, opts); err != nil {
		return fmt.Errorf("error saving knowledge entry %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry stored under key.
func (repo *MongoKnowledgeRepo) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"key": strings.ToLower(key)})
	if err != nil {
		return fmt.Errorf("error deleting knowledge entry %s: %w", key, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// All returns every entry as a flat map.
func (repo *MongoKnowledgeRepo) All(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing knowledge entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make(map[string]string)
	for cursor.Next(ctx) {
		var entry knowledgeEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, fmt.Errorf("error decoding knowledge entry: %w", err)
		}
		entries[entry.Key] = entry.Value
	}
	return entries, cursor.Err()
}
