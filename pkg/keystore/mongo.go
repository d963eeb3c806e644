package keystore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps each partition in its own collection, keyed by _id.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

type mongoEntry struct {
	ID      string `bson:"_id"`
	Payload []byte `bson:"payload"`
}

func NewMongoStore(uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %v", err)
	}

	return &MongoStore{client: client, db: client.Database(dbName)}, nil
}

func (s *MongoStore) Put(ctx context.Context, partition, id string, payload []byte) error {
	_, err := s.db.Collection(partition).ReplaceOne(
		ctx,
		bson.M{"_id": id},
		mongoEntry{ID: id, Payload: payload},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) PutAll(ctx context.Context, partition string, entries map[string][]byte) error {
	for id, payload := range entries {
		if err := s.Put(ctx, partition, id, payload); err != nil {
			return err
		}
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, partition, id string) ([]byte, error) {
	var entry mongoEntry
	err := s.db.Collection(partition).FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry.Payload, nil
}

func (s *MongoStore) GetAll(ctx context.Context, partition string) (map[string][]byte, error) {
	cursor, err := s.db.Collection(partition).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make(map[string][]byte)
	for cursor.Next(ctx) {
		var entry mongoEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, err
		}
		entries[entry.ID] = entry.Payload
	}
	return entries, cursor.Err()
}

func (s *MongoStore) Delete(ctx context.Context, partition, id string) error {
	_, err := s.db.Collection(partition).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoStore) Clear(ctx context.Context, partition string) error {
	return s.db.Collection(partition).Drop(ctx)
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
