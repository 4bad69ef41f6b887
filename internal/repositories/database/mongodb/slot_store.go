// Package mongodb stores each slot as one document keyed by slot name.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
)

const collectionName = "record_slots"

type slotDocument struct {
	Slot      string    `bson:"_id"`
	Payload   []byte    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// SlotStore keeps slots in the record_slots collection.
type SlotStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ portsrepo.SlotStore = (*SlotStore)(nil)

// NewSlotStore connects to uri and pings the deployment.
func NewSlotStore(ctx context.Context, uri, dbName string) (*SlotStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return &SlotStore{
		client: client,
		coll:   client.Database(dbName).Collection(collectionName),
	}, nil
}

func (s *SlotStore) Load(ctx context.Context, slot string) ([]byte, error) {
	var doc slotDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": slot}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrSlotAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find slot %s: %w", slot, err)
	}
	return doc.Payload, nil
}

func (s *SlotStore) Save(ctx context.Context, slot string, payload []byte) error {
	doc := slotDocument{Slot: slot, Payload: payload, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": slot}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to replace slot %s: %w", slot, err)
	}
	return nil
}

func (s *SlotStore) Delete(ctx context.Context, slot string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": slot}); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", slot, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (s *SlotStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
