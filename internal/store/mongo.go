package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/domain"
)

// MongoStore keeps one cart document per session in the carts
// collection.
type MongoStore struct {
	collection *mongo.Collection
}

type cartDoc struct {
	SessionID string    `bson:"session_id"`
	Items     []lineDoc `bson:"items"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type lineDoc struct {
	ProductID int64 `bson:"product_id"`
	Quantity  int   `bson:"quantity"`
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection("carts")}
}

func (m *MongoStore) Load(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	var doc cartDoc
	filter := bson.M{"session_id": sessionID}
	err := m.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	lines := make([]domain.CartLine, 0, len(doc.Items))
	for _, item := range doc.Items {
		lines = append(lines, domain.CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return domain.NormalizeLines(lines), nil
}

func (m *MongoStore) Save(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	items := make([]lineDoc, 0, len(lines))
	for _, l := range lines {
		items = append(items, lineDoc{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	filter := bson.M{"session_id": sessionID}
	update := bson.M{"$set": cartDoc{
		SessionID: sessionID,
		Items:     items,
		UpdatedAt: time.Now(),
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, sessionID string) error {
	filter := bson.M{"session_id": sessionID}
	if _, err := m.collection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func (m *MongoStore) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60), // 90 days TTL
		},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
