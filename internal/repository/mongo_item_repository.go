package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Niffb/Livwishlist/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoItemRepository persists items to a hosted "wishlist" collection.
type MongoItemRepository struct {
	collection *mongo.Collection
}

func NewMongoItemRepository(db *mongo.Database) *MongoItemRepository {
	return &MongoItemRepository{collection: db.Collection("wishlist")}
}

// itemDocument is the remote schema. The creation timestamp lives under
// created_at and there is no subcategory attribute; the mapping between
// this shape and models.WishlistItem is confined to this file.
type itemDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	URL       string    `bson:"url"`
	Note      string    `bson:"note,omitempty"`
	Category  string    `bson:"category"`
	Price     string    `bson:"price,omitempty"`
	Image     string    `bson:"image,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func toDocument(item *models.WishlistItem) itemDocument {
	return itemDocument{
		ID:        item.ID,
		Name:      item.Name,
		URL:       item.URL,
		Note:      item.Note,
		Category:  item.Category,
		Price:     item.Price,
		Image:     item.Image,
		CreatedAt: item.CreatedAt,
	}
}

func fromDocument(doc itemDocument) models.WishlistItem {
	return models.WishlistItem{
		ID:        doc.ID,
		Name:      doc.Name,
		URL:       doc.URL,
		Note:      doc.Note,
		Category:  doc.Category,
		Price:     doc.Price,
		Image:     doc.Image,
		CreatedAt: doc.CreatedAt,
	}
}

// translateUpdates maps API field names onto the remote schema and silently
// drops fields the table does not support.
func translateUpdates(updates map[string]interface{}) bson.M {
	translated := bson.M{}
	for key, value := range updates {
		switch key {
		case "subcategory":
			// No such column remotely
		case "createdAt":
			translated["created_at"] = value
		case "id":
			// Never rewrite the key
		default:
			translated[key] = value
		}
	}
	return translated
}

func (r *MongoItemRepository) ListItems(ctx context.Context) ([]models.WishlistItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %v", err)
	}
	defer cursor.Close(ctx)

	var items []models.WishlistItem
	for cursor.Next(ctx) {
		var doc itemDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode item: %v", err)
		}
		items = append(items, fromDocument(doc))
	}
	return items, nil
}

func (r *MongoItemRepository) CreateItem(ctx context.Context, item *models.WishlistItem) error {
	if _, err := r.collection.InsertOne(ctx, toDocument(item)); err != nil {
		return fmt.Errorf("failed to create item: %v", err)
	}
	return nil
}

func (r *MongoItemRepository) UpdateItem(ctx context.Context, id string, updates map[string]interface{}) error {
	translated := translateUpdates(updates)
	if len(translated) == 0 {
		return nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": translated})
	if err != nil {
		return fmt.Errorf("failed to update item: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *MongoItemRepository) DeleteItem(ctx context.Context, id string) (*models.WishlistItem, int, error) {
	var doc itemDocument
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, -1, ErrItemNotFound
	}
	if err != nil {
		return nil, -1, fmt.Errorf("failed to delete item: %v", err)
	}

	item := fromDocument(doc)
	return &item, -1, nil
}

// RestoreItem reinserts a deleted item. The remote table has no notion of
// position, so the index is ignored and ordering falls back to created_at.
func (r *MongoItemRepository) RestoreItem(ctx context.Context, item *models.WishlistItem, _ int) error {
	if _, err := r.collection.InsertOne(ctx, toDocument(item)); err != nil {
		return fmt.Errorf("failed to restore item: %v", err)
	}
	return nil
}

// Watch opens a change stream on the collection and signals on every remote
// insert, update or delete. Consumers reload the full list; there is no
// client-side diffing.
func (r *MongoItemRepository) Watch(ctx context.Context) (<-chan struct{}, error) {
	stream, err := r.collection.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("failed to open change stream: %v", err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			select {
			case changes <- struct{}{}:
			default:
				// A reload is already pending
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			logrus.WithError(err).Error("Change stream terminated")
		}
	}()

	return changes, nil
}
