package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chatterloop/widget/internal/domain/models"
)

// Repository defines the interface for lead storage.
type Repository interface {
	SaveLead(ctx context.Context, lead models.CapturedLead) error
	ListLeadsCapturedSince(ctx context.Context, since time.Time) ([]models.CapturedLead, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "captured_leads",
	}, nil
}

// SaveLead stores one captured lead.
func (r *MongoDBRepository) SaveLead(ctx context.Context, lead models.CapturedLead) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	_, err := collection.InsertOne(ctx, lead)
	if err != nil {
		return fmt.Errorf("failed to insert captured lead: %w", err)
	}
	return nil
}

// ListLeadsCapturedSince returns leads captured at or after the given time,
// oldest first. The export job uses it to build the daily sheet rows.
func (r *MongoDBRepository) ListLeadsCapturedSince(ctx context.Context, since time.Time) ([]models.CapturedLead, error) {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	filter := bson.M{"captured_at": bson.M{"$gte": since}}
	opts := options.Find().SetSort(bson.D{{Key: "captured_at", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query captured leads: %w", err)
	}
	defer cursor.Close(ctx)

	var leads []models.CapturedLead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("failed to decode captured leads: %w", err)
	}
	return leads, nil
}

// Database returns a handle on the repository's database so other stores
// can share the connection.
func (r *MongoDBRepository) Database() *mongo.Database {
	return r.client.Database(r.dbName)
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
