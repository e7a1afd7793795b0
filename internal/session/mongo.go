package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/chatterloop/widget/internal/domain/models"
)

// MongoStore persists identities in a MongoDB collection so multiple engine
// instances can share them.
type MongoStore struct {
	coll   *mongo.Collection
	logger *zap.Logger
	now    func() time.Time
}

type identityDocument struct {
	Key        string    `bson:"_id"`
	ChatbotID  string    `bson:"chatbot_id"`
	Name       string    `bson:"name"`
	Phone      string    `bson:"phone"`
	CapturedAt time.Time `bson:"captured_at"`
}

// NewMongoStore wraps the given collection as a Store.
func NewMongoStore(coll *mongo.Collection, logger *zap.Logger) *MongoStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoStore{coll: coll, logger: logger, now: time.Now}
}

// Save upserts the identity document for the chatbot/visitor pair.
func (s *MongoStore) Save(ctx context.Context, chatbotID, visitorID string, details models.UserDetails) error {
	doc := identityDocument{
		Key:        Key(chatbotID, visitorID),
		ChatbotID:  chatbotID,
		Name:       details.Name,
		Phone:      details.Phone,
		CapturedAt: details.CapturedAt,
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, opts); err != nil {
		return fmt.Errorf("save user details: %w", err)
	}
	return nil
}

// Load fetches the identity, deleting and hiding it when expired or
// undecodable.
func (s *MongoStore) Load(ctx context.Context, chatbotID, visitorID string) (*models.UserDetails, error) {
	key := Key(chatbotID, visitorID)

	var doc identityDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		// Undecodable documents are treated as absent and removed.
		s.logger.Warn("dropping unreadable identity document", zap.String("key", key), zap.Error(err))
		_, _ = s.coll.DeleteOne(ctx, bson.M{"_id": key})
		return nil, nil
	}

	details := models.UserDetails{Name: doc.Name, Phone: doc.Phone, CapturedAt: doc.CapturedAt}
	if details.ExpiredAt(s.now()) {
		if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
			s.logger.Warn("failed deleting expired identity", zap.String("key", key), zap.Error(err))
		}
		return nil, nil
	}

	return &details, nil
}

// Clear removes the identity document.
func (s *MongoStore) Clear(ctx context.Context, chatbotID, visitorID string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": Key(chatbotID, visitorID)}); err != nil {
		return fmt.Errorf("clear user details: %w", err)
	}
	return nil
}

// SweepExpired removes every identity older than the TTL.
func (s *MongoStore) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-models.UserDetailsTTL)
	res, err := s.coll.DeleteMany(ctx, bson.M{"captured_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("sweep expired identities: %w", err)
	}
	return int(res.DeletedCount), nil
}
