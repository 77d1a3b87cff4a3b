package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"FarmBot/entity"
)

// AuthenticateByToken resolves an API key to its owner.
func (m *MongoDB) AuthenticateByToken(token string) (*entity.ApiKey, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(apiKeysCollection)
	filter := bson.D{{Key: "key", Value: token}}

	var key entity.ApiKey
	err = collection.FindOne(m.ctx, filter).Decode(&key)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("api key not found")
		}
		return nil, m.findError(err)
	}
	return &key, nil
}

func (m *MongoDB) getKeyByName(name string) (string, error) {
	connection, err := m.connect()
	if err != nil {
		return "", err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(apiKeysCollection)
	filter := bson.D{{Key: "name", Value: name}}

	var result struct {
		Key string `bson:"key"`
	}
	err = collection.FindOne(m.ctx, filter).Decode(&result)
	if err != nil {
		return "", m.findError(err)
	}

	return result.Key, nil
}

// GenerateApiKey returns the named key, creating it on first use.
func (m *MongoDB) GenerateApiKey(name string) (string, error) {
	k, err := m.getKeyByName(name)
	if err != nil {
		return "", fmt.Errorf("failed to get existing API key: %w", err)
	}
	if k != "" {
		return k, nil
	}

	connection, err := m.connect()
	if err != nil {
		return "", err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(apiKeysCollection)
	id, err := uuid.NewUUID()
	if err != nil {
		return "", fmt.Errorf("uuid generation error: %w", err)
	}

	key := entity.ApiKey{
		Name:      name,
		Key:       id.String(),
		CreatedAt: time.Now(),
	}
	if _, err = collection.InsertOne(m.ctx, key); err != nil {
		return "", fmt.Errorf("mongodb insert error: %w", err)
	}

	return key.Key, nil
}
