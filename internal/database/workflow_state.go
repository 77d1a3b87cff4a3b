package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"FarmBot/bot/workflow"
)

// SaveWorkflowState persists a user's workflow state.
func (m *MongoDB) SaveWorkflowState(ctx context.Context, state *workflow.UserState) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(workflowStatesCollection)

	state.UpdatedAt = time.Now()

	filter := bson.D{{Key: "user_id", Value: state.UserID}}
	update := bson.D{{Key: "$set", Value: state}}
	opts := options.Update().SetUpsert(true)

	_, err = collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return err
	}

	return nil
}

// LoadWorkflowState retrieves a user's workflow state.
func (m *MongoDB) LoadWorkflowState(ctx context.Context, userID int64) (*workflow.UserState, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(workflowStatesCollection)

	filter := bson.D{{Key: "user_id", Value: userID}}

	var state workflow.UserState
	err = collection.FindOne(ctx, filter).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &state, nil
}

// DeleteWorkflowState removes a user's workflow state.
func (m *MongoDB) DeleteWorkflowState(ctx context.Context, userID int64) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(workflowStatesCollection)

	filter := bson.D{{Key: "user_id", Value: userID}}
	_, err = collection.DeleteOne(ctx, filter)
	return err
}

// WorkflowStateExists checks if a user has a saved state.
func (m *MongoDB) WorkflowStateExists(ctx context.Context, userID int64) (bool, error) {
	connection, err := m.connect()
	if err != nil {
		return false, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(workflowStatesCollection)

	filter := bson.D{{Key: "user_id", Value: userID}}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
