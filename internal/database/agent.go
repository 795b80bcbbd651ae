package repository

import (
	"ChatPulse/entity"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"time"
)

func (m *MongoDB) UpsertAgent(agent entity.Agent) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	if agent.CreatedAt.IsZero() {
		agent.CreatedAt = time.Now()
	}
	agent.Active = true

	collection := connection.Database(m.database).Collection(agentsCollection)
	filter := bson.D{{Key: "phone", Value: agent.Phone}}
	update := bson.M{"$set": agent}

	_, err = collection.UpdateOne(m.ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

func (m *MongoDB) GetAllAgents() ([]entity.Agent, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(agentsCollection)
	cursor, err := collection.Find(m.ctx, bson.D{{Key: "active", Value: true}})
	if err != nil {
		return nil, m.findError(err)
	}
	defer cursor.Close(m.ctx)

	var agents []entity.Agent
	if err = cursor.All(m.ctx, &agents); err != nil {
		return nil, fmt.Errorf("mongodb decode error: %w", err)
	}
	return agents, nil
}

// RemoveAgent deactivates the roster entry rather than deleting it, keeping
// the record around for audit.
func (m *MongoDB) RemoveAgent(phone string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(agentsCollection)
	filter := bson.D{{Key: "phone", Value: phone}}
	update := bson.M{"$set": bson.M{"active": false}}

	result, err := collection.UpdateOne(m.ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongodb update error: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("agent not found")
	}
	return nil
}
