package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ukydev/fleet-lifecycle/internal/models"
)

// MissionCollection defines the interface for mission operations. Expenses
// are embedded in the mission document; the mission owns them exclusively.
type MissionCollection interface {
	InsertMission(ctx context.Context, mission models.Mission) error
	FindMissionByID(ctx context.Context, id string) (*models.Mission, error)
	FindMissions(ctx context.Context, filter bson.M) ([]models.Mission, error)
	FindMissionsByStatus(ctx context.Context, status models.MissionStatus) ([]models.Mission, error)
	UpdateMission(ctx context.Context, id string, mission models.Mission) error
	DeleteMission(ctx context.Context, id string) error
}

// MongoMissionCollection implements MissionCollection for MongoDB.
type MongoMissionCollection struct {
	Collection *mongo.Collection
}

// InsertMission inserts a mission with its embedded expenses.
func (c *MongoMissionCollection) InsertMission(ctx context.Context, mission models.Mission) error {
	if err := mission.Validate(); err != nil {
		return err
	}
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	mission.CreatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, mission)
	return err
}

// FindMissionByID finds a mission by its ID.
func (c *MongoMissionCollection) FindMissionByID(ctx context.Context, id string) (*models.Mission, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid mission ID: %w", err)
	}
	var mission models.Mission
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&mission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("mission not found")
		}
		return nil, err
	}
	return &mission, nil
}

// FindMissions queries missions with optional filtering.
func (c *MongoMissionCollection) FindMissions(ctx context.Context, filter bson.M) ([]models.Mission, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var missions []models.Mission
	if err := cursor.All(ctx, &missions); err != nil {
		return nil, err
	}
	return missions, nil
}

// FindMissionsByStatus returns the missions in the given lifecycle stage.
func (c *MongoMissionCollection) FindMissionsByStatus(ctx context.Context, status models.MissionStatus) ([]models.Mission, error) {
	return c.FindMissions(ctx, bson.M{"status": status.Code()})
}

// UpdateMission replaces a mission by its ID, re-validating the record.
func (c *MongoMissionCollection) UpdateMission(ctx context.Context, id string, mission models.Mission) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid mission ID: %w", err)
	}
	if err := mission.Validate(); err != nil {
		return err
	}
	mission.ID = objectID
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, mission)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("mission not found")
	}
	return nil
}

// DeleteMission deletes a mission by its ID. Embedded expenses go with it;
// the mission owns its expense collection.
func (c *MongoMissionCollection) DeleteMission(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid mission ID: %w", err)
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("mission not found")
	}
	return nil
}
