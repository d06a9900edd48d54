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

// MaintenanceCollection defines the interface for maintenance order operations.
type MaintenanceCollection interface {
	InsertMaintenanceOrder(ctx context.Context, order models.MaintenanceOrder) error
	FindMaintenanceOrderByID(ctx context.Context, id string) (*models.MaintenanceOrder, error)
	FindMaintenanceOrders(ctx context.Context, filter bson.M) ([]models.MaintenanceOrder, error)
	FindOpenOrdersForVehicle(ctx context.Context, vehicleID string) ([]models.MaintenanceOrder, error)
	UpdateMaintenanceOrder(ctx context.Context, id string, order models.MaintenanceOrder) error
	DeleteMaintenanceOrder(ctx context.Context, id string) error
}

// MongoMaintenanceCollection implements MaintenanceCollection for MongoDB.
type MongoMaintenanceCollection struct {
	Collection *mongo.Collection
}

// InsertMaintenanceOrder inserts a maintenance order. The consistency checks
// the state machine leaves to the persistence boundary run here: entry/exit
// ordering and the exit date on closed orders.
func (c *MongoMaintenanceCollection) InsertMaintenanceOrder(ctx context.Context, order models.MaintenanceOrder) error {
	if err := order.Validate(); err != nil {
		return err
	}
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	order.CreatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, order)
	return err
}

// FindMaintenanceOrderByID finds a maintenance order by its ID.
func (c *MongoMaintenanceCollection) FindMaintenanceOrderByID(ctx context.Context, id string) (*models.MaintenanceOrder, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid maintenance order ID: %w", err)
	}
	var order models.MaintenanceOrder
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("maintenance order not found")
		}
		return nil, err
	}
	return &order, nil
}

// FindMaintenanceOrders queries maintenance orders with optional filtering.
func (c *MongoMaintenanceCollection) FindMaintenanceOrders(ctx context.Context, filter bson.M) ([]models.MaintenanceOrder, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var orders []models.MaintenanceOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindOpenOrdersForVehicle returns the vehicle's orders that are not closed.
func (c *MongoMaintenanceCollection) FindOpenOrdersForVehicle(ctx context.Context, vehicleID string) ([]models.MaintenanceOrder, error) {
	return c.FindMaintenanceOrders(ctx, bson.M{
		"vehicle_id": vehicleID,
		"status":     bson.M{"$ne": models.MaintenanceClosed.Code()},
	})
}

// UpdateMaintenanceOrder replaces an order by its ID with the same
// consistency checks as on insert.
func (c *MongoMaintenanceCollection) UpdateMaintenanceOrder(ctx context.Context, id string, order models.MaintenanceOrder) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid maintenance order ID: %w", err)
	}
	if err := order.Validate(); err != nil {
		return err
	}
	order.ID = objectID
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, order)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("maintenance order not found")
	}
	return nil
}

// DeleteMaintenanceOrder deletes a maintenance order by its ID.
func (c *MongoMaintenanceCollection) DeleteMaintenanceOrder(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid maintenance order ID: %w", err)
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("maintenance order not found")
	}
	return nil
}
