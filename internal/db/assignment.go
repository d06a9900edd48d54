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

// AssignmentCollection defines the interface for vehicle assignment operations.
type AssignmentCollection interface {
	InsertAssignment(ctx context.Context, assignment models.VehicleAssignment) error
	FindAssignmentByID(ctx context.Context, id string) (*models.VehicleAssignment, error)
	FindAssignments(ctx context.Context, filter bson.M) ([]models.VehicleAssignment, error)
	FindActiveAssignmentsForVehicle(ctx context.Context, vehicleID string, ref time.Time) ([]models.VehicleAssignment, error)
	UpdateAssignment(ctx context.Context, id string, assignment models.VehicleAssignment) error
	DeleteAssignment(ctx context.Context, id string) error
}

// MongoAssignmentCollection implements AssignmentCollection for MongoDB.
type MongoAssignmentCollection struct {
	Collection *mongo.Collection
}

// InsertAssignment inserts a vehicle assignment. The beneficiary exclusivity
// and temporal invariants are re-checked at this boundary; a record naming
// both beneficiaries never reaches storage.
func (c *MongoAssignmentCollection) InsertAssignment(ctx context.Context, assignment models.VehicleAssignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	assignment.CreatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, assignment)
	return err
}

// FindAssignmentByID finds an assignment by its ID.
func (c *MongoAssignmentCollection) FindAssignmentByID(ctx context.Context, id string) (*models.VehicleAssignment, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid assignment ID: %w", err)
	}
	var assignment models.VehicleAssignment
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&assignment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("assignment not found")
		}
		return nil, err
	}
	return &assignment, nil
}

// FindAssignments queries assignments with optional filtering.
func (c *MongoAssignmentCollection) FindAssignments(ctx context.Context, filter bson.M) ([]models.VehicleAssignment, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var assignments []models.VehicleAssignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindActiveAssignmentsForVehicle returns the vehicle's assignments whose
// window contains ref, deciding activity through the assignment itself.
func (c *MongoAssignmentCollection) FindActiveAssignmentsForVehicle(ctx context.Context, vehicleID string, ref time.Time) ([]models.VehicleAssignment, error) {
	assignments, err := c.FindAssignments(ctx, bson.M{"vehicle_id": vehicleID})
	if err != nil {
		return nil, err
	}
	var active []models.VehicleAssignment
	for _, a := range assignments {
		if a.IsActiveAt(ref) {
			active = append(active, a)
		}
	}
	return active, nil
}

// UpdateAssignment replaces an assignment by its ID, re-running the same
// invariant checks as on insert.
func (c *MongoAssignmentCollection) UpdateAssignment(ctx context.Context, id string, assignment models.VehicleAssignment) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid assignment ID: %w", err)
	}
	if err := assignment.Validate(); err != nil {
		return err
	}
	assignment.ID = objectID
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, assignment)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("assignment not found")
	}
	return nil
}

// DeleteAssignment deletes an assignment by its ID.
func (c *MongoAssignmentCollection) DeleteAssignment(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid assignment ID: %w", err)
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("assignment not found")
	}
	return nil
}
