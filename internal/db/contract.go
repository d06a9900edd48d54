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

// ContractCollection defines the interface for insurance contract operations.
type ContractCollection interface {
	InsertContract(ctx context.Context, contract models.InsuranceContract) error
	FindContractByID(ctx context.Context, id string) (*models.InsuranceContract, error)
	FindContractByCardNumber(ctx context.Context, cardNumber string) (*models.InsuranceContract, error)
	FindContracts(ctx context.Context, filter bson.M) ([]models.InsuranceContract, error)
	FindContractsCoveringVehicle(ctx context.Context, vehicleID string) ([]models.InsuranceContract, error)
	FindExpiringContracts(ctx context.Context, ref time.Time, thresholdDays int) ([]models.InsuranceContract, error)
	UpdateContract(ctx context.Context, id string, contract models.InsuranceContract) error
	DeleteContract(ctx context.Context, id string) error
}

// MongoContractCollection implements ContractCollection for MongoDB.
type MongoContractCollection struct {
	Collection *mongo.Collection
}

// InsertContract inserts an insurance contract. Structurally invalid contracts
// are rejected before touching the database.
func (c *MongoContractCollection) InsertContract(ctx context.Context, contract models.InsuranceContract) error {
	if !contract.IsStructurallyValid() {
		return fmt.Errorf("contract %s is not structurally valid", contract.CardNumber)
	}
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	contract.CreatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, contract)
	return err
}

// FindContractByID finds a contract by its ID.
func (c *MongoContractCollection) FindContractByID(ctx context.Context, id string) (*models.InsuranceContract, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid contract ID: %w", err)
	}
	var contract models.InsuranceContract
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&contract)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("contract not found")
		}
		return nil, err
	}
	return &contract, nil
}

// FindContractByCardNumber finds a contract by its unique card number.
func (c *MongoContractCollection) FindContractByCardNumber(ctx context.Context, cardNumber string) (*models.InsuranceContract, error) {
	var contract models.InsuranceContract
	err := c.Collection.FindOne(ctx, bson.M{"card_number": cardNumber}).Decode(&contract)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("contract not found")
		}
		return nil, err
	}
	return &contract, nil
}

// FindContracts queries contracts with optional filtering.
func (c *MongoContractCollection) FindContracts(ctx context.Context, filter bson.M) ([]models.InsuranceContract, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var contracts []models.InsuranceContract
	if err := cursor.All(ctx, &contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

// FindContractsCoveringVehicle returns the contracts whose coverage set
// contains the given vehicle.
func (c *MongoContractCollection) FindContractsCoveringVehicle(ctx context.Context, vehicleID string) ([]models.InsuranceContract, error) {
	return c.FindContracts(ctx, bson.M{"vehicle_ids": vehicleID})
}

// FindExpiringContracts returns the contracts active at ref and expiring
// within thresholdDays. Filtering runs through the contract's own expiry
// decision so the rule is never duplicated in a query.
func (c *MongoContractCollection) FindExpiringContracts(ctx context.Context, ref time.Time, thresholdDays int) ([]models.InsuranceContract, error) {
	contracts, err := c.FindContracts(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var expiring []models.InsuranceContract
	for _, contract := range contracts {
		soon, err := contract.IsExpiringSoon(ref, thresholdDays)
		if err != nil {
			return nil, err
		}
		if soon {
			expiring = append(expiring, contract)
		}
	}
	return expiring, nil
}

// UpdateContract replaces a contract by its ID. The same structural gate as
// on insert applies.
func (c *MongoContractCollection) UpdateContract(ctx context.Context, id string, contract models.InsuranceContract) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid contract ID: %w", err)
	}
	if !contract.IsStructurallyValid() {
		return fmt.Errorf("contract %s is not structurally valid", contract.CardNumber)
	}
	contract.ID = objectID
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, contract)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("contract not found")
	}
	return nil
}

// DeleteContract deletes a contract by its ID.
func (c *MongoContractCollection) DeleteContract(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid contract ID: %w", err)
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("contract not found")
	}
	return nil
}
