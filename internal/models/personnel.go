package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Personnel represents an employee snapshot from the HR registry.
type Personnel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Number      string             `bson:"number" json:"number"`
	FirstName   string             `bson:"first_name" json:"first_name"`
	LastName    string             `bson:"last_name" json:"last_name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	Service     string             `bson:"service" json:"service"`
	Function    string             `bson:"function" json:"function"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// FullName returns the display name of the employee.
func (p *Personnel) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// SocietaireAccount represents a societaire membership account. It is a
// financial entity distinct from personnel and can hold vehicle assignments
// in its own right.
type SocietaireAccount struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	AccountNumber string             `bson:"account_number" json:"account_number"`
	Balance       float64            `bson:"balance" json:"balance"` // in EUR
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
