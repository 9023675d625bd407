// internal/domain/models/job.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job is a posting owned by the job-board service. This core only reads it:
// the company_id is copied onto applications, and the display attributes are
// projected into application listings.
type Job struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyID   primitive.ObjectID `bson:"company_id" json:"company_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Location    string             `bson:"location" json:"location"`
	Category    string             `bson:"category" json:"category"`
	Level       string             `bson:"level" json:"level"`
	Salary      int                `bson:"salary" json:"salary"`
	Visible     bool               `bson:"visible" json:"visible"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
