// internal/domain/models/jobapplication.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationStatusPending is the only status this core writes. Status is a
// reserved extension point for a future review workflow.
const ApplicationStatusPending = "Pending"

// JobApplication records that a user applied to a job. Exactly one document
// per (user_id, job_id); company_id is denormalized from the job at creation
// so listings join without touching the job first.
type JobApplication struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	CompanyID primitive.ObjectID `bson:"company_id" json:"company_id"`
	JobID     primitive.ObjectID `bson:"job_id" json:"job_id"`
	Status    string             `bson:"status" json:"status"`
	AppliedAt int64              `bson:"applied_at" json:"applied_at"` // unix milliseconds, server-set

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
