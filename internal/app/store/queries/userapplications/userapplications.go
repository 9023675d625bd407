// Package userapplications answers the "what has this user applied to"
// question with a single aggregation that joins each application to its job
// and the job's company.
package userapplications

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// JobSummary is the slice of the job document surfaced in application
// listings.
type JobSummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Location    string             `bson:"location" json:"location"`
	Category    string             `bson:"category" json:"category"`
	Level       string             `bson:"level" json:"level"`
	Salary      int                `bson:"salary" json:"salary"`
}

// CompanySummary is the slice of the company document surfaced in application
// listings.
type CompanySummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Image string             `bson:"image" json:"image"`
}

// ApplicationWithDetails is one row of a user's application history with the
// job and company joined in.
type ApplicationWithDetails struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Status    string             `bson:"status" json:"status"`
	AppliedAt int64              `bson:"applied_at" json:"applied_at"`
	Job       JobSummary         `bson:"job" json:"job"`
	Company   CompanySummary     `bson:"company" json:"company"`
}

// Query binds the aggregation to a database so callers can depend on a
// method instead of the package-level function.
type Query struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Query {
	return &Query{db: db}
}

func (q *Query) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]ApplicationWithDetails, error) {
	return ListForUser(ctx, q.db, userID)
}

// ListForUser returns the user's applications, newest first, with job and
// company details joined. A user with no applications gets an empty slice.
// Applications whose job or company document has been deleted are dropped by
// the $unwind stages rather than surfaced half-joined.
func ListForUser(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) ([]ApplicationWithDetails, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"user_id": userID}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "applied_at", Value: -1}}}},
		// Join to jobs via job_id.
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "jobs",
			"localField":   "job_id",
			"foreignField": "_id",
			"as":           "job",
		}}},
		bson.D{{Key: "$unwind", Value: "$job"}},
		// Join to companies via the company_id denormalized onto the application.
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "companies",
			"localField":   "company_id",
			"foreignField": "_id",
			"as":           "company",
		}}},
		bson.D{{Key: "$unwind", Value: "$company"}},
		bson.D{{Key: "$project", Value: bson.M{
			"status":     "$status",
			"applied_at": "$applied_at",
			"job": bson.M{
				"_id":         "$job._id",
				"title":       "$job.title",
				"description": "$job.description",
				"location":    "$job.location",
				"category":    "$job.category",
				"level":       "$job.level",
				"salary":      "$job.salary",
			},
			"company": bson.M{
				"_id":   "$company._id",
				"name":  "$company.name",
				"email": "$company.email",
				"image": "$company.image",
			},
		}}},
	}

	cur, err := db.Collection("job_applications").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []ApplicationWithDetails{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
