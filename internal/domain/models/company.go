// internal/domain/models/company.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Company is owned by the company-management service; read here by join only.
type Company struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Image string             `bson:"image" json:"image"`
}
