// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the local mirror of an identity-provider account.
//
// NOTE:
//   - A user is created exactly once, on the first sighting of an
//     external_id. Profile fields are frozen at creation; repeat syncs do
//     not overwrite them. Only resume_url changes afterwards.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExternalID    string             `bson:"external_id" json:"external_id"` // identity-provider subject id
	Email         string             `bson:"email" json:"email"`
	FirstName     string             `bson:"first_name" json:"first_name"`
	LastName      string             `bson:"last_name" json:"last_name"`
	DisplayName   string             `bson:"display_name" json:"display_name"`
	DisplayNameCI string             `bson:"display_name_ci" json:"display_name_ci"` // lowercase, diacritics-stripped
	AvatarURL     string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	ResumeURL     string             `bson:"resume_url,omitempty" json:"resume_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
