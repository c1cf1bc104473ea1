package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Notification is a per-user message shown in the storefront and back-office
// UIs. Delivery is best-effort like Activity.
type Notification struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	User      bson.ObjectID `bson:"user" json:"user"`
	Message   string        `bson:"message" json:"message"`
	Read      bool          `bson:"read" json:"read"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
}
