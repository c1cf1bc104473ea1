package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	ActivityProductSubmitted   = "product_submitted"
	ActivityProductReviewed    = "product_reviewed"
	ActivityOrderPlaced        = "order_placed"
	ActivityOrderStatusChanged = "order_status_changed"
)

// Activity is a back-office audit record. Writing one is always best-effort:
// a failed insert never fails the operation it describes.
type Activity struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Actor     bson.ObjectID `bson:"actor" json:"actor"`
	ActorName string        `bson:"actor_name" json:"actorName"`
	Action    string        `bson:"action" json:"action"`
	Subject   bson.ObjectID `bson:"subject,omitempty" json:"subject,omitempty"`
	Detail    string        `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
}
