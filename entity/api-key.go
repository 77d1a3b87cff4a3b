package entity

import "time"

// ApiKey grants access to the admin HTTP API.
type ApiKey struct {
	Name      string    `json:"name" bson:"name"`
	Key       string    `json:"key" bson:"key"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
}
