package mykafka

import "github.com/google/uuid"

// Catalog events on TopicShoeEvents. Created and updated carry the full shoe.
const (
	EventShoeCreated = "shoe_created"
	EventShoeUpdated = "shoe_updated"
	EventShoeDeleted = "shoe_deleted"
)

type DeletedShoe struct {
	ID uuid.UUID `json:"id"`
}
