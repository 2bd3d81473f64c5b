package model

import "hotel/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID           = "id"
	FieldNumber       = "number"
	FieldType         = "type"
	FieldStatus       = "status"
	FieldFloor        = "floor"
	FieldMaxOccupancy = "max_occupancy"
	FieldAmenities    = "amenities"
	FieldNotes        = "notes"
)

// Type is the plan category a room is sold under.
type Type string

const (
	TypeShort     Type = "short"
	TypeOvernight Type = "overnight"
)

func (t Type) IsValid() bool {
	return t == TypeShort || t == TypeOvernight
}

type Room struct {
	ID           string `db:"id"`
	Number       string `db:"number"`
	Type         Type   `db:"type"`
	Status       Status `db:"status"`
	Floor        int    `db:"floor"`
	MaxOccupancy int    `db:"max_occupancy"`
	Amenities    string `db:"amenities"`
	Notes        string `db:"notes"`
	model.Metadata
}
