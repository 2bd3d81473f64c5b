package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Number       string     `json:"number"        validate:"required,max=10"`
	Type         model.Type `json:"type"          validate:"required,enum"`
	Floor        int        `json:"floor"         validate:"omitempty,min=0"`
	MaxOccupancy int        `json:"max_occupancy" validate:"required,min=1,max=20"`
	Amenities    string     `json:"amenities"     validate:"omitempty,max=500"`
	Notes        string     `json:"notes"         validate:"omitempty,max=500"`
}

// ToModel creates an available room. Status is never taken from the request.
func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:           uuid.NewString(),
		Number:       c.Number,
		Type:         c.Type,
		Status:       model.StatusAvailable,
		Floor:        c.Floor,
		MaxOccupancy: c.MaxOccupancy,
		Amenities:    c.Amenities,
		Notes:        c.Notes,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateRoomRequest carries the descriptive fields only; status has its own path.
type UpdateRoomRequest struct {
	Number       string     `db:"number"        json:"number"        validate:"omitempty,max=10"`
	Type         model.Type `db:"type"          json:"type"          validate:"omitempty,enum"`
	Floor        *int       `db:"floor"         json:"floor"         validate:"omitempty,min=0"`
	MaxOccupancy *int       `db:"max_occupancy" json:"max_occupancy" validate:"omitempty,min=1,max=20"`
	Amenities    *string    `db:"amenities"     json:"amenities"     validate:"omitempty,max=500"`
	Notes        *string    `db:"notes"         json:"notes"         validate:"omitempty,max=500"`
}

type MaintenanceRequest struct {
	Enabled bool `json:"enabled"`
}

type RoomResponse struct {
	ID           string       `json:"id"`
	Number       string       `json:"number"`
	Type         model.Type   `json:"type"`
	Status       model.Status `json:"status"`
	Floor        int          `json:"floor"`
	MaxOccupancy int          `json:"max_occupancy"`
	Amenities    string       `json:"amenities"`
	Notes        string       `json:"notes"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Type = model.Type
	r.Status = model.Status
	r.Floor = model.Floor
	r.MaxOccupancy = model.MaxOccupancy
	r.Amenities = model.Amenities
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}
