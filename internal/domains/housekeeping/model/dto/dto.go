package dto

import (
	"hotel/internal/domains/housekeeping/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

// CreateJobRequest opens a maintenance or inspection job. Cleaning jobs come from checkout.
type CreateJobRequest struct {
	RoomID      string         `json:"room_id"     validate:"required,uuid"`
	JobType     model.JobType  `json:"job_type"    validate:"required,oneof=maintenance inspection"`
	Priority    model.Priority `json:"priority"    validate:"omitempty,enum"`
	Description string         `json:"description" validate:"required,max=500"`
	Notes       string         `json:"notes"       validate:"omitempty,max=500"`
	AssignedTo  string         `json:"assigned_to" validate:"omitempty,max=100"`
}

func (c *CreateJobRequest) ToModel(user string) model.Job {
	priority := c.Priority
	if priority == "" {
		priority = model.PriorityNormal
	}

	var assignee *string
	if c.AssignedTo != "" {
		assignee = &c.AssignedTo
	}

	return model.Job{
		ID:          uuid.NewString(),
		RoomID:      c.RoomID,
		JobType:     c.JobType,
		Status:      model.StatusPending,
		Priority:    priority,
		Description: c.Description,
		Notes:       c.Notes,
		AssignedTo:  assignee,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

// StartJobRequest names the staff member taking the job. Empty means the caller.
type StartJobRequest struct {
	AssignedTo string `json:"assigned_to" validate:"omitempty,max=100"`
}

type JobResponse struct {
	ID          string         `json:"id"`
	RoomID      string         `json:"room_id"`
	RoomNumber  string         `json:"room_number"`
	BookingID   *string        `json:"booking_id"`
	JobType     model.JobType  `json:"job_type"`
	Status      model.Status   `json:"status"`
	Priority    model.Priority `json:"priority"`
	Description string         `json:"description"`
	Notes       string         `json:"notes"`
	AssignedTo  *string        `json:"assigned_to"`
	StartedAt   *string        `json:"started_at"`
	CompletedAt *string        `json:"completed_at"`
	gDto.Metadata
}

func (r *JobResponse) FromModel(model model.Job) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomNumber = model.RoomNumber
	r.BookingID = model.BookingID
	r.JobType = model.JobType
	r.Status = model.Status
	r.Priority = model.Priority
	r.Description = model.Description
	r.Notes = model.Notes
	r.AssignedTo = model.AssignedTo
	r.StartedAt = timezone.StampOptional(model.StartedAt)
	r.CompletedAt = timezone.StampOptional(model.CompletedAt)
	r.Metadata.FromModel(model.Metadata)
}

type GetJobsResponse struct {
	Jobs      []JobResponse `json:"jobs"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetJobsResponse) FromModels(models []model.Job, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Jobs = make([]JobResponse, len(models))
	for i, mod := range models {
		r.Jobs[i].FromModel(mod)
	}
}
