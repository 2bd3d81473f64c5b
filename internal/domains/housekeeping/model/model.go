package model

import (
	"fmt"
	"time"

	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/model"

	"github.com/google/uuid"
)

const (
	TableName  = "housekeeping_jobs"
	EntityName = "housekeeping_job"

	FieldID          = "id"
	FieldRoomID      = "room_id"
	FieldBookingID   = "booking_id"
	FieldJobType     = "job_type"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldDescription = "description"
	FieldNotes       = "notes"
	FieldAssignedTo  = "assigned_to"
	FieldStartedAt   = "started_at"
	FieldCompletedAt = "completed_at"
)

type JobType string

const (
	JobTypeCleaning    JobType = "cleaning"
	JobTypeMaintenance JobType = "maintenance"
	JobTypeInspection  JobType = "inspection"
)

func (t JobType) IsValid() bool {
	switch t {
	case JobTypeCleaning, JobTypeMaintenance, JobTypeInspection:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

type Job struct {
	ID          string     `db:"id"`
	RoomID      string     `db:"room_id"`
	RoomNumber  string     `db:"room_number"  table:"rooms" column:"number"`
	BookingID   *string    `db:"booking_id"`
	JobType     JobType    `db:"job_type"`
	Status      Status     `db:"status"`
	Priority    Priority   `db:"priority"`
	Description string     `db:"description"`
	Notes       string     `db:"notes"`
	AssignedTo  *string    `db:"assigned_to"`
	StartedAt   *time.Time `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
	model.Metadata
}

func (Job) GetJoinQuery() string {
	return fmt.Sprintf("LEFT JOIN %s ON %s.%s = %s.%s",
		roomModel.TableName, roomModel.TableName, roomModel.FieldID, TableName, FieldRoomID)
}

// NewCleaningJob is the job opened when a guest checks out.
func NewCleaningJob(roomID, bookingID, notes, user string, now time.Time) Job {
	return Job{
		ID:          uuid.NewString(),
		RoomID:      roomID,
		BookingID:   &bookingID,
		JobType:     JobTypeCleaning,
		Status:      StatusPending,
		Priority:    PriorityNormal,
		Description: "Clean room after checkout",
		Notes:       notes,
		Metadata:    model.NewMetadata(user, now),
	}
}

// Start puts the job in progress under assignee.
func (j *Job) Start(assignee string, at time.Time) error {
	if err := j.Status.Transition(StatusInProgress); err != nil {
		return err
	}

	j.Status = StatusInProgress
	j.AssignedTo = &assignee
	j.StartedAt = &at

	return nil
}

// Complete closes the job. An unassigned job is credited to the performer.
func (j *Job) Complete(performer string, at time.Time) error {
	if err := j.Status.Transition(StatusCompleted); err != nil {
		return err
	}

	j.Status = StatusCompleted
	j.CompletedAt = &at

	if j.AssignedTo == nil || *j.AssignedTo == "" {
		j.AssignedTo = &performer
	}

	return nil
}
