package dto

import (
	"hotel/shared/model"
	"hotel/shared/timezone"
)

// Metadata is the audit trail shown on every room, booking and job: who touched it and when.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(metadata model.Metadata) {
	m.CreatedAt = timezone.Stamp(metadata.CreatedAt)
	m.ModifiedAt = timezone.Stamp(metadata.ModifiedAt)
	m.CreatedBy = metadata.CreatedBy
	m.ModifiedBy = metadata.ModifiedBy
}
