package vessel

import (
	"container-tracking/types"
)

// CreateRequest registers a vessel.
type CreateRequest struct {
	Name               string `json:"name" validate:"required,max=100"`
	VoyageNumber       string `json:"voyage_number" validate:"required,max=20"`
	VesselType         string `json:"vessel_type" validate:"required,max=50"`
	CapacityTEU        *int   `json:"capacity_teu" validate:"omitempty,min=0"`
	CurrentLocation    string `json:"current_location" validate:"omitempty,max=100"`
	CurrentDestination string `json:"current_destination" validate:"omitempty,max=100"`
	ETA                string `json:"eta" validate:"omitempty,datetime=2006-01-02"`
	Status             string `json:"status" validate:"omitempty,oneof='En Route' Arrived Departed"`
}

func (r *CreateRequest) Validate() error {
	return types.Validate.Struct(r)
}

// UpdateRequest edits a vessel, including the manual Departed-to-Arrived
// flow that relocates its cargo.
type UpdateRequest struct {
	Name               string `json:"name" validate:"required,max=100"`
	VesselType         string `json:"vessel_type" validate:"required,max=50"`
	CapacityTEU        *int   `json:"capacity_teu" validate:"omitempty,min=0"`
	CurrentLocation    string `json:"current_location" validate:"omitempty,max=100"`
	CurrentDestination string `json:"current_destination" validate:"omitempty,max=100"`
	ETA                string `json:"eta" validate:"omitempty,datetime=2006-01-02"`
	Status             string `json:"status" validate:"omitempty,oneof='En Route' Arrived Departed"`
}

func (r *UpdateRequest) Validate() error {
	return types.Validate.Struct(r)
}
