package container

import (
	"container-tracking/types"
)

// RegisterRequest creates a container.
type RegisterRequest struct {
	ContainerNumber  string `json:"container_number" validate:"required,max=20"`
	ContainerType    string `json:"container_type" validate:"required,max=20"`
	BLNumber         string `json:"bl_number" validate:"omitempty,max=50"`
	LoadingPort      string `json:"loading_port" validate:"omitempty,max=100"`
	FinalDestination string `json:"final_destination" validate:"omitempty,max=100"`
	Operator         string `json:"operator" validate:"omitempty,max=50"`
	ArrivalDate      string `json:"arrival_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *RegisterRequest) Validate() error {
	return types.Validate.Struct(r)
}

// UpdateDetailsRequest edits a container's immutable-ish facts. Event history
// is never touched here.
type UpdateDetailsRequest struct {
	ContainerNumber  string `json:"container_number" validate:"required,max=20"`
	ContainerType    string `json:"container_type" validate:"required,max=20"`
	BLNumber         string `json:"bl_number" validate:"omitempty,max=50"`
	LoadingPort      string `json:"loading_port" validate:"omitempty,max=100"`
	FinalDestination string `json:"final_destination" validate:"omitempty,max=100"`
	Operator         string `json:"operator" validate:"omitempty,max=50"`
	ArrivalDate      string `json:"arrival_date" validate:"omitempty,datetime=2006-01-02"`
	StrippingDate    string `json:"stripping_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *UpdateDetailsRequest) Validate() error {
	return types.Validate.Struct(r)
}

// SetStatusRequest records a manual status change.
type SetStatusRequest struct {
	Status   string `json:"status" validate:"required,max=20"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Location string `json:"location" validate:"required,max=100"`
	Notes    string `json:"notes"`
}

func (r *SetStatusRequest) Validate() error {
	return types.Validate.Struct(r)
}

// LoadRequest puts the container onto a vessel.
type LoadRequest struct {
	VesselID uint   `json:"vessel_id" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Location string `json:"location" validate:"required,max=100"`
	Notes    string `json:"notes"`
}

func (r *LoadRequest) Validate() error {
	return types.Validate.Struct(r)
}

// DischargeRequest takes the container off its current vessel.
type DischargeRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Location string `json:"location" validate:"required,max=100"`
	Notes    string `json:"notes"`
}

func (r *DischargeRequest) Validate() error {
	return types.Validate.Struct(r)
}

// BulkLoadRequest applies one load to many containers.
type BulkLoadRequest struct {
	ContainerIDs []uint `json:"container_ids" validate:"required,min=1,dive,required"`
	VesselID     uint   `json:"vessel_id" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Location     string `json:"location" validate:"required,max=100"`
	Notes        string `json:"notes"`
}

func (r *BulkLoadRequest) Validate() error {
	return types.Validate.Struct(r)
}

// BulkDischargeRequest applies one discharge to many containers.
type BulkDischargeRequest struct {
	ContainerIDs []uint `json:"container_ids" validate:"required,min=1,dive,required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Location     string `json:"location" validate:"required,max=100"`
	Notes        string `json:"notes"`
}

func (r *BulkDischargeRequest) Validate() error {
	return types.Validate.Struct(r)
}

// BulkStatusRequest applies one status change to many containers.
type BulkStatusRequest struct {
	ContainerIDs []uint `json:"container_ids" validate:"required,min=1,dive,required"`
	Status       string `json:"status" validate:"required,max=20"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Location     string `json:"location" validate:"required,max=100"`
	Notes        string `json:"notes"`
}

func (r *BulkStatusRequest) Validate() error {
	return types.Validate.Struct(r)
}

// BulkOperationResult reports per-container outcomes of a bulk operation.
type BulkOperationResult struct {
	BatchID   string          `json:"batch_id"`
	Succeeded []uint          `json:"succeeded"`
	Failed    map[uint]string `json:"failed,omitempty"`
}
