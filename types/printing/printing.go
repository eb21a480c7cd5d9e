package printing

import (
	"container-tracking/types"
)

// ConfirmPrintRequest records that the user actually printed the delivery
// order. The document number comes from the delivery counter.
type ConfirmPrintRequest struct {
	ContainerID    uint   `json:"container_id" validate:"required"`
	DocumentNumber string `json:"document_number" validate:"required,max=20"`
}

func (r *ConfirmPrintRequest) Validate() error {
	return types.Validate.Struct(r)
}

// GrantRequest authorizes one user to print one container's delivery order
// once.
type GrantRequest struct {
	ContainerID uint `json:"container_id" validate:"required"`
	UserID      uint `json:"user_id" validate:"required"`
}

func (r *GrantRequest) Validate() error {
	return types.Validate.Struct(r)
}
