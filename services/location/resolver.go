package location

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"container-tracking/apperrors"
	containerModel "container-tracking/models/container"
	vesselModel "container-tracking/models/vessel"
)

// LocationType distinguishes a container sitting at a port from one on board
// a vessel.
type LocationType string

const (
	TypePort   LocationType = "port"
	TypeVessel LocationType = "vessel"
)

// View is the derived answer to "where is this container right now".
type View struct {
	Type LocationType `json:"type"`

	// Port fields (Type == TypePort)
	Location string `json:"location,omitempty"`

	// Vessel fields (Type == TypeVessel)
	Vessel      *vesselModel.Vessel `json:"vessel,omitempty"`
	Destination *string             `json:"destination,omitempty"`

	Since time.Time `json:"since"`
}

// Resolver derives a container's current status and location from its event
// history alone. It performs no writes and holds no locks; it is safe to call
// concurrently and inside or outside a transaction (pass the tx as db).
type Resolver struct {
	db *gorm.DB
}

// NewResolver creates a resolver bound to the given database handle.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// creationOrder is the authoritative "latest wins" ordering: record creation
// time, ties broken by highest id. Effective dates are backfillable and play
// no part in deciding what is current.
const creationOrder = "created_at DESC, id DESC"

// CurrentStatus returns the container's latest status event, or nil when the
// container has no status history yet.
func (r *Resolver) CurrentStatus(containerID uint) (*containerModel.StatusEvent, error) {
	var ev containerModel.StatusEvent
	err := r.db.Where("container_id = ?", containerID).
		Order(creationOrder).
		First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// latestMovement returns the container's most recently created movement
// event, or nil when it has none.
func (r *Resolver) latestMovement(containerID uint) (*containerModel.MovementEvent, error) {
	var ev containerModel.MovementEvent
	err := r.db.Where("container_id = ?", containerID).
		Order(creationOrder).
		First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// CurrentLocation computes the container's physical location. Containers
// with no events at all resolve to nil. A container with movements but no
// status events still resolves from its movement chain.
func (r *Resolver) CurrentLocation(containerID uint) (*View, error) {
	status, err := r.CurrentStatus(containerID)
	if err != nil {
		return nil, err
	}

	movement, err := r.latestMovement(containerID)
	if err != nil {
		return nil, err
	}

	if movement == nil {
		if status == nil {
			return nil, nil
		}
		return &View{Type: TypePort, Location: status.Location, Since: status.Date}, nil
	}

	if movement.Operation == containerModel.OperationLoad {
		var vsl vesselModel.Vessel
		if err := r.db.First(&vsl, movement.VesselID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("vessel %d referenced by movement %d not found", movement.VesselID, movement.ID)
			}
			return nil, err
		}
		return &View{
			Type:        TypeVessel,
			Vessel:      &vsl,
			Destination: vsl.CurrentDestination,
			Since:       movement.Date,
		}, nil
	}

	// Latest movement is a discharge; its location wins over the status
	// event's location.
	return &View{Type: TypePort, Location: movement.Location, Since: movement.Date}, nil
}

// IsOnDepartedVessel reports whether the container is on board a vessel whose
// status is Departed.
func (r *Resolver) IsOnDepartedVessel(containerID uint) (bool, error) {
	view, err := r.CurrentLocation(containerID)
	if err != nil {
		return false, err
	}
	return view != nil && view.Type == TypeVessel && view.Vessel.Status == vesselModel.StatusDeparted, nil
}

// CurrentVessel returns the vessel the container is on, or nil when ashore.
func (r *Resolver) CurrentVessel(containerID uint) (*vesselModel.Vessel, error) {
	view, err := r.CurrentLocation(containerID)
	if err != nil {
		return nil, err
	}
	if view == nil || view.Type != TypeVessel {
		return nil, nil
	}
	return view.Vessel, nil
}

// LastVessel returns the vessel of the container's most recent discharge,
// for delivery order rendering of discharged containers. Nil when the
// container has never been discharged.
func (r *Resolver) LastVessel(containerID uint) (*vesselModel.Vessel, error) {
	var ev containerModel.MovementEvent
	err := r.db.Where("container_id = ? AND operation = ?", containerID, containerModel.OperationDischarge).
		Order(creationOrder).
		First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var vsl vesselModel.Vessel
	if err := r.db.First(&vsl, ev.VesselID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vsl, nil
}

// ContainersOnVessel returns the containers currently on board the vessel.
// A container counts only if its most recently created movement overall is a
// load referencing this vessel, so cargo whose newest movement points at
// another vessel is excluded even if this vessel's own chain ends in a load.
func (r *Resolver) ContainersOnVessel(vesselID uint) ([]containerModel.Container, error) {
	var containerIDs []uint
	err := r.db.Model(&containerModel.MovementEvent{}).
		Where("vessel_id = ?", vesselID).
		Distinct("container_id").
		Pluck("container_id", &containerIDs).Error
	if err != nil {
		return nil, err
	}

	var onBoard []uint
	for _, id := range containerIDs {
		movement, err := r.latestMovement(id)
		if err != nil {
			return nil, err
		}
		if movement != nil && movement.Operation == containerModel.OperationLoad && movement.VesselID == vesselID {
			onBoard = append(onBoard, id)
		}
	}

	if len(onBoard) == 0 {
		return nil, nil
	}

	var containers []containerModel.Container
	if err := r.db.Where("id IN ?", onBoard).Find(&containers).Error; err != nil {
		return nil, err
	}
	return containers, nil
}
