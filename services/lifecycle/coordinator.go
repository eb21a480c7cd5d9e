package lifecycle

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"container-tracking/apperrors"
	"container-tracking/logger"
	containerModel "container-tracking/models/container"
	printingModel "container-tracking/models/printing"
	vesselModel "container-tracking/models/vessel"
	"container-tracking/services/location"
)

// TransitionParams carries the caller-supplied facts of a lifecycle
// transition.
type TransitionParams struct {
	Date     time.Time
	Location string
	Notes    string
}

// Coordinator is the only writer of new container events. Every operation
// runs in a single transaction so that a movement event and its paired status
// event commit together or not at all.
type Coordinator struct {
	db             *gorm.DB
	terminalStatus containerModel.ContainerStatus
}

// NewCoordinator creates a coordinator. TERMINAL_STATUS selects the status
// label that records the stripping date (default "emptied").
func NewCoordinator(db *gorm.DB) *Coordinator {
	terminal := containerModel.ContainerStatus(os.Getenv("TERMINAL_STATUS"))
	if terminal == "" {
		terminal = containerModel.StatusEmptied
	}
	return &Coordinator{db: db, terminalStatus: terminal}
}

// Load puts a container on board a vessel: one load movement plus one
// "loaded" status event. It rejects departed target vessels and containers
// the resolver already reports on a vessel; an explicit discharge (or the
// SetStatus auto-discharge) must come first. Unused print authorizations and
// pending access requests are revoked because their factual basis no longer
// holds. Print records are preserved.
func (c *Coordinator) Load(containerID, vesselID uint, p TransitionParams) error {
	return c.db.Transaction(func(tx *gorm.DB) error {
		ctr, err := findContainer(tx, containerID)
		if err != nil {
			return err
		}

		var vsl vesselModel.Vessel
		if err := tx.First(&vsl, vesselID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("vessel %d not found", vesselID)
			}
			return err
		}
		if vsl.Status == vesselModel.StatusDeparted {
			return apperrors.InvalidTransition("cannot load container %s onto departed vessel %s", ctr.ContainerNumber, vsl.Name)
		}

		resolver := location.NewResolver(tx)
		current, err := resolver.CurrentVessel(containerID)
		if err != nil {
			return err
		}
		if current != nil {
			return apperrors.InvalidTransition("container %s is already on vessel %s; discharge it first", ctr.ContainerNumber, current.Name)
		}

		if err := revokePrintPermissions(tx, containerID); err != nil {
			return err
		}

		notes := p.Notes
		if notes == "" {
			notes = fmt.Sprintf("Loaded onto vessel %s", vsl.Name)
		}

		movement := containerModel.MovementEvent{
			ContainerID: containerID,
			VesselID:    vsl.ID,
			Operation:   containerModel.OperationLoad,
			Date:        p.Date,
			Location:    p.Location,
			Notes:       notes,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return wrapWriteErr(err)
		}

		status := containerModel.StatusEvent{
			ContainerID: containerID,
			Status:      containerModel.StatusLoaded,
			Date:        p.Date,
			Location:    p.Location,
			Notes:       notes,
		}
		if err := tx.Create(&status).Error; err != nil {
			return wrapWriteErr(err)
		}

		logger.Info(fmt.Sprintf("Container %s loaded onto vessel %s", ctr.ContainerNumber, vsl.Name))
		return nil
	})
}

// Discharge takes a container off the vessel the resolver currently reports
// it on: one discharge movement plus one "discharged" status event whose note
// names the originating vessel. The stripping date is set to the operation
// date.
func (c *Coordinator) Discharge(containerID uint, p TransitionParams) error {
	return c.db.Transaction(func(tx *gorm.DB) error {
		ctr, err := findContainer(tx, containerID)
		if err != nil {
			return err
		}

		resolver := location.NewResolver(tx)
		vsl, err := resolver.CurrentVessel(containerID)
		if err != nil {
			return err
		}
		if vsl == nil {
			return apperrors.InvalidTransition("container %s is not on a vessel", ctr.ContainerNumber)
		}

		movement := containerModel.MovementEvent{
			ContainerID: containerID,
			VesselID:    vsl.ID,
			Operation:   containerModel.OperationDischarge,
			Date:        p.Date,
			Location:    p.Location,
			Notes:       p.Notes,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return wrapWriteErr(err)
		}

		statusNotes := fmt.Sprintf("Discharged from vessel %s", vsl.Name)
		if p.Notes != "" {
			statusNotes = fmt.Sprintf("%s: %s", statusNotes, p.Notes)
		}
		status := containerModel.StatusEvent{
			ContainerID: containerID,
			Status:      containerModel.StatusDischarged,
			Date:        p.Date,
			Location:    p.Location,
			Notes:       statusNotes,
		}
		if err := tx.Create(&status).Error; err != nil {
			return wrapWriteErr(err)
		}

		if err := tx.Model(ctr).Update("stripping_date", p.Date).Error; err != nil {
			return wrapWriteErr(err)
		}

		logger.Info(fmt.Sprintf("Container %s discharged from vessel %s", ctr.ContainerNumber, vsl.Name))
		return nil
	})
}

// SetStatus records a manual status change. A non-"loaded" change for a
// container currently on a vessel first synthesizes a discharge movement so
// the derived vessel relationship stays consistent with the declared status.
func (c *Coordinator) SetStatus(containerID uint, status containerModel.ContainerStatus, p TransitionParams) error {
	if !status.IsValid() {
		return apperrors.InvalidTransition("unknown status %q", status)
	}

	return c.db.Transaction(func(tx *gorm.DB) error {
		ctr, err := findContainer(tx, containerID)
		if err != nil {
			return err
		}

		notes := p.Notes
		if notes == "" {
			notes = status.DefaultNotes()
		}

		resolver := location.NewResolver(tx)
		vsl, err := resolver.CurrentVessel(containerID)
		if err != nil {
			return err
		}

		if vsl != nil && status != containerModel.StatusLoaded {
			movement := containerModel.MovementEvent{
				ContainerID: containerID,
				VesselID:    vsl.ID,
				Operation:   containerModel.OperationDischarge,
				Date:        p.Date,
				Location:    p.Location,
				Notes:       fmt.Sprintf("Automatically discharged due to status change to '%s'", status),
			}
			if err := tx.Create(&movement).Error; err != nil {
				return wrapWriteErr(err)
			}

			if notes != "" {
				notes = fmt.Sprintf("%s - Automatically discharged from vessel %s", notes, vsl.Name)
			} else {
				notes = fmt.Sprintf("Automatically discharged from vessel %s", vsl.Name)
			}
		}

		ev := containerModel.StatusEvent{
			ContainerID: containerID,
			Status:      status,
			Date:        p.Date,
			Location:    p.Location,
			Notes:       notes,
		}
		if err := tx.Create(&ev).Error; err != nil {
			return wrapWriteErr(err)
		}

		if status == containerModel.StatusDischarged || status == c.terminalStatus {
			if err := tx.Model(ctr).Update("stripping_date", p.Date).Error; err != nil {
				return wrapWriteErr(err)
			}
		}

		logger.Info(fmt.Sprintf("Container %s status set to %s", ctr.ContainerNumber, status))
		return nil
	})
}

// revokePrintPermissions is the named cascade of a load: the container is
// back on a vessel, so any unconsumed authorization or pending access request
// has lost its factual basis. Print history stays.
func revokePrintPermissions(tx *gorm.DB, containerID uint) error {
	if err := tx.Where("container_id = ? AND used = ?", containerID, false).
		Delete(&printingModel.Authorization{}).Error; err != nil {
		return wrapWriteErr(err)
	}
	if err := tx.Where("container_id = ? AND status = ?", containerID, printingModel.RequestPending).
		Delete(&printingModel.AccessRequest{}).Error; err != nil {
		return wrapWriteErr(err)
	}
	return nil
}

func findContainer(tx *gorm.DB, containerID uint) (*containerModel.Container, error) {
	var ctr containerModel.Container
	if err := tx.First(&ctr, containerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("container %d not found", containerID)
		}
		return nil, err
	}
	return &ctr, nil
}

// wrapWriteErr classifies storage-level write failures; duplicate-key means a
// concurrent conflicting write and is surfaced, not retried.
func wrapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ConcurrencyConflict(err)
	}
	return err
}
