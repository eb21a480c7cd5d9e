package arrival

import (
	"errors"
	"fmt"

	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"container-tracking/apperrors"
	"container-tracking/logger"
	vesselModel "container-tracking/models/vessel"
	"container-tracking/services/location"
)

// Scheduler promotes vessels past their ETA to Arrived and cascades the
// arrival to their cargo. It is invoked from page views and from an explicit
// manual refresh; running it repeatedly is safe because a vessel already
// Arrived is skipped.
type Scheduler struct {
	db *gorm.DB
}

func NewScheduler(db *gorm.DB) *Scheduler {
	return &Scheduler{db: db}
}

// Sweep checks every vessel with an ETA, or just one when vesselID is given.
// A vessel whose ETA has passed (date-truncated today) and is not yet Arrived
// gets status Arrived, moves to its destination, and every container on board
// has its arrival date set to the vessel's ETA — the planned arrival, not the
// moment the sweep ran. Each vessel commits in its own transaction so one
// failure does not hold back the rest. Returns how many vessels were
// promoted.
func (s *Scheduler) Sweep(vesselID *uint) (int, error) {
	today := now.BeginningOfDay()

	var vessels []vesselModel.Vessel
	q := s.db.Where("eta IS NOT NULL")
	if vesselID != nil {
		q = q.Where("id = ?", *vesselID)
	}
	if err := q.Find(&vessels).Error; err != nil {
		return 0, err
	}
	if vesselID != nil && len(vessels) == 0 {
		var exists int64
		if err := s.db.Model(&vesselModel.Vessel{}).Where("id = ?", *vesselID).Count(&exists).Error; err != nil {
			return 0, err
		}
		if exists == 0 {
			return 0, apperrors.NotFound("vessel %d not found", *vesselID)
		}
	}

	updated := 0
	var errs []error
	for i := range vessels {
		vsl := &vessels[i]
		if vsl.ETA == nil || vsl.ETA.After(today) || vsl.Status == vesselModel.StatusArrived {
			continue
		}
		if err := s.promote(vsl); err != nil {
			logger.Error(fmt.Sprintf("Failed to promote vessel %s", vsl.Name), err)
			errs = append(errs, err)
			continue
		}
		updated++
	}
	return updated, errors.Join(errs...)
}

// promote commits one vessel's arrival and the container cascade together.
func (s *Scheduler) promote(vsl *vesselModel.Vessel) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status": vesselModel.StatusArrived,
		}
		if vsl.CurrentDestination != nil && *vsl.CurrentDestination != "" {
			updates["current_location"] = *vsl.CurrentDestination
			updates["current_destination"] = nil
		}
		if err := tx.Model(vsl).Updates(updates).Error; err != nil {
			return wrapSweepErr(err)
		}

		resolver := location.NewResolver(tx)
		onBoard, err := resolver.ContainersOnVessel(vsl.ID)
		if err != nil {
			return err
		}
		for i := range onBoard {
			if err := tx.Model(&onBoard[i]).Update("arrival_date", vsl.ETA).Error; err != nil {
				return wrapSweepErr(err)
			}
		}

		logger.Info(fmt.Sprintf("Vessel %s marked Arrived, %d containers updated", vsl.Name, len(onBoard)))
		return nil
	})
}

// wrapSweepErr classifies commit failures; the sweep is safe to re-run, so a
// conflict is surfaced for the caller to retry on the next trigger.
func wrapSweepErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ConcurrencyConflict(err)
	}
	return err
}
