package printgate

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"container-tracking/apperrors"
	"container-tracking/logger"
	containerModel "container-tracking/models/container"
	printingModel "container-tracking/models/printing"
	"container-tracking/services/authz"
	"container-tracking/services/location"
)

// Gate decides whether a user may print a container's delivery order and
// records the print when it happens. Authorizations are one-time-use: the
// consumption update and the print record insert share one transaction.
type Gate struct {
	db     *gorm.DB
	admins authz.AdminChecker
}

func NewGate(db *gorm.DB, admins authz.AdminChecker) *Gate {
	return &Gate{db: db, admins: admins}
}

// CanPrint evaluates the eligibility chain for (container, user):
//  1. only discharged containers have delivery orders;
//  2. admins always may;
//  3. a first print always may;
//  4. a full vessel round-trip (load then discharge, both created after the
//     last print) re-opens printing for everyone;
//  5. otherwise an unused authorization for this user is required.
func (g *Gate) CanPrint(containerID, userID uint) (bool, error) {
	allowed, _, err := g.evaluate(g.db, containerID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) || errors.Is(err, apperrors.ErrAlreadyConsumed) {
			return false, nil
		}
		return false, err
	}
	return allowed, nil
}

// evaluate runs the eligibility chain on the given handle (a tx during
// RecordPrint). When the allow path is an authorization, it is returned so
// the caller can consume it atomically. Denials come back as typed errors so
// RecordPrint can surface the reason.
func (g *Gate) evaluate(db *gorm.DB, containerID, userID uint) (bool, *printingModel.Authorization, error) {
	resolver := location.NewResolver(db)
	status, err := resolver.CurrentStatus(containerID)
	if err != nil {
		return false, nil, err
	}
	if status == nil || status.Status != containerModel.StatusDischarged {
		return false, nil, apperrors.InvalidTransition("delivery order is only available for discharged containers")
	}

	isAdmin, err := g.admins.IsAdmin(db, userID)
	if err != nil {
		return false, nil, err
	}
	if isAdmin {
		return true, nil, nil
	}

	var lastPrint printingModel.PrintRecord
	err = db.Where("container_id = ?", containerID).
		Order("printed_at DESC, id DESC").
		First(&lastPrint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First print is always permitted for a discharged container.
		return true, nil, nil
	}
	if err != nil {
		return false, nil, err
	}

	roundTrip, err := g.roundTripSince(db, containerID, &lastPrint)
	if err != nil {
		return false, nil, err
	}
	if roundTrip {
		return true, nil, nil
	}

	var auth printingModel.Authorization
	err = db.Where("container_id = ? AND user_id = ? AND used = ?", containerID, userID, false).
		First(&auth).Error
	if err == nil {
		return true, &auth, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil, err
	}

	// Distinguish a spent authorization from no grant at all.
	var spent int64
	if err := db.Model(&printingModel.Authorization{}).
		Where("container_id = ? AND user_id = ? AND used = ?", containerID, userID, true).
		Count(&spent).Error; err != nil {
		return false, nil, err
	}
	if spent > 0 {
		return false, nil, apperrors.AlreadyConsumed("authorization for this container has already been used")
	}
	return false, nil, apperrors.InvalidTransition("user %d is not authorized to print container %d's delivery order", userID, containerID)
}

// roundTripSince reports whether the container made a full vessel round-trip
// after the given print: a load movement created after the print and a
// discharge movement created after that load. Creation order, not effective
// dates.
func (g *Gate) roundTripSince(db *gorm.DB, containerID uint, lastPrint *printingModel.PrintRecord) (bool, error) {
	var load containerModel.MovementEvent
	err := db.Where("container_id = ? AND operation = ? AND created_at > ?",
		containerID, containerModel.OperationLoad, lastPrint.PrintedAt).
		Order("created_at ASC, id ASC").
		First(&load).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var discharges int64
	err = db.Model(&containerModel.MovementEvent{}).
		Where("container_id = ? AND operation = ? AND created_at > ?",
			containerID, containerModel.OperationDischarge, load.CreatedAt).
		Count(&discharges).Error
	if err != nil {
		return false, err
	}
	return discharges > 0, nil
}

// RecordPrint re-checks eligibility, consumes the authorization when that was
// the allow path, and inserts the print record — all in one transaction. If
// the consumption update touches no row the authorization was spent by a
// concurrent print and nothing is inserted.
func (g *Gate) RecordPrint(containerID, userID uint, docNumber string) (*printingModel.PrintRecord, error) {
	var record printingModel.PrintRecord

	err := g.db.Transaction(func(tx *gorm.DB) error {
		var ctr containerModel.Container
		if err := tx.First(&ctr, containerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("container %d not found", containerID)
			}
			return err
		}

		allowed, auth, err := g.evaluate(tx, containerID, userID)
		if err != nil {
			return err
		}
		if !allowed {
			return apperrors.InvalidTransition("user %d may not print container %d's delivery order", userID, containerID)
		}

		record = printingModel.PrintRecord{
			ContainerID:    containerID,
			UserID:         userID,
			DocumentNumber: docNumber,
		}

		if auth != nil {
			res := tx.Model(&printingModel.Authorization{}).
				Where("id = ? AND used = ?", auth.ID, false).
				Update("used", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.AlreadyConsumed("authorization %d has already been used", auth.ID)
			}
			record.AuthorizedByID = &auth.AuthorizedByID
		}

		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("Delivery order %s printed for container %d by user %d", docNumber, containerID, userID))
	return &record, nil
}

// Grant creates a one-time authorization for the grantee. A user holding an
// unused authorization for the container cannot be granted a second one.
func (g *Gate) Grant(containerID, granteeID, adminID uint) (*printingModel.Authorization, error) {
	isAdmin, err := g.admins.IsAdmin(g.db, adminID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, apperrors.InvalidTransition("only administrators can grant print authorizations")
	}

	var auth printingModel.Authorization
	err = g.db.Transaction(func(tx *gorm.DB) error {
		var ctr containerModel.Container
		if err := tx.First(&ctr, containerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("container %d not found", containerID)
			}
			return err
		}

		var existing int64
		if err := tx.Model(&printingModel.Authorization{}).
			Where("container_id = ? AND user_id = ? AND used = ?", containerID, granteeID, false).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperrors.InvalidTransition("user %d already has an unused authorization for container %d", granteeID, containerID)
		}

		auth = printingModel.Authorization{
			ContainerID:    containerID,
			UserID:         granteeID,
			AuthorizedByID: adminID,
		}
		return tx.Create(&auth).Error
	})
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

// Revoke deletes an authorization outright.
func (g *Gate) Revoke(authID uint) error {
	res := g.db.Delete(&printingModel.Authorization{}, authID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("authorization %d not found", authID)
	}
	return nil
}

// RequestAccess files a pending access request unless the user already has
// one pending for this container.
func (g *Gate) RequestAccess(containerID, userID uint) (*printingModel.AccessRequest, error) {
	var req printingModel.AccessRequest

	err := g.db.Transaction(func(tx *gorm.DB) error {
		var ctr containerModel.Container
		if err := tx.First(&ctr, containerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("container %d not found", containerID)
			}
			return err
		}

		var pending int64
		if err := tx.Model(&printingModel.AccessRequest{}).
			Where("container_id = ? AND user_id = ? AND status = ?", containerID, userID, printingModel.RequestPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return apperrors.InvalidTransition("a pending request already exists for this container")
		}

		req = printingModel.AccessRequest{
			ContainerID: containerID,
			UserID:      userID,
			Status:      printingModel.RequestPending,
		}
		return tx.Create(&req).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ApproveRequest marks the request approved and creates exactly one
// authorization for the requester, in one transaction.
func (g *Gate) ApproveRequest(requestID, adminID uint) (*printingModel.Authorization, error) {
	isAdmin, err := g.admins.IsAdmin(g.db, adminID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, apperrors.InvalidTransition("only administrators can approve print requests")
	}

	var auth printingModel.Authorization
	err = g.db.Transaction(func(tx *gorm.DB) error {
		var req printingModel.AccessRequest
		if err := tx.First(&req, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("access request %d not found", requestID)
			}
			return err
		}
		if req.Status != printingModel.RequestPending {
			return apperrors.InvalidTransition("access request %d is already %s", requestID, req.Status)
		}

		if err := tx.Model(&req).Update("status", printingModel.RequestApproved).Error; err != nil {
			return err
		}

		auth = printingModel.Authorization{
			ContainerID:    req.ContainerID,
			UserID:         req.UserID,
			AuthorizedByID: adminID,
		}
		return tx.Create(&auth).Error
	})
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

// RejectRequest marks a pending request rejected.
func (g *Gate) RejectRequest(requestID, adminID uint) error {
	isAdmin, err := g.admins.IsAdmin(g.db, adminID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.InvalidTransition("only administrators can reject print requests")
	}

	return g.db.Transaction(func(tx *gorm.DB) error {
		var req printingModel.AccessRequest
		if err := tx.First(&req, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("access request %d not found", requestID)
			}
			return err
		}
		if req.Status != printingModel.RequestPending {
			return apperrors.InvalidTransition("access request %d is already %s", requestID, req.Status)
		}
		return tx.Model(&req).Update("status", printingModel.RequestRejected).Error
	})
}

// CurrentCounter returns the delivery order counter, creating the row on
// first use.
func (g *Gate) CurrentCounter() (int, error) {
	counter, err := g.fetchCounter(g.db)
	if err != nil {
		return 0, err
	}
	return counter.Counter, nil
}

// IncrementCounter advances the delivery order counter and returns the new
// value.
func (g *Gate) IncrementCounter() (int, error) {
	var value int
	err := g.db.Transaction(func(tx *gorm.DB) error {
		counter, err := g.fetchCounter(tx)
		if err != nil {
			return err
		}
		counter.Counter++
		value = counter.Counter
		return tx.Save(counter).Error
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (g *Gate) fetchCounter(db *gorm.DB) (*printingModel.DeliveryCounter, error) {
	var counter printingModel.DeliveryCounter
	err := db.First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = printingModel.DeliveryCounter{Counter: 1}
		if err := db.Create(&counter).Error; err != nil {
			return nil, err
		}
		return &counter, nil
	}
	if err != nil {
		return nil, err
	}
	return &counter, nil
}
