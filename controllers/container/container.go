package container

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"container-tracking/logger"
	containerModel "container-tracking/models/container"
	printingModel "container-tracking/models/printing"
	"container-tracking/services/arrival"
	"container-tracking/services/lifecycle"
	"container-tracking/services/location"
	"container-tracking/types"
	containerTypes "container-tracking/types/container"
	"container-tracking/utils"
)

// ContainerController handles container registry and lifecycle HTTP requests
type ContainerController struct {
	DB          *gorm.DB
	Logger      *logger.AsyncLogger
	Resolver    *location.Resolver
	Coordinator *lifecycle.Coordinator
	Scheduler   *arrival.Scheduler
}

// NewContainerController creates a new container controller
func NewContainerController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ContainerController {
	return &ContainerController{
		DB:          db,
		Logger:      asyncLogger,
		Resolver:    location.NewResolver(db),
		Coordinator: lifecycle.NewCoordinator(db),
		Scheduler:   arrival.NewScheduler(db),
	}
}

func (cc *ContainerController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	cc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// containerView is a container together with its derived state.
type containerView struct {
	containerModel.Container
	CurrentStatus   *containerModel.StatusEvent `json:"current_status,omitempty"`
	CurrentLocation *location.View              `json:"current_location,omitempty"`
	OnDeparted      bool                        `json:"on_departed_vessel"`
}

func (cc *ContainerController) buildView(ctr containerModel.Container) (*containerView, error) {
	status, err := cc.Resolver.CurrentStatus(ctr.ID)
	if err != nil {
		return nil, err
	}
	loc, err := cc.Resolver.CurrentLocation(ctr.ID)
	if err != nil {
		return nil, err
	}
	departed, err := cc.Resolver.IsOnDepartedVessel(ctr.ID)
	if err != nil {
		return nil, err
	}
	return &containerView{
		Container:       ctr,
		CurrentStatus:   status,
		CurrentLocation: loc,
		OnDeparted:      departed,
	}, nil
}

// Register creates a new container
func (cc *ContainerController) Register(c *fiber.Ctx) error {
	var req containerTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	ctr := containerModel.Container{
		ContainerNumber: req.ContainerNumber,
		ContainerType:   req.ContainerType,
	}
	if req.BLNumber != "" {
		ctr.BLNumber = &req.BLNumber
	}
	if req.LoadingPort != "" {
		port := utils.MapLocationCodes(req.LoadingPort)
		ctr.LoadingPort = &port
	}
	if req.FinalDestination != "" {
		dest := utils.MapLocationCodes(req.FinalDestination)
		ctr.FinalDestination = &dest
	}
	if req.Operator != "" {
		ctr.Operator = &req.Operator
	}
	arrivalDate, err := utils.ParseOptionalDate(req.ArrivalDate)
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}
	ctr.ArrivalDate = arrivalDate

	if err := cc.DB.Create(&ctr).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return cc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: fmt.Sprintf("Container %s already exists for this bill of lading", req.ContainerNumber),
			})
		}
		logger.Error("Failed to create container", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create container",
		})
	}

	logger.Success("Container registered: " + ctr.ContainerNumber)
	return cc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Container registered successfully",
		Data:    ctr,
	})
}

// List returns all containers with their derived state. Listing pages also
// trigger an arrival sweep so vessels past their ETA are promoted before the
// data is read.
func (cc *ContainerController) List(c *fiber.Ctx) error {
	if _, err := cc.Scheduler.Sweep(nil); err != nil {
		logger.Error("Arrival sweep failed during container listing", err)
	}

	var containers []containerModel.Container
	if err := cc.DB.Order("container_number ASC").Find(&containers).Error; err != nil {
		logger.Error("Failed to list containers", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	views := make([]*containerView, 0, len(containers))
	for _, ctr := range containers {
		view, err := cc.buildView(ctr)
		if err != nil {
			logger.Error("Failed to resolve container state", err)
			return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to resolve container state",
			})
		}
		views = append(views, view)
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Containers",
		Data:    views,
	})
}

// Detail returns one container with its full event history and derived state.
func (cc *ContainerController) Detail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid container id",
		})
	}

	var ctr containerModel.Container
	err = cc.DB.Preload("StatusEvents", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC, id DESC")
	}).Preload("MovementEvents", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC, id DESC")
	}).First(&ctr, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Container not found",
			})
		}
		logger.Error("Failed to load container", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	view, err := cc.buildView(ctr)
	if err != nil {
		logger.Error("Failed to resolve container state", err)
		return cc.sendResponseWithLog(c, types.StatusForError(err), types.ApiResponse{
			Status:  types.StatusForError(err),
			Message: err.Error(),
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Container",
		Data:    view,
	})
}

// UpdateDetails edits a container's registry facts without touching its event
// history.
func (cc *ContainerController) UpdateDetails(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid container id",
		})
	}

	var req containerTypes.UpdateDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	var ctr containerModel.Container
	if err := cc.DB.First(&ctr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Container not found",
			})
		}
		logger.Error("Failed to load container", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	arrivalDate, err := utils.ParseOptionalDate(req.ArrivalDate)
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}
	strippingDate, err := utils.ParseOptionalDate(req.StrippingDate)
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	ctr.ContainerNumber = req.ContainerNumber
	ctr.ContainerType = req.ContainerType
	ctr.BLNumber = optional(req.BLNumber)
	ctr.LoadingPort = optional(utils.MapLocationCodes(req.LoadingPort))
	ctr.FinalDestination = optional(utils.MapLocationCodes(req.FinalDestination))
	ctr.Operator = optional(req.Operator)
	ctr.ArrivalDate = arrivalDate
	ctr.StrippingDate = strippingDate

	if err := cc.DB.Save(&ctr).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return cc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Container number already in use",
			})
		}
		logger.Error("Failed to update container", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update container",
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Container details updated successfully",
		Data:    ctr,
	})
}

// Delete removes a container and everything it owns: events, print records,
// authorizations and access requests.
func (cc *ContainerController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid container id",
		})
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		var ctr containerModel.Container
		if err := tx.First(&ctr, id).Error; err != nil {
			return err
		}
		if err := tx.Where("container_id = ?", ctr.ID).Delete(&containerModel.StatusEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("container_id = ?", ctr.ID).Delete(&containerModel.MovementEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("container_id = ?", ctr.ID).Delete(&printingModel.Authorization{}).Error; err != nil {
			return err
		}
		if err := tx.Where("container_id = ?", ctr.ID).Delete(&printingModel.AccessRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("container_id = ?", ctr.ID).Delete(&printingModel.PrintRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ctr).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Container not found",
			})
		}
		logger.Error("Failed to delete container", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete container",
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Container deleted successfully",
	})
}

// SetStatus records a manual status change through the coordinator.
func (cc *ContainerController) SetStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid container id",
		})
	}

	var req containerTypes.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	params := lifecycle.TransitionParams{
		Date:     date,
		Location: utils.MapLocationCodes(req.Location),
		Notes:    req.Notes,
	}
	if err := cc.Coordinator.SetStatus(uint(id), containerModel.ContainerStatus(req.Status), params); err != nil {
		return cc.sendResponseWithLog(c, types.StatusForError(err), types.ApiResponse{
			Status:  types.StatusForError(err),
			Message: err.Error(),
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Status updated successfully",
	})
}

// Load puts the container onto a vessel through the coordinator.
func (cc *ContainerController) Load(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid container id",
		})
	}

	var req containerTypes.LoadRequest
	if err := c.BodyParser(&req); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	params := lifecycle.TransitionParams{
		Date:     date,
		Location: utils.MapLocationCodes(req.Location),
		Notes:    req.Notes,
	}
	if err := cc.Coordinator.Load(uint(id), req.VesselID, params); err != nil {
		return cc.sendResponseWithLog(c, types.StatusForError(err), types.ApiResponse{
			Status:  types.StatusForError(err),
			Message: err.Error(),
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Container loaded successfully",
	})
}

// Discharge takes the container off its current vessel through the
// coordinator.
func (cc *ContainerController) Discharge(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid container id",
		})
	}

	var req containerTypes.DischargeRequest
	if err := c.BodyParser(&req); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	params := lifecycle.TransitionParams{
		Date:     date,
		Location: utils.MapLocationCodes(req.Location),
		Notes:    req.Notes,
	}
	if err := cc.Coordinator.Discharge(uint(id), params); err != nil {
		return cc.sendResponseWithLog(c, types.StatusForError(err), types.ApiResponse{
			Status:  types.StatusForError(err),
			Message: err.Error(),
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Container discharged successfully",
	})
}

// BulkLoad applies one load operation to many containers, accumulating
// per-container failures instead of aborting the batch.
func (cc *ContainerController) BulkLoad(c *fiber.Ctx) error {
	var req containerTypes.BulkLoadRequest
	if err := c.BodyParser(&req); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	result := cc.runBulk(req.ContainerIDs, func(containerID uint) error {
		return cc.Coordinator.Load(containerID, req.VesselID, lifecycle.TransitionParams{
			Date:     date,
			Location: utils.MapLocationCodes(req.Location),
			Notes:    req.Notes,
		})
	})

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("Bulk load finished: %d succeeded, %d failed", len(result.Succeeded), len(result.Failed)),
		Data:    result,
	})
}

// BulkDischarge applies one discharge operation to many containers.
func (cc *ContainerController) BulkDischarge(c *fiber.Ctx) error {
	var req containerTypes.BulkDischargeRequest
	if err := c.BodyParser(&req); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	result := cc.runBulk(req.ContainerIDs, func(containerID uint) error {
		return cc.Coordinator.Discharge(containerID, lifecycle.TransitionParams{
			Date:     date,
			Location: utils.MapLocationCodes(req.Location),
			Notes:    req.Notes,
		})
	})

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("Bulk discharge finished: %d succeeded, %d failed", len(result.Succeeded), len(result.Failed)),
		Data:    result,
	})
}

// BulkStatus applies one status change to many containers.
func (cc *ContainerController) BulkStatus(c *fiber.Ctx) error {
	var req containerTypes.BulkStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	result := cc.runBulk(req.ContainerIDs, func(containerID uint) error {
		return cc.Coordinator.SetStatus(containerID, containerModel.ContainerStatus(req.Status), lifecycle.TransitionParams{
			Date:     date,
			Location: utils.MapLocationCodes(req.Location),
			Notes:    req.Notes,
		})
	})

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("Bulk status update finished: %d succeeded, %d failed", len(result.Succeeded), len(result.Failed)),
		Data:    result,
	})
}

// runBulk loops an operation over container ids. Each container commits (or
// fails) in its own coordinator transaction; the batch id ties the audit log
// lines together.
func (cc *ContainerController) runBulk(containerIDs []uint, op func(uint) error) *containerTypes.BulkOperationResult {
	result := &containerTypes.BulkOperationResult{
		BatchID: uuid.NewString(),
		Failed:  make(map[uint]string),
	}
	for _, containerID := range containerIDs {
		if err := op(containerID); err != nil {
			result.Failed[containerID] = err.Error()
			continue
		}
		result.Succeeded = append(result.Succeeded, containerID)
	}
	logger.Info(fmt.Sprintf("Bulk operation %s: %d succeeded, %d failed", result.BatchID, len(result.Succeeded), len(result.Failed)))
	return result
}

// Search finds containers by number or bill of lading prefix.
func (cc *ContainerController) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Query parameter q is required",
		})
	}

	var containers []containerModel.Container
	pattern := "%" + query + "%"
	if err := cc.DB.Where("container_number ILIKE ? OR bl_number ILIKE ?", pattern, pattern).
		Limit(50).Find(&containers).Error; err != nil {
		logger.Error("Failed to search containers", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Search results",
		Data:    containers,
	})
}

// Exists reports whether a container number is already registered.
func (cc *ContainerController) Exists(c *fiber.Ctx) error {
	number := c.Params("number")
	var count int64
	if err := cc.DB.Model(&containerModel.Container{}).
		Where("container_number = ?", number).Count(&count).Error; err != nil {
		logger.Error("Failed to check container existence", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Existence check",
		Data:    map[string]bool{"exists": count > 0},
	})
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
