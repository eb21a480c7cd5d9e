package vessel

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"container-tracking/logger"
	containerModel "container-tracking/models/container"
	vesselModel "container-tracking/models/vessel"
	"container-tracking/services/arrival"
	"container-tracking/services/location"
	"container-tracking/types"
	vesselTypes "container-tracking/types/vessel"
	"container-tracking/utils"
)

// VesselController handles vessel registry HTTP requests
type VesselController struct {
	DB        *gorm.DB
	Logger    *logger.AsyncLogger
	Resolver  *location.Resolver
	Scheduler *arrival.Scheduler
}

// NewVesselController creates a new vessel controller
func NewVesselController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *VesselController {
	return &VesselController{
		DB:        db,
		Logger:    asyncLogger,
		Resolver:  location.NewResolver(db),
		Scheduler: arrival.NewScheduler(db),
	}
}

func (vc *VesselController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	vc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// vesselView is a vessel with its derived cargo list.
type vesselView struct {
	vesselModel.Vessel
	Containers     []containerModel.Container `json:"containers"`
	ContainerCount int                        `json:"container_count"`
}

func (vc *VesselController) buildView(vsl vesselModel.Vessel) (*vesselView, error) {
	onBoard, err := vc.Resolver.ContainersOnVessel(vsl.ID)
	if err != nil {
		return nil, err
	}
	if onBoard == nil {
		onBoard = []containerModel.Container{}
	}
	return &vesselView{Vessel: vsl, Containers: onBoard, ContainerCount: len(onBoard)}, nil
}

// Create registers a vessel
func (vc *VesselController) Create(c *fiber.Ctx) error {
	var req vesselTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	eta, err := utils.ParseOptionalDate(req.ETA)
	if err != nil {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	status := vesselModel.StatusEnRoute
	if req.Status != "" {
		status = vesselModel.VesselStatus(req.Status)
	}

	vsl := vesselModel.Vessel{
		Name:         req.Name,
		VoyageNumber: req.VoyageNumber,
		VesselType:   req.VesselType,
		CapacityTEU:  req.CapacityTEU,
		Status:       status,
		ETA:          eta,
	}
	if req.CurrentLocation != "" {
		loc := utils.MapLocationCodes(req.CurrentLocation)
		vsl.CurrentLocation = &loc
	}
	if req.CurrentDestination != "" {
		dest := utils.MapLocationCodes(req.CurrentDestination)
		vsl.CurrentDestination = &dest
	}

	if err := vc.DB.Create(&vsl).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return vc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: fmt.Sprintf("Voyage number %s already exists", req.VoyageNumber),
			})
		}
		logger.Error("Failed to create vessel", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create vessel",
		})
	}

	logger.Success("Vessel registered: " + vsl.Name)
	return vc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Vessel created successfully",
		Data:    vsl,
	})
}

// List returns all vessels with their cargo counts. The arrival sweep runs
// first so overdue ETAs are promoted before the listing is read.
func (vc *VesselController) List(c *fiber.Ctx) error {
	if _, err := vc.Scheduler.Sweep(nil); err != nil {
		logger.Error("Arrival sweep failed during vessel listing", err)
	}

	var vessels []vesselModel.Vessel
	if err := vc.DB.Order("name ASC").Find(&vessels).Error; err != nil {
		logger.Error("Failed to list vessels", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	views := make([]*vesselView, 0, len(vessels))
	for _, vsl := range vessels {
		view, err := vc.buildView(vsl)
		if err != nil {
			logger.Error("Failed to resolve vessel cargo", err)
			return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to resolve vessel cargo",
			})
		}
		views = append(views, view)
	}

	return vc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Vessels",
		Data:    views,
	})
}

// Detail returns one vessel with the containers currently on board.
func (vc *VesselController) Detail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vessel id",
		})
	}

	var vsl vesselModel.Vessel
	if err := vc.DB.First(&vsl, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return vc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Vessel not found",
			})
		}
		logger.Error("Failed to load vessel", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	view, err := vc.buildView(vsl)
	if err != nil {
		logger.Error("Failed to resolve vessel cargo", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to resolve vessel cargo",
		})
	}

	return vc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Vessel",
		Data:    view,
	})
}

// Update edits a vessel. A manual status change from Departed to Arrived at a
// new location relocates the cargo: every container still on board gets a
// fresh load movement and loaded status event at the arrival location, so the
// event history records where the vessel brought it.
func (vc *VesselController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vessel id",
		})
	}

	var req vesselTypes.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	eta, err := utils.ParseOptionalDate(req.ETA)
	if err != nil {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	var updated vesselModel.Vessel
	err = vc.DB.Transaction(func(tx *gorm.DB) error {
		var vsl vesselModel.Vessel
		if err := tx.First(&vsl, id).Error; err != nil {
			return err
		}

		previousStatus := vsl.Status

		vsl.Name = req.Name
		vsl.VesselType = req.VesselType
		vsl.CapacityTEU = req.CapacityTEU
		vsl.ETA = eta
		vsl.CurrentLocation = optional(utils.MapLocationCodes(req.CurrentLocation))
		vsl.CurrentDestination = optional(utils.MapLocationCodes(req.CurrentDestination))
		if req.Status != "" {
			vsl.Status = vesselModel.VesselStatus(req.Status)
		}

		if err := tx.Save(&vsl).Error; err != nil {
			return err
		}

		if previousStatus == vesselModel.StatusDeparted &&
			vsl.Status == vesselModel.StatusArrived &&
			vsl.CurrentLocation != nil {
			if err := relocateCargo(tx, &vsl); err != nil {
				return err
			}
		}

		updated = vsl
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return vc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Vessel not found",
			})
		}
		logger.Error("Failed to update vessel", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update vessel",
		})
	}

	return vc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Vessel updated successfully",
		Data:    updated,
	})
}

// relocateCargo re-anchors every container still on board to the vessel's new
// location after a manual arrival.
func relocateCargo(tx *gorm.DB, vsl *vesselModel.Vessel) error {
	resolver := location.NewResolver(tx)
	onBoard, err := resolver.ContainersOnVessel(vsl.ID)
	if err != nil {
		return err
	}

	arrivalDate := now.BeginningOfDay()
	if vsl.ETA != nil {
		arrivalDate = *vsl.ETA
	}
	notes := fmt.Sprintf("Relocated with vessel %s arrival at %s", vsl.Name, *vsl.CurrentLocation)

	for i := range onBoard {
		ctr := &onBoard[i]
		movement := containerModel.MovementEvent{
			ContainerID: ctr.ID,
			VesselID:    vsl.ID,
			Operation:   containerModel.OperationLoad,
			Date:        arrivalDate,
			Location:    *vsl.CurrentLocation,
			Notes:       notes,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}
		status := containerModel.StatusEvent{
			ContainerID: ctr.ID,
			Status:      containerModel.StatusLoaded,
			Date:        arrivalDate,
			Location:    *vsl.CurrentLocation,
			Notes:       notes,
		}
		if err := tx.Create(&status).Error; err != nil {
			return err
		}
		if err := tx.Model(ctr).Update("arrival_date", arrivalDate).Error; err != nil {
			return err
		}
	}

	logger.Info(fmt.Sprintf("Vessel %s relocated %d containers to %s", vsl.Name, len(onBoard), *vsl.CurrentLocation))
	return nil
}

// Delete removes a vessel. Blocked while containers remain on board so the
// movement history never references a missing vessel.
func (vc *VesselController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vessel id",
		})
	}

	var vsl vesselModel.Vessel
	if err := vc.DB.First(&vsl, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return vc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Vessel not found",
			})
		}
		logger.Error("Failed to load vessel", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	onBoard, err := vc.Resolver.ContainersOnVessel(vsl.ID)
	if err != nil {
		logger.Error("Failed to resolve vessel cargo", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to resolve vessel cargo",
		})
	}
	if len(onBoard) > 0 {
		return vc.sendResponseWithLog(c, fiber.StatusUnprocessableEntity, types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: fmt.Sprintf("Vessel %s still has %d containers on board", vsl.Name, len(onBoard)),
		})
	}

	if err := vc.DB.Delete(&vsl).Error; err != nil {
		logger.Error("Failed to delete vessel", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete vessel",
		})
	}

	return vc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Vessel deleted successfully",
	})
}

// Sweep runs the arrival check on demand, for all vessels or one.
func (vc *VesselController) Sweep(c *fiber.Ctx) error {
	var target *uint
	if raw := c.Query("vessel_id"); raw != "" {
		id := c.QueryInt("vessel_id")
		if id <= 0 {
			return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid vessel_id",
			})
		}
		v := uint(id)
		target = &v
	}

	updated, err := vc.Scheduler.Sweep(target)
	if err != nil {
		return vc.sendResponseWithLog(c, types.StatusForError(err), types.ApiResponse{
			Status:  types.StatusForError(err),
			Message: err.Error(),
		})
	}

	return vc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("Arrival sweep finished, %d vessels updated", updated),
		Data:    map[string]int{"updated": updated},
	})
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
