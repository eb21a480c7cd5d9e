package printing

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"container-tracking/logger"
	"container-tracking/middleware"
	containerModel "container-tracking/models/container"
	printingModel "container-tracking/models/printing"
	vesselModel "container-tracking/models/vessel"
	"container-tracking/services/authz"
	"container-tracking/services/location"
	"container-tracking/services/printgate"
	"container-tracking/types"
	printingTypes "container-tracking/types/printing"
	"container-tracking/utils"
)

// PrintingController handles delivery order authorization and printing
// HTTP requests
type PrintingController struct {
	DB       *gorm.DB
	Logger   *logger.AsyncLogger
	Gate     *printgate.Gate
	Resolver *location.Resolver
}

// NewPrintingController creates a new printing controller
func NewPrintingController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *PrintingController {
	return &PrintingController{
		DB:       db,
		Logger:   asyncLogger,
		Gate:     printgate.NewGate(db, authz.NewDBAdminChecker()),
		Resolver: location.NewResolver(db),
	}
}

func (pc *PrintingController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

func (pc *PrintingController) fail(c *fiber.Ctx, err error) error {
	status := types.StatusForError(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Printing operation failed", err)
	}
	return pc.sendResponseWithLog(c, status, types.ApiResponse{
		Status:  status,
		Message: err.Error(),
	})
}

// CanPrint answers whether the authenticated user may print the container's
// delivery order right now.
func (pc *PrintingController) CanPrint(c *fiber.Ctx) error {
	containerID, err := c.ParamsInt("id")
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid container id",
		})
	}

	allowed, err := pc.Gate.CanPrint(uint(containerID), middleware.CallerID(c))
	if err != nil {
		return pc.fail(c, err)
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Print eligibility",
		Data:    map[string]bool{"can_print": allowed},
	})
}

// deliveryOrderView is the data needed to render a delivery order.
type deliveryOrderView struct {
	Container         containerModel.Container    `json:"container"`
	Vessel            *vesselModel.Vessel         `json:"vessel,omitempty"`
	DischargeDate     *time.Time                  `json:"discharge_date,omitempty"`
	DischargeLocation string                      `json:"discharge_location,omitempty"`
	CurrentStatus     *containerModel.StatusEvent `json:"current_status,omitempty"`
	DocumentNumber    string                      `json:"document_number"`
}

// DeliveryOrder assembles the delivery order data for a discharged container.
// The document number shown is a preview of the next counter value; the
// counter only advances on ConfirmPrint.
func (pc *PrintingController) DeliveryOrder(c *fiber.Ctx) error {
	containerID, err := c.ParamsInt("id")
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid container id",
		})
	}

	allowed, err := pc.Gate.CanPrint(uint(containerID), middleware.CallerID(c))
	if err != nil {
		return pc.fail(c, err)
	}
	if !allowed {
		return pc.sendResponseWithLog(c, fiber.StatusForbidden, types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "You are not authorized to print this delivery order",
		})
	}

	var ctr containerModel.Container
	if err := pc.DB.First(&ctr, containerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Container not found",
			})
		}
		return pc.fail(c, err)
	}

	view := deliveryOrderView{Container: ctr}

	status, err := pc.Resolver.CurrentStatus(ctr.ID)
	if err != nil {
		return pc.fail(c, err)
	}
	view.CurrentStatus = status

	vessel, err := pc.Resolver.LastVessel(ctr.ID)
	if err != nil {
		return pc.fail(c, err)
	}
	view.Vessel = vessel

	var discharge containerModel.MovementEvent
	err = pc.DB.Where("container_id = ? AND operation = ?", ctr.ID, containerModel.OperationDischarge).
		Order("created_at DESC, id DESC").
		First(&discharge).Error
	if err == nil {
		view.DischargeDate = &discharge.Date
		view.DischargeLocation = discharge.Location
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pc.fail(c, err)
	}

	counter, err := pc.Gate.CurrentCounter()
	if err != nil {
		return pc.fail(c, err)
	}
	view.DocumentNumber = utils.FormatDocumentNumber(counter)

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery order",
		Data:    view,
	})
}

// ConfirmPrint records that the delivery order was actually printed,
// consuming the authorization when one was the allow path.
func (pc *PrintingController) ConfirmPrint(c *fiber.Ctx) error {
	var req printingTypes.ConfirmPrintRequest
	if err := c.BodyParser(&req); err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	record, err := pc.Gate.RecordPrint(req.ContainerID, middleware.CallerID(c), req.DocumentNumber)
	if err != nil {
		return pc.fail(c, err)
	}

	if _, err := pc.Gate.IncrementCounter(); err != nil {
		logger.Error("Failed to advance delivery counter", err)
	}

	return pc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Print recorded successfully",
		Data:    record,
	})
}

// Counter returns the current delivery order counter value and its formatted
// document number.
func (pc *PrintingController) Counter(c *fiber.Ctx) error {
	counter, err := pc.Gate.CurrentCounter()
	if err != nil {
		return pc.fail(c, err)
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery counter",
		Data: map[string]interface{}{
			"counter":         counter,
			"document_number": utils.FormatDocumentNumber(counter),
		},
	})
}

// Grant creates a one-time print authorization (admin only).
func (pc *PrintingController) Grant(c *fiber.Ctx) error {
	var req printingTypes.GrantRequest
	if err := c.BodyParser(&req); err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	auth, err := pc.Gate.Grant(req.ContainerID, req.UserID, middleware.CallerID(c))
	if err != nil {
		return pc.fail(c, err)
	}

	return pc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Authorization granted successfully",
		Data:    auth,
	})
}

// Revoke deletes an authorization (admin only).
func (pc *PrintingController) Revoke(c *fiber.Ctx) error {
	authID, err := c.ParamsInt("id")
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid authorization id",
		})
	}

	if err := pc.Gate.Revoke(uint(authID)); err != nil {
		return pc.fail(c, err)
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Authorization revoked successfully",
	})
}

// RequestAccess files a pending print access request for the authenticated
// user.
func (pc *PrintingController) RequestAccess(c *fiber.Ctx) error {
	containerID, err := c.ParamsInt("id")
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid container id",
		})
	}

	req, err := pc.Gate.RequestAccess(uint(containerID), middleware.CallerID(c))
	if err != nil {
		return pc.fail(c, err)
	}

	return pc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Access request submitted successfully",
		Data:    req,
	})
}

// ListRequests returns access requests, admins see all, other users their
// own. ?status=pending narrows the listing.
func (pc *PrintingController) ListRequests(c *fiber.Ctx) error {
	q := pc.DB.Model(&printingModel.AccessRequest{}).Order("requested_at DESC, id DESC")
	if !middleware.IsAdmin(c) {
		q = q.Where("user_id = ?", middleware.CallerID(c))
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var requests []printingModel.AccessRequest
	if err := q.Find(&requests).Error; err != nil {
		return pc.fail(c, err)
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Access requests",
		Data:    requests,
	})
}

// Approve approves a pending request and issues the authorization (admin
// only).
func (pc *PrintingController) Approve(c *fiber.Ctx) error {
	requestID, err := c.ParamsInt("id")
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request id",
		})
	}

	auth, err := pc.Gate.ApproveRequest(uint(requestID), middleware.CallerID(c))
	if err != nil {
		return pc.fail(c, err)
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Request approved successfully",
		Data:    auth,
	})
}

// Reject rejects a pending request (admin only).
func (pc *PrintingController) Reject(c *fiber.Ctx) error {
	requestID, err := c.ParamsInt("id")
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request id",
		})
	}

	if err := pc.Gate.RejectRequest(uint(requestID), middleware.CallerID(c)); err != nil {
		return pc.fail(c, err)
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Request rejected successfully",
	})
}

// ListAuthorizations returns the authorizations for one container (admin
// only).
func (pc *PrintingController) ListAuthorizations(c *fiber.Ctx) error {
	containerID, err := c.ParamsInt("id")
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid container id",
		})
	}

	var auths []printingModel.Authorization
	if err := pc.DB.Where("container_id = ?", containerID).
		Order("created_at DESC").Find(&auths).Error; err != nil {
		return pc.fail(c, err)
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Authorizations",
		Data:    auths,
	})
}

// PrintHistory returns the print records for one container.
func (pc *PrintingController) PrintHistory(c *fiber.Ctx) error {
	containerID, err := c.ParamsInt("id")
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid container id",
		})
	}

	var records []printingModel.PrintRecord
	if err := pc.DB.Where("container_id = ?", containerID).
		Order("printed_at DESC, id DESC").Find(&records).Error; err != nil {
		return pc.fail(c, err)
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Print history",
		Data:    records,
	})
}
