package user

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"container-tracking/logger"
	userModel "container-tracking/models/user"
	"container-tracking/types"
)

// UserController exposes the user directory for authorization grants.
type UserController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewUserController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *UserController {
	return &UserController{DB: db, Logger: asyncLogger}
}

// List returns all users; the admin UI uses it to pick authorization
// grantees.
func (uc *UserController) List(c *fiber.Ctx) error {
	var users []userModel.User
	if err := uc.DB.Order("username ASC").Find(&users).Error; err != nil {
		logger.Error("Failed to list users", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Users",
		Data:    users,
	})
}
