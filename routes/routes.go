package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"container-tracking/controllers/auth"
	"container-tracking/controllers/container"
	"container-tracking/controllers/printing"
	"container-tracking/controllers/user"
	"container-tracking/controllers/vessel"
	"container-tracking/logger"
	"container-tracking/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	authController := auth.NewAuthController(db, asyncLogger)
	userController := user.NewUserController(db, asyncLogger)
	containerController := container.NewContainerController(db, asyncLogger)
	vesselController := vessel.NewVesselController(db, asyncLogger)
	printingController := printing.NewPrintingController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "container-tracking", "status": "ok"})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/login", authController.Login)

	/*=============================================================================
	| Auth Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAuthentication())
	authGroup.Get("/profile", authController.Profile)
	authGroup.Post("/register", authController.Register)

	userGroup := api.Group("/users").Use(middleware.RequireAdmin())
	userGroup.Get("/", userController.List)

	/*=============================================================================
	| Container Routes
	===============================================================================*/
	containers := api.Group("/containers").Use(middleware.RequireAuthentication())
	containers.Get("/", containerController.List)
	containers.Post("/", containerController.Register)
	containers.Get("/search", containerController.Search)
	containers.Get("/exists/:number", containerController.Exists)
	containers.Post("/bulk/load", containerController.BulkLoad)
	containers.Post("/bulk/discharge", containerController.BulkDischarge)
	containers.Post("/bulk/status", containerController.BulkStatus)
	containers.Get("/:id", containerController.Detail)
	containers.Put("/:id", containerController.UpdateDetails)
	containers.Delete("/:id", middleware.RequireAdmin(), containerController.Delete)
	containers.Post("/:id/status", containerController.SetStatus)
	containers.Post("/:id/load", containerController.Load)
	containers.Post("/:id/discharge", containerController.Discharge)

	/*=============================================================================
	| Vessel Routes
	===============================================================================*/
	vessels := api.Group("/vessels").Use(middleware.RequireAuthentication())
	vessels.Get("/", vesselController.List)
	vessels.Post("/", vesselController.Create)
	vessels.Post("/sweep", vesselController.Sweep)
	vessels.Get("/:id", vesselController.Detail)
	vessels.Put("/:id", vesselController.Update)
	vessels.Delete("/:id", middleware.RequireAdmin(), vesselController.Delete)

	/*=============================================================================
	| Printing Routes
	===============================================================================*/
	printGroup := api.Group("/printing").Use(middleware.RequireAuthentication())
	printGroup.Get("/containers/:id/can-print", printingController.CanPrint)
	printGroup.Get("/containers/:id/delivery-order", printingController.DeliveryOrder)
	printGroup.Get("/containers/:id/history", printingController.PrintHistory)
	printGroup.Post("/containers/:id/request-access", printingController.RequestAccess)
	printGroup.Post("/confirm", printingController.ConfirmPrint)
	printGroup.Get("/counter", printingController.Counter)
	printGroup.Get("/requests", printingController.ListRequests)

	printAdmin := printGroup.Group("/").Use(middleware.RequireAdmin())
	printAdmin.Post("/grant", printingController.Grant)
	printAdmin.Delete("/authorizations/:id", printingController.Revoke)
	printAdmin.Get("/containers/:id/authorizations", printingController.ListAuthorizations)
	printAdmin.Post("/requests/:id/approve", printingController.Approve)
	printAdmin.Post("/requests/:id/reject", printingController.Reject)
}
