package printing_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"container-tracking/constants"
	"container-tracking/controllers/printing"
	"container-tracking/logger"
	printingModel "container-tracking/models/printing"
	"container-tracking/testhelpers"
)

func TestListRequestsOrdersNewestFirst(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU0000001")
	clerk := testhelpers.CreateUser(t, db, "clerk", false)

	// The older row gets the higher id so an accidental id ordering would
	// also be caught.
	newer := printingModel.AccessRequest{
		ContainerID: ctr.ID,
		UserID:      clerk.ID,
		Status:      printingModel.RequestApproved,
		RequestedAt: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&newer).Error)
	older := printingModel.AccessRequest{
		ContainerID: ctr.ID,
		UserID:      clerk.ID,
		Status:      printingModel.RequestPending,
		RequestedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&older).Error)

	pc := printing.NewPrintingController(db, logger.NewAsyncLogger(db))
	app := fiber.New()
	app.Get("/requests", func(c *fiber.Ctx) error {
		c.Locals(constants.LocalsIsAdmin, true)
		return c.Next()
	}, pc.ListRequests)

	resp, err := app.Test(httptest.NewRequest("GET", "/requests", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status int                           `json:"status"`
		Data   []printingModel.AccessRequest `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, newer.ID, body.Data[0].ID)
	assert.Equal(t, older.ID, body.Data[1].ID)
}

func TestListRequestsFiltersByStatus(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU0000001")
	clerk := testhelpers.CreateUser(t, db, "clerk", false)

	require.NoError(t, db.Create(&printingModel.AccessRequest{
		ContainerID: ctr.ID,
		UserID:      clerk.ID,
		Status:      printingModel.RequestPending,
	}).Error)
	require.NoError(t, db.Create(&printingModel.AccessRequest{
		ContainerID: ctr.ID,
		UserID:      clerk.ID,
		Status:      printingModel.RequestRejected,
	}).Error)

	pc := printing.NewPrintingController(db, logger.NewAsyncLogger(db))
	app := fiber.New()
	app.Get("/requests", func(c *fiber.Ctx) error {
		c.Locals(constants.LocalsIsAdmin, true)
		return c.Next()
	}, pc.ListRequests)

	resp, err := app.Test(httptest.NewRequest("GET", "/requests?status=pending", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []printingModel.AccessRequest `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, printingModel.RequestPending, body.Data[0].Status)
}
