package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"container-tracking/apperrors"
	containerModel "container-tracking/models/container"
	printingModel "container-tracking/models/printing"
	vesselModel "container-tracking/models/vessel"
	"container-tracking/services/lifecycle"
	"container-tracking/services/location"
	"container-tracking/testhelpers"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func params(date string) lifecycle.TransitionParams {
	return lifecycle.TransitionParams{Date: day(date), Location: "Moroni"}
}

func loadContainer(t *testing.T, db *gorm.DB, c *lifecycle.Coordinator, ctrID, vslID uint) {
	t.Helper()
	require.NoError(t, c.Load(ctrID, vslID, params("2026-03-01")))
}

func TestLoadCreatesMovementAndStatusTogether(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	vsl := testhelpers.CreateVessel(t, db, "Ever Given", vesselModel.StatusEnRoute)
	coordinator := lifecycle.NewCoordinator(db)

	loadContainer(t, db, coordinator, ctr.ID, vsl.ID)

	var movements []containerModel.MovementEvent
	require.NoError(t, db.Where("container_id = ?", ctr.ID).Find(&movements).Error)
	require.Len(t, movements, 1)
	assert.Equal(t, containerModel.OperationLoad, movements[0].Operation)
	assert.Equal(t, vsl.ID, movements[0].VesselID)

	status, err := location.NewResolver(db).CurrentStatus(ctr.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, containerModel.StatusLoaded, status.Status)
}

func TestLoadRejectsDepartedVessel(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	vsl := testhelpers.CreateVessel(t, db, "Gone", vesselModel.StatusDeparted)
	coordinator := lifecycle.NewCoordinator(db)

	err := coordinator.Load(ctr.ID, vsl.ID, params("2026-03-01"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidTransition, apperrors.KindOf(err))

	var count int64
	require.NoError(t, db.Model(&containerModel.MovementEvent{}).Where("container_id = ?", ctr.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoadRejectsContainerAlreadyOnAnyVessel(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	first := testhelpers.CreateVessel(t, db, "First", vesselModel.StatusEnRoute)
	second := testhelpers.CreateVessel(t, db, "Second", vesselModel.StatusEnRoute)
	coordinator := lifecycle.NewCoordinator(db)

	loadContainer(t, db, coordinator, ctr.ID, first.ID)

	err := coordinator.Load(ctr.ID, second.ID, params("2026-03-02"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidTransition, apperrors.KindOf(err))
}

func TestLoadRevokesUnusedAuthorizationsAndPendingRequests(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	vsl := testhelpers.CreateVessel(t, db, "Ever Given", vesselModel.StatusEnRoute)
	admin := testhelpers.CreateUser(t, db, "admin", true)
	grantee := testhelpers.CreateUser(t, db, "clerk", false)
	coordinator := lifecycle.NewCoordinator(db)

	require.NoError(t, db.Create(&printingModel.Authorization{
		ContainerID:    ctr.ID,
		UserID:         grantee.ID,
		AuthorizedByID: admin.ID,
	}).Error)
	require.NoError(t, db.Create(&printingModel.Authorization{
		ContainerID:    ctr.ID,
		UserID:         grantee.ID,
		AuthorizedByID: admin.ID,
		Used:           true,
	}).Error)
	require.NoError(t, db.Create(&printingModel.AccessRequest{
		ContainerID: ctr.ID,
		UserID:      grantee.ID,
		Status:      printingModel.RequestPending,
	}).Error)
	require.NoError(t, db.Create(&printingModel.PrintRecord{
		ContainerID:    ctr.ID,
		UserID:         grantee.ID,
		DocumentNumber: "DO-000001",
	}).Error)

	loadContainer(t, db, coordinator, ctr.ID, vsl.ID)

	var unused, used, pending, prints int64
	require.NoError(t, db.Model(&printingModel.Authorization{}).Where("container_id = ? AND used = ?", ctr.ID, false).Count(&unused).Error)
	require.NoError(t, db.Model(&printingModel.Authorization{}).Where("container_id = ? AND used = ?", ctr.ID, true).Count(&used).Error)
	require.NoError(t, db.Model(&printingModel.AccessRequest{}).Where("container_id = ? AND status = ?", ctr.ID, printingModel.RequestPending).Count(&pending).Error)
	require.NoError(t, db.Model(&printingModel.PrintRecord{}).Where("container_id = ?", ctr.ID).Count(&prints).Error)

	assert.Zero(t, unused, "unused authorizations must be revoked")
	assert.EqualValues(t, 1, used, "consumed authorizations stay for audit")
	assert.Zero(t, pending, "pending requests must be revoked")
	assert.EqualValues(t, 1, prints, "print history is preserved")
}

func TestDischargeRequiresVessel(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	coordinator := lifecycle.NewCoordinator(db)

	err := coordinator.Discharge(ctr.ID, params("2026-03-02"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidTransition, apperrors.KindOf(err))
}

func TestDischargeRecordsVesselAndStrippingDate(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	vsl := testhelpers.CreateVessel(t, db, "Ever Given", vesselModel.StatusArrived)
	coordinator := lifecycle.NewCoordinator(db)

	loadContainer(t, db, coordinator, ctr.ID, vsl.ID)
	require.NoError(t, coordinator.Discharge(ctr.ID, lifecycle.TransitionParams{
		Date:     day("2026-03-05"),
		Location: "Mutsamudu",
	}))

	status, err := location.NewResolver(db).CurrentStatus(ctr.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, containerModel.StatusDischarged, status.Status)
	assert.Contains(t, status.Notes, "Discharged from vessel Ever Given")

	var reloaded containerModel.Container
	require.NoError(t, db.First(&reloaded, ctr.ID).Error)
	require.NotNil(t, reloaded.StrippingDate)
	assert.True(t, reloaded.StrippingDate.Equal(day("2026-03-05")))

	current, err := location.NewResolver(db).CurrentVessel(ctr.ID)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestSetStatusAutoDischargesVesselResident(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	vsl := testhelpers.CreateVessel(t, db, "Ever Given", vesselModel.StatusArrived)
	coordinator := lifecycle.NewCoordinator(db)

	loadContainer(t, db, coordinator, ctr.ID, vsl.ID)
	require.NoError(t, coordinator.SetStatus(ctr.ID, containerModel.StatusEmptied, lifecycle.TransitionParams{
		Date:     day("2026-03-06"),
		Location: "Moroni",
	}))

	var movements []containerModel.MovementEvent
	require.NoError(t, db.Where("container_id = ?", ctr.ID).Order("id ASC").Find(&movements).Error)
	require.Len(t, movements, 2)
	assert.Equal(t, containerModel.OperationDischarge, movements[1].Operation)
	assert.Contains(t, movements[1].Notes, "Automatically discharged due to status change to 'emptied'")

	status, err := location.NewResolver(db).CurrentStatus(ctr.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, containerModel.StatusEmptied, status.Status)
	assert.Contains(t, status.Notes, "Automatically discharged from vessel Ever Given")

	current, err := location.NewResolver(db).CurrentVessel(ctr.ID)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestSetStatusLoadedKeepsContainerOnVessel(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	vsl := testhelpers.CreateVessel(t, db, "Ever Given", vesselModel.StatusEnRoute)
	coordinator := lifecycle.NewCoordinator(db)

	loadContainer(t, db, coordinator, ctr.ID, vsl.ID)
	require.NoError(t, coordinator.SetStatus(ctr.ID, containerModel.StatusLoaded, params("2026-03-02")))

	var movements int64
	require.NoError(t, db.Model(&containerModel.MovementEvent{}).Where("container_id = ?", ctr.ID).Count(&movements).Error)
	assert.EqualValues(t, 1, movements, "no synthetic discharge for a loaded status change")

	current, err := location.NewResolver(db).CurrentVessel(ctr.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, vsl.ID, current.ID)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	coordinator := lifecycle.NewCoordinator(db)

	err := coordinator.SetStatus(ctr.ID, "teleported", params("2026-03-02"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidTransition, apperrors.KindOf(err))
}

func TestSetStatusDefaultNotes(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	coordinator := lifecycle.NewCoordinator(db)

	require.NoError(t, coordinator.SetStatus(ctr.ID, containerModel.StatusEmptied, params("2026-03-02")))

	status, err := location.NewResolver(db).CurrentStatus(ctr.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, "Empty Container", status.Notes)
}

func TestSetStatusMissingContainer(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	coordinator := lifecycle.NewCoordinator(db)

	err := coordinator.SetStatus(9999, containerModel.StatusFull, params("2026-03-02"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
