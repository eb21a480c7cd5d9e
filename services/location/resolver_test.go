package location_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	containerModel "container-tracking/models/container"
	vesselModel "container-tracking/models/vessel"
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

func TestCurrentStatusUsesCreationOrderNotEffectiveDate(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	resolver := location.NewResolver(db)

	// The newer record carries an older effective date: a backfilled
	// correction. It still wins because it was created last.
	require.NoError(t, db.Create(&containerModel.StatusEvent{
		ContainerID: ctr.ID,
		Status:      containerModel.StatusFull,
		Date:        day("2026-03-10"),
		Location:    "Moroni",
	}).Error)
	require.NoError(t, db.Create(&containerModel.StatusEvent{
		ContainerID: ctr.ID,
		Status:      containerModel.StatusEmptied,
		Date:        day("2026-03-01"),
		Location:    "Moroni",
	}).Error)

	status, err := resolver.CurrentStatus(ctr.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, containerModel.StatusEmptied, status.Status)
}

func TestCurrentStatusTieBrokenByHighestID(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	resolver := location.NewResolver(db)

	createdAt := day("2026-03-05")
	require.NoError(t, db.Create(&containerModel.StatusEvent{
		ContainerID: ctr.ID,
		Status:      containerModel.StatusFull,
		Date:        day("2026-03-05"),
		Location:    "Moroni",
		CreatedAt:   createdAt,
	}).Error)
	require.NoError(t, db.Create(&containerModel.StatusEvent{
		ContainerID: ctr.ID,
		Status:      containerModel.StatusEmptied,
		Date:        day("2026-03-05"),
		Location:    "Moroni",
		CreatedAt:   createdAt,
	}).Error)

	status, err := resolver.CurrentStatus(ctr.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, containerModel.StatusEmptied, status.Status)
}

func TestCurrentLocationNoEvents(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	resolver := location.NewResolver(db)

	view, err := resolver.CurrentLocation(ctr.ID)
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestCurrentLocationFromStatusOnly(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	resolver := location.NewResolver(db)

	require.NoError(t, db.Create(&containerModel.StatusEvent{
		ContainerID: ctr.ID,
		Status:      containerModel.StatusFull,
		Date:        day("2026-03-01"),
		Location:    "Mutsamudu",
	}).Error)

	view, err := resolver.CurrentLocation(ctr.ID)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, location.TypePort, view.Type)
	assert.Equal(t, "Mutsamudu", view.Location)
}

func TestCurrentLocationOnVesselAfterLoad(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	vsl := testhelpers.CreateVessel(t, db, "Ever Given", vesselModel.StatusEnRoute)
	resolver := location.NewResolver(db)

	require.NoError(t, db.Create(&containerModel.MovementEvent{
		ContainerID: ctr.ID,
		VesselID:    vsl.ID,
		Operation:   containerModel.OperationLoad,
		Date:        day("2026-03-01"),
		Location:    "Moroni",
	}).Error)

	view, err := resolver.CurrentLocation(ctr.ID)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, location.TypeVessel, view.Type)
	require.NotNil(t, view.Vessel)
	assert.Equal(t, vsl.ID, view.Vessel.ID)

	current, err := resolver.CurrentVessel(ctr.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, vsl.ID, current.ID)
}

func TestDischargeLocationWinsOverStatusLocation(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	vsl := testhelpers.CreateVessel(t, db, "Ever Given", vesselModel.StatusEnRoute)
	resolver := location.NewResolver(db)

	require.NoError(t, db.Create(&containerModel.StatusEvent{
		ContainerID: ctr.ID,
		Status:      containerModel.StatusDischarged,
		Date:        day("2026-03-02"),
		Location:    "Somewhere Else",
	}).Error)
	require.NoError(t, db.Create(&containerModel.MovementEvent{
		ContainerID: ctr.ID,
		VesselID:    vsl.ID,
		Operation:   containerModel.OperationDischarge,
		Date:        day("2026-03-02"),
		Location:    "Mutsamudu",
	}).Error)

	view, err := resolver.CurrentLocation(ctr.ID)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, location.TypePort, view.Type)
	assert.Equal(t, "Mutsamudu", view.Location)
}

func TestIsOnDepartedVessel(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	vsl := testhelpers.CreateVessel(t, db, "Ever Given", vesselModel.StatusDeparted)
	resolver := location.NewResolver(db)

	require.NoError(t, db.Create(&containerModel.MovementEvent{
		ContainerID: ctr.ID,
		VesselID:    vsl.ID,
		Operation:   containerModel.OperationLoad,
		Date:        day("2026-03-01"),
		Location:    "Moroni",
	}).Error)

	departed, err := resolver.IsOnDepartedVessel(ctr.ID)
	require.NoError(t, err)
	assert.True(t, departed)
}

func TestLastVesselReturnsLatestDischargeVessel(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	first := testhelpers.CreateVessel(t, db, "First", vesselModel.StatusArrived)
	second := testhelpers.CreateVessel(t, db, "Second", vesselModel.StatusArrived)
	resolver := location.NewResolver(db)

	for _, vsl := range []*vesselModel.Vessel{first, second} {
		require.NoError(t, db.Create(&containerModel.MovementEvent{
			ContainerID: ctr.ID,
			VesselID:    vsl.ID,
			Operation:   containerModel.OperationLoad,
			Date:        day("2026-03-01"),
			Location:    "Moroni",
		}).Error)
		require.NoError(t, db.Create(&containerModel.MovementEvent{
			ContainerID: ctr.ID,
			VesselID:    vsl.ID,
			Operation:   containerModel.OperationDischarge,
			Date:        day("2026-03-02"),
			Location:    "Mutsamudu",
		}).Error)
	}

	last, err := resolver.LastVessel(ctr.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, second.ID, last.ID)
}

func TestContainersOnVesselExcludesCargoMovedToAnotherVessel(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	stays := testhelpers.CreateContainer(t, db, "MSKU0000001")
	moved := testhelpers.CreateContainer(t, db, "MSKU0000002")
	vslA := testhelpers.CreateVessel(t, db, "Alpha", vesselModel.StatusEnRoute)
	vslB := testhelpers.CreateVessel(t, db, "Beta", vesselModel.StatusEnRoute)
	resolver := location.NewResolver(db)

	for _, ctr := range []uint{stays.ID, moved.ID} {
		require.NoError(t, db.Create(&containerModel.MovementEvent{
			ContainerID: ctr,
			VesselID:    vslA.ID,
			Operation:   containerModel.OperationLoad,
			Date:        day("2026-03-01"),
			Location:    "Moroni",
		}).Error)
	}
	// The second container's newest movement points at another vessel, so it
	// no longer counts as on board Alpha even though Alpha's own chain ends
	// in a load.
	require.NoError(t, db.Create(&containerModel.MovementEvent{
		ContainerID: moved.ID,
		VesselID:    vslB.ID,
		Operation:   containerModel.OperationLoad,
		Date:        day("2026-03-02"),
		Location:    "Mutsamudu",
	}).Error)

	onBoard, err := resolver.ContainersOnVessel(vslA.ID)
	require.NoError(t, err)
	require.Len(t, onBoard, 1)
	assert.Equal(t, stays.ID, onBoard[0].ID)
}
