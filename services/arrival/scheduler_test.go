package arrival_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/jinzhu/now"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"container-tracking/apperrors"
	containerModel "container-tracking/models/container"
	vesselModel "container-tracking/models/vessel"
	"container-tracking/services/arrival"
	"container-tracking/services/lifecycle"
	"container-tracking/testhelpers"
)

func daysFromToday(delta int) *time.Time {
	d := now.BeginningOfDay().AddDate(0, 0, delta)
	return &d
}

func TestSweepPromotesOverdueVessel(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	vsl := testhelpers.CreateVessel(t, db, "Overdue", vesselModel.StatusEnRoute)
	dest := "Moroni"
	require.NoError(t, db.Model(vsl).Updates(map[string]interface{}{
		"eta":                 daysFromToday(-2),
		"current_destination": dest,
	}).Error)

	scheduler := arrival.NewScheduler(db)
	updated, err := scheduler.Sweep(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	var reloaded vesselModel.Vessel
	require.NoError(t, db.First(&reloaded, vsl.ID).Error)
	assert.Equal(t, vesselModel.StatusArrived, reloaded.Status)
	require.NotNil(t, reloaded.CurrentLocation)
	assert.Equal(t, "Moroni", *reloaded.CurrentLocation)
	assert.Nil(t, reloaded.CurrentDestination)
}

func TestSweepSkipsFutureETA(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	vsl := testhelpers.CreateVessel(t, db, "Early", vesselModel.StatusEnRoute)
	require.NoError(t, db.Model(vsl).Update("eta", daysFromToday(3)).Error)

	scheduler := arrival.NewScheduler(db)
	updated, err := scheduler.Sweep(nil)
	require.NoError(t, err)
	assert.Zero(t, updated)

	var reloaded vesselModel.Vessel
	require.NoError(t, db.First(&reloaded, vsl.ID).Error)
	assert.Equal(t, vesselModel.StatusEnRoute, reloaded.Status)
}

func TestSweepETADueTodayPromotes(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	vsl := testhelpers.CreateVessel(t, db, "DueToday", vesselModel.StatusEnRoute)
	require.NoError(t, db.Model(vsl).Update("eta", daysFromToday(0)).Error)

	scheduler := arrival.NewScheduler(db)
	updated, err := scheduler.Sweep(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
}

func TestSweepIsIdempotent(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	vsl := testhelpers.CreateVessel(t, db, "Overdue", vesselModel.StatusEnRoute)
	require.NoError(t, db.Model(vsl).Update("eta", daysFromToday(-1)).Error)

	scheduler := arrival.NewScheduler(db)
	updated, err := scheduler.Sweep(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	updated, err = scheduler.Sweep(nil)
	require.NoError(t, err)
	assert.Zero(t, updated, "a second sweep changes nothing")
}

func TestSweepSetsCargoArrivalDateToETA(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	vsl := testhelpers.CreateVessel(t, db, "Overdue", vesselModel.StatusEnRoute)
	eta := daysFromToday(-5)
	require.NoError(t, db.Model(vsl).Update("eta", eta).Error)

	ctr := testhelpers.CreateContainer(t, db, "MSKU1234567")
	coordinator := lifecycle.NewCoordinator(db)
	require.NoError(t, coordinator.Load(ctr.ID, vsl.ID, lifecycle.TransitionParams{
		Date:     *daysFromToday(-6),
		Location: "Moroni",
	}))

	scheduler := arrival.NewScheduler(db)
	_, err := scheduler.Sweep(nil)
	require.NoError(t, err)

	var reloaded containerModel.Container
	require.NoError(t, db.First(&reloaded, ctr.ID).Error)
	require.NotNil(t, reloaded.ArrivalDate)
	assert.True(t, reloaded.ArrivalDate.Equal(*eta), "arrival date is the planned ETA, not the sweep time")
}

func TestSweepContinuesPastFailingVessel(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	blocked := testhelpers.CreateVessel(t, db, "Blocked", vesselModel.StatusEnRoute)
	healthy := testhelpers.CreateVessel(t, db, "Healthy", vesselModel.StatusEnRoute)
	require.NoError(t, db.Model(blocked).Update("eta", daysFromToday(-1)).Error)
	require.NoError(t, db.Model(healthy).Update("eta", daysFromToday(-1)).Error)

	// Abort any promotion of the first vessel at the storage level so its
	// transaction fails while the second vessel's can still commit.
	require.NoError(t, db.Exec(fmt.Sprintf(`
		CREATE TRIGGER block_first_vessel
		BEFORE UPDATE ON vessels FOR EACH ROW
		WHEN NEW.id = %d AND NEW.status = 'Arrived'
		BEGIN
			SELECT RAISE(ABORT, 'promotion blocked');
		END`, blocked.ID)).Error)

	scheduler := arrival.NewScheduler(db)
	updated, err := scheduler.Sweep(nil)
	require.Error(t, err)
	assert.Equal(t, 1, updated, "the failing vessel must not hold back the rest")

	var reloaded vesselModel.Vessel
	require.NoError(t, db.First(&reloaded, healthy.ID).Error)
	assert.Equal(t, vesselModel.StatusArrived, reloaded.Status)

	var reloadedBlocked vesselModel.Vessel
	require.NoError(t, db.First(&reloadedBlocked, blocked.ID).Error)
	assert.Equal(t, vesselModel.StatusEnRoute, reloadedBlocked.Status)
}

func TestSweepTargetedVessel(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	target := testhelpers.CreateVessel(t, db, "Target", vesselModel.StatusEnRoute)
	other := testhelpers.CreateVessel(t, db, "Other", vesselModel.StatusEnRoute)
	require.NoError(t, db.Model(target).Update("eta", daysFromToday(-1)).Error)
	require.NoError(t, db.Model(other).Update("eta", daysFromToday(-1)).Error)

	scheduler := arrival.NewScheduler(db)
	updated, err := scheduler.Sweep(&target.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	var untouched vesselModel.Vessel
	require.NoError(t, db.First(&untouched, other.ID).Error)
	assert.Equal(t, vesselModel.StatusEnRoute, untouched.Status)
}

func TestSweepTargetedMissingVessel(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	scheduler := arrival.NewScheduler(db)

	missing := uint(9999)
	_, err := scheduler.Sweep(&missing)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
