package printgate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"container-tracking/apperrors"
	printingModel "container-tracking/models/printing"
	userModel "container-tracking/models/user"
	vesselModel "container-tracking/models/vessel"
	"container-tracking/services/authz"
	"container-tracking/services/lifecycle"
	"container-tracking/services/printgate"
	"container-tracking/testhelpers"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	db          *gorm.DB
	gate        *printgate.Gate
	coordinator *lifecycle.Coordinator
	admin       *userModel.User
	clerk       *userModel.User
	vessel      *vesselModel.Vessel
}

func newFixture(t *testing.T) *fixture {
	db := testhelpers.NewTestDB(t)
	return &fixture{
		db:          db,
		gate:        printgate.NewGate(db, authz.NewDBAdminChecker()),
		coordinator: lifecycle.NewCoordinator(db),
		admin:       testhelpers.CreateUser(t, db, "admin", true),
		clerk:       testhelpers.CreateUser(t, db, "clerk", false),
		vessel:      testhelpers.CreateVessel(t, db, "Ever Given", vesselModel.StatusArrived),
	}
}

// dischargedContainer runs a full load/discharge so the container is eligible
// for a delivery order.
func (f *fixture) dischargedContainer(t *testing.T, number string) uint {
	t.Helper()
	ctr := testhelpers.CreateContainer(t, f.db, number)
	require.NoError(t, f.coordinator.Load(ctr.ID, f.vessel.ID, lifecycle.TransitionParams{
		Date: day("2026-03-01"), Location: "Moroni",
	}))
	require.NoError(t, f.coordinator.Discharge(ctr.ID, lifecycle.TransitionParams{
		Date: day("2026-03-05"), Location: "Mutsamudu",
	}))
	return ctr.ID
}

func TestCanPrintDeniedForNonDischargedContainer(t *testing.T) {
	f := newFixture(t)
	ctr := testhelpers.CreateContainer(t, f.db, "MSKU0000001")

	allowed, err := f.gate.CanPrint(ctr.ID, f.admin.ID)
	require.NoError(t, err)
	assert.False(t, allowed, "even admins only print discharged containers")
}

func TestAdminAlwaysAllowed(t *testing.T) {
	f := newFixture(t)
	id := f.dischargedContainer(t, "MSKU0000001")

	for i := 0; i < 3; i++ {
		allowed, err := f.gate.CanPrint(id, f.admin.ID)
		require.NoError(t, err)
		assert.True(t, allowed)
		_, err = f.gate.RecordPrint(id, f.admin.ID, "DO-000001")
		require.NoError(t, err)
	}
}

func TestRecordPrintHoldsOnlyOneConnection(t *testing.T) {
	f := newFixture(t)

	// With the pool capped at one connection, every read inside RecordPrint
	// (admin check included) must go through the transaction handle or the
	// print deadlocks waiting for a second connection.
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	id := f.dischargedContainer(t, "MSKU0000001")

	record, err := f.gate.RecordPrint(id, f.admin.ID, "DO-000001")
	require.NoError(t, err)
	assert.Equal(t, f.admin.ID, record.UserID)
}

func TestFirstPrintAllowedSecondDenied(t *testing.T) {
	f := newFixture(t)
	id := f.dischargedContainer(t, "MSKU0000001")

	allowed, err := f.gate.CanPrint(id, f.clerk.ID)
	require.NoError(t, err)
	assert.True(t, allowed, "a first print is always permitted")

	_, err = f.gate.RecordPrint(id, f.clerk.ID, "DO-000001")
	require.NoError(t, err)

	allowed, err = f.gate.CanPrint(id, f.clerk.ID)
	require.NoError(t, err)
	assert.False(t, allowed, "reprints need an authorization")
}

func TestAuthorizationConsumedExactlyOnce(t *testing.T) {
	f := newFixture(t)
	id := f.dischargedContainer(t, "MSKU0000001")

	// Burn the free first print with another user.
	other := testhelpers.CreateUser(t, f.db, "other", false)
	_, err := f.gate.RecordPrint(id, other.ID, "DO-000001")
	require.NoError(t, err)

	auth, err := f.gate.Grant(id, f.clerk.ID, f.admin.ID)
	require.NoError(t, err)

	record, err := f.gate.RecordPrint(id, f.clerk.ID, "DO-000002")
	require.NoError(t, err)
	require.NotNil(t, record.AuthorizedByID)
	assert.Equal(t, f.admin.ID, *record.AuthorizedByID)

	var reloaded printingModel.Authorization
	require.NoError(t, f.db.First(&reloaded, auth.ID).Error)
	assert.True(t, reloaded.Used)

	_, err = f.gate.RecordPrint(id, f.clerk.ID, "DO-000003")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAlreadyConsumed, apperrors.KindOf(err))

	var prints int64
	require.NoError(t, f.db.Model(&printingModel.PrintRecord{}).Where("container_id = ?", id).Count(&prints).Error)
	assert.EqualValues(t, 2, prints, "the denied attempt must not insert a record")
}

func TestGrantRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	id := f.dischargedContainer(t, "MSKU0000001")

	_, err := f.gate.Grant(id, f.clerk.ID, f.clerk.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidTransition, apperrors.KindOf(err))
}

func TestGrantRejectsDuplicateUnusedAuthorization(t *testing.T) {
	f := newFixture(t)
	id := f.dischargedContainer(t, "MSKU0000001")

	_, err := f.gate.Grant(id, f.clerk.ID, f.admin.ID)
	require.NoError(t, err)

	_, err = f.gate.Grant(id, f.clerk.ID, f.admin.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidTransition, apperrors.KindOf(err))
}

func TestRoundTripReopensPrinting(t *testing.T) {
	f := newFixture(t)
	id := f.dischargedContainer(t, "MSKU0000001")

	_, err := f.gate.RecordPrint(id, f.clerk.ID, "DO-000001")
	require.NoError(t, err)

	allowed, err := f.gate.CanPrint(id, f.clerk.ID)
	require.NoError(t, err)
	require.False(t, allowed)

	// Full round-trip after the print: load then discharge.
	require.NoError(t, f.coordinator.Load(id, f.vessel.ID, lifecycle.TransitionParams{
		Date: day("2026-03-10"), Location: "Mutsamudu",
	}))
	require.NoError(t, f.coordinator.Discharge(id, lifecycle.TransitionParams{
		Date: day("2026-03-15"), Location: "Moroni",
	}))

	allowed, err = f.gate.CanPrint(id, f.clerk.ID)
	require.NoError(t, err)
	assert.True(t, allowed, "a new voyage means a new delivery order")
}

func TestLoadAloneDoesNotReopenPrinting(t *testing.T) {
	f := newFixture(t)
	id := f.dischargedContainer(t, "MSKU0000001")

	_, err := f.gate.RecordPrint(id, f.clerk.ID, "DO-000001")
	require.NoError(t, err)

	require.NoError(t, f.coordinator.Load(id, f.vessel.ID, lifecycle.TransitionParams{
		Date: day("2026-03-10"), Location: "Mutsamudu",
	}))

	// Still on board: not discharged, so no delivery order at all.
	allowed, err := f.gate.CanPrint(id, f.clerk.ID)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAccessRequestApprovalIssuesOneAuthorization(t *testing.T) {
	f := newFixture(t)
	id := f.dischargedContainer(t, "MSKU0000001")

	req, err := f.gate.RequestAccess(id, f.clerk.ID)
	require.NoError(t, err)

	_, err = f.gate.RequestAccess(id, f.clerk.ID)
	require.Error(t, err, "duplicate pending requests are rejected")

	auth, err := f.gate.ApproveRequest(req.ID, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, f.clerk.ID, auth.UserID)
	assert.Equal(t, f.admin.ID, auth.AuthorizedByID)

	var count int64
	require.NoError(t, f.db.Model(&printingModel.Authorization{}).
		Where("container_id = ? AND user_id = ?", id, f.clerk.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "approval creates exactly one authorization")

	_, err = f.gate.ApproveRequest(req.ID, f.admin.ID)
	require.Error(t, err, "a settled request cannot be approved again")
}

func TestRejectRequest(t *testing.T) {
	f := newFixture(t)
	id := f.dischargedContainer(t, "MSKU0000001")

	req, err := f.gate.RequestAccess(id, f.clerk.ID)
	require.NoError(t, err)

	require.NoError(t, f.gate.RejectRequest(req.ID, f.admin.ID))

	var reloaded printingModel.AccessRequest
	require.NoError(t, f.db.First(&reloaded, req.ID).Error)
	assert.Equal(t, printingModel.RequestRejected, reloaded.Status)

	var auths int64
	require.NoError(t, f.db.Model(&printingModel.Authorization{}).
		Where("container_id = ?", id).Count(&auths).Error)
	assert.Zero(t, auths)
}

func TestRevokeAuthorization(t *testing.T) {
	f := newFixture(t)
	id := f.dischargedContainer(t, "MSKU0000001")

	auth, err := f.gate.Grant(id, f.clerk.ID, f.admin.ID)
	require.NoError(t, err)

	require.NoError(t, f.gate.Revoke(auth.ID))
	err = f.gate.Revoke(auth.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestDeliveryCounterIncrements(t *testing.T) {
	f := newFixture(t)

	first, err := f.gate.CurrentCounter()
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	next, err := f.gate.IncrementCounter()
	require.NoError(t, err)
	assert.Equal(t, 2, next)

	current, err := f.gate.CurrentCounter()
	require.NoError(t, err)
	assert.Equal(t, 2, current)
}
