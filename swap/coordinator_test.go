package swap

import (
	"errors"
	"sync"
	"testing"

	"github.com/slotswap/slotswap_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatorAcceptSwapsOwnership(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	coordinator := NewCoordinator(db)

	mine := createSlot(t, db, alice.ID, "Morning", 9, 10, models.StatusSwappable)
	theirs := createSlot(t, db, bob.ID, "Afternoon", 14, 15, models.StatusSwappable)

	request, err := coordinator.CreateRequest(alice.ID, mine.ID, theirs.ID)
	require.NoError(t, err)

	accepted, invalidated, err := coordinator.Accept(request.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SwapAccepted, accepted.Status)
	assert.Empty(t, invalidated)

	// Ownership exchanged, both slots settled BUSY.
	swappedMine := getSlot(t, db, mine.ID)
	swappedTheirs := getSlot(t, db, theirs.ID)
	assert.Equal(t, bob.ID, swappedMine.UserID)
	assert.Equal(t, alice.ID, swappedTheirs.UserID)
	assert.Equal(t, models.StatusBusy, swappedMine.Status)
	assert.Equal(t, models.StatusBusy, swappedTheirs.Status)
}

func TestCoordinatorAcceptIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	coordinator := NewCoordinator(db)

	mine := createSlot(t, db, alice.ID, "Morning", 9, 10, models.StatusSwappable)
	theirs := createSlot(t, db, bob.ID, "Afternoon", 14, 15, models.StatusSwappable)

	request, err := coordinator.CreateRequest(alice.ID, mine.ID, theirs.ID)
	require.NoError(t, err)

	_, _, err = coordinator.Accept(request.ID, bob.ID)
	require.NoError(t, err)

	_, _, err = coordinator.Accept(request.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotPending)

	// No double exchange: owners reflect exactly one swap.
	assert.Equal(t, bob.ID, getSlot(t, db, mine.ID).UserID)
	assert.Equal(t, alice.ID, getSlot(t, db, theirs.ID).UserID)
}

func TestCoordinatorAcceptAuthorization(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	coordinator := NewCoordinator(db)

	mine := createSlot(t, db, alice.ID, "Morning", 9, 10, models.StatusSwappable)
	theirs := createSlot(t, db, bob.ID, "Afternoon", 14, 15, models.StatusSwappable)

	request, err := coordinator.CreateRequest(alice.ID, mine.ID, theirs.ID)
	require.NoError(t, err)

	// Neither the requester nor a bystander can accept.
	_, _, err = coordinator.Accept(request.ID, alice.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, _, err = coordinator.Accept(request.ID, carol.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = coordinator.Accept(9999, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCoordinatorAcceptConflictOnStaleSlot(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	coordinator := NewCoordinator(db)

	mine := createSlot(t, db, alice.ID, "Morning", 9, 10, models.StatusSwappable)
	theirs := createSlot(t, db, bob.ID, "Afternoon", 14, 15, models.StatusSwappable)

	request, err := coordinator.CreateRequest(alice.ID, mine.ID, theirs.ID)
	require.NoError(t, err)

	// The requester's slot leaves the market behind the coordinator's back.
	_, err = NewRegistry(db).SetStatus(mine.ID, models.StatusBusy, alice.ID)
	require.NoError(t, err)

	_, _, err = coordinator.Accept(request.ID, bob.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// Aborted accept mutates nothing.
	assert.Equal(t, alice.ID, getSlot(t, db, mine.ID).UserID)
	assert.Equal(t, bob.ID, getSlot(t, db, theirs.ID).UserID)
	assert.Equal(t, models.StatusSwappable, getSlot(t, db, theirs.ID).Status)
	assert.Equal(t, models.SwapPending, getRequest(t, db, request.ID).Status)
}

func TestCoordinatorAcceptCascadesInvalidation(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	coordinator := NewCoordinator(db)

	s1 := createSlot(t, db, alice.ID, "S1", 9, 10, models.StatusSwappable)
	s2 := createSlot(t, db, bob.ID, "S2", 14, 15, models.StatusSwappable)
	s3 := createSlot(t, db, carol.ID, "S3", 14, 15, models.StatusSwappable)

	fromAlice, err := coordinator.CreateRequest(alice.ID, s1.ID, s2.ID)
	require.NoError(t, err)
	fromCarol, err := coordinator.CreateRequest(carol.ID, s3.ID, s2.ID)
	require.NoError(t, err)

	accepted, invalidated, err := coordinator.Accept(fromAlice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SwapAccepted, accepted.Status)

	require.Len(t, invalidated, 1)
	assert.Equal(t, fromCarol.ID, invalidated[0].ID)
	assert.Equal(t, models.SwapRejected, invalidated[0].Status)
	assert.Equal(t, models.ReasonSlotUnavailable, invalidated[0].Resolution)

	// The competing request is terminal in the store too.
	stored := getRequest(t, db, fromCarol.ID)
	assert.Equal(t, models.SwapRejected, stored.Status)
	assert.Equal(t, models.ReasonSlotUnavailable, stored.Resolution)

	// Carol's slot never changed hands and is still hers to offer.
	assert.Equal(t, carol.ID, getSlot(t, db, s3.ID).UserID)
	assert.Equal(t, models.StatusSwappable, getSlot(t, db, s3.ID).Status)
}

func TestCoordinatorConcurrentAcceptsOnSharedSlot(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	coordinator := NewCoordinator(db)

	s1 := createSlot(t, db, alice.ID, "S1", 9, 10, models.StatusSwappable)
	s2 := createSlot(t, db, bob.ID, "S2", 14, 15, models.StatusSwappable)
	s3 := createSlot(t, db, carol.ID, "S3", 14, 15, models.StatusSwappable)

	fromAlice, err := coordinator.CreateRequest(alice.ID, s1.ID, s2.ID)
	require.NoError(t, err)
	fromCarol, err := coordinator.CreateRequest(carol.ID, s3.ID, s2.ID)
	require.NoError(t, err)

	// Bob accepts both requests at once. Both reference S2, so exactly one
	// may commit.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []uint{fromAlice.ID, fromCarol.ID} {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			_, _, errs[i] = coordinator.Accept(id, bob.ID)
		}(i, id)
	}
	wg.Wait()

	var accepted, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, ErrConflict), errors.Is(err, ErrNotPending):
			lost++
		default:
			t.Fatalf("unexpected accept error: %v", err)
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, lost)

	// Exactly one request is ACCEPTED; the other was force-rejected.
	var acceptedCount int64
	require.NoError(t, db.Model(&models.SwapRequest{}).
		Where("status = ?", models.SwapAccepted).Count(&acceptedCount).Error)
	assert.EqualValues(t, 1, acceptedCount)

	var rejected models.SwapRequest
	require.NoError(t, db.Where("status = ?", models.SwapRejected).First(&rejected).Error)
	assert.Equal(t, models.ReasonSlotUnavailable, rejected.Resolution)

	// S2 changed hands exactly once and no slot is left LOCKED.
	assert.NotEqual(t, bob.ID, getSlot(t, db, s2.ID).UserID)
	var locked int64
	require.NoError(t, db.Model(&models.Event{}).
		Where("status = ?", models.StatusLocked).Count(&locked).Error)
	assert.Zero(t, locked)
}

func TestCoordinatorConcurrentDisjointAcceptsBothSucceed(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	coordinator := NewCoordinator(db)

	a1 := createSlot(t, db, alice.ID, "A1", 8, 9, models.StatusSwappable)
	a2 := createSlot(t, db, alice.ID, "A2", 10, 11, models.StatusSwappable)
	b1 := createSlot(t, db, bob.ID, "B1", 13, 14, models.StatusSwappable)
	b2 := createSlot(t, db, bob.ID, "B2", 15, 16, models.StatusSwappable)

	r1, err := coordinator.CreateRequest(alice.ID, a1.ID, b1.ID)
	require.NoError(t, err)
	r2, err := coordinator.CreateRequest(alice.ID, a2.ID, b2.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []uint{r1.ID, r2.ID} {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			_, _, errs[i] = coordinator.Accept(id, bob.ID)
		}(i, id)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.Equal(t, bob.ID, getSlot(t, db, a1.ID).UserID)
	assert.Equal(t, bob.ID, getSlot(t, db, a2.ID).UserID)
	assert.Equal(t, alice.ID, getSlot(t, db, b1.ID).UserID)
	assert.Equal(t, alice.ID, getSlot(t, db, b2.ID).UserID)
}

func TestCoordinatorReject(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	coordinator := NewCoordinator(db)

	mine := createSlot(t, db, alice.ID, "Morning", 9, 10, models.StatusSwappable)
	theirs := createSlot(t, db, bob.ID, "Afternoon", 14, 15, models.StatusSwappable)

	request, err := coordinator.CreateRequest(alice.ID, mine.ID, theirs.ID)
	require.NoError(t, err)

	rejected, err := coordinator.Reject(request.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SwapRejected, rejected.Status)
	assert.Equal(t, models.ReasonTargetDeclined, rejected.Resolution)

	// A decline never touches the slots.
	assert.Equal(t, alice.ID, getSlot(t, db, mine.ID).UserID)
	assert.Equal(t, models.StatusSwappable, getSlot(t, db, mine.ID).Status)
	assert.Equal(t, models.StatusSwappable, getSlot(t, db, theirs.ID).Status)
}

func TestCoordinatorCancel(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	coordinator := NewCoordinator(db)

	mine := createSlot(t, db, alice.ID, "Morning", 9, 10, models.StatusSwappable)
	theirs := createSlot(t, db, bob.ID, "Afternoon", 14, 15, models.StatusSwappable)

	request, err := coordinator.CreateRequest(alice.ID, mine.ID, theirs.ID)
	require.NoError(t, err)

	// The target cannot withdraw the requester's proposal.
	_, err = coordinator.Cancel(request.ID, bob.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	cancelled, err := coordinator.Cancel(request.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SwapCancelled, cancelled.Status)
	assert.Equal(t, models.ReasonRequesterCancelled, cancelled.Resolution)

	// A cancel arriving after settlement lost the race.
	_, err = coordinator.Cancel(request.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestCoordinatorCancelAfterAcceptLosesRace(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	coordinator := NewCoordinator(db)

	mine := createSlot(t, db, alice.ID, "Morning", 9, 10, models.StatusSwappable)
	theirs := createSlot(t, db, bob.ID, "Afternoon", 14, 15, models.StatusSwappable)

	request, err := coordinator.CreateRequest(alice.ID, mine.ID, theirs.ID)
	require.NoError(t, err)

	_, _, err = coordinator.Accept(request.ID, bob.ID)
	require.NoError(t, err)

	_, err = coordinator.Cancel(request.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotPending)

	// The completed exchange stands.
	assert.Equal(t, bob.ID, getSlot(t, db, mine.ID).UserID)
	assert.Equal(t, models.SwapAccepted, getRequest(t, db, request.ID).Status)
}

func TestCoordinatorUpdateSlotCascades(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	coordinator := NewCoordinator(db)

	mine := createSlot(t, db, alice.ID, "Morning", 9, 10, models.StatusSwappable)
	theirs := createSlot(t, db, bob.ID, "Afternoon", 14, 15, models.StatusSwappable)

	request, err := coordinator.CreateRequest(alice.ID, mine.ID, theirs.ID)
	require.NoError(t, err)

	// A title edit does not change what is being exchanged.
	title := "Early morning"
	_, invalidated, err := coordinator.UpdateSlot(theirs.ID, bob.ID, SlotUpdate{Title: &title})
	require.NoError(t, err)
	assert.Empty(t, invalidated)
	assert.Equal(t, models.SwapPending, getRequest(t, db, request.ID).Status)

	// Moving the slot rejects every pending request that referenced it.
	newStart, newEnd := at(15), at(16)
	_, invalidated, err = coordinator.UpdateSlot(theirs.ID, bob.ID, SlotUpdate{StartTime: &newStart, EndTime: &newEnd})
	require.NoError(t, err)
	require.Len(t, invalidated, 1)
	assert.Equal(t, request.ID, invalidated[0].ID)

	stored := getRequest(t, db, request.ID)
	assert.Equal(t, models.SwapRejected, stored.Status)
	assert.Equal(t, models.ReasonSlotUnavailable, stored.Resolution)
}

func TestCoordinatorUpdateSlotLeavingMarketCascades(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	coordinator := NewCoordinator(db)

	mine := createSlot(t, db, alice.ID, "Morning", 9, 10, models.StatusSwappable)
	theirs := createSlot(t, db, bob.ID, "Afternoon", 14, 15, models.StatusSwappable)

	request, err := coordinator.CreateRequest(alice.ID, mine.ID, theirs.ID)
	require.NoError(t, err)

	busy := models.StatusBusy
	_, invalidated, err := coordinator.UpdateSlot(mine.ID, alice.ID, SlotUpdate{Status: &busy})
	require.NoError(t, err)
	require.Len(t, invalidated, 1)
	assert.Equal(t, request.ID, invalidated[0].ID)
}

func TestCoordinatorDeleteSlot(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	coordinator := NewCoordinator(db)

	mine := createSlot(t, db, alice.ID, "Morning", 9, 10, models.StatusSwappable)
	theirs := createSlot(t, db, bob.ID, "Afternoon", 14, 15, models.StatusSwappable)

	request, err := coordinator.CreateRequest(alice.ID, mine.ID, theirs.ID)
	require.NoError(t, err)

	err = coordinator.DeleteSlot(mine.ID, alice.ID)
	assert.ErrorIs(t, err, ErrPendingRequestExists)

	_, err = coordinator.Cancel(request.ID, alice.ID)
	require.NoError(t, err)

	require.NoError(t, coordinator.DeleteSlot(mine.ID, alice.ID))
	_, err = NewRegistry(db).Get(mine.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCoordinatorRoundTrip(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	coordinator := NewCoordinator(db)
	registry := NewRegistry(db)

	// create -> opt in -> propose -> accept changes the owner exactly once.
	mine, err := registry.Create(alice.ID, "Morning", at(9), at(10), "")
	require.NoError(t, err)
	_, err = registry.SetStatus(mine.ID, models.StatusSwappable, alice.ID)
	require.NoError(t, err)

	theirs := createSlot(t, db, bob.ID, "Afternoon", 14, 15, models.StatusSwappable)

	request, err := coordinator.CreateRequest(alice.ID, mine.ID, theirs.ID)
	require.NoError(t, err)
	_, _, err = coordinator.Accept(request.ID, bob.ID)
	require.NoError(t, err)

	final := getSlot(t, db, mine.ID)
	assert.Equal(t, bob.ID, final.UserID)
	assert.Equal(t, models.StatusBusy, final.Status)
}

func TestCoordinatorCreateRequestGuards(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	coordinator := NewCoordinator(db)

	mine := createSlot(t, db, alice.ID, "Morning", 9, 10, models.StatusSwappable)
	theirs := createSlot(t, db, bob.ID, "Afternoon", 14, 15, models.StatusSwappable)

	// Proposing with someone else's slot as one's own is refused.
	_, err := coordinator.CreateRequest(bob.ID, mine.ID, theirs.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = coordinator.CreateRequest(alice.ID, 9999, theirs.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = coordinator.CreateRequest(alice.ID, mine.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
