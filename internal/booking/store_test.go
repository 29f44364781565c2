package booking_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/clubops/teesheet/internal/booking"
	"github.com/clubops/teesheet/internal/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (booking.Store, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := booking.NewStore(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, db, teardown
}

func TestCreateAndLoadBooking(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	b := newBooking(t,
		booking.Player{Name: "Tanaka", IdentityCode: "MEMBER"},
		booking.Player{Name: "Smith", IdentityCode: "GUEST"},
	)
	require.NoError(t, store.Create(b))

	loaded, err := store.Load(b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, loaded.ID)
	assert.Equal(t, booking.StatusPending, loaded.Status)
	assert.Equal(t, 18, loaded.HolesBooked)
	assert.True(t, loaded.TeeTime.Equal(b.TeeTime))
	require.Len(t, loaded.Players, 2)
	assert.Equal(t, "Tanaka", loaded.Players[0].Name)
	assert.EqualValues(t, "GUEST", loaded.Players[1].IdentityCode)
}

func TestLoadBooking_NotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.Load("nope")
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestSaveBooking_PersistsStateAndResources(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	b := newBooking(t, booking.Player{Name: "Tanaka", IdentityCode: "MEMBER"})
	require.NoError(t, store.Create(b))

	require.NoError(t, b.Transition(booking.StatusConfirmed))
	require.NoError(t, b.Transition(booking.StatusCheckedIn))
	b.Resources = booking.AssignedResources{
		CaddyID: "caddy-1",
		CartNo:  "cart-7",
		Lockers: []string{"locker-10"},
		FolioID: "folio-1",
	}
	b.Pricing = booking.PricingSummary{
		TotalFee:   decimal.NewFromInt(800),
		PaidFee:    decimal.NewFromInt(800),
		PendingFee: decimal.Zero,
	}
	require.NoError(t, store.Save(b))

	loaded, err := store.Load(b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCheckedIn, loaded.Status)
	assert.Equal(t, "caddy-1", loaded.Resources.CaddyID)
	assert.Equal(t, []string{"locker-10"}, loaded.Resources.Lockers)
	assert.Equal(t, "folio-1", loaded.Resources.FolioID)
	assert.True(t, loaded.Pricing.TotalFee.Equal(decimal.NewFromInt(800)))
}

func TestSaveBooking_VersionConflict(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	b := newBooking(t, booking.Player{Name: "Tanaka", IdentityCode: "MEMBER"})
	require.NoError(t, store.Create(b))

	first, err := store.Load(b.ID)
	require.NoError(t, err)
	second, err := store.Load(b.ID)
	require.NoError(t, err)

	require.NoError(t, first.Transition(booking.StatusConfirmed))
	require.NoError(t, store.Save(first))

	require.NoError(t, second.Transition(booking.StatusCancelled))
	assert.ErrorIs(t, store.Save(second), booking.ErrVersionConflict)

	fresh, err := store.Load(b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, fresh.Status)
}

func TestListByDate(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	date := time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC)
	mk := func(hour, minute int) *booking.Booking {
		tee := time.Date(2026, 4, 8, hour, minute, 0, 0, time.UTC)
		b, err := booking.New(date, tee, "main", 18,
			[]booking.Player{{Name: "Tanaka", IdentityCode: "MEMBER"}})
		require.NoError(t, err)
		require.NoError(t, store.Create(b))
		return b
	}

	late := mk(14, 0)
	early := mk(7, 30)
	mid := mk(10, 15)

	// A booking on another day must not leak into the sheet.
	other, err := booking.New(
		time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 9, 8, 0, 0, 0, time.UTC),
		"main", 18, []booking.Player{{Name: "Smith", IdentityCode: "GUEST"}})
	require.NoError(t, err)
	require.NoError(t, store.Create(other))

	sheet, err := store.ListByDate(date)
	require.NoError(t, err)
	require.Len(t, sheet, 3)
	assert.Equal(t, early.ID, sheet[0].ID)
	assert.Equal(t, mid.ID, sheet[1].ID)
	assert.Equal(t, late.ID, sheet[2].ID)

	empty, err := store.ListByDate(time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
