package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombooker/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	logger := zerolog.Nop()
	store, err := New(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func strPtr(s string) *string { return &s }

func testBooking(first, last string) models.Booking {
	return models.Booking{
		FirstName:   first,
		LastName:    last,
		TotalPrice:  111,
		DepositPaid: true,
		BookingDates: models.BookingDates{
			CheckIn:  "2018-01-01",
			CheckOut: "2019-01-01",
		},
	}
}

func TestCreateAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	booking := testBooking("Sally", "Brown")
	needs := "Breakfast"
	booking.AdditionalNeeds = &needs

	require.NoError(t, store.Create(ctx, &booking))
	assert.Positive(t, booking.ID)

	got, err := store.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sally", got.FirstName)
	assert.Equal(t, "Brown", got.LastName)
	assert.Equal(t, 111, got.TotalPrice)
	assert.True(t, got.DepositPaid)
	assert.Equal(t, "2018-01-01", got.BookingDates.CheckIn)
	assert.Equal(t, "2019-01-01", got.BookingDates.CheckOut)
	require.NotNil(t, got.AdditionalNeeds)
	assert.Equal(t, "Breakfast", *got.AdditionalNeeds)
}

func TestGetWithoutNeeds(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	booking := testBooking("Jim", "Brown")
	require.NoError(t, store.Create(ctx, &booking))

	got, err := store.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AdditionalNeeds)
}

func TestGetNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplace(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	booking := testBooking("Sally", "Brown")
	require.NoError(t, store.Create(ctx, &booking))

	updated := testBooking("James", "Dean")
	updated.TotalPrice = 250
	require.NoError(t, store.Replace(ctx, booking.ID, updated))

	got, err := store.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "James", got.FirstName)
	assert.Equal(t, "Dean", got.LastName)
	assert.Equal(t, 250, got.TotalPrice)
}

func TestMergePartial(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	booking := testBooking("Sally", "Brown")
	require.NoError(t, store.Create(ctx, &booking))

	in := &models.BookingInput{FirstName: strPtr("James")}
	require.NoError(t, store.Merge(ctx, booking.ID, in))

	got, err := store.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "James", got.FirstName)
	assert.Equal(t, "Brown", got.LastName, "untouched fields must survive a merge")
	assert.Equal(t, 111, got.TotalPrice)
}

func TestMergeDates(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	booking := testBooking("Sally", "Brown")
	require.NoError(t, store.Create(ctx, &booking))

	in := &models.BookingInput{
		BookingDates: &models.BookingDatesInput{CheckIn: strPtr("2020-05-05")},
	}
	require.NoError(t, store.Merge(ctx, booking.ID, in))

	got, err := store.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "2020-05-05", got.BookingDates.CheckIn)
	assert.Equal(t, "2019-01-01", got.BookingDates.CheckOut)
}

func TestMergeEmptyInputIsNoop(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	booking := testBooking("Sally", "Brown")
	require.NoError(t, store.Create(ctx, &booking))

	require.NoError(t, store.Merge(ctx, booking.ID, &models.BookingInput{}))

	got, err := store.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sally", got.FirstName)
}

func TestDeleteAndIDNotReused(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first := testBooking("Sally", "Brown")
	require.NoError(t, store.Create(ctx, &first))

	require.NoError(t, store.Delete(ctx, first.ID))

	exists, err := store.Exists(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	second := testBooking("Jim", "Brown")
	require.NoError(t, store.Create(ctx, &second))
	assert.Greater(t, second.ID, first.ID, "deleted ids must not be reassigned")
}

func TestListIDsOrderAndFilters(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	sally := testBooking("Sally", "Brown")
	sally.BookingDates = models.BookingDates{CheckIn: "2014-03-13", CheckOut: "2014-05-21"}
	jim := testBooking("Jim", "Brown")
	jim.BookingDates = models.BookingDates{CheckIn: "2018-06-01", CheckOut: "2018-06-10"}
	sallyJones := testBooking("Sally", "Jones")

	require.NoError(t, store.Create(ctx, &sally))
	require.NoError(t, store.Create(ctx, &jim))
	require.NoError(t, store.Create(ctx, &sallyJones))

	t.Run("NoFilters", func(t *testing.T) {
		ids, err := store.ListIDs(ctx, models.BookingFilter{})
		require.NoError(t, err)
		assert.Equal(t, []int64{sally.ID, jim.ID, sallyJones.ID}, ids)
	})

	t.Run("BothNames", func(t *testing.T) {
		ids, err := store.ListIDs(ctx, models.BookingFilter{
			FirstName: strPtr("Sally"),
			LastName:  strPtr("Brown"),
		})
		require.NoError(t, err)
		assert.Equal(t, []int64{sally.ID}, ids)
	})

	t.Run("NameNoMatch", func(t *testing.T) {
		ids, err := store.ListIDs(ctx, models.BookingFilter{FirstName: strPtr("Nobody")})
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("CheckInLowerBound", func(t *testing.T) {
		ids, err := store.ListIDs(ctx, models.BookingFilter{CheckIn: strPtr("2015-01-01")})
		require.NoError(t, err)
		assert.Equal(t, []int64{jim.ID, sallyJones.ID}, ids)
	})

	t.Run("CheckOutUpperBound", func(t *testing.T) {
		ids, err := store.ListIDs(ctx, models.BookingFilter{CheckOut: strPtr("2015-01-01")})
		require.NoError(t, err)
		assert.Equal(t, []int64{sally.ID}, ids)
	})
}

func TestExists(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	booking := testBooking("Sally", "Brown")
	require.NoError(t, store.Create(ctx, &booking))

	exists, err := store.Exists(ctx, booking.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(ctx, 12345)
	require.NoError(t, err)
	assert.False(t, exists)
}
