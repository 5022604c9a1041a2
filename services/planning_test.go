package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MEMOUE/PrrojetMgh/models"
)

type fakeRoomSource struct {
	rooms []models.Room
	err   error
	delay time.Duration
}

func (f *fakeRoomSource) FetchRooms(ctx context.Context) ([]models.Room, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.rooms, f.err
}

type fakeReservationSource struct {
	reservations []models.Reservation
	err          error
}

func (f *fakeReservationSource) FetchReservations(ctx context.Context) ([]models.Reservation, error) {
	return f.reservations, f.err
}

func testRoom(id uint, number string) models.Room {
	r := models.Room{Number: number}
	r.ID = id
	return r
}

func testReservation(id, roomID uint) models.Reservation {
	res := models.Reservation{
		RoomID:        roomID,
		ArrivalDate:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		DepartureDate: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		Status:        models.ReservationConfirmed,
	}
	res.ID = id
	return res
}

func TestRefresh_JoinsBothSources(t *testing.T) {
	rooms := &fakeRoomSource{rooms: []models.Room{testRoom(2, "102"), testRoom(1, "2")}, delay: 10 * time.Millisecond}
	reservations := &fakeReservationSource{reservations: []models.Reservation{testReservation(10, 1)}}
	svc := NewPlanningService(rooms, reservations)

	snap, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap.Grid)
	require.Len(t, snap.Rooms, 2)

	// rooms come out display-sorted
	require.Equal(t, "2", snap.Rooms[0].Number)
	require.Equal(t, "102", snap.Rooms[1].Number)

	res, ok := snap.Grid.Lookup(1, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	require.Equal(t, uint(10), res.ID)
}

func TestRefresh_FailureKeepsPreviousSnapshot(t *testing.T) {
	rooms := &fakeRoomSource{rooms: []models.Room{testRoom(1, "101")}}
	reservations := &fakeReservationSource{}
	svc := NewPlanningService(rooms, reservations)

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	reservations.err = errors.New("upstream down")
	_, err = svc.Refresh(context.Background())
	require.Error(t, err)

	// stale but consistent, never blank
	require.Same(t, first, svc.Current())
}

func TestRefresh_NoPartialSnapshotOnRoomFailure(t *testing.T) {
	rooms := &fakeRoomSource{err: errors.New("catalog down")}
	reservations := &fakeReservationSource{reservations: []models.Reservation{testReservation(10, 1)}}
	svc := NewPlanningService(rooms, reservations)

	_, err := svc.Refresh(context.Background())
	require.Error(t, err)
	require.Nil(t, svc.Current())
}

func TestCurrentOrRefresh(t *testing.T) {
	rooms := &fakeRoomSource{rooms: []models.Room{testRoom(1, "101")}}
	svc := NewPlanningService(rooms, &fakeReservationSource{})

	snap, err := svc.CurrentOrRefresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)

	// second call serves the published snapshot without refetching
	rooms.err = errors.New("should not be called")
	again, err := svc.CurrentOrRefresh(context.Background())
	require.NoError(t, err)
	require.Same(t, snap, again)
}

func TestSubscribe_NotifiedOnPublish(t *testing.T) {
	rooms := &fakeRoomSource{rooms: []models.Room{testRoom(1, "101")}}
	svc := NewPlanningService(rooms, &fakeReservationSource{})

	ch := svc.Subscribe()
	snap, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	select {
	case got := <-ch:
		require.Same(t, snap, got)
	case <-time.After(time.Second):
		t.Fatal("subscriber was not notified")
	}
}

func TestInvalidate_RotatesCacheKeys(t *testing.T) {
	svc := NewPlanningService(&fakeRoomSource{}, &fakeReservationSource{})
	before := svc.cacheKey("2024-05-01", "2024-05-31")
	svc.Invalidate()
	after := svc.cacheKey("2024-05-01", "2024-05-31")
	require.NotEqual(t, before, after)
}
