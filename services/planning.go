package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MEMOUE/PrrojetMgh/models"
	"github.com/MEMOUE/PrrojetMgh/planning"
	"github.com/MEMOUE/PrrojetMgh/storage"
)

// Snapshot is one consistent rooms+reservations state with its derived
// occupancy grid. Immutable once published; a refresh swaps in a whole new
// snapshot instead of patching the old one.
type Snapshot struct {
	Rooms        []models.Room
	Reservations []models.Reservation
	Grid         *planning.Grid
	FetchedAt    time.Time
}

// PlanningService owns the current snapshot. Both sources are fetched
// concurrently and the grid is only rebuilt from the joined result, never
// from partial data. On fetch failure the previous snapshot stays current.
type PlanningService struct {
	rooms        RoomSource
	reservations ReservationSource

	mu      sync.RWMutex
	current *Snapshot
	subs    []chan *Snapshot

	cacheGen int64
	cacheTTL time.Duration
}

func NewPlanningService(rooms RoomSource, reservations ReservationSource) *PlanningService {
	return &PlanningService{
		rooms:        rooms,
		reservations: reservations,
		cacheTTL:     30 * time.Second,
	}
}

// Refresh fetches both sources, joins them and publishes a new snapshot.
// Either fetch failing aborts the rebuild and keeps the previous snapshot.
func (s *PlanningService) Refresh(ctx context.Context) (*Snapshot, error) {
	var (
		wg      sync.WaitGroup
		rooms   []models.Room
		res     []models.Reservation
		roomErr error
		resErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		rooms, roomErr = s.rooms.FetchRooms(ctx)
	}()
	go func() {
		defer wg.Done()
		res, resErr = s.reservations.FetchReservations(ctx)
	}()
	wg.Wait()

	if roomErr != nil {
		return nil, fmt.Errorf("fetching rooms: %w", roomErr)
	}
	if resErr != nil {
		return nil, fmt.Errorf("fetching reservations: %w", resErr)
	}

	planning.SortRoomsByNumber(rooms)
	grid := planning.BuildGrid(rooms, res)
	for _, ov := range grid.Overlaps {
		log.Printf("planning: double booking on room %d day %s: reservation %d hides %d",
			ov.RoomID, ov.Day, ov.KeptID, ov.DisplacedID)
	}

	snap := &Snapshot{
		Rooms:        rooms,
		Reservations: res,
		Grid:         grid,
		FetchedAt:    time.Now(),
	}

	s.mu.Lock()
	s.current = snap
	subs := make([]chan *Snapshot, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- snap:
		default: // slow subscriber, it will catch up on the next publish
		}
	}

	s.Invalidate()
	return snap, nil
}

// Current returns the last published snapshot, which may be nil before the
// first successful refresh.
func (s *PlanningService) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// CurrentOrRefresh serves the existing snapshot and only fetches when none
// has been published yet.
func (s *PlanningService) CurrentOrRefresh(ctx context.Context) (*Snapshot, error) {
	if snap := s.Current(); snap != nil {
		return snap, nil
	}
	return s.Refresh(ctx)
}

// Subscribe returns a channel receiving each newly published snapshot.
func (s *PlanningService) Subscribe() <-chan *Snapshot {
	ch := make(chan *Snapshot, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Invalidate retires every cached planning response by bumping the cache
// generation; stale keys simply expire.
func (s *PlanningService) Invalidate() {
	atomic.AddInt64(&s.cacheGen, 1)
}

func (s *PlanningService) cacheKey(start, end string) string {
	return fmt.Sprintf("planning:view:%d:%s:%s", atomic.LoadInt64(&s.cacheGen), start, end)
}

// CachedView returns the cached rendered planning response for a window,
// if Redis is configured and holds one.
func (s *PlanningService) CachedView(ctx context.Context, start, end string) ([]byte, bool) {
	if storage.Redis == nil {
		return nil, false
	}
	body, err := storage.Redis.Get(ctx, s.cacheKey(start, end)).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

// StoreView caches a rendered planning response for a window.
func (s *PlanningService) StoreView(ctx context.Context, start, end string, body []byte) {
	if storage.Redis == nil {
		return
	}
	storage.Redis.Set(ctx, s.cacheKey(start, end), body, s.cacheTTL)
}
