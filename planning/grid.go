package planning

import (
	"time"

	"github.com/MEMOUE/PrrojetMgh/models"
)

// Overlap records two reservations contending for the same room-day cell.
// The backend is supposed to prevent this for active statuses; when it
// happens anyway the later reservation keeps the cell and the collision is
// reported instead of being swallowed.
type Overlap struct {
	RoomID       uint   `json:"chambreId"`
	Day          string `json:"jour"`
	KeptID       uint   `json:"reservationGardee"`
	DisplacedID  uint   `json:"reservationMasquee"`
	KeptNumber   string `json:"numeroGarde"`
	HiddenNumber string `json:"numeroMasque"`
}

// Grid is the occupancy index of the planning board: room -> day key ->
// occupying reservation. Derived from one consistent rooms+reservations
// snapshot and rebuilt whole on every refresh, never patched.
type Grid struct {
	cells    map[uint]map[string]*models.Reservation
	Overlaps []Overlap
}

// BuildGrid indexes reservations by room and day. Every room gets an entry
// even with zero reservations. Reservations referencing a room absent from
// rooms are skipped as stale data. Pure: no I/O, inputs are not modified.
func BuildGrid(rooms []models.Room, reservations []models.Reservation) *Grid {
	g := &Grid{cells: make(map[uint]map[string]*models.Reservation, len(rooms))}

	for _, room := range rooms {
		g.cells[room.ID] = make(map[string]*models.Reservation)
	}

	for i := range reservations {
		res := &reservations[i]
		days, ok := g.cells[res.RoomID]
		if !ok {
			continue // orphan room reference
		}
		arrival := Day(res.ArrivalDate)
		departure := Day(res.DepartureDate)
		for cur := arrival; cur.Before(departure); cur = cur.AddDate(0, 0, 1) {
			key := cur.Format(dayKeyLayout)
			if prev, taken := days[key]; taken && prev.ID != res.ID {
				g.Overlaps = append(g.Overlaps, Overlap{
					RoomID:       res.RoomID,
					Day:          key,
					KeptID:       res.ID,
					DisplacedID:  prev.ID,
					KeptNumber:   res.Number,
					HiddenNumber: prev.Number,
				})
			}
			days[key] = res
		}
	}
	return g
}

// Lookup returns the reservation occupying roomID on date, if any. Unknown
// rooms and free days both report absence.
func (g *Grid) Lookup(roomID uint, date time.Time) (*models.Reservation, bool) {
	days, ok := g.cells[roomID]
	if !ok {
		return nil, false
	}
	res, ok := days[DayKey(date)]
	return res, ok
}

// HasRoom reports whether roomID was part of the snapshot the grid was
// built from.
func (g *Grid) HasRoom(roomID uint) bool {
	_, ok := g.cells[roomID]
	return ok
}

// IsStayStart reports whether date is the first occupied day of the stay in
// that cell, i.e. the reservation's arrival day.
func (g *Grid) IsStayStart(roomID uint, date time.Time) bool {
	res, ok := g.Lookup(roomID, date)
	if !ok {
		return false
	}
	return Day(res.ArrivalDate).Equal(Day(date))
}

// IsStayEnd reports whether date is the last occupied day of the stay in
// that cell, i.e. the day before the reservation's departure.
func (g *Grid) IsStayEnd(roomID uint, date time.Time) bool {
	res, ok := g.Lookup(roomID, date)
	if !ok {
		return false
	}
	return Day(res.DepartureDate).Equal(Day(date).AddDate(0, 0, 1))
}

// IsFree reports availability of roomID over the half-open interval
// [arrival, departure).
func (g *Grid) IsFree(roomID uint, arrival, departure time.Time) bool {
	if !g.HasRoom(roomID) {
		return false
	}
	for cur := Day(arrival); cur.Before(Day(departure)); cur = cur.AddDate(0, 0, 1) {
		if _, taken := g.Lookup(roomID, cur); taken {
			return false
		}
	}
	return true
}
