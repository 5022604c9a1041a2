package planning

import (
	"time"

	"golang.org/x/exp/slices"

	"github.com/MEMOUE/PrrojetMgh/models"
)

const dayKeyLayout = "2006-01-02"

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayKey is the calendar-day map key for t.
func DayKey(t time.Time) string {
	return Day(t).Format(dayKeyLayout)
}

// DateRange returns every calendar day from start to end inclusive,
// ascending. Both bounds are truncated to day granularity. An end before
// start yields an empty range.
func DateRange(start, end time.Time) []time.Time {
	first := Day(start)
	last := Day(end)

	var days []time.Time
	for cur := first; !cur.After(last); cur = cur.AddDate(0, 0, 1) {
		days = append(days, cur)
	}
	return days
}

// Nights counts the nights between arrival and departure at day
// granularity. Calendar-day arithmetic, so a stay spanning a DST
// transition still counts whole nights.
func Nights(arrival, departure time.Time) int {
	n := 0
	for cur := Day(arrival); cur.Before(Day(departure)); cur = cur.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// SortRoomsByNumber orders rooms the way the planning board displays them:
// numeric-aware comparison of room numbers, so "2" sorts before "10".
func SortRoomsByNumber(rooms []models.Room) {
	slices.SortFunc(rooms, func(a, b models.Room) int {
		return compareNatural(a.Number, b.Number)
	})
}

func compareNatural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			// compare the full digit runs as numbers
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := trimLeadingZeros(a[si:i])
			nb := trimLeadingZeros(b[sj:j])
			if len(na) != len(nb) {
				if len(na) < len(nb) {
					return -1
				}
				return 1
			}
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	default:
		return 0
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func trimLeadingZeros(s string) string {
	k := 0
	for k < len(s)-1 && s[k] == '0' {
		k++
	}
	return s[k:]
}
