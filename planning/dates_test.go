package planning

import (
	"testing"
	"time"

	"github.com/MEMOUE/PrrojetMgh/models"
)

func TestDateRange_SingleDay(t *testing.T) {
	d := date(2024, 5, 1)
	days := DateRange(d, d)
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	if !days[0].Equal(d) {
		t.Errorf("expected %v, got %v", d, days[0])
	}
}

func TestDateRange_Week(t *testing.T) {
	days := DateRange(date(2024, 5, 1), date(2024, 5, 7))
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	for i := 1; i < len(days); i++ {
		if !days[i].After(days[i-1]) {
			t.Fatal("range must be strictly ascending")
		}
		if days[i].Sub(days[i-1]) != 24*time.Hour {
			t.Fatal("range must step one calendar day at a time")
		}
	}
}

func TestDateRange_TruncatesTimeOfDay(t *testing.T) {
	start := time.Date(2024, 5, 1, 18, 45, 0, 0, time.UTC)
	end := time.Date(2024, 5, 2, 3, 0, 0, 0, time.UTC)
	days := DateRange(start, end)
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].Hour() != 0 || days[0].Minute() != 0 {
		t.Error("range days must be truncated to midnight")
	}
}

func TestDateRange_EndBeforeStart(t *testing.T) {
	if days := DateRange(date(2024, 5, 3), date(2024, 5, 1)); len(days) != 0 {
		t.Errorf("expected empty range, got %d days", len(days))
	}
}

func TestDateRange_MonthBoundary(t *testing.T) {
	days := DateRange(date(2024, 4, 29), date(2024, 5, 2))
	if len(days) != 4 {
		t.Fatalf("expected 4 days across the month boundary, got %d", len(days))
	}
	if DayKey(days[2]) != "2024-05-01" {
		t.Errorf("expected 2024-05-01, got %s", DayKey(days[2]))
	}
}

func TestDayKey(t *testing.T) {
	k := DayKey(time.Date(2024, 5, 1, 23, 15, 9, 0, time.UTC))
	if k != "2024-05-01" {
		t.Errorf("expected 2024-05-01, got %s", k)
	}
}

func TestNights(t *testing.T) {
	if n := Nights(date(2024, 5, 1), date(2024, 5, 3)); n != 2 {
		t.Errorf("expected 2 nights, got %d", n)
	}
	if n := Nights(date(2024, 5, 1), date(2024, 5, 1)); n != 0 {
		t.Errorf("expected 0 nights, got %d", n)
	}
	// inverted interval clamps to zero
	if n := Nights(date(2024, 5, 3), date(2024, 5, 1)); n != 0 {
		t.Errorf("expected 0 nights for inverted interval, got %d", n)
	}
	// time of day does not add a night
	arr := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	dep := time.Date(2024, 5, 2, 1, 0, 0, 0, time.UTC)
	if n := Nights(arr, dep); n != 1 {
		t.Errorf("expected 1 night, got %d", n)
	}
}

func TestNights_AcrossDSTTransition(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("loading timezone: %v", err)
	}

	// 2024-03-31 is the spring-forward night in Europe/Paris: the
	// elapsed duration is 47h, but the stay is still two nights.
	arr := time.Date(2024, 3, 30, 0, 0, 0, 0, paris)
	dep := time.Date(2024, 4, 1, 0, 0, 0, 0, paris)
	if n := Nights(arr, dep); n != 2 {
		t.Errorf("expected 2 nights across spring-forward, got %d", n)
	}

	// fall-back night: 25h elapsed, still one night
	arr = time.Date(2024, 10, 26, 0, 0, 0, 0, paris)
	dep = time.Date(2024, 10, 27, 0, 0, 0, 0, paris)
	if n := Nights(arr, dep); n != 1 {
		t.Errorf("expected 1 night across fall-back, got %d", n)
	}
}

func TestSortRoomsByNumber(t *testing.T) {
	rooms := []models.Room{
		room(1, "102"),
		room(2, "2"),
		room(3, "10"),
		room(4, "101"),
		room(5, "A2"),
		room(6, "A10"),
	}

	SortRoomsByNumber(rooms)

	got := make([]string, len(rooms))
	for i, r := range rooms {
		got[i] = r.Number
	}
	want := []string{"2", "10", "101", "102", "A2", "A10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestCompareNatural_LeadingZeros(t *testing.T) {
	if compareNatural("007", "7") != 0 {
		t.Error("numeric runs must compare by value, ignoring leading zeros")
	}
	if compareNatural("08", "9") != -1 {
		t.Error("expected 08 < 9")
	}
}
