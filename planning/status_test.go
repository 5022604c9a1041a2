package planning

import (
	"testing"

	"github.com/MEMOUE/PrrojetMgh/models"
)

func TestRemainingBalance(t *testing.T) {
	r := &models.Reservation{TotalAmount: 10000, PaidAmount: 4000}
	if got := RemainingBalance(r); got != 6000 {
		t.Errorf("expected 6000, got %.2f", got)
	}

	// overpayment clamps to zero, never negative
	r = &models.Reservation{TotalAmount: 10000, PaidAmount: 12000}
	if got := RemainingBalance(r); got != 0 {
		t.Errorf("expected 0 for overpaid reservation, got %.2f", got)
	}

	r = &models.Reservation{TotalAmount: 10000, PaidAmount: 10000}
	if got := RemainingBalance(r); got != 0 {
		t.Errorf("expected 0 for settled reservation, got %.2f", got)
	}
}

func TestActionPredicates(t *testing.T) {
	cases := []struct {
		status      string
		checkin     bool
		checkout    bool
		cancel      bool
	}{
		{models.ReservationPending, false, false, true},
		{models.ReservationConfirmed, true, false, true},
		{models.ReservationInProgress, false, true, false},
		{models.ReservationCompleted, false, false, false},
		{models.ReservationCancelled, false, false, false},
		{models.ReservationNoShow, false, false, false},
	}

	for _, c := range cases {
		r := &models.Reservation{Status: c.status}
		if CanCheckin(r) != c.checkin {
			t.Errorf("%s: CanCheckin = %v, want %v", c.status, CanCheckin(r), c.checkin)
		}
		if CanCheckout(r) != c.checkout {
			t.Errorf("%s: CanCheckout = %v, want %v", c.status, CanCheckout(r), c.checkout)
		}
		if CanCancel(r) != c.cancel {
			t.Errorf("%s: CanCancel = %v, want %v", c.status, CanCancel(r), c.cancel)
		}
	}
}

func TestCanEdit(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{models.ReservationPending, true},
		{models.ReservationConfirmed, true},
		{models.ReservationInProgress, true},
		{models.ReservationNoShow, true},
		{models.ReservationCompleted, false},
		{models.ReservationCancelled, false},
	}

	for _, c := range cases {
		r := &models.Reservation{Status: c.status}
		if CanEdit(r) != c.want {
			t.Errorf("%s: CanEdit = %v, want %v", c.status, CanEdit(r), c.want)
		}
	}
}

func TestCanAddPayment_GatesOnBalance(t *testing.T) {
	// completed but unsettled: payment still allowed
	r := &models.Reservation{Status: models.ReservationCompleted, TotalAmount: 10000, PaidAmount: 5000}
	if !CanAddPayment(r) {
		t.Error("completed stay with a balance must accept payment")
	}

	// fully paid: no further payment whatever the status
	r = &models.Reservation{Status: models.ReservationInProgress, TotalAmount: 10000, PaidAmount: 10000}
	if CanAddPayment(r) {
		t.Error("settled reservation must not accept payment")
	}

	// cancelled: never
	r = &models.Reservation{Status: models.ReservationCancelled, TotalAmount: 10000, PaidAmount: 0}
	if CanAddPayment(r) {
		t.Error("cancelled reservation must not accept payment")
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{models.ReservationPending, models.ReservationConfirmed},
		{models.ReservationPending, models.ReservationCancelled},
		{models.ReservationConfirmed, models.ReservationInProgress},
		{models.ReservationConfirmed, models.ReservationCancelled},
		{models.ReservationInProgress, models.ReservationCompleted},
	}
	for _, tr := range allowed {
		if !CanTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s to be allowed", tr[0], tr[1])
		}
	}

	forbidden := [][2]string{
		{models.ReservationInProgress, models.ReservationCancelled},
		{models.ReservationCompleted, models.ReservationInProgress},
		{models.ReservationCancelled, models.ReservationConfirmed},
		{models.ReservationNoShow, models.ReservationConfirmed},
		{models.ReservationPending, models.ReservationInProgress},
	}
	for _, tr := range forbidden {
		if CanTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s to be forbidden", tr[0], tr[1])
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []string{models.ReservationCompleted, models.ReservationCancelled, models.ReservationNoShow} {
		if !IsTerminal(s) {
			t.Errorf("%s must be terminal", s)
		}
	}
	for _, s := range []string{models.ReservationPending, models.ReservationConfirmed, models.ReservationInProgress} {
		if IsTerminal(s) {
			t.Errorf("%s must not be terminal", s)
		}
	}
}

func TestStyleFor_Fallback(t *testing.T) {
	if s := StyleFor(models.ReservationConfirmed); s.Label != "Confirmée" {
		t.Errorf("unexpected label %q", s.Label)
	}
	s := StyleFor("WEIRD")
	if s.Label != "WEIRD" || s.Background == "" {
		t.Error("unknown statuses must get a neutral fallback style")
	}
}

func TestValidPaymentMethod(t *testing.T) {
	if !ValidPaymentMethod(models.PayOrangeMoney) {
		t.Error("ORANGE_MONEY belongs to the closed set")
	}
	if ValidPaymentMethod("BITCOIN") {
		t.Error("unknown payment methods must be rejected")
	}
}
